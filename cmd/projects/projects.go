package projects

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/umbrellio/gbot/internal/common"
	"github.com/umbrellio/gbot/internal/config"
	"github.com/umbrellio/gbot/internal/digest"
	"github.com/umbrellio/gbot/internal/ui"
)

// Command lists the projects a digest run would scan
type Command struct {
	ConfigPath string

	Config *config.Config
	Logger *slog.Logger
	Client digest.SourceControl
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	command := &cobra.Command{
		Use:   "projects",
		Short: "List the projects that will be scanned",
		Long: `Resolve the configured projects and groups (minus exclusions) into the
deduplicated list of projects a digest run scans, with their path filters.

Example:
  gbot projects
  gbot projects -c ci/gbot.yml`,
		Args: cobra.NoArgs,
		PreRunE: func(cobraCmd *cobra.Command, args []string) error {
			clients, err := common.InitClients(c.ConfigPath)
			if err != nil {
				return err
			}
			c.Config = clients.Config
			c.Logger = clients.Logger
			c.Client = clients.GitLab
			return nil
		},
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return c.Run(cobraCmd.Context())
		},
	}

	command.Flags().StringVarP(&c.ConfigPath, "config", "c", config.DefaultPath, "Path to the YAML config file")

	parent.AddCommand(command)
}

// Run executes the command
func (c *Command) Run(ctx context.Context) error {
	projects, err := common.ResolveProjects(ctx, c.Client, c.Config)
	if err != nil {
		common.ReportFailure(c.Logger, err)
		return fmt.Errorf("failed to resolve projects: %w", err)
	}

	ui.Print(ui.RenderProjectList(projects))
	return nil
}
