package configcmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/umbrellio/gbot/internal/config"
	"github.com/umbrellio/gbot/internal/ui"
)

// Command prints the effective configuration
type Command struct {
	ConfigPath string

	Config *config.Config
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	command := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration gbot would run with: the config file merged with
GBOT_ environment variables and defaults. The GitLab token and the webhook
are masked.

Environment variables map onto config keys by dropping the GBOT_ prefix and
splitting on double underscores, e.g. GBOT_GITLAB__TOKEN sets gitlab.token
and GBOT_UNAPPROVED__TAG__ON_THREADS_OPEN sets unapproved.tag.onThreadsOpen.

Example:
  gbot config
  GBOT_LOG__LEVEL=debug gbot config -c ci/gbot.yml`,
		Args: cobra.NoArgs,
		PreRunE: func(cobraCmd *cobra.Command, args []string) error {
			cfg, err := config.Load(c.ConfigPath)
			if err != nil {
				ui.Error("Invalid configuration")
				return err
			}
			c.Config = cfg
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
	out, err := yaml.Marshal(c.Config.Redacted())
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	ui.Printf("%s", out)
	return nil
}
