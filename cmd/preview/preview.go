package preview

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/umbrellio/gbot/internal/common"
	"github.com/umbrellio/gbot/internal/config"
	"github.com/umbrellio/gbot/internal/digest"
	"github.com/umbrellio/gbot/internal/markup"
	"github.com/umbrellio/gbot/internal/model"
	"github.com/umbrellio/gbot/internal/ui"
)

// Command previews the digest of a single project
type Command struct {
	// Arguments
	ConfigPath string
	ProjectID  int

	// Clients (can be mocked in tests)
	Config *config.Config
	Logger *slog.Logger
	Client digest.SourceControl
	Markup markup.Markup
	Select func([]model.Project) (*model.Project, error)
	Now    func() time.Time
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	command := &cobra.Command{
		Use:   "preview [project-id]",
		Short: "Preview the digest of one project",
		Long: `Render the digest restricted to one of the resolved projects, without
sending anything. If no project id is provided, opens an interactive fuzzy finder.

Example:
  gbot preview        # Interactive fuzzy finder
  gbot preview 42     # Preview project 42`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cobraCmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				id, err := strconv.Atoi(args[0])
				if err != nil || id <= 0 {
					return fmt.Errorf("invalid project id %q", args[0])
				}
				c.ProjectID = id
			}

			clients, err := common.InitClients(c.ConfigPath)
			if err != nil {
				return err
			}
			c.Config = clients.Config
			c.Logger = clients.Logger
			c.Client = clients.GitLab
			c.Markup = clients.Markup
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
	if c.Select == nil {
		c.Select = ui.SelectProject
	}
	if c.Now == nil {
		c.Now = time.Now
	}

	projects, err := common.ResolveProjects(ctx, c.Client, c.Config)
	if err != nil {
		common.ReportFailure(c.Logger, err)
		return fmt.Errorf("failed to resolve projects: %w", err)
	}
	if len(projects) == 0 {
		ui.Print(ui.RenderNoProjectsMessage())
		return nil
	}

	selected, err := c.pick(projects)
	if err != nil {
		return err
	}
	if selected == nil {
		ui.Warning("No project selected")
		return nil
	}

	opts := common.DigestOptions(c.Config)
	opts.Projects = []model.ProjectRef{{ID: selected.ID, Paths: selected.Paths}}
	opts.Groups = nil

	res, err := digest.NewOrchestrator(c.Client, nil, c.Markup, opts, c.Logger).
		WithClock(c.Now).
		Render(ctx)
	if err != nil {
		common.ReportFailure(c.Logger, err)
		return fmt.Errorf("digest run %s failed in %s: %w", res.RunID, res.FailedIn, err)
	}

	ui.Print(ui.FormatProjectPreview(*selected))
	ui.Print("")
	if len(res.Candidates) > 0 {
		ui.Print(ui.RenderCandidateTree(res.Candidates, c.Now()))
		ui.Print("")
	}
	ui.Print(ui.RenderDigestPreview(res.Messages))
	return nil
}

func (c *Command) pick(projects []model.Project) (*model.Project, error) {
	if c.ProjectID == 0 {
		selected, err := c.Select(projects)
		if err != nil {
			return nil, fmt.Errorf("failed to select project: %w", err)
		}
		return selected, nil
	}

	for i := range projects {
		if projects[i].ID == c.ProjectID {
			return &projects[i], nil
		}
	}
	return nil, fmt.Errorf("project %d is not among the configured projects", c.ProjectID)
}
