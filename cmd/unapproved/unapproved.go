package unapproved

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/umbrellio/gbot/internal/common"
	"github.com/umbrellio/gbot/internal/config"
	"github.com/umbrellio/gbot/internal/digest"
	"github.com/umbrellio/gbot/internal/ui"
)

// Command sends the digest of merge requests awaiting review
type Command struct {
	// Flags
	ConfigPath string
	DryRun     bool

	// Clients (can be mocked in tests)
	Config       *config.Config
	Logger       *slog.Logger
	Orchestrator *digest.Orchestrator
	Now          func() time.Time
}

// Register registers the command with cobra
func (c *Command) Register(parent *cobra.Command) {
	command := &cobra.Command{
		Use:   "unapproved",
		Short: "Send the digest of merge requests awaiting review",
		Long: `Scan the configured projects and groups for open merge requests that still
need approvals, have unresolved threads or (optionally) conflicts, and post
a digest to the configured chat webhook.

With --dry-run the digest is rendered to the terminal instead of being sent.

Example:
  gbot unapproved
  gbot unapproved --config ci/gbot.yml --dry-run`,
		Args: cobra.NoArgs,
		PreRunE: func(cobraCmd *cobra.Command, args []string) error {
			clients, err := common.InitClients(c.ConfigPath)
			if err != nil {
				return err
			}
			c.Config = clients.Config
			c.Logger = clients.Logger
			c.Orchestrator = clients.NewOrchestrator(common.DigestOptions(clients.Config))
			return nil
		},
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return c.Run(cobraCmd.Context())
		},
	}

	command.Flags().StringVarP(&c.ConfigPath, "config", "c", config.DefaultPath, "Path to the YAML config file")
	command.Flags().BoolVar(&c.DryRun, "dry-run", false, "Render the digest to the terminal instead of sending it")

	parent.AddCommand(command)
}

// Run executes the command
func (c *Command) Run(ctx context.Context) error {
	if c.Now == nil {
		c.Now = time.Now
	}

	if c.DryRun {
		return c.preview(ctx)
	}

	if err := c.Config.RequireWebhook(); err != nil {
		common.ReportFailure(c.Logger, err)
		return err
	}

	res, err := c.Orchestrator.Run(ctx)
	if err != nil {
		common.ReportFailure(c.Logger, err)
		return fmt.Errorf("digest run %s failed in %s: %w", res.RunID, res.FailedIn, err)
	}

	ui.Successf("Sent %d message(s) covering %d merge request(s)", len(res.Messages), len(res.Candidates))
	return nil
}

func (c *Command) preview(ctx context.Context) error {
	res, err := c.Orchestrator.Render(ctx)
	if err != nil {
		common.ReportFailure(c.Logger, err)
		return fmt.Errorf("digest run %s failed in %s: %w", res.RunID, res.FailedIn, err)
	}

	ui.Title("Digest preview")
	ui.Print(ui.RenderRunSummary(len(res.Projects), res.Requests, len(res.Candidates), len(res.Messages)))
	if len(res.Candidates) > 0 {
		ui.Print("")
		ui.Print(ui.RenderCandidateTree(res.Candidates, c.Now()))
	}
	ui.Print("")
	ui.Print(ui.RenderDigestPreview(res.Messages))
	ui.Info("Dry run: nothing was sent")
	return nil
}
