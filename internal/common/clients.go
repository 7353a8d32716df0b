// Package common wires configuration into the clients shared by commands.
package common

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/umbrellio/gbot/internal/config"
	"github.com/umbrellio/gbot/internal/digest"
	"github.com/umbrellio/gbot/internal/gitlab"
	"github.com/umbrellio/gbot/internal/logging"
	"github.com/umbrellio/gbot/internal/markup"
	"github.com/umbrellio/gbot/internal/messenger"
	"github.com/umbrellio/gbot/internal/model"
	"github.com/umbrellio/gbot/internal/ui"
)

var (
	_ digest.SourceControl = (*gitlab.Client)(nil)
	_ digest.Messenger     = (*messenger.Messenger)(nil)
)

// Clients bundles what a command needs to run a digest.
type Clients struct {
	Config    *config.Config
	Logger    *slog.Logger
	GitLab    *gitlab.Client
	Messenger *messenger.Messenger
	Markup    markup.Markup
}

// InitClients loads the configuration at configPath and builds the clients.
// Returns an error that is suitable for use in PreRunE hooks
func InitClients(configPath string) (*Clients, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		ui.Error("Invalid configuration")
		return nil, err
	}
	return NewClients(cfg)
}

// NewClients builds the clients for an already loaded configuration.
func NewClients(cfg *config.Config) (*Clients, error) {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("logger initialization failed: %w", err)
	}

	m, err := markup.New(cfg.Messenger.Markup)
	if err != nil {
		return nil, fmt.Errorf("markup initialization failed: %w", err)
	}

	httpClient := &http.Client{Timeout: cfg.GitLab.Timeout}

	gl := gitlab.NewClient(gitlab.Config{
		BaseURL:               cfg.GitLab.URL,
		Token:                 cfg.GitLab.Token,
		MaxConcurrentRequests: cfg.GitLab.Concurrency,
		RateLimit:             cfg.GitLab.RateLimit,
	}, httpClient, logger)

	msgr := messenger.New(messenger.Config{
		Webhook:  cfg.Messenger.Webhook,
		Channel:  cfg.Messenger.Channel,
		Username: cfg.Messenger.Sender.Username,
		IconURL:  cfg.Messenger.Sender.Icon,
	}, &http.Client{Timeout: cfg.GitLab.Timeout}, logger)

	return &Clients{
		Config:    cfg,
		Logger:    logger,
		GitLab:    gl,
		Messenger: msgr,
		Markup:    m,
	}, nil
}

// DigestOptions translates the configuration into orchestrator options.
func DigestOptions(cfg *config.Config) digest.Options {
	u := cfg.Unapproved
	return digest.Options{
		Projects: cfg.ProjectRefs(),
		Groups:   cfg.Groups(),
		Labels:   u.Emoji,
		Description: digest.DescriptionOptions{
			Tag: digest.TagOptions{
				Author:        u.Tag.Author,
				Approvers:     u.Tag.Approvers,
				Commenters:    u.Tag.Commenters,
				OnConflict:    u.Tag.OnConflict,
				OnThreadsOpen: u.Tag.OnThreadsOpen,
			},
			ShowDiffStats:  u.Diffs,
			CheckConflicts: u.CheckConflicts,
			Mentions:       u.Mentions,
		},
		Render: digest.RenderOptions{
			SplitByReviewProgress: u.SplitByReviewProgress,
			RequestsPerMessage:    u.RequestsPerMessage,
		},
	}
}

// NewOrchestrator builds a digest orchestrator over the clients.
func (c *Clients) NewOrchestrator(opts digest.Options) *digest.Orchestrator {
	return digest.NewOrchestrator(c.GitLab, c.Messenger, c.Markup, opts, c.Logger)
}

// ResolveProjects resolves the configured projects and groups and looks up
// every resulting project, preserving resolution order.
func ResolveProjects(ctx context.Context, client digest.SourceControl, cfg *config.Config) ([]model.Project, error) {
	refs, err := digest.ResolveProjects(ctx, client, cfg.ProjectRefs(), cfg.Groups())
	if err != nil {
		return nil, err
	}

	projects := make([]model.Project, len(refs))
	g, gctx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		g.Go(func() error {
			p, err := client.Project(gctx, ref.ID)
			if err != nil {
				return fmt.Errorf("failed to look up project %d: %w", ref.ID, err)
			}
			p.Paths = ref.Paths
			projects[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return projects, nil
}
