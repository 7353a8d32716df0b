// Package digest builds and delivers the review digest: it resolves
// projects, enriches their open merge requests, filters the ones awaiting
// action and renders them for the chat destination.
package digest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/umbrellio/gbot/internal/apperrors"
	"github.com/umbrellio/gbot/internal/markup"
	"github.com/umbrellio/gbot/internal/model"
	"github.com/umbrellio/gbot/internal/staleness"
)

// State is a step of a digest run.
type State int

const (
	StateResolvingProjects State = iota
	StateEnriching
	StateFiltering
	StateSorting
	StateRendering
	StateDispatching
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateResolvingProjects:
		return "resolving_projects"
	case StateEnriching:
		return "enriching"
	case StateFiltering:
		return "filtering"
	case StateSorting:
		return "sorting"
	case StateRendering:
		return "rendering"
	case StateDispatching:
		return "dispatching"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Options holds everything a run needs besides its collaborators.
type Options struct {
	Projects    []model.ProjectRef
	Groups      []model.Group
	Labels      map[string]string // staleness label table
	Description DescriptionOptions
	Render      RenderOptions
}

// Result describes a finished (or failed) run.
type Result struct {
	RunID      string
	State      State // last state entered; StateFailed on error
	FailedIn   State // state that failed, meaningful when State is StateFailed
	Projects   []model.ProjectRef
	Requests   int
	Candidates []Candidate
	Messages   []markup.Message
}

// Orchestrator runs the digest pipeline.
type Orchestrator struct {
	client    SourceControl
	messenger Messenger
	markup    markup.Markup
	opts      Options
	logger    *slog.Logger
	now       func() time.Time
}

// NewOrchestrator creates an Orchestrator. messenger may be nil when only
// Render is used.
func NewOrchestrator(client SourceControl, messenger Messenger, m markup.Markup, opts Options, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Orchestrator{
		client:    client,
		messenger: messenger,
		markup:    m,
		opts:      opts,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock replaces the clock used for staleness labels.
func (o *Orchestrator) WithClock(now func() time.Time) *Orchestrator {
	o.now = now
	return o
}

// Run executes one full cycle and dispatches the digest. The returned Result
// is never nil; on failure the error is a ConfigurationError, NetworkError or
// UnexpectedError and nothing has been sent.
func (o *Orchestrator) Run(ctx context.Context) (*Result, error) {
	return o.run(ctx, true)
}

// Render executes the cycle up to rendering without dispatching.
func (o *Orchestrator) Render(ctx context.Context) (*Result, error) {
	return o.run(ctx, false)
}

func (o *Orchestrator) run(ctx context.Context, dispatch bool) (res *Result, err error) {
	res = &Result{RunID: uuid.NewString()}
	logger := o.logger.With(slog.String("run_id", res.RunID))

	enter := func(s State) {
		res.State = s
		logger.Debug("digest state", slog.String("state", s.String()))
	}

	defer func() {
		if err != nil {
			res.FailedIn = res.State
			enter(StateFailed)
			err = apperrors.Classify(err)
		}
	}()

	enter(StateResolvingProjects)
	res.Projects, err = ResolveProjects(ctx, o.client, o.opts.Projects, o.opts.Groups)
	if err != nil {
		return res, err
	}

	enter(StateEnriching)
	requests, err := NewEnricher(o.client, logger).Enrich(ctx, res.Projects)
	if err != nil {
		return res, err
	}
	res.Requests = len(requests)

	enter(StateFiltering)
	res.Candidates, err = Filter(requests, FilterOptions{CheckConflicts: o.opts.Description.CheckConflicts})
	if err != nil {
		return res, err
	}

	enter(StateSorting)
	sort.SliceStable(res.Candidates, func(i, j int) bool {
		return res.Candidates[i].Request.UpdatedAt.Before(res.Candidates[j].Request.UpdatedAt)
	})

	enter(StateRendering)
	description := NewDescriptionBuilder(o.markup, staleness.NewClassifier(o.opts.Labels), o.opts.Description, o.now)
	res.Messages = NewRenderer(o.markup, description, o.opts.Render).Render(res.Candidates)

	logger.Info("digest rendered",
		slog.Int("projects", len(res.Projects)),
		slog.Int("requests", res.Requests),
		slog.Int("eligible", len(res.Candidates)),
		slog.Int("messages", len(res.Messages)))

	if !dispatch {
		enter(StateDone)
		return res, nil
	}

	enter(StateDispatching)
	if o.messenger == nil {
		return res, errors.New("no messenger configured")
	}
	logger.Info("Sending message")
	for _, msg := range res.Messages {
		logger.Info(msg.String())
	}
	if err = o.messenger.SendMany(ctx, res.Messages); err != nil {
		return res, err
	}

	enter(StateDone)
	return res, nil
}
