package digest

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/umbrellio/gbot/internal/model"
)

// Enricher fetches the open merge requests of resolved projects together
// with their approvals, changes and discussions.
type Enricher struct {
	client SourceControl
	logger *slog.Logger
}

// NewEnricher creates an Enricher.
func NewEnricher(client SourceControl, logger *slog.Logger) *Enricher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Enricher{client: client, logger: logger}
}

// Enrich returns the fully enriched merge requests of all projects, grouped
// by project in input order and by listing order within a project. Projects
// and requests are processed concurrently; the first failure cancels the rest
// and is returned.
func (e *Enricher) Enrich(ctx context.Context, refs []model.ProjectRef) ([]model.MergeRequest, error) {
	perProject := make([][]model.MergeRequest, len(refs))

	g, gctx := errgroup.WithContext(ctx)
	for i, ref := range refs {
		g.Go(func() error {
			mrs, err := e.enrichProject(gctx, ref)
			if err != nil {
				return err
			}
			perProject[i] = mrs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []model.MergeRequest
	for _, mrs := range perProject {
		all = append(all, mrs...)
	}
	return all, nil
}

func (e *Enricher) enrichProject(ctx context.Context, ref model.ProjectRef) ([]model.MergeRequest, error) {
	project, err := e.client.Project(ctx, ref.ID)
	if err != nil {
		return nil, err
	}
	project.Paths = append([]string(nil), ref.Paths...)

	mrs, err := e.client.MergeRequests(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	e.logger.Debug("enriching merge requests",
		slog.Int("project_id", project.ID),
		slog.String("project", project.Name),
		slog.Int("count", len(mrs)))

	enriched := make([]model.MergeRequest, len(mrs))
	g, gctx := errgroup.WithContext(ctx)
	for i, mr := range mrs {
		g.Go(func() error {
			r, err := e.enrichRequest(gctx, project, mr)
			if err != nil {
				return err
			}
			enriched[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return enriched, nil
}

// enrichRequest merges approvals, changes and discussions into mr, each step
// producing a new value.
func (e *Enricher) enrichRequest(ctx context.Context, project model.Project, mr model.MergeRequest) (model.MergeRequest, error) {
	approvals, err := e.client.Approvals(ctx, project.ID, mr.IID)
	if err != nil {
		return model.MergeRequest{}, err
	}
	withApprovals := mr.WithApprovals(approvals)

	changes, err := e.client.Changes(ctx, project.ID, mr.IID)
	if err != nil {
		return model.MergeRequest{}, err
	}
	withChanges := withApprovals.WithChanges(changes)

	discussions, err := e.client.Discussions(ctx, project.ID, mr.IID)
	if err != nil {
		return model.MergeRequest{}, err
	}

	return withChanges.WithDiscussions(discussions).WithProject(project), nil
}
