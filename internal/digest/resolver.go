package digest

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/umbrellio/gbot/internal/apperrors"
	"github.com/umbrellio/gbot/internal/model"
)

// ResolveProjects expands groups into their member projects and merges them
// with the explicitly configured ones. Explicit entries come first, so when
// both contribute the same id the explicit entry (and its path filters) wins.
// Groups are expanded concurrently; any failed lookup fails the resolution.
func ResolveProjects(ctx context.Context, lister GroupLister, explicit []model.ProjectRef, groups []model.Group) ([]model.ProjectRef, error) {
	if len(explicit) == 0 && len(groups) == 0 {
		return nil, apperrors.NewConfigurationError("resolve projects", apperrors.ErrNoProjects)
	}

	expanded := make([][]model.ProjectRef, len(groups))
	g, gctx := errgroup.WithContext(ctx)
	for i, group := range groups {
		g.Go(func() error {
			ids, err := lister.GroupProjects(gctx, group.ID)
			if err != nil {
				return fmt.Errorf("failed to expand group %d: %w", group.ID, err)
			}

			refs := make([]model.ProjectRef, 0, len(ids))
			for _, id := range ids {
				if !group.Excludes(id) {
					refs = append(refs, model.ProjectRef{ID: id})
				}
			}
			expanded[i] = refs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := append([]model.ProjectRef(nil), explicit...)
	for _, refs := range expanded {
		all = append(all, refs...)
	}
	return uniqueProjects(all), nil
}

// uniqueProjects keeps the first occurrence of every project id.
func uniqueProjects(refs []model.ProjectRef) []model.ProjectRef {
	seen := make(map[int]struct{}, len(refs))
	out := make([]model.ProjectRef, 0, len(refs))
	for _, ref := range refs {
		if _, ok := seen[ref.ID]; ok {
			continue
		}
		seen[ref.ID] = struct{}{}
		out = append(out, ref)
	}
	return out
}
