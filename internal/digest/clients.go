package digest

import (
	"context"

	"github.com/umbrellio/gbot/internal/markup"
	"github.com/umbrellio/gbot/internal/model"
)

// GroupLister lists the member projects of a group.
type GroupLister interface {
	GroupProjects(ctx context.Context, groupID int) ([]int, error)
}

// SourceControl defines the source-control operations the digest needs.
type SourceControl interface {
	GroupLister
	Project(ctx context.Context, projectID int) (model.Project, error)
	MergeRequests(ctx context.Context, projectID int) ([]model.MergeRequest, error)
	Approvals(ctx context.Context, projectID, iid int) (model.Approvals, error)
	Changes(ctx context.Context, projectID, iid int) ([]model.Change, error)
	Discussions(ctx context.Context, projectID, iid int) ([]model.Discussion, error)
}

// Messenger delivers rendered messages in order.
type Messenger interface {
	SendMany(ctx context.Context, msgs []markup.Message) error
}
