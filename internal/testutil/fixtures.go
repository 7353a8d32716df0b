// Package testutil builds merge request fixtures for tests.
package testutil

import (
	"fmt"
	"time"

	"github.com/umbrellio/gbot/internal/model"
)

// Now is the reference clock used by fixtures.
var Now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// Clock returns a function reporting Now.
func Clock() func() time.Time {
	return func() time.Time { return Now }
}

// NewProject returns a project with a predictable name and URL.
func NewProject(id int, paths ...string) model.Project {
	return model.Project{
		ID:     id,
		Name:   fmt.Sprintf("project-%d", id),
		WebURL: fmt.Sprintf("https://gitlab.example.com/group/project-%d", id),
		Paths:  paths,
	}
}

// NewMergeRequest returns a request as listed by the API, before enrichment.
// It was last updated age before Now.
func NewMergeRequest(iid int, author string, age time.Duration) model.MergeRequest {
	return model.MergeRequest{
		IID:       iid,
		Title:     fmt.Sprintf("Request %d", iid),
		WebURL:    fmt.Sprintf("https://gitlab.example.com/group/project/-/merge_requests/%d", iid),
		UpdatedAt: Now.Add(-age),
		Author:    model.User{Username: author},
	}
}

// Enrich returns a fully enriched copy of r.
func Enrich(r model.MergeRequest, project model.Project, approvals model.Approvals, changes []model.Change, discussions []model.Discussion) model.MergeRequest {
	return r.WithApprovals(approvals).
		WithChanges(changes).
		WithDiscussions(discussions).
		WithProject(project)
}

// AwaitingApproval returns an enriched request that still needs approvals
// and has nothing else going on.
func AwaitingApproval(iid int, author string, age time.Duration, project model.Project) model.MergeRequest {
	return Enrich(NewMergeRequest(iid, author, age), project,
		model.Approvals{ApprovalsLeft: 1}, []model.Change{Change("app/main.go", 1, 0)}, nil)
}

// Users builds users from usernames.
func Users(usernames ...string) []model.User {
	users := make([]model.User, len(usernames))
	for i, u := range usernames {
		users[i] = model.User{Username: u}
	}
	return users
}

// Thread returns a discussion whose notes are written by authors in order.
// Every note is resolvable and the thread is resolved when resolved is set.
func Thread(resolved bool, authors ...string) model.Discussion {
	notes := make([]model.Note, len(authors))
	for i, a := range authors {
		notes[i] = model.Note{Author: model.User{Username: a}, Resolvable: true, Resolved: resolved}
	}
	return model.Discussion{Notes: notes}
}

// Change returns a modification of path with the given numbers of added and
// removed lines.
func Change(path string, added, removed int) model.Change {
	diff := "@@ -1 +1 @@"
	for range added {
		diff += "\n+added"
	}
	for range removed {
		diff += "\n-removed"
	}
	return model.Change{OldPath: path, NewPath: path, Diff: diff}
}
