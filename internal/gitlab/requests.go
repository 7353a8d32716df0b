package gitlab

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/umbrellio/gbot/internal/model"
)

// GroupProjects returns the ids of every project in a group.
func (c *Client) GroupProjects(ctx context.Context, groupID int) ([]int, error) {
	glProjects, err := getPaginated[gitlabProject](ctx, c, c.endpoint("groups", groupID, "projects"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects of group %d: %w", groupID, err)
	}

	ids := make([]int, len(glProjects))
	for i, p := range glProjects {
		ids[i] = p.ID
	}
	return ids, nil
}

// Project returns a single project.
func (c *Client) Project(ctx context.Context, projectID int) (model.Project, error) {
	var glp gitlabProject
	if _, err := c.doRequest(ctx, c.endpoint("projects", projectID), nil, &glp); err != nil {
		return model.Project{}, fmt.Errorf("failed to get project %d: %w", projectID, err)
	}

	return model.Project{ID: glp.ID, Name: glp.Name, WebURL: glp.WebURL}, nil
}

// MergeRequests returns every open, non-draft merge request of a project,
// oldest first.
func (c *Client) MergeRequests(ctx context.Context, projectID int) ([]model.MergeRequest, error) {
	query := url.Values{
		"state": {"opened"},
		"scope": {"all"},
		"wip":   {"no"},
		"sort":  {"asc"},
	}

	glMRs, err := getPaginated[gitlabMergeRequest](ctx, c, c.endpoint("projects", projectID, "merge_requests"), query)
	if err != nil {
		return nil, fmt.Errorf("failed to list merge requests of project %d: %w", projectID, err)
	}

	mrs := make([]model.MergeRequest, len(glMRs))
	for i, glmr := range glMRs {
		mrs[i] = glmr.toModel()
	}
	return mrs, nil
}

// Approvals returns the approval state of a merge request.
func (c *Client) Approvals(ctx context.Context, projectID, iid int) (model.Approvals, error) {
	var gla gitlabApprovals
	if _, err := c.doRequest(ctx, c.endpoint("projects", projectID, "merge_requests", iid, "approvals"), nil, &gla); err != nil {
		return model.Approvals{}, fmt.Errorf("failed to get approvals of !%d in project %d: %w", iid, projectID, err)
	}

	approvedBy := make([]model.User, len(gla.ApprovedBy))
	for i, a := range gla.ApprovedBy {
		approvedBy[i] = model.User{Username: a.User.Username}
	}
	return model.Approvals{ApprovalsLeft: gla.ApprovalsLeft, ApprovedBy: approvedBy}, nil
}

// Changes returns the file changes of a merge request.
func (c *Client) Changes(ctx context.Context, projectID, iid int) ([]model.Change, error) {
	var glc gitlabChanges
	if _, err := c.doRequest(ctx, c.endpoint("projects", projectID, "merge_requests", iid, "changes"), nil, &glc); err != nil {
		return nil, fmt.Errorf("failed to get changes of !%d in project %d: %w", iid, projectID, err)
	}

	changes := make([]model.Change, len(glc.Changes))
	for i, ch := range glc.Changes {
		changes[i] = model.Change{OldPath: ch.OldPath, NewPath: ch.NewPath, Diff: ch.Diff}
	}
	return changes, nil
}

// Discussions returns every discussion thread of a merge request.
func (c *Client) Discussions(ctx context.Context, projectID, iid int) ([]model.Discussion, error) {
	glds, err := getPaginated[gitlabDiscussion](ctx, c, c.endpoint("projects", projectID, "merge_requests", iid, "discussions"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get discussions of !%d in project %d: %w", iid, projectID, err)
	}

	discussions := make([]model.Discussion, len(glds))
	for i, gld := range glds {
		notes := make([]model.Note, len(gld.Notes))
		for j, n := range gld.Notes {
			notes[j] = model.Note{
				Author:     model.User{Username: n.Author.Username},
				Resolvable: n.Resolvable,
				Resolved:   n.Resolved,
			}
		}
		discussions[i] = model.Discussion{Notes: notes}
	}
	return discussions, nil
}

// GitLab API response types
type gitlabUser struct {
	Username string `json:"username"`
}

type gitlabProject struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	WebURL string `json:"web_url"`
}

type gitlabMergeRequest struct {
	IID            int        `json:"iid"`
	Title          string     `json:"title"`
	WebURL         string     `json:"web_url"`
	UpdatedAt      time.Time  `json:"updated_at"`
	WorkInProgress bool       `json:"work_in_progress"`
	Draft          bool       `json:"draft"`
	HasConflicts   bool       `json:"has_conflicts"`
	Author         gitlabUser `json:"author"`
}

func (m gitlabMergeRequest) toModel() model.MergeRequest {
	return model.MergeRequest{
		IID:            m.IID,
		Title:          m.Title,
		WebURL:         m.WebURL,
		UpdatedAt:      m.UpdatedAt,
		WorkInProgress: m.WorkInProgress || m.Draft,
		HasConflicts:   m.HasConflicts,
		Author:         model.User{Username: m.Author.Username},
	}
}

type gitlabApprovals struct {
	ApprovalsLeft int `json:"approvals_left"`
	ApprovedBy    []struct {
		User gitlabUser `json:"user"`
	} `json:"approved_by"`
}

type gitlabChanges struct {
	Changes []struct {
		OldPath string `json:"old_path"`
		NewPath string `json:"new_path"`
		Diff    string `json:"diff"`
	} `json:"changes"`
}

type gitlabDiscussion struct {
	ID    string `json:"id"`
	Notes []struct {
		Author     gitlabUser `json:"author"`
		Resolvable bool       `json:"resolvable"`
		Resolved   bool       `json:"resolved"`
	} `json:"notes"`
}
