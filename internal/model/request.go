package model

import "time"

// User is a source-control account referenced by username.
type User struct {
	Username string
}

// Note is a single comment inside a discussion.
type Note struct {
	Author     User
	Resolvable bool
	Resolved   bool
}

// Discussion is an ordered thread of notes.
type Discussion struct {
	Notes []Note
}

// IsUnresolved reports whether at least one note still awaits resolution.
func (d Discussion) IsUnresolved() bool {
	for _, n := range d.Notes {
		if n.Resolvable && !n.Resolved {
			return true
		}
	}
	return false
}

// Approvals is the approval state of a merge request.
type Approvals struct {
	ApprovalsLeft int
	ApprovedBy    []User
}

// MergeRequest is an open merge request together with the data gathered
// during enrichment. The With* methods return copies; a MergeRequest is never
// modified in place once it leaves the API client.
type MergeRequest struct {
	IID            int
	Title          string
	WebURL         string
	UpdatedAt      time.Time
	WorkInProgress bool
	HasConflicts   bool
	Author         User

	ApprovalsLeft int
	ApprovedBy    []User
	Changes       []Change
	Discussions   []Discussion
	Project       Project

	enriched enrichment
}

type enrichment uint8

const (
	enrichedApprovals enrichment = 1 << iota
	enrichedChanges
	enrichedDiscussions
	enrichedProject

	enrichedAll = enrichedApprovals | enrichedChanges | enrichedDiscussions | enrichedProject
)

// WithApprovals returns a copy of r carrying the given approval state.
func (r MergeRequest) WithApprovals(a Approvals) MergeRequest {
	r.ApprovalsLeft = a.ApprovalsLeft
	r.ApprovedBy = a.ApprovedBy
	r.enriched |= enrichedApprovals
	return r
}

// WithChanges returns a copy of r carrying the given file changes.
func (r MergeRequest) WithChanges(changes []Change) MergeRequest {
	r.Changes = changes
	r.enriched |= enrichedChanges
	return r
}

// WithDiscussions returns a copy of r carrying the given discussions.
func (r MergeRequest) WithDiscussions(discussions []Discussion) MergeRequest {
	r.Discussions = discussions
	r.enriched |= enrichedDiscussions
	return r
}

// WithProject returns a copy of r owned by the given project.
func (r MergeRequest) WithProject(p Project) MergeRequest {
	r.Project = p
	r.enriched |= enrichedProject
	return r
}

// IsEnriched reports whether approvals, changes, discussions and the owning
// project have all been merged in.
func (r MergeRequest) IsEnriched() bool {
	return r.enriched&enrichedAll == enrichedAll
}

// HasUnresolvedDiscussions reports whether any discussion is unresolved.
func (r MergeRequest) HasUnresolvedDiscussions() bool {
	for _, d := range r.Discussions {
		if d.IsUnresolved() {
			return true
		}
	}
	return false
}

// UnresolvedDiscussions returns the unresolved discussions in order.
func (r MergeRequest) UnresolvedDiscussions() []Discussion {
	var out []Discussion
	for _, d := range r.Discussions {
		if d.IsUnresolved() {
			out = append(out, d)
		}
	}
	return out
}
