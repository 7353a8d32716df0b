package digest

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/umbrellio/gbot/internal/apperrors"
	"github.com/umbrellio/gbot/internal/model"
)

// Bucket is the review-progress section a request is rendered under.
type Bucket int

const (
	BucketToReview Bucket = iota
	BucketUnderReview
	BucketConflicted
)

// Buckets lists the buckets in rendering order.
var Buckets = []Bucket{BucketToReview, BucketUnderReview, BucketConflicted}

func (b Bucket) String() string {
	switch b {
	case BucketToReview:
		return "to-review"
	case BucketUnderReview:
		return "under-review"
	case BucketConflicted:
		return "conflicted"
	default:
		return fmt.Sprintf("bucket(%d)", int(b))
	}
}

// FilterOptions tunes the applicability policy.
type FilterOptions struct {
	CheckConflicts bool
}

// Candidate is a request that belongs in the digest.
type Candidate struct {
	Request model.MergeRequest
	Bucket  Bucket
}

// MatchesPaths reports whether any change of r touches a path matching one of
// its project's path globs. A project without globs matches everything.
func MatchesPaths(r model.MergeRequest) bool {
	if len(r.Project.Paths) == 0 {
		return true
	}
	for _, change := range r.Changes {
		for _, path := range change.Paths() {
			for _, pattern := range r.Project.Paths {
				if ok, err := doublestar.Match(pattern, path); err == nil && ok {
					return true
				}
			}
		}
	}
	return false
}

// Classify decides whether r belongs in the digest and under which bucket.
// Unresolved discussions take precedence over missing approvals, which take
// precedence over conflicts.
func Classify(r model.MergeRequest, opts FilterOptions) (Bucket, bool) {
	if r.WorkInProgress || !MatchesPaths(r) {
		return 0, false
	}

	switch {
	case r.HasUnresolvedDiscussions():
		return BucketUnderReview, true
	case r.ApprovalsLeft > 0:
		return BucketToReview, true
	case opts.CheckConflicts && r.HasConflicts:
		return BucketConflicted, true
	default:
		return 0, false
	}
}

// Filter keeps the eligible requests, in input order. Every request must be
// fully enriched.
func Filter(requests []model.MergeRequest, opts FilterOptions) ([]Candidate, error) {
	var out []Candidate
	for _, r := range requests {
		if !r.IsEnriched() {
			return nil, &apperrors.UnexpectedError{
				Err: fmt.Errorf("merge request !%d of project %d reached filtering without enrichment", r.IID, r.Project.ID),
			}
		}
		if bucket, ok := Classify(r, opts); ok {
			out = append(out, Candidate{Request: r, Bucket: bucket})
		}
	}
	return out, nil
}
