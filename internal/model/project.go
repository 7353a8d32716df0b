package model

// ProjectRef identifies a project to scan, optionally restricted to changes
// under a set of path globs.
type ProjectRef struct {
	ID    int
	Paths []string
}

// Group is a configured group whose member projects are scanned, minus the
// excluded project ids.
type Group struct {
	ID       int
	Excluded []int
}

// Excludes reports whether the project id is excluded from the group.
func (g Group) Excludes(projectID int) bool {
	for _, id := range g.Excluded {
		if id == projectID {
			return true
		}
	}
	return false
}

// Project is a resolved project. It is never modified after resolution.
type Project struct {
	ID     int
	Name   string
	WebURL string
	Paths  []string // path globs restricting which changes count; empty = all
}
