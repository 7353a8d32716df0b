package digest

import (
	"strings"

	"github.com/umbrellio/gbot/internal/model"
)

// DiffStat sums inserted and deleted lines across unified diffs. The first
// line of every diff is its hunk header and is skipped.
func DiffStat(changes []model.Change) (insertions, deletions int) {
	for _, change := range changes {
		lines := strings.Split(change.Diff, "\n")
		for _, line := range lines[1:] {
			switch {
			case strings.HasPrefix(line, "+"):
				insertions++
			case strings.HasPrefix(line, "-"):
				deletions++
			}
		}
	}
	return insertions, deletions
}
