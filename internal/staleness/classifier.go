// Package staleness labels merge requests by how long they have gone
// without an update.
package staleness

import (
	"sort"
	"time"
)

// DefaultKey is the label table key holding the fallback label.
const DefaultKey = "default"

// Threshold pairs a minimum age with its label.
type Threshold struct {
	After time.Duration
	Label string
}

// Classifier maps an elapsed duration to a label.
type Classifier struct {
	thresholds []Threshold // sorted by After, descending
	fallback   string
}

// NewClassifier builds a classifier from a label table such as
// {"1h": "🟢", "1d": "🟡", "default": "⚪"}.
func NewClassifier(labels map[string]string) *Classifier {
	c := &Classifier{}

	for key, label := range labels {
		if key == DefaultKey {
			c.fallback = label
			continue
		}
		c.thresholds = append(c.thresholds, Threshold{After: ParseInterval(key), Label: label})
	}

	sort.Slice(c.thresholds, func(i, j int) bool {
		if c.thresholds[i].After != c.thresholds[j].After {
			return c.thresholds[i].After > c.thresholds[j].After
		}
		return c.thresholds[i].Label < c.thresholds[j].Label
	})

	return c
}

// Classify returns the label of the largest threshold strictly below
// elapsed, or the fallback label when none qualifies.
func (c *Classifier) Classify(elapsed time.Duration) string {
	for _, th := range c.thresholds {
		if th.After < elapsed {
			return th.Label
		}
	}
	return c.fallback
}

// Thresholds returns the thresholds in evaluation order.
func (c *Classifier) Thresholds() []Threshold {
	return append([]Threshold(nil), c.thresholds...)
}
