package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/umbrellio/gbot/internal/digest"
)

// Review progress icons
const (
	IconToReview    = "●"
	IconUnderReview = "◐"
	IconConflicted  = "✗"
)

// Status is a review bucket with rendering capabilities
type Status struct {
	Icon  string
	Label string
	Style lipgloss.Style
}

// GetStatus returns the Status of a review bucket
func GetStatus(bucket digest.Bucket) Status {
	switch bucket {
	case digest.BucketUnderReview:
		return Status{Icon: IconUnderReview, Label: "Under review", Style: UnderReviewStyle}
	case digest.BucketConflicted:
		return Status{Icon: IconConflicted, Label: "Has conflicts", Style: ConflictedStyle}
	default:
		return Status{Icon: IconToReview, Label: "Waiting for review", Style: ToReviewStyle}
	}
}

// Render renders the status with icon and label
func (s Status) Render() string {
	return s.Style.Render(s.Icon + " " + s.Label)
}

// RenderCompact renders just the icon
func (s Status) RenderCompact() string {
	return s.Style.Render(s.Icon)
}
