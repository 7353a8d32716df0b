package ui

import (
	"errors"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/umbrellio/gbot/internal/model"
)

func init() {
	// Force lipgloss to detect the terminal before the fuzzy finder takes it
	// over, otherwise escape sequences leak into the finder input.
	_ = lipgloss.NewStyle().Render("")
	_ = lipgloss.HasDarkBackground()
}

// SelectProject presents a fuzzy finder over projects.
// Returns nil if the user cancelled the selection.
func SelectProject(projects []model.Project) (*model.Project, error) {
	os.Stdout.Sync()
	os.Stderr.Sync()

	idx, err := fuzzyfinder.Find(
		projects,
		func(i int) string {
			return FormatProjectFinderLine(projects[i])
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return FormatProjectPreview(projects[i])
		}),
	)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &projects[idx], nil
}
