package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/umbrellio/gbot/internal/model"
)

// Truncate truncates text to maxLen with an ellipsis if needed
// Uses lipgloss for proper ANSI-aware width handling
func Truncate(text string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	width := lipgloss.Width(text)
	if width <= maxLen {
		return text
	}

	if maxLen <= 3 {
		return lipgloss.NewStyle().MaxWidth(maxLen).Render(text)
	}

	return lipgloss.NewStyle().MaxWidth(maxLen-3).Render(text) + "..."
}

func RenderBox(title string, content string) string {
	style := BoxStyle
	if title != "" {
		style = style.BorderForeground(ColorPrimary)
		titleStyled := lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Render(title)

		combined := lipgloss.JoinVertical(lipgloss.Left, titleStyled, "", content)
		return style.Render(combined)
	}
	return style.Render(content)
}

func RenderPanel(content string) string {
	return PanelStyle.Render(content)
}

// RenderBulletList renders a list with bullets
func RenderBulletList(items []string) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, DimStyle.Render("  • ")+item)
	}
	return strings.Join(lines, "\n")
}

// RenderSeparator renders a horizontal separator line
func RenderSeparator(width int) string {
	if width <= 0 {
		width = GetTerminalWidth()
	}
	return DimStyle.Render(strings.Repeat("─", width))
}

func RenderKeyValue(key string, value string) string {
	keyStyled := DimStyle.Render(key + ":")
	return fmt.Sprintf("%s %s", keyStyled, value)
}

// FormatAge renders a duration the way people say it: 45s, 5m, 3h, 2d.
func FormatAge(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd", int(d.Hours()/24))
	}
}

// FormatPaths renders a project's path filters, or "all paths" when there
// are none.
func FormatPaths(paths []string) string {
	if len(paths) == 0 {
		return "all paths"
	}
	return strings.Join(paths, ", ")
}

// FormatProjectFinderLine formats a project for display in fuzzy finder.
// Fuzzy finder doesn't support ANSI codes, so we use plain text.
func FormatProjectFinderLine(p model.Project) string {
	name := p.Name
	if len(name) > Display.MaxProjectNameLength {
		name = name[:Display.MaxProjectNameLength-3] + "..."
	}
	return fmt.Sprintf("%-8d %-*s  │  %s", p.ID, Display.MaxProjectNameLength, name, FormatPaths(p.Paths))
}

// FormatProjectPreview formats a project for the fuzzy finder preview window.
// Preview pane supports ANSI codes, so we can use styling.
func FormatProjectPreview(p model.Project) string {
	lines := []string{
		RenderKeyValue("Project", Bold(p.Name)),
		RenderKeyValue("ID", fmt.Sprintf("%d", p.ID)),
		RenderKeyValue("URL", Highlight(p.WebURL)),
	}

	if len(p.Paths) == 0 {
		lines = append(lines, RenderKeyValue("Paths", Muted(FormatPaths(nil))))
	} else {
		lines = append(lines, "", Bold("Paths:"), RenderBulletList(p.Paths))
	}

	return strings.Join(lines, "\n")
}
