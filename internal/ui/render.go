package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/umbrellio/gbot/internal/markup"
	"github.com/umbrellio/gbot/internal/model"
)

// RenderProjectList renders resolved projects as a table
func RenderProjectList(projects []model.Project) string {
	if len(projects) == 0 {
		return RenderNoProjectsMessage()
	}

	t := NewTable().Headers("ID", "Project", "Paths", "URL")
	for _, p := range projects {
		t.Row(
			strconv.Itoa(p.ID),
			Truncate(p.Name, Display.MaxProjectNameLength),
			FormatPaths(p.Paths),
			p.WebURL,
		)
	}

	noun := "project"
	if len(projects) != 1 {
		noun = "projects"
	}
	return t.Render() + "\n" + Dim(fmt.Sprintf("%d %s will be scanned", len(projects), noun))
}

// RenderNoProjectsMessage explains how to configure projects
func RenderNoProjectsMessage() string {
	return RenderPanel(
		Dim("No projects configured.\n") +
			Muted("Add ") + Highlight("gitlab.projects") + Muted(" or ") + Highlight("gitlab.groups") +
			Muted(" to your config."),
	)
}

// RenderDigestPreview renders the messages a digest run would send, one box
// per message
func RenderDigestPreview(msgs []markup.Message) string {
	var out strings.Builder

	for i, msg := range msgs {
		title := ""
		if len(msgs) > 1 {
			title = fmt.Sprintf("Message %d of %d", i+1, len(msgs))
		}
		out.WriteString(RenderBox(title, renderOutline(markup.Outline(msg))))
		out.WriteString("\n")
	}

	return out.String()
}

func renderOutline(lines []markup.Line) string {
	width := min(GetTerminalWidth()-6, Display.DefaultTerminalWidth)

	rendered := make([]string, 0, len(lines))
	for _, line := range lines {
		switch line.Kind {
		case markup.LineHeader:
			rendered = append(rendered, DigestHeaderStyle.Render(line.Text))
		case markup.LineContext:
			rendered = append(rendered, DigestContextStyle.Render(line.Text))
		case markup.LineDivider:
			rendered = append(rendered, RenderSeparator(width))
		default:
			rendered = append(rendered, line.Text)
		}
	}
	return strings.Join(rendered, "\n")
}

// RenderRunSummary renders the counts of a digest run
func RenderRunSummary(projects, requests, eligible, messages int) string {
	return strings.Join([]string{
		RenderKeyValue("Projects", strconv.Itoa(projects)),
		RenderKeyValue("Open requests", strconv.Itoa(requests)),
		RenderKeyValue("Awaiting action", Bold(strconv.Itoa(eligible))),
		RenderKeyValue("Messages", strconv.Itoa(messages)),
	}, "\n")
}
