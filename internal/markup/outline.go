package markup

import (
	"strings"

	"github.com/slack-go/slack"
)

// LineKind tells a preview how to style an outline line.
type LineKind int

const (
	LineText LineKind = iota
	LineHeader
	LineContext
	LineDivider
)

// Line is one visible line of a message.
type Line struct {
	Kind LineKind
	Text string
}

// Outline flattens a message of either dialect into visible lines.
func Outline(m Message) []Line {
	if len(m.Blocks) == 0 {
		return outlineText(m.Text)
	}

	var lines []Line
	for _, block := range m.Blocks {
		switch b := block.(type) {
		case *slack.HeaderBlock:
			if b.Text != nil {
				lines = append(lines, Line{Kind: LineHeader, Text: b.Text.Text})
			}
		case *slack.SectionBlock:
			if b.Text != nil {
				for _, l := range strings.Split(b.Text.Text, "\n") {
					lines = append(lines, Line{Kind: LineText, Text: l})
				}
			}
		case *slack.ContextBlock:
			for _, el := range b.ContextElements.Elements {
				if text, ok := el.(*slack.TextBlockObject); ok {
					for _, l := range strings.Split(text.Text, "\n") {
						lines = append(lines, Line{Kind: LineContext, Text: l})
					}
				}
			}
		case *slack.DividerBlock:
			lines = append(lines, Line{Kind: LineDivider})
		}
	}
	return lines
}

func outlineText(text string) []Line {
	var lines []Line
	for _, l := range strings.Split(text, "\n") {
		switch {
		case strings.HasPrefix(l, "#### "):
			lines = append(lines, Line{Kind: LineHeader, Text: strings.TrimPrefix(l, "#### ")})
		case strings.TrimSpace(l) == "":
			continue
		default:
			lines = append(lines, Line{Kind: LineText, Text: strings.TrimRight(l, " ")})
		}
	}
	return lines
}
