package markup

import (
	"fmt"
	"strings"
)

// Markdown renders flat markdown text, as accepted by Mattermost and most
// incoming-webhook endpoints.
type Markdown struct{}

var _ Markup = Markdown{}

func (Markdown) Name() string { return DialectMarkdown }

func (Markdown) Link(title, url string) string {
	return fmt.Sprintf("[%s](%s)", title, url)
}

func (Markdown) Bold(content string) string {
	return "**" + content + "**"
}

func (Markdown) Inert(content string) string {
	return "`" + content + "`"
}

func (Markdown) Mention(username string, mentions map[string]string) string {
	if id, ok := lookupMention(username, mentions); ok {
		return "@" + id
	}
	return "@" + username
}

func (Markdown) Header(text string) Fragment {
	return Fragment{Text: "#### " + text}
}

func (Markdown) Text(text string, _ bool) Fragment {
	return Fragment{Text: text}
}

func (Markdown) PrimaryInfo(parts ...string) string {
	return strings.Join(compact(parts), " ")
}

func (Markdown) AdditionalInfo(lines ...string) string {
	return strings.Join(compact(lines), "\n")
}

func (Markdown) ComposeBody(primary, secondary string, _ bool) Fragment {
	if secondary == "" {
		return Fragment{Text: primary}
	}
	return Fragment{Text: primary + "\n" + secondary}
}

func (Markdown) AddDivider(f Fragment) Fragment {
	return Fragment{Text: f.Text + " \n"}
}

func (Markdown) Join(fragments ...Fragment) Fragment {
	texts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if f.Text != "" {
			texts = append(texts, f.Text)
		}
	}
	return Fragment{Text: strings.Join(texts, "\n")}
}

func (Markdown) ComposeMsg(header, body Fragment) Message {
	if header.Text == "" {
		return Message{Text: body.Text}
	}
	return Message{Text: header.Text + "\n\n" + body.Text}
}

func (Markdown) MaxBlocks() int { return 0 }
