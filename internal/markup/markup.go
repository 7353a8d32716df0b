// Package markup renders digest content in one of the supported chat
// dialects.
package markup

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/slack-go/slack"
)

// Supported dialects.
const (
	DialectMarkdown = "markdown"
	DialectSlack    = "slack"
)

// Fragment is a rendered piece of a message. Markdown fragments carry Text,
// block fragments carry Blocks.
type Fragment struct {
	Text   string
	Blocks []slack.Block
}

// Message is a complete chat message ready for dispatch.
type Message struct {
	Text   string
	Blocks []slack.Block
}

// String renders the message for logs.
func (m Message) String() string {
	if len(m.Blocks) == 0 {
		return m.Text
	}
	data, err := json.Marshal(slack.Blocks{BlockSet: m.Blocks})
	if err != nil {
		return fmt.Sprintf("<%d blocks>", len(m.Blocks))
	}
	return string(data)
}

// Markup is the set of rendering operations shared by all dialects.
type Markup interface {
	// Name returns the dialect name.
	Name() string

	Link(title, url string) string
	Bold(content string) string
	// Inert renders content so that it can't notify anyone.
	Inert(content string) string
	// Mention renders a notifying reference to username, translated through
	// the username -> chat id table when present.
	Mention(username string, mentions map[string]string) string

	Header(text string) Fragment
	Text(text string, withMentions bool) Fragment

	// PrimaryInfo joins the non-empty parts of the main line.
	PrimaryInfo(parts ...string) string
	// AdditionalInfo joins the non-empty secondary lines.
	AdditionalInfo(lines ...string) string
	ComposeBody(primary, secondary string, withMentions bool) Fragment

	AddDivider(f Fragment) Fragment
	Join(fragments ...Fragment) Fragment
	// ComposeMsg builds a message from a header and a body. An empty header
	// is omitted.
	ComposeMsg(header, body Fragment) Message
	// MaxBlocks is the block limit of one message; 0 means unlimited.
	MaxBlocks() int
}

// New returns the Markup for a dialect name.
func New(dialect string) (Markup, error) {
	switch dialect {
	case DialectMarkdown, "":
		return Markdown{}, nil
	case DialectSlack:
		return Slack{}, nil
	default:
		return nil, fmt.Errorf("unknown markup dialect %q", dialect)
	}
}

func lookupMention(username string, mentions map[string]string) (string, bool) {
	if id, ok := mentions[username]; ok && id != "" {
		return id, true
	}
	if id, ok := mentions[strings.ToLower(username)]; ok && id != "" {
		return id, true
	}
	return "", false
}

func compact(parts []string) []string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
