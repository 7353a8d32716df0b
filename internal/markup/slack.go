package markup

import (
	"fmt"
	"strings"

	"github.com/slack-go/slack"
)

// SlackMaxBlocks is the number of blocks Slack accepts in one message.
const SlackMaxBlocks = 50

// Slack renders Block Kit blocks.
type Slack struct{}

var _ Markup = Slack{}

func (Slack) Name() string { return DialectSlack }

func (Slack) Link(title, url string) string {
	return fmt.Sprintf("<%s|%s>", url, title)
}

func (Slack) Bold(content string) string {
	return "*" + content + "*"
}

func (Slack) Inert(content string) string {
	return "`" + content + "`"
}

func (Slack) Mention(username string, mentions map[string]string) string {
	if id, ok := lookupMention(username, mentions); ok {
		return "<@" + id + ">"
	}
	return "@" + username
}

func (Slack) Header(text string) Fragment {
	header := slack.NewHeaderBlock(slack.NewTextBlockObject(slack.PlainTextType, text, true, false))
	return Fragment{Blocks: []slack.Block{header}}
}

func (Slack) Text(text string, withMentions bool) Fragment {
	return Fragment{Blocks: []slack.Block{section(text, withMentions)}}
}

func (Slack) PrimaryInfo(parts ...string) string {
	return strings.Join(compact(parts), " ")
}

func (Slack) AdditionalInfo(lines ...string) string {
	return strings.Join(compact(lines), "\n")
}

// ComposeBody renders the primary line as a section and the secondary lines
// as a context block underneath.
func (Slack) ComposeBody(primary, secondary string, withMentions bool) Fragment {
	blocks := []slack.Block{section(primary, withMentions)}
	if secondary != "" {
		text := slack.NewTextBlockObject(slack.MarkdownType, secondary, false, !withMentions)
		blocks = append(blocks, slack.NewContextBlock("", text))
	}
	return Fragment{Blocks: blocks}
}

func (Slack) AddDivider(f Fragment) Fragment {
	blocks := append(append([]slack.Block(nil), f.Blocks...), slack.NewDividerBlock())
	return Fragment{Blocks: blocks}
}

func (Slack) Join(fragments ...Fragment) Fragment {
	var blocks []slack.Block
	for _, f := range fragments {
		blocks = append(blocks, f.Blocks...)
	}
	return Fragment{Blocks: blocks}
}

func (Slack) ComposeMsg(header, body Fragment) Message {
	blocks := make([]slack.Block, 0, len(header.Blocks)+len(body.Blocks))
	blocks = append(blocks, header.Blocks...)
	blocks = append(blocks, body.Blocks...)
	return Message{Blocks: blocks}
}

func (Slack) MaxBlocks() int { return SlackMaxBlocks }

func section(text string, withMentions bool) *slack.SectionBlock {
	obj := slack.NewTextBlockObject(slack.MarkdownType, text, false, !withMentions)
	return slack.NewSectionBlock(obj, nil, nil)
}
