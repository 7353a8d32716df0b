package digest

import (
	"github.com/umbrellio/gbot/internal/markup"
)

const (
	digestHeader  = "Hey, there are a couple of requests waiting for your review"
	nothingHeader = "Hey, there is a couple of nothing"
	nothingBody   = "There are no pending requests! Let's do a new one!"
)

var sectionTitles = map[Bucket]string{
	BucketToReview:    "Waiting for review",
	BucketUnderReview: "Under review",
	BucketConflicted:  "Has conflicts",
}

// RenderOptions controls the layout of the digest.
type RenderOptions struct {
	SplitByReviewProgress bool
	// RequestsPerMessage caps the requests in one message; <= 0 means no cap.
	// The block limit of the dialect applies either way.
	RequestsPerMessage int
}

// Renderer turns sorted candidates into chat messages.
type Renderer struct {
	markup      markup.Markup
	description *DescriptionBuilder
	opts        RenderOptions
}

// NewRenderer creates a Renderer.
func NewRenderer(m markup.Markup, description *DescriptionBuilder, opts RenderOptions) *Renderer {
	return &Renderer{markup: m, description: description, opts: opts}
}

// Render builds the digest messages. Only the first message carries the
// digest header.
func (r *Renderer) Render(candidates []Candidate) []markup.Message {
	m := r.markup

	if len(candidates) == 0 {
		return []markup.Message{m.ComposeMsg(m.Header(nothingHeader), m.Text(nothingBody, false))}
	}

	if r.opts.SplitByReviewProgress {
		return r.renderSections(candidates)
	}

	reserved := func(run int) int { return len(r.header(run).Blocks) }
	var msgs []markup.Message
	for i, run := range pack(r.describe(candidates), r.opts.RequestsPerMessage, m.MaxBlocks(), reserved) {
		msgs = append(msgs, m.ComposeMsg(r.header(i), m.Join(run...)))
	}
	return msgs
}

func (r *Renderer) renderSections(candidates []Candidate) []markup.Message {
	m := r.markup

	type section struct {
		title string
		items []markup.Fragment
	}

	var sections []section
	for _, bucket := range Buckets {
		var inBucket []Candidate
		for _, c := range candidates {
			if c.Bucket == bucket {
				inBucket = append(inBucket, c)
			}
		}
		if len(inBucket) > 0 {
			sections = append(sections, section{title: sectionTitles[bucket], items: r.describe(inBucket)})
		}
	}

	limit := m.MaxBlocks()
	if r.opts.RequestsPerMessage <= 0 {
		parts := make([]markup.Fragment, 0, len(sections))
		for i, s := range sections {
			body := m.Join(append([]markup.Fragment{m.Header(s.title)}, s.items...)...)
			if i < len(sections)-1 {
				body = m.AddDivider(body)
			}
			parts = append(parts, body)
		}
		msg := m.ComposeMsg(m.Header(digestHeader), m.Join(parts...))
		if limit <= 0 || len(msg.Blocks) <= limit {
			return []markup.Message{msg}
		}
	}

	// Chunked sections drop the dividers; every section opens a new message.
	var msgs []markup.Message
	for _, s := range sections {
		title := m.Header(s.title)
		first := len(msgs)
		reserved := func(run int) int {
			n := len(r.header(first + run).Blocks)
			if run == 0 {
				n += len(title.Blocks)
			}
			return n
		}
		for j, run := range pack(s.items, r.opts.RequestsPerMessage, limit, reserved) {
			body := m.Join(run...)
			if j == 0 {
				body = m.Join(title, body)
			}
			msgs = append(msgs, m.ComposeMsg(r.header(len(msgs)), body))
		}
	}
	return msgs
}

func (r *Renderer) header(messageIndex int) markup.Fragment {
	if messageIndex == 0 {
		return r.markup.Header(digestHeader)
	}
	return markup.Fragment{}
}

func (r *Renderer) describe(candidates []Candidate) []markup.Fragment {
	items := make([]markup.Fragment, len(candidates))
	for i, c := range candidates {
		items[i] = r.description.Build(c.Request)
	}
	return items
}

// pack splits items into runs of at most size items whose blocks, together
// with the reserved header blocks of the run, fit in limit. A bound <= 0 is
// ignored. An item too large for any run still gets one of its own.
func pack(items []markup.Fragment, size, limit int, reserved func(run int) int) [][]markup.Fragment {
	var runs [][]markup.Fragment
	var cur []markup.Fragment
	blocks := 0
	for _, item := range items {
		full := size > 0 && len(cur) >= size
		over := limit > 0 && blocks+len(item.Blocks)+reserved(len(runs)) > limit
		if len(cur) > 0 && (full || over) {
			runs = append(runs, cur)
			cur, blocks = nil, 0
		}
		cur = append(cur, item)
		blocks += len(item.Blocks)
	}
	if len(cur) > 0 {
		runs = append(runs, cur)
	}
	return runs
}
