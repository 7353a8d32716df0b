package digest

import (
	"fmt"
	"strings"
	"time"

	"github.com/umbrellio/gbot/internal/markup"
	"github.com/umbrellio/gbot/internal/model"
	"github.com/umbrellio/gbot/internal/staleness"
)

// TagOptions selects which names are rendered as notifying mentions.
type TagOptions struct {
	Author        bool
	Approvers     bool
	Commenters    bool // also list replies, not just thread openers
	OnConflict    bool
	OnThreadsOpen bool // tag the author while discussions are unresolved
}

// DescriptionOptions configures how a single request is described.
type DescriptionOptions struct {
	Tag            TagOptions
	ShowDiffStats  bool
	CheckConflicts bool
	Mentions       map[string]string // username -> chat id
}

// DescriptionBuilder renders one request into a fragment.
type DescriptionBuilder struct {
	markup     markup.Markup
	classifier *staleness.Classifier
	opts       DescriptionOptions
	now        func() time.Time
}

// NewDescriptionBuilder creates a DescriptionBuilder. A nil now uses time.Now.
func NewDescriptionBuilder(m markup.Markup, classifier *staleness.Classifier, opts DescriptionOptions, now func() time.Time) *DescriptionBuilder {
	if now == nil {
		now = time.Now
	}
	if classifier == nil {
		classifier = staleness.NewClassifier(nil)
	}
	return &DescriptionBuilder{markup: m, classifier: classifier, opts: opts, now: now}
}

// description accumulates whether any name was rendered as a mention.
type description struct {
	b            *DescriptionBuilder
	withMentions bool
}

func (d *description) name(username string, tag bool) string {
	if tag {
		d.withMentions = true
		return d.b.markup.Mention(username, d.b.opts.Mentions)
	}
	return d.b.markup.Inert("@" + username)
}

func (d *description) names(users []model.User, tag bool) string {
	parts := make([]string, len(users))
	for i, u := range users {
		parts[i] = d.name(u.Username, tag)
	}
	return strings.Join(parts, ", ")
}

// Build renders r: staleness label, optional diff stat, title link, project
// link and author on the first line, then unresolved thread authors,
// approvers and conflicts on secondary lines.
func (b *DescriptionBuilder) Build(r model.MergeRequest) markup.Fragment {
	m := b.markup
	d := &description{b: b}

	label := b.classifier.Classify(b.now().Sub(r.UpdatedAt))

	var diff string
	if b.opts.ShowDiffStats {
		insertions, deletions := DiffStat(r.Changes)
		diff = m.Inert(fmt.Sprintf("+%d -%d", insertions, deletions))
	}

	tagAuthor := b.opts.Tag.Author || (b.opts.Tag.OnThreadsOpen && r.HasUnresolvedDiscussions())

	primary := m.PrimaryInfo(
		label,
		diff,
		m.Bold(m.Link(r.Title, r.WebURL)),
		"("+m.Link(r.Project.Name, r.Project.WebURL)+")",
		"by "+m.Bold(d.name(r.Author.Username, tagAuthor)),
	)

	var lines []string
	if authors := UnresolvedAuthors(r, b.opts.Tag.Commenters); len(authors) > 0 {
		lines = append(lines, "unresolved threads by: "+d.names(authors, true))
	}
	if len(r.ApprovedBy) > 0 {
		lines = append(lines, "already approved by: "+d.names(r.ApprovedBy, b.opts.Tag.Approvers))
	}
	if b.opts.CheckConflicts && r.HasConflicts {
		lines = append(lines, "conflicts must be resolved by: "+d.name(r.Author.Username, b.opts.Tag.OnConflict))
	}

	return m.ComposeBody(primary, m.AdditionalInfo(lines...), d.withMentions)
}

// UnresolvedAuthors returns the distinct authors of unresolved discussions in
// order of appearance. Without includeCommenters only the author of each
// thread's first note counts.
func UnresolvedAuthors(r model.MergeRequest, includeCommenters bool) []model.User {
	seen := make(map[string]struct{})
	var authors []model.User

	for _, d := range r.UnresolvedDiscussions() {
		notes := d.Notes
		if !includeCommenters && len(notes) > 1 {
			notes = notes[:1]
		}
		for _, n := range notes {
			if _, ok := seen[n.Author.Username]; ok {
				continue
			}
			seen[n.Author.Username] = struct{}{}
			authors = append(authors, n.Author)
		}
	}
	return authors
}
