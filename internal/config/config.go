// Package config loads the gbot configuration from a YAML file, the GBOT_
// environment overlay and built-in defaults.
package config

import (
	"time"

	"github.com/umbrellio/gbot/internal/model"
)

const (
	DefaultPath        = "gbot.yml"
	DefaultConcurrency = 8
	DefaultTimeout     = 30 * time.Second
	DefaultUsername    = "Gbot"
)

// Config is the full gbot configuration.
type Config struct {
	GitLab     GitLab     `mapstructure:"gitlab" yaml:"gitlab"`
	Messenger  Messenger  `mapstructure:"messenger" yaml:"messenger"`
	Unapproved Unapproved `mapstructure:"unapproved" yaml:"unapproved"`
	Log        Log        `mapstructure:"log" yaml:"log"`
}

// GitLab configures the source-control API and what to scan.
type GitLab struct {
	URL         string        `mapstructure:"url" yaml:"url" validate:"required,url"`
	Token       string        `mapstructure:"token" yaml:"token" validate:"required"`
	Projects    []Project     `mapstructure:"projects" yaml:"projects,omitempty" validate:"dive"`
	Groups      []Group       `mapstructure:"groups" yaml:"groups,omitempty" validate:"dive"`
	Concurrency int           `mapstructure:"concurrency" yaml:"concurrency" validate:"min=1"`
	RateLimit   float64       `mapstructure:"rateLimit" yaml:"rateLimit" validate:"min=0"`
	Timeout     time.Duration `mapstructure:"timeout" yaml:"timeout" validate:"min=0"`
}

// Project is an explicitly configured project.
type Project struct {
	ID    int      `mapstructure:"id" yaml:"id" validate:"required,min=1"`
	Paths []string `mapstructure:"paths" yaml:"paths,omitempty" validate:"dive,required,glob"`
}

// Group is a configured group with optional exclusions.
type Group struct {
	ID       int   `mapstructure:"id" yaml:"id" validate:"required,min=1"`
	Excluded []int `mapstructure:"excluded" yaml:"excluded,omitempty"`
}

// Messenger configures the chat destination.
type Messenger struct {
	Webhook string `mapstructure:"webhook" yaml:"webhook" validate:"omitempty,url"`
	Channel string `mapstructure:"channel" yaml:"channel,omitempty"`
	Markup  string `mapstructure:"markup" yaml:"markup" validate:"oneof=markdown slack"`
	Sender  Sender `mapstructure:"sender" yaml:"sender"`
}

// Sender is the identity messages are posted under.
type Sender struct {
	Username string `mapstructure:"username" yaml:"username"`
	Icon     string `mapstructure:"icon" yaml:"icon,omitempty" validate:"omitempty,url"`
}

// Unapproved configures the review digest.
type Unapproved struct {
	Emoji                 map[string]string `mapstructure:"emoji" yaml:"emoji,omitempty"`
	Tag                   Tag               `mapstructure:"tag" yaml:"tag"`
	Diffs                 bool              `mapstructure:"diffs" yaml:"diffs"`
	CheckConflicts        bool              `mapstructure:"checkConflicts" yaml:"checkConflicts"`
	SplitByReviewProgress bool              `mapstructure:"splitByReviewProgress" yaml:"splitByReviewProgress"`
	RequestsPerMessage    int               `mapstructure:"requestsPerMessage" yaml:"requestsPerMessage" validate:"min=0"`
	Mentions              map[string]string `mapstructure:"mentions" yaml:"mentions,omitempty"`
}

// Tag selects who gets notified.
type Tag struct {
	Author        bool `mapstructure:"author" yaml:"author"`
	Approvers     bool `mapstructure:"approvers" yaml:"approvers"`
	Commenters    bool `mapstructure:"commenters" yaml:"commenters"`
	OnConflict    bool `mapstructure:"onConflict" yaml:"onConflict"`
	OnThreadsOpen bool `mapstructure:"onThreadsOpen" yaml:"onThreadsOpen"`
}

// Log configures the logger.
type Log struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=text json"`
}

// ProjectRefs returns the explicitly configured projects.
func (c *Config) ProjectRefs() []model.ProjectRef {
	refs := make([]model.ProjectRef, len(c.GitLab.Projects))
	for i, p := range c.GitLab.Projects {
		refs[i] = model.ProjectRef{ID: p.ID, Paths: p.Paths}
	}
	return refs
}

// Groups returns the configured groups.
func (c *Config) Groups() []model.Group {
	groups := make([]model.Group, len(c.GitLab.Groups))
	for i, g := range c.GitLab.Groups {
		groups[i] = model.Group{ID: g.ID, Excluded: g.Excluded}
	}
	return groups
}

const mask = "********"

// Redacted returns a copy of c with secrets masked.
func (c *Config) Redacted() *Config {
	out := *c
	if out.GitLab.Token != "" {
		out.GitLab.Token = mask
	}
	if out.Messenger.Webhook != "" {
		out.Messenger.Webhook = mask
	}
	return &out
}
