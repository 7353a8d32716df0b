package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umbrellio/gbot/internal/apperrors"
	"github.com/umbrellio/gbot/internal/model"
)

const sampleConfig = `
gitlab:
  url: https://gitlab.example.com
  token: secret-token
  projects:
    - id: 42
      paths: ["src/**", "docs/*.md"]
  groups:
    - id: 7
      excluded: [13]
  timeout: 10s
messenger:
  webhook: https://hooks.slack.com/services/T000/B000/XXXX
  channel: "#reviews"
  markup: slack
  sender:
    icon: https://example.com/bot.png
unapproved:
  emoji:
    1h: ":small_blue_diamond:"
    default: ":white_small_square:"
  tag:
    onThreadsOpen: true
  diffs: true
  requestsPerMessage: 5
  mentions:
    john.doe: U123ABC
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gbot.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := load(writeConfig(t, sampleConfig), nil)
	require.NoError(t, err)

	assert.Equal(t, "https://gitlab.example.com", cfg.GitLab.URL)
	assert.Equal(t, "secret-token", cfg.GitLab.Token)
	assert.Equal(t, 10*time.Second, cfg.GitLab.Timeout)
	assert.Equal(t, DefaultConcurrency, cfg.GitLab.Concurrency)
	assert.Equal(t, "slack", cfg.Messenger.Markup)
	assert.Equal(t, DefaultUsername, cfg.Messenger.Sender.Username)
	assert.Equal(t, "https://example.com/bot.png", cfg.Messenger.Sender.Icon)
	assert.True(t, cfg.Unapproved.Tag.OnThreadsOpen)
	assert.False(t, cfg.Unapproved.Tag.Author)
	assert.True(t, cfg.Unapproved.Diffs)
	assert.Equal(t, 5, cfg.Unapproved.RequestsPerMessage)
	assert.Equal(t, ":small_blue_diamond:", cfg.Unapproved.Emoji["1h"])
	assert.Equal(t, ":white_small_square:", cfg.Unapproved.Emoji["default"])
	assert.Equal(t, "U123ABC", cfg.Unapproved.Mentions["john.doe"])
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)

	assert.Equal(t, []model.ProjectRef{{ID: 42, Paths: []string{"src/**", "docs/*.md"}}}, cfg.ProjectRefs())
	assert.Equal(t, []model.Group{{ID: 7, Excluded: []int{13}}}, cfg.Groups())
}

func TestLoadEnvOverlay(t *testing.T) {
	environ := []string{
		"GBOT_GITLAB__TOKEN=from-env",
		"GBOT_GITLAB__PROJECTS=[{\"id\": 1}, {\"id\": 2, \"paths\": [\"app/**\"]}]",
		"GBOT_UNAPPROVED__TAG__ON_THREADS_OPEN=false",
		"GBOT_UNAPPROVED__CHECK_CONFLICTS=true",
		"GBOT_MESSENGER__CHANNEL=#elsewhere",
		"GBOT_LOG__LEVEL=debug",
		"HOME=/root",
	}

	cfg, err := load(writeConfig(t, sampleConfig), environ)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.GitLab.Token)
	assert.Equal(t, []model.ProjectRef{{ID: 1}, {ID: 2, Paths: []string{"app/**"}}}, cfg.ProjectRefs())
	assert.False(t, cfg.Unapproved.Tag.OnThreadsOpen)
	assert.True(t, cfg.Unapproved.CheckConflicts)
	assert.Equal(t, "#elsewhere", cfg.Messenger.Channel)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "https://gitlab.example.com", cfg.GitLab.URL)
}

func TestLoadEnvOnly(t *testing.T) {
	cfg, err := load("", []string{
		"GBOT_GITLAB__URL=https://gitlab.com",
		"GBOT_GITLAB__TOKEN=abc",
		"GBOT_GITLAB__GROUPS=[{\"id\": 3}]",
	})
	require.NoError(t, err)
	assert.Equal(t, []model.Group{{ID: 3}}, cfg.Groups())
	assert.Equal(t, "markdown", cfg.Messenger.Markup)
}

func TestLoadBareProjectIDs(t *testing.T) {
	testCases := []struct {
		desc     string
		content  string
		environ  []string
		expected []model.ProjectRef
	}{
		{
			desc:     "yaml list of ids",
			content:  "gitlab:\n  url: https://gitlab.com\n  token: x\n  projects: [42, 43]\n",
			expected: []model.ProjectRef{{ID: 42}, {ID: 43}},
		},
		{
			desc:     "yaml ids mixed with entries",
			content:  "gitlab:\n  url: https://gitlab.com\n  token: x\n  projects:\n    - 42\n    - id: 43\n      paths: [\"src/**\"]\n",
			expected: []model.ProjectRef{{ID: 42}, {ID: 43, Paths: []string{"src/**"}}},
		},
		{
			desc:     "env list of ids",
			content:  sampleConfig,
			environ:  []string{"GBOT_GITLAB__PROJECTS=[42,43]"},
			expected: []model.ProjectRef{{ID: 42}, {ID: 43}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			cfg, err := load(writeConfig(t, tc.content), tc.environ)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, cfg.ProjectRefs())
		})
	}
}

func TestLoadFractionalProjectID(t *testing.T) {
	_, err := load(writeConfig(t, sampleConfig), []string{"GBOT_GITLAB__PROJECTS=[4.5]"})
	require.Error(t, err)

	var cfgErr *apperrors.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "project id 4.5 is not an integer")
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		desc     string
		path     func(t *testing.T) string
		environ  []string
		contains string
	}{
		{
			desc:     "missing file",
			path:     func(t *testing.T) string { return filepath.Join(t.TempDir(), "missing.yml") },
			contains: "failed to read config file",
		},
		{
			desc:     "missing token",
			path:     func(t *testing.T) string { return writeConfig(t, "gitlab:\n  url: https://gitlab.com\n") },
			contains: "gitlab.token is required",
		},
		{
			desc:     "invalid url",
			path:     func(t *testing.T) string { return writeConfig(t, "gitlab:\n  url: not a url\n  token: x\n") },
			contains: "gitlab.url must be a valid URL",
		},
		{
			desc:     "unknown markup",
			path:     func(t *testing.T) string { return writeConfig(t, sampleConfig) },
			environ:  []string{"GBOT_MESSENGER__MARKUP=html"},
			contains: "messenger.markup must be one of [markdown slack]",
		},
		{
			desc:     "negative chunk size",
			path:     func(t *testing.T) string { return writeConfig(t, sampleConfig) },
			environ:  []string{"GBOT_UNAPPROVED__REQUESTS_PER_MESSAGE=-1"},
			contains: "unapproved.requestsPerMessage must be at least 0",
		},
		{
			desc:     "broken path glob",
			path:     func(t *testing.T) string { return writeConfig(t, sampleConfig) },
			environ:  []string{`GBOT_GITLAB__PROJECTS=[{"id": 1, "paths": ["src/[a"]}]`},
			contains: "is not a valid path pattern",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := load(tc.path(t), tc.environ)
			require.Error(t, err)

			var cfgErr *apperrors.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
}

func TestEnvOverlay(t *testing.T) {
	overlay := envOverlay([]string{
		"GBOT_UNAPPROVED__TAG__ON_THREADS_OPEN=true",
		"GBOT_GITLAB__CONCURRENCY=4",
		"GBOT_MESSENGER__CHANNEL=general",
		"PATH=/usr/bin",
		"GBOTX=1",
	})

	assert.Equal(t, map[string]any{
		"unapproved::tag::onThreadsOpen": true,
		"gitlab::concurrency":            float64(4),
		"messenger::channel":             "general",
	}, overlay)
}

func TestCamelCase(t *testing.T) {
	assert.Equal(t, "onThreadsOpen", camelCase("ON_THREADS_OPEN"))
	assert.Equal(t, "gitlab", camelCase("GITLAB"))
	assert.Equal(t, "requestsPerMessage", camelCase("requests-per-message"))
	assert.Equal(t, "", camelCase(""))
}

func TestRequireWebhook(t *testing.T) {
	cfg := &Config{}
	err := cfg.RequireWebhook()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoWebhook)
	assert.Equal(t, apperrors.KindConfiguration, apperrors.KindOf(err))

	cfg.Messenger.Webhook = "https://hooks.example.com/x"
	assert.NoError(t, cfg.RequireWebhook())
}

func TestRedacted(t *testing.T) {
	cfg, err := load(writeConfig(t, sampleConfig), nil)
	require.NoError(t, err)

	redacted := cfg.Redacted()
	assert.Equal(t, mask, redacted.GitLab.Token)
	assert.Equal(t, mask, redacted.Messenger.Webhook)
	assert.Equal(t, "secret-token", cfg.GitLab.Token)
	assert.Equal(t, cfg.GitLab.URL, redacted.GitLab.URL)
}
