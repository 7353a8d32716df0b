package unapproved

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/umbrellio/gbot/internal/apperrors"
	"github.com/umbrellio/gbot/internal/config"
	"github.com/umbrellio/gbot/internal/digest"
	"github.com/umbrellio/gbot/internal/markup"
	"github.com/umbrellio/gbot/internal/model"
	"github.com/umbrellio/gbot/internal/testutil"
	"github.com/umbrellio/gbot/internal/ui"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	out := ui.Out
	ui.Out = &buf
	t.Cleanup(func() { ui.Out = out })
	return &buf
}

func stubGitLab(client *digest.MockSourceControl) {
	client.On("Project", 7).Return(testutil.NewProject(7), nil)
	client.On("MergeRequests", 7).Return([]model.MergeRequest{testutil.NewMergeRequest(1, "alice", 90*time.Minute)}, nil)
	client.On("Approvals", 7, 1).Return(model.Approvals{ApprovalsLeft: 1}, nil)
	client.On("Changes", 7, 1).Return(nil, nil)
	client.On("Discussions", 7, 1).Return(nil, nil)
}

func newCommand(client *digest.MockSourceControl, messenger *digest.MockMessenger, webhook string) *Command {
	opts := digest.Options{
		Projects: []model.ProjectRef{{ID: 7}},
		Labels:   map[string]string{"1h": "🟢", "default": "⚪"},
	}
	return &Command{
		Config: &config.Config{Messenger: config.Messenger{Webhook: webhook}},
		Logger: slog.New(slog.DiscardHandler),
		Orchestrator: digest.NewOrchestrator(client, messenger, markup.Markdown{}, opts, nil).
			WithClock(testutil.Clock()),
		Now: testutil.Clock(),
	}
}

func TestUnapproved(t *testing.T) {
	testCases := []struct {
		desc        string
		webhook     string
		dryRun      bool
		setup       func(client *digest.MockSourceControl, messenger *digest.MockMessenger)
		verify      func(t *testing.T, output string, messenger *digest.MockMessenger)
		expectError string
	}{
		{
			desc:    "sends the digest",
			webhook: "https://hooks.example.com/services/x",
			setup: func(client *digest.MockSourceControl, messenger *digest.MockMessenger) {
				stubGitLab(client)
				messenger.On("SendMany", mock.MatchedBy(func(msgs []markup.Message) bool {
					return len(msgs) == 1
				})).Return(nil)
			},
			verify: func(t *testing.T, output string, messenger *digest.MockMessenger) {
				messenger.AssertExpectations(t)
				assert.Contains(t, output, "Sent 1 message(s) covering 1 merge request(s)")
			},
		},
		{
			desc:   "dry run renders without sending",
			dryRun: true,
			setup: func(client *digest.MockSourceControl, messenger *digest.MockMessenger) {
				stubGitLab(client)
			},
			verify: func(t *testing.T, output string, messenger *digest.MockMessenger) {
				messenger.AssertNotCalled(t, "SendMany", mock.Anything)
				assert.Contains(t, output, "Digest preview")
				assert.Contains(t, output, "Hey, there are a couple of requests waiting for your review")
				assert.Contains(t, output, "!1 Request 1")
				assert.Contains(t, output, "Dry run: nothing was sent")
			},
		},
		{
			desc:        "missing webhook",
			setup:       func(client *digest.MockSourceControl, messenger *digest.MockMessenger) {},
			expectError: "missing webhook",
		},
		{
			desc:    "gitlab failure aborts before dispatch",
			webhook: "https://hooks.example.com/services/x",
			setup: func(client *digest.MockSourceControl, messenger *digest.MockMessenger) {
				client.On("Project", 7).Return(nil, &apperrors.NetworkError{Status: 500, Message: "boom"})
			},
			verify: func(t *testing.T, output string, messenger *digest.MockMessenger) {
				messenger.AssertNotCalled(t, "SendMany", mock.Anything)
			},
			expectError: "failed in enriching",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			output := captureOutput(t)
			client := &digest.MockSourceControl{}
			messenger := &digest.MockMessenger{}
			tc.setup(client, messenger)

			c := newCommand(client, messenger, tc.webhook)
			c.DryRun = tc.dryRun

			err := c.Run(context.Background())
			if tc.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectError)
			} else {
				require.NoError(t, err)
			}

			if tc.verify != nil {
				tc.verify(t, output.String(), messenger)
			}
		})
	}
}
