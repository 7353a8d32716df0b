package preview

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umbrellio/gbot/internal/config"
	"github.com/umbrellio/gbot/internal/digest"
	"github.com/umbrellio/gbot/internal/markup"
	"github.com/umbrellio/gbot/internal/model"
	"github.com/umbrellio/gbot/internal/testutil"
	"github.com/umbrellio/gbot/internal/ui"
)

func newCommand(client *digest.MockSourceControl) *Command {
	return &Command{
		Config: &config.Config{GitLab: config.GitLab{
			Projects: []config.Project{{ID: 1}, {ID: 2, Paths: []string{"app/**"}}},
		}},
		Logger: slog.New(slog.DiscardHandler),
		Client: client,
		Markup: markup.Markdown{},
		Now:    testutil.Clock(),
	}
}

func stubProjects(client *digest.MockSourceControl) {
	client.On("Project", 1).Return(testutil.NewProject(1), nil)
	client.On("Project", 2).Return(testutil.NewProject(2), nil)
}

func TestPreview(t *testing.T) {
	testCases := []struct {
		desc        string
		projectID   int
		selectFn    func(t *testing.T) func([]model.Project) (*model.Project, error)
		setup       func(client *digest.MockSourceControl)
		expected    []string
		notExpected []string
		expectError string
	}{
		{
			desc:      "project given as argument",
			projectID: 2,
			setup: func(client *digest.MockSourceControl) {
				stubProjects(client)
				client.On("MergeRequests", 2).Return([]model.MergeRequest{testutil.NewMergeRequest(4, "alice", time.Hour)}, nil)
				client.On("Approvals", 2, 4).Return(model.Approvals{ApprovalsLeft: 1}, nil)
				client.On("Changes", 2, 4).Return([]model.Change{testutil.Change("app/x.go", 1, 1)}, nil)
				client.On("Discussions", 2, 4).Return(nil, nil)
			},
			expected: []string{"project-2", "!4 Request 4", "Hey, there are a couple of requests"},
		},
		{
			desc: "project picked in the finder",
			selectFn: func(t *testing.T) func([]model.Project) (*model.Project, error) {
				return func(projects []model.Project) (*model.Project, error) {
					require.Len(t, projects, 2)
					return &projects[0], nil
				}
			},
			setup: func(client *digest.MockSourceControl) {
				stubProjects(client)
				client.On("MergeRequests", 1).Return([]model.MergeRequest{}, nil)
			},
			expected: []string{"project-1", "Hey, there is a couple of nothing"},
		},
		{
			desc: "finder cancelled",
			selectFn: func(t *testing.T) func([]model.Project) (*model.Project, error) {
				return func([]model.Project) (*model.Project, error) { return nil, nil }
			},
			setup:       stubProjects,
			expected:    []string{"No project selected"},
			notExpected: []string{"Hey"},
		},
		{
			desc:        "unknown project",
			projectID:   99,
			setup:       stubProjects,
			expectError: "project 99 is not among the configured projects",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			var buf bytes.Buffer
			out, errOut := ui.Out, ui.ErrOut
			ui.Out, ui.ErrOut = &buf, &buf
			t.Cleanup(func() { ui.Out, ui.ErrOut = out, errOut })

			client := &digest.MockSourceControl{}
			tc.setup(client)

			c := newCommand(client)
			c.ProjectID = tc.projectID
			if tc.selectFn != nil {
				c.Select = tc.selectFn(t)
			}

			err := c.Run(context.Background())
			if tc.expectError != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectError)
				return
			}
			require.NoError(t, err)

			for _, s := range tc.expected {
				assert.Contains(t, buf.String(), s)
			}
			for _, s := range tc.notExpected {
				assert.NotContains(t, buf.String(), s)
			}
		})
	}
}
