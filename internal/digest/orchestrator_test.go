package digest

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/umbrellio/gbot/internal/apperrors"
	"github.com/umbrellio/gbot/internal/markup"
	"github.com/umbrellio/gbot/internal/model"
	"github.com/umbrellio/gbot/internal/testutil"
)

func stubProject(client *MockSourceControl, id int, requests ...model.MergeRequest) {
	client.On("Project", id).Return(testutil.NewProject(id), nil)
	client.On("MergeRequests", id).Return(requests, nil)
}

func newTestOrchestrator(client SourceControl, messenger Messenger, opts Options) *Orchestrator {
	if opts.Labels == nil {
		opts.Labels = testLabels
	}
	return NewOrchestrator(client, messenger, markup.Markdown{}, opts, nil).WithClock(testutil.Clock())
}

func TestOrchestratorRun(t *testing.T) {
	client := &MockSourceControl{}
	stubProject(client, 7, testutil.NewMergeRequest(1, "alice", 90*time.Minute))
	client.On("Approvals", 7, 1).Return(model.Approvals{ApprovalsLeft: 1}, nil)
	client.On("Changes", 7, 1).Return([]model.Change{testutil.Change("app/main.go", 1, 0)}, nil)
	client.On("Discussions", 7, 1).Return(nil, nil)

	messenger := &MockMessenger{}
	var sent []markup.Message
	messenger.On("SendMany", mock.Anything).Run(func(args mock.Arguments) {
		sent = args.Get(0).([]markup.Message)
	}).Return(nil)

	res, err := newTestOrchestrator(client, messenger, Options{
		Projects: []model.ProjectRef{{ID: 7}},
	}).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateDone, res.State)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 1, res.Requests)
	require.Len(t, res.Candidates, 1)
	assert.Equal(t, BucketToReview, res.Candidates[0].Bucket)

	require.Len(t, sent, 1)
	assert.Equal(t, res.Messages, sent)
	assert.Equal(t, "#### Hey, there are a couple of requests waiting for your review\n\n"+
		"🟢 **[Request 1](https://gitlab.example.com/group/project/-/merge_requests/1)** "+
		"([project-7](https://gitlab.example.com/group/project-7)) by **`@alice`**", sent[0].Text)
	client.AssertExpectations(t)
}

func TestOrchestratorNothingPending(t *testing.T) {
	client := &MockSourceControl{}
	stubProject(client, 7, testutil.NewMergeRequest(1, "alice", time.Hour))
	client.On("Approvals", 7, 1).Return(model.Approvals{ApprovedBy: testutil.Users("bob")}, nil)
	client.On("Changes", 7, 1).Return([]model.Change{}, nil)
	client.On("Discussions", 7, 1).Return([]model.Discussion{testutil.Thread(true, "bob")}, nil)

	messenger := &MockMessenger{}
	messenger.On("SendMany", mock.MatchedBy(func(msgs []markup.Message) bool {
		return len(msgs) == 1 && msgs[0].Text == "#### Hey, there is a couple of nothing\n\n"+
			"There are no pending requests! Let's do a new one!"
	})).Return(nil)

	res, err := newTestOrchestrator(client, messenger, Options{
		Projects: []model.ProjectRef{{ID: 7}},
	}).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Candidates)
	messenger.AssertExpectations(t)
}

func TestOrchestratorSortsByLastUpdate(t *testing.T) {
	client := &MockSourceControl{}
	stubProject(client, 1, testutil.NewMergeRequest(1, "alice", time.Hour), testutil.NewMergeRequest(2, "bob", 3*time.Hour))
	stubProject(client, 2, testutil.NewMergeRequest(3, "carol", 2*time.Hour), testutil.NewMergeRequest(4, "dave", 3*time.Hour))
	client.On("Approvals", mock.Anything, mock.Anything).Return(model.Approvals{ApprovalsLeft: 1}, nil)
	client.On("Changes", mock.Anything, mock.Anything).Return(nil, nil)
	client.On("Discussions", mock.Anything, mock.Anything).Return(nil, nil)

	res, err := newTestOrchestrator(client, nil, Options{
		Projects: []model.ProjectRef{{ID: 1}, {ID: 2}},
	}).Render(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateDone, res.State)

	var iids []int
	for _, c := range res.Candidates {
		iids = append(iids, c.Request.IID)
	}
	// equal timestamps keep enrichment order
	assert.Equal(t, []int{2, 4, 3, 1}, iids)
}

func TestOrchestratorFailures(t *testing.T) {
	testCases := []struct {
		desc          string
		opts          Options
		setup         func(client *MockSourceControl)
		expectedKind  apperrors.Kind
		expectedState State
	}{
		{
			desc:          "no projects configured",
			expectedKind:  apperrors.KindConfiguration,
			expectedState: StateResolvingProjects,
		},
		{
			desc: "gitlab answers 500",
			opts: Options{Projects: []model.ProjectRef{{ID: 7}}},
			setup: func(client *MockSourceControl) {
				client.On("Project", 7).Return(nil, &apperrors.NetworkError{Status: 500, Message: "500 Internal Server Error"})
			},
			expectedKind:  apperrors.KindNetwork,
			expectedState: StateEnriching,
		},
		{
			desc: "group lookup unreachable",
			opts: Options{Groups: []model.Group{{ID: 3}}},
			setup: func(client *MockSourceControl) {
				client.On("GroupProjects", 3).Return(nil, &apperrors.NetworkError{Message: "connection refused"})
			},
			expectedKind:  apperrors.KindNetwork,
			expectedState: StateResolvingProjects,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			client := &MockSourceControl{}
			if tc.setup != nil {
				tc.setup(client)
			}
			messenger := &MockMessenger{}

			res, err := newTestOrchestrator(client, messenger, tc.opts).Run(context.Background())
			require.Error(t, err)
			require.NotNil(t, res)

			assert.Equal(t, tc.expectedKind, apperrors.KindOf(err))
			assert.Equal(t, StateFailed, res.State)
			assert.Equal(t, tc.expectedState, res.FailedIn)
			assert.Empty(t, res.Messages)
			messenger.AssertNotCalled(t, "SendMany", mock.Anything)
		})
	}
}

func TestOrchestratorDispatchFailure(t *testing.T) {
	client := &MockSourceControl{}
	stubProject(client, 7)

	messenger := &MockMessenger{}
	messenger.On("SendMany", mock.Anything).Return(&apperrors.NetworkError{Status: 404, Message: "no_service"})

	res, err := newTestOrchestrator(client, messenger, Options{
		Projects: []model.ProjectRef{{ID: 7}},
	}).Run(context.Background())
	require.Error(t, err)

	netErr, ok := apperrors.AsNetwork(err)
	require.True(t, ok)
	assert.Equal(t, 404, netErr.Status)
	assert.Equal(t, StateDispatching, res.FailedIn)
	assert.Len(t, res.Messages, 1)
}

func TestOrchestratorWrapsUnknownErrors(t *testing.T) {
	client := &MockSourceControl{}
	client.On("Project", 7).Return(nil, assert.AnError)

	_, err := newTestOrchestrator(client, &MockMessenger{}, Options{
		Projects: []model.ProjectRef{{ID: 7}},
	}).Run(context.Background())
	require.Error(t, err)

	var unexpected *apperrors.UnexpectedError
	require.ErrorAs(t, err, &unexpected)
	assert.ErrorIs(t, err, assert.AnError)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "resolving_projects", StateResolvingProjects.String())
	assert.Equal(t, "dispatching", StateDispatching.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.Equal(t, "state(42)", State(42).String())
}
