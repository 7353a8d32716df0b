package digest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/umbrellio/gbot/internal/markup"
	"github.com/umbrellio/gbot/internal/model"
)

type MockSourceControl struct {
	mock.Mock
}

var _ SourceControl = (*MockSourceControl)(nil)

// GroupProjects implements SourceControl.
func (m *MockSourceControl) GroupProjects(ctx context.Context, groupID int) ([]int, error) {
	args := m.Called(groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

// Project implements SourceControl.
func (m *MockSourceControl) Project(ctx context.Context, projectID int) (model.Project, error) {
	args := m.Called(projectID)
	if args.Get(0) == nil {
		return model.Project{}, args.Error(1)
	}
	return args.Get(0).(model.Project), args.Error(1)
}

// MergeRequests implements SourceControl.
func (m *MockSourceControl) MergeRequests(ctx context.Context, projectID int) ([]model.MergeRequest, error) {
	args := m.Called(projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.MergeRequest), args.Error(1)
}

// Approvals implements SourceControl.
func (m *MockSourceControl) Approvals(ctx context.Context, projectID, iid int) (model.Approvals, error) {
	args := m.Called(projectID, iid)
	if args.Get(0) == nil {
		return model.Approvals{}, args.Error(1)
	}
	return args.Get(0).(model.Approvals), args.Error(1)
}

// Changes implements SourceControl.
func (m *MockSourceControl) Changes(ctx context.Context, projectID, iid int) ([]model.Change, error) {
	args := m.Called(projectID, iid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Change), args.Error(1)
}

// Discussions implements SourceControl.
func (m *MockSourceControl) Discussions(ctx context.Context, projectID, iid int) ([]model.Discussion, error) {
	args := m.Called(projectID, iid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Discussion), args.Error(1)
}

type MockMessenger struct {
	mock.Mock
}

var _ Messenger = (*MockMessenger)(nil)

// SendMany implements Messenger.
func (m *MockMessenger) SendMany(ctx context.Context, msgs []markup.Message) error {
	args := m.Called(msgs)
	return args.Error(0)
}
