package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Kind
	}{
		{"configuration", NewConfigurationError("no projects", ErrNoProjects), KindConfiguration},
		{"wrapped network", fmt.Errorf("failed to list: %w", &NetworkError{Status: 500, Message: "boom"}), KindNetwork},
		{"plain error", errors.New("boom"), KindUnexpected},
		{"unexpected", &UnexpectedError{Err: errors.New("bad json")}, KindUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, KindOf(tt.err))
		})
	}
}

func TestClassify(t *testing.T) {
	assert.Nil(t, Classify(nil))

	netErr := fmt.Errorf("failed: %w", &NetworkError{Status: 404})
	assert.Same(t, netErr, Classify(netErr))

	plain := errors.New("decode failed")
	classified := Classify(plain)
	var unexpected *UnexpectedError
	require.ErrorAs(t, classified, &unexpected)
	assert.ErrorIs(t, classified, plain)
	assert.Same(t, classified, Classify(classified))
}

func TestAsNetwork(t *testing.T) {
	err := fmt.Errorf("failed to get approvals: %w", &NetworkError{Status: 502, Message: "bad gateway"})

	netErr, ok := AsNetwork(err)
	require.True(t, ok)
	assert.Equal(t, 502, netErr.Status)
	assert.Equal(t, "network error: status 502: bad gateway", netErr.Error())

	_, ok = AsNetwork(errors.New("other"))
	assert.False(t, ok)
}

func TestConfigurationErrorUnwrap(t *testing.T) {
	err := NewConfigurationError("resolve projects", ErrNoProjects)

	assert.ErrorIs(t, err, ErrNoProjects)
	assert.Contains(t, err.Error(), "resolve projects")
}
