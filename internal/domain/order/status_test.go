package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in   string
		want Status
	}{
		{"pending", StatusPending},
		{"in_progress", StatusInProgress},
		{"ready", StatusReady},
		{"completed", StatusCompleted},
		{"cancelled", StatusPending}, // unknown falls back to pending
		{"", StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseStatus(tt.in))
		})
	}
}

func TestStatus_Next(t *testing.T) {
	next, ok := StatusPending.Next()
	assert.True(t, ok)
	assert.Equal(t, StatusInProgress, next)

	next, ok = StatusInProgress.Next()
	assert.True(t, ok)
	assert.Equal(t, StatusReady, next)

	next, ok = StatusReady.Next()
	assert.True(t, ok)
	assert.Equal(t, StatusCompleted, next)

	_, ok = StatusCompleted.Next()
	assert.False(t, ok, "completed is terminal")
}

func TestStatus_CanAdvanceTo(t *testing.T) {
	assert.True(t, StatusPending.CanAdvanceTo(StatusInProgress))
	assert.True(t, StatusReady.CanAdvanceTo(StatusCompleted))

	// No skipping, no backward, no self transitions.
	assert.False(t, StatusPending.CanAdvanceTo(StatusReady))
	assert.False(t, StatusReady.CanAdvanceTo(StatusPending))
	assert.False(t, StatusInProgress.CanAdvanceTo(StatusInProgress))
	assert.False(t, StatusCompleted.CanAdvanceTo(StatusPending))
}

func TestStatus_Action(t *testing.T) {
	assert.Equal(t, "Start Cooking", StatusPending.Action())
	assert.Equal(t, "Mark Ready", StatusInProgress.Action())
	assert.Equal(t, "Complete Order", StatusReady.Action())
	assert.Empty(t, StatusCompleted.Action())
}

func TestStatus_Priority(t *testing.T) {
	assert.Equal(t, 1, StatusPending.Priority())
	assert.Equal(t, 2, StatusInProgress.Priority())
	assert.Equal(t, 3, StatusReady.Priority())
	assert.Equal(t, 4, StatusCompleted.Priority())
}
