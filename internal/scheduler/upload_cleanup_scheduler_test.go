package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingCleanup struct {
	calls atomic.Int32
	err   error
}

func (c *countingCleanup) RemoveOrphans(ctx context.Context) (int, error) {
	c.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("sweep must run with a deadline")
	}
	return 3, c.err
}

func TestUploadCleanupScheduler_RunCleanup(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{name: "success"},
		{name: "failure is logged, not raised", err: errors.New("storage unavailable")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := &countingCleanup{err: tt.err}
			s := NewUploadCleanupScheduler(cleanup, "30 3 * * *")

			s.runCleanup()
			assert.EqualValues(t, 1, cleanup.calls.Load())
		})
	}
}

func TestUploadCleanupScheduler_StartStop(t *testing.T) {
	s := NewUploadCleanupScheduler(&countingCleanup{}, "30 3 * * *")
	require.NoError(t, s.Start())
	s.Stop()
}

func TestUploadCleanupScheduler_InvalidSchedule(t *testing.T) {
	s := NewUploadCleanupScheduler(&countingCleanup{}, "every night")
	assert.Error(t, s.Start())
}
