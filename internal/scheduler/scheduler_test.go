package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pawstails/internal/models"
)

type fakeSweeper struct {
	runs       atomic.Int32
	autoRepair atomic.Bool
	err        error
}

func (f *fakeSweeper) Sweep(_ context.Context, autoRepair bool) (*models.IntegrityReport, error) {
	f.runs.Add(1)
	f.autoRepair.Store(autoRepair)
	if f.err != nil {
		return nil, f.err
	}
	return &models.IntegrityReport{Repaired: 1}, nil
}

func TestScheduler_IntegritySweepRuns(t *testing.T) {
	s, err := NewScheduler()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Stop() })

	sw := &fakeSweeper{}
	id, err := s.ScheduleIntegritySweep(20*time.Millisecond, sw, true)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	s.Start()
	require.Eventually(t, func() bool { return sw.runs.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
	assert.True(t, sw.autoRepair.Load())
}

func TestScheduler_FailingSweepKeepsRunning(t *testing.T) {
	s, err := NewScheduler()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Stop() })

	sw := &fakeSweeper{err: errors.New("db down")}
	_, err = s.ScheduleIntegritySweep(20*time.Millisecond, sw, false)
	require.NoError(t, err)

	s.Start()
	require.Eventually(t, func() bool { return sw.runs.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestScheduler_RejectsNonPositiveInterval(t *testing.T) {
	s, err := NewScheduler()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Stop() })

	_, err = s.ScheduleIntegritySweep(0, &fakeSweeper{}, false)
	require.Error(t, err)
}
