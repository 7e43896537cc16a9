package scheduler

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvery(t *testing.T) {
	assert.Equal(t, "@every 5m0s", Every(300000*time.Millisecond))
	assert.Equal(t, "@every 1s", Every(10*time.Millisecond))
	assert.Equal(t, "@every 2s", Every(1600*time.Millisecond))
}

func TestAddJob_InvalidSchedule(t *testing.T) {
	s := New(zerolog.Nop())
	err := s.AddJob("not a schedule", JobFunc{JobName: "bad", Fn: func() error { return nil }})
	assert.Error(t, err)
}

func TestScheduler_RunsJobPeriodically(t *testing.T) {
	s := New(zerolog.Nop())
	var runs atomic.Int32

	require.NoError(t, s.AddJob(Every(time.Second), JobFunc{
		JobName: "counter",
		Fn: func() error {
			runs.Add(1)
			return nil
		},
	}))

	s.Start()
	assert.True(t, s.Running())
	require.Eventually(t, func() bool { return runs.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
	s.Stop()
	assert.False(t, s.Running())

	after := runs.Load()
	time.Sleep(1500 * time.Millisecond)
	assert.Equal(t, after, runs.Load(), "no runs after Stop")
}

func TestScheduler_StopIsIdempotent(t *testing.T) {
	s := New(zerolog.Nop())
	s.Stop()
	s.Start()
	s.Start()
	s.Stop()
	s.Stop()
	assert.False(t, s.Running())
}
