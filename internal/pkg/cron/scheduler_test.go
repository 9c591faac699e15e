package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsJobs(t *testing.T) {
	s := NewScheduler()

	var immediate, skipped atomic.Int32
	s.AddJob(Job{Name: "immediate", Interval: time.Hour, Fn: func(ctx context.Context) error {
		immediate.Add(1)
		return nil
	}})
	s.AddJob(Job{Name: "skipped", Interval: time.Hour, SkipInitialRun: true, Fn: func(ctx context.Context) error {
		skipped.Add(1)
		return nil
	}})
	s.AddJob(Job{Name: "invalid", Interval: 0, Fn: func(ctx context.Context) error { return nil }})

	s.Start(context.Background())
	require.Eventually(t, func() bool { return immediate.Load() == 1 }, time.Second, 10*time.Millisecond)
	s.Stop()

	assert.Equal(t, int32(0), skipped.Load())
	assert.Len(t, s.jobs, 2)
}

func TestScheduler_Ticks(t *testing.T) {
	s := NewScheduler()

	var runs atomic.Int32
	s.AddJob(Job{Name: "tick", Interval: 10 * time.Millisecond, SkipInitialRun: true, Fn: func(ctx context.Context) error {
		runs.Add(1)
		return errors.New("keeps running after errors")
	}})

	s.Start(context.Background())
	require.Eventually(t, func() bool { return runs.Load() >= 3 }, time.Second, 5*time.Millisecond)
	s.Stop()

	after := runs.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, runs.Load(), "no runs after Stop")
}

func TestScheduler_RunOnce(t *testing.T) {
	s := NewScheduler()

	var order []string
	for _, name := range []string{"a", "b"} {
		name := name
		s.AddJob(Job{Name: name, Interval: time.Hour, Fn: func(ctx context.Context) error {
			order = append(order, name)
			return nil
		}})
	}

	s.RunOnce(context.Background())
	assert.Equal(t, []string{"a", "b"}, order)

	s.Stop()
}
