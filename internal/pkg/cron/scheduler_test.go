package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_RunOnceExecutesEveryJob(t *testing.T) {
	t.Parallel()

	var first, second atomic.Int32

	s := NewScheduler()
	s.AddJob("first", time.Hour, func(ctx context.Context) error {
		first.Add(1)
		return nil
	})
	s.AddJob("second", time.Hour, func(ctx context.Context) error {
		second.Add(1)
		return nil
	})

	s.RunOnce(context.Background())

	assert.Equal(t, int32(1), first.Load())
	assert.Equal(t, int32(1), second.Load())
}

func TestScheduler_RunOnceSurvivesFailingJob(t *testing.T) {
	t.Parallel()

	var ran atomic.Bool

	s := NewScheduler()
	s.AddJob("failing", time.Hour, func(ctx context.Context) error {
		return errors.New("boom")
	})
	s.AddJob("following", time.Hour, func(ctx context.Context) error {
		ran.Store(true)
		return nil
	})

	s.RunOnce(context.Background())

	assert.True(t, ran.Load(), "a failing job must not stop the rest of the sweep")
}

func TestScheduler_StartRunsJobImmediatelyAndStopWaits(t *testing.T) {
	t.Parallel()

	var runs atomic.Int32

	s := NewScheduler()
	s.AddJob("sweep", time.Hour, func(ctx context.Context) error {
		runs.Add(1)
		return nil
	})

	s.Start()
	s.Stop()

	assert.Equal(t, int32(1), runs.Load(), "job runs once on start, interval not yet due")
}
