package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
)

type countingSweep struct {
	calls atomic.Int32
	err   error
}

func (c *countingSweep) Execute(context.Context) (int, error) {
	c.calls.Add(1)
	return 1, c.err
}

func TestSchedulerRunsSweep(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	job := &countingSweep{}
	if err := s.Add("test", "@every 1s", job); err != nil {
		t.Fatal(err)
	}

	s.Start()
	deadline := time.Now().Add(3 * time.Second)
	for job.calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(50 * time.Millisecond)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)

	if job.calls.Load() == 0 {
		t.Fatal("sweep never ran")
	}
}

func TestSchedulerRejectsBadSpec(t *testing.T) {
	if err := NewScheduler(zap.NewNop()).Add("bad", "every now and then", &countingSweep{}); err == nil {
		t.Error("expected a parse error")
	}
}

func TestRunSurvivesErrors(t *testing.T) {
	s := NewScheduler(zap.NewNop())
	job := &countingSweep{err: errors.New("db down")}
	s.run("failing", job)
	if job.calls.Load() != 1 {
		t.Errorf("calls = %d", job.calls.Load())
	}
}
