package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/sivermarket/siver-backend/pkg/logger"
)

type fakeEvaluator struct {
	closed bool
	err    error
	calls  int
}

func (f *fakeEvaluator) EvaluateAutoClose(context.Context) (bool, error) {
	f.calls++
	return f.closed, f.err
}

func TestPOAutoCloseJobEvaluatesOnce(t *testing.T) {
	evaluator := &fakeEvaluator{closed: true}
	job, err := NewPOAutoCloseJob(POAutoCloseJobParams{
		Logger:  logger.New(logger.Options{ServiceName: "test"}),
		Service: evaluator,
	})
	if err != nil {
		t.Fatalf("NewPOAutoCloseJob: %v", err)
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if evaluator.calls != 1 {
		t.Fatalf("expected one evaluation, got %d", evaluator.calls)
	}
}

func TestPOAutoCloseJobPropagatesError(t *testing.T) {
	job, err := NewPOAutoCloseJob(POAutoCloseJobParams{
		Logger:  logger.New(logger.Options{ServiceName: "test"}),
		Service: &fakeEvaluator{err: errors.New("boom")},
	})
	if err != nil {
		t.Fatalf("NewPOAutoCloseJob: %v", err)
	}
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
