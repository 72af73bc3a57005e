package cron

import (
	"context"
	"fmt"

	"github.com/sivermarket/siver-backend/pkg/logger"
)

// POAutoCloseJobParams configure the auto-close evaluation job.
type POAutoCloseJobParams struct {
	Logger  *logger.Logger
	Service autoCloseEvaluator
}

type autoCloseEvaluator interface {
	EvaluateAutoClose(ctx context.Context) (bool, error)
}

// NewPOAutoCloseJob checks the accepting cycle against the active
// consolidation policy and closes it when a threshold is met.
func NewPOAutoCloseJob(params POAutoCloseJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Service == nil {
		return nil, fmt.Errorf("consolidation service required")
	}
	return &poAutoCloseJob{logg: params.Logger, svc: params.Service}, nil
}

type poAutoCloseJob struct {
	logg *logger.Logger
	svc  autoCloseEvaluator
}

func (j *poAutoCloseJob) Name() string { return "po-auto-close" }

func (j *poAutoCloseJob) Run(ctx context.Context) error {
	closed, err := j.svc.EvaluateAutoClose(ctx)
	if err != nil {
		return fmt.Errorf("evaluate auto close: %w", err)
	}
	logCtx := j.logg.WithField(ctx, "closed", closed)
	j.logg.Info(logCtx, "auto-close evaluation complete")
	return nil
}
