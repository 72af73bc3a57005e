package cron

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/sivermarket/siver-backend/internal/consolidation"
	pkgerrors "github.com/sivermarket/siver-backend/pkg/errors"
	"github.com/sivermarket/siver-backend/pkg/logger"
)

// POLinkOrdersJobParams configure the order-sweep job.
type POLinkOrdersJobParams struct {
	Logger  *logger.Logger
	Service consolidationEngine
}

type consolidationEngine interface {
	GetOpen(ctx context.Context) (*consolidation.PODetail, error)
	LinkPendingOrders(ctx context.Context, poID uuid.UUID) (int, error)
}

// NewPOLinkOrdersJob sweeps paid, unlinked orders into the accepting cycle.
func NewPOLinkOrdersJob(params POLinkOrdersJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Service == nil {
		return nil, fmt.Errorf("consolidation service required")
	}
	return &poLinkOrdersJob{logg: params.Logger, svc: params.Service}, nil
}

type poLinkOrdersJob struct {
	logg *logger.Logger
	svc  consolidationEngine
}

func (j *poLinkOrdersJob) Name() string { return "po-link-orders" }

func (j *poLinkOrdersJob) Run(ctx context.Context) error {
	open, err := j.svc.GetOpen(ctx)
	if err != nil {
		if appErr := pkgerrors.As(err); appErr != nil && appErr.Code() == pkgerrors.CodeNotFound {
			j.logg.Info(ctx, "no accepting purchase order; nothing to sweep")
			return nil
		}
		return fmt.Errorf("resolve accepting purchase order: %w", err)
	}

	linked, err := j.svc.LinkPendingOrders(ctx, open.ID)
	if err != nil {
		// Another actor may close the cycle between the lookup and the sweep.
		if appErr := pkgerrors.As(err); appErr != nil && appErr.Code() == pkgerrors.CodeStateConflict {
			j.logg.Info(ctx, "cycle closed mid-sweep; skipping")
			return nil
		}
		return fmt.Errorf("link pending orders: %w", err)
	}

	logCtx := j.logg.WithFields(ctx, map[string]any{
		"po_number": open.PONumber,
		"linked":    linked,
	})
	j.logg.Info(logCtx, "order sweep complete")
	return nil
}
