package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/sivermarket/siver-backend/internal/consolidation"
	pkgerrors "github.com/sivermarket/siver-backend/pkg/errors"
	"github.com/sivermarket/siver-backend/pkg/logger"
)

type fakeEngine struct {
	open       *consolidation.PODetail
	openErr    error
	linkErr    error
	linked     int
	linkCalls  int
	lastLinkID uuid.UUID
}

func (f *fakeEngine) GetOpen(context.Context) (*consolidation.PODetail, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return f.open, nil
}

func (f *fakeEngine) LinkPendingOrders(_ context.Context, poID uuid.UUID) (int, error) {
	f.linkCalls++
	f.lastLinkID = poID
	if f.linkErr != nil {
		return 0, f.linkErr
	}
	return f.linked, nil
}

func newLinkJob(t *testing.T, engine *fakeEngine) Job {
	t.Helper()
	job, err := NewPOLinkOrdersJob(POLinkOrdersJobParams{
		Logger:  logger.New(logger.Options{ServiceName: "test"}),
		Service: engine,
	})
	if err != nil {
		t.Fatalf("NewPOLinkOrdersJob: %v", err)
	}
	return job
}

func TestPOLinkOrdersJobSweepsIntoOpenCycle(t *testing.T) {
	poID := uuid.New()
	detail := &consolidation.PODetail{}
	detail.ID = poID
	detail.PONumber = "PO-2026-0001"
	engine := &fakeEngine{open: detail, linked: 3}

	if err := newLinkJob(t, engine).Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if engine.linkCalls != 1 || engine.lastLinkID != poID {
		t.Fatalf("expected one sweep against %s, got %d against %s", poID, engine.linkCalls, engine.lastLinkID)
	}
}

func TestPOLinkOrdersJobNoOpWithoutOpenCycle(t *testing.T) {
	engine := &fakeEngine{openErr: pkgerrors.New(pkgerrors.CodeNotFound, "no purchase order is accepting orders")}

	if err := newLinkJob(t, engine).Run(context.Background()); err != nil {
		t.Fatalf("expected benign no-op, got %v", err)
	}
	if engine.linkCalls != 0 {
		t.Fatalf("sweep should not run without an open cycle")
	}
}

func TestPOLinkOrdersJobToleratesMidSweepClose(t *testing.T) {
	detail := &consolidation.PODetail{}
	detail.ID = uuid.New()
	engine := &fakeEngine{
		open:    detail,
		linkErr: pkgerrors.New(pkgerrors.CodeStateConflict, "purchase order no longer accepts orders"),
	}

	if err := newLinkJob(t, engine).Run(context.Background()); err != nil {
		t.Fatalf("expected benign no-op, got %v", err)
	}
}

func TestPOLinkOrdersJobPropagatesUnexpectedErrors(t *testing.T) {
	engine := &fakeEngine{openErr: errors.New("db down")}

	if err := newLinkJob(t, engine).Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}
