package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sivermarket/siver-backend/internal/consolidation"
	"github.com/sivermarket/siver-backend/pkg/enums"
	pkgerrors "github.com/sivermarket/siver-backend/pkg/errors"
	"github.com/sivermarket/siver-backend/pkg/outbox"
)

type stubSettingsService struct {
	settings *consolidation.SettingsDTO
	err      error
	lastReq  consolidation.UpdateSettingsRequest
}

func (s *stubSettingsService) Get(context.Context) (*consolidation.SettingsDTO, error) {
	return s.settings, s.err
}

func (s *stubSettingsService) Update(_ context.Context, req consolidation.UpdateSettingsRequest, _ *outbox.ActorRef) (*consolidation.SettingsDTO, error) {
	s.lastReq = req
	return s.settings, s.err
}

func TestGetConsolidationSettings(t *testing.T) {
	svc := &stubSettingsService{settings: &consolidation.SettingsDTO{Mode: enums.ConsolidationModeHybrid, TimeIntervalHours: 72, OrderQuantityThreshold: 20}}
	handler := GetConsolidationSettings(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/consolidation/settings", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), `"hybrid"`) {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}
}

func TestUpdateConsolidationSettingsRejectsBadMode(t *testing.T) {
	svc := &stubSettingsService{}
	handler := UpdateConsolidationSettings(svc, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/consolidation/settings", strings.NewReader(`{"mode":"weekly"}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestUpdateConsolidationSettingsPassesFields(t *testing.T) {
	svc := &stubSettingsService{settings: &consolidation.SettingsDTO{Mode: enums.ConsolidationModeQuantity, OrderQuantityThreshold: 30}}
	handler := UpdateConsolidationSettings(svc, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/consolidation/settings", strings.NewReader(`{"mode":"quantity","orderQuantityThreshold":30}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastReq.Mode == nil || *svc.lastReq.Mode != "quantity" {
		t.Fatalf("mode not passed through")
	}
	if svc.lastReq.OrderQuantityThreshold == nil || *svc.lastReq.OrderQuantityThreshold != 30 {
		t.Fatalf("threshold not passed through")
	}
}

func TestUpdateConsolidationSettingsNotSeeded(t *testing.T) {
	svc := &stubSettingsService{err: pkgerrors.New(pkgerrors.CodeNotFound, "consolidation settings not seeded")}
	handler := UpdateConsolidationSettings(svc, nil)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/consolidation/settings", strings.NewReader(`{"isActive":false}`))
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}
