package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sivermarket/siver-backend/internal/consolidation"
	"github.com/sivermarket/siver-backend/pkg/enums"
	pkgerrors "github.com/sivermarket/siver-backend/pkg/errors"
	"github.com/sivermarket/siver-backend/pkg/outbox"
	"github.com/sivermarket/siver-backend/pkg/pagination"
)

type stubConsolidationService struct {
	openPO      *consolidation.PODTO
	openErr     error
	detail      *consolidation.PODetail
	detailErr   error
	list        *consolidation.POListDTO
	closeErr    error
	closeReason string
	trackingErr error
	tracking    string
	advanceErr  error
	advancedTo  enums.POStatus
	manifest    *consolidation.Manifest
}

func (s *stubConsolidationService) Open(context.Context, *outbox.ActorRef) (*consolidation.PODTO, error) {
	return s.openPO, s.openErr
}

func (s *stubConsolidationService) LinkPendingOrders(context.Context, uuid.UUID) (int, error) {
	return 0, nil
}

func (s *stubConsolidationService) EvaluateAutoClose(context.Context) (bool, error) {
	return false, nil
}

func (s *stubConsolidationService) Close(_ context.Context, _ uuid.UUID, reason string, _ *outbox.ActorRef) error {
	s.closeReason = reason
	return s.closeErr
}

func (s *stubConsolidationService) AssignChinaTracking(_ context.Context, _ uuid.UUID, trackingNumber string, _ *outbox.ActorRef) error {
	s.tracking = trackingNumber
	return s.trackingErr
}

func (s *stubConsolidationService) AdvanceStage(_ context.Context, _ uuid.UUID, next enums.POStatus, _ *outbox.ActorRef) error {
	s.advancedTo = next
	return s.advanceErr
}

func (s *stubConsolidationService) Get(context.Context, uuid.UUID) (*consolidation.PODetail, error) {
	return s.detail, s.detailErr
}

func (s *stubConsolidationService) GetOpen(context.Context) (*consolidation.PODetail, error) {
	return s.detail, s.detailErr
}

func (s *stubConsolidationService) List(context.Context, pagination.Params, consolidation.ListFilters) (*consolidation.POListDTO, error) {
	return s.list, nil
}

func (s *stubConsolidationService) Manifest(context.Context, uuid.UUID) (*consolidation.Manifest, error) {
	return s.manifest, nil
}

func poRequest(method, target, pattern string, body string) (*http.Request, *httptest.ResponseRecorder) {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rc := chi.NewRouteContext()
	rc.RoutePatterns = []string{pattern}
	if id := strings.Trim(strings.TrimPrefix(target, "/api/v1/purchase-orders/"), "/"); id != "" {
		rc.URLParams.Add("poId", strings.SplitN(id, "/", 2)[0])
	}
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))
	return req, httptest.NewRecorder()
}

func TestOpenPurchaseOrderReturnsCreated(t *testing.T) {
	svc := &stubConsolidationService{openPO: &consolidation.PODTO{ID: uuid.New(), PONumber: "PO-2026-0001", Status: enums.POStatusOpen}}
	handler := OpenPurchaseOrder(svc, nil)

	req, resp := poRequest(http.MethodPost, "/api/v1/purchase-orders", "/api/v1/purchase-orders", "")
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d", resp.Code)
	}
	var payload struct {
		Data consolidation.PODTO `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("parse response: %v", err)
	}
	if payload.Data.PONumber != "PO-2026-0001" {
		t.Fatalf("unexpected body: %s", resp.Body.String())
	}
}

func TestOpenPurchaseOrderConflict(t *testing.T) {
	svc := &stubConsolidationService{openErr: pkgerrors.New(pkgerrors.CodeConflict, "a purchase order is already accepting orders")}
	handler := OpenPurchaseOrder(svc, nil)

	req, resp := poRequest(http.MethodPost, "/api/v1/purchase-orders", "/api/v1/purchase-orders", "")
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusConflict {
		t.Fatalf("expected 409 got %d", resp.Code)
	}
}

func TestClosePurchaseOrderPassesReason(t *testing.T) {
	svc := &stubConsolidationService{}
	handler := ClosePurchaseOrder(svc, nil)

	id := uuid.New()
	req, resp := poRequest(http.MethodPost, "/api/v1/purchase-orders/"+id.String()+"/close", "/api/v1/purchase-orders/{poId}/close", `{"reason":"manual"}`)
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.closeReason != "manual" {
		t.Fatalf("expected reason manual got %q", svc.closeReason)
	}
}

func TestClosePurchaseOrderRejectsBadID(t *testing.T) {
	handler := ClosePurchaseOrder(&stubConsolidationService{}, nil)

	req, resp := poRequest(http.MethodPost, "/api/v1/purchase-orders/not-a-uuid/close", "/api/v1/purchase-orders/{poId}/close", `{}`)
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestAssignTrackingRequiresNumber(t *testing.T) {
	svc := &stubConsolidationService{}
	handler := AssignPurchaseOrderTracking(svc, nil)

	id := uuid.New()
	req, resp := poRequest(http.MethodPost, "/api/v1/purchase-orders/"+id.String()+"/tracking", "/api/v1/purchase-orders/{poId}/tracking", `{}`)
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.tracking != "" {
		t.Fatalf("service should not be called on invalid body")
	}
}

func TestAssignTrackingSuccess(t *testing.T) {
	svc := &stubConsolidationService{}
	handler := AssignPurchaseOrderTracking(svc, nil)

	id := uuid.New()
	req, resp := poRequest(http.MethodPost, "/api/v1/purchase-orders/"+id.String()+"/tracking", "/api/v1/purchase-orders/{poId}/tracking", `{"trackingNumber":"CN12345"}`)
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.tracking != "CN12345" {
		t.Fatalf("expected tracking CN12345 got %q", svc.tracking)
	}
}

func TestAdvanceStageParsesStatus(t *testing.T) {
	svc := &stubConsolidationService{}
	handler := AdvancePurchaseOrderStage(svc, nil)

	id := uuid.New()
	req, resp := poRequest(http.MethodPost, "/api/v1/purchase-orders/"+id.String()+"/advance", "/api/v1/purchase-orders/{poId}/advance", `{"next":"in_transit_usa"}`)
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.advancedTo != enums.POStatusInTransitUSA {
		t.Fatalf("expected in_transit_usa got %s", svc.advancedTo)
	}
}

func TestAdvanceStageRejectsUnknownStatus(t *testing.T) {
	svc := &stubConsolidationService{}
	handler := AdvancePurchaseOrderStage(svc, nil)

	id := uuid.New()
	req, resp := poRequest(http.MethodPost, "/api/v1/purchase-orders/"+id.String()+"/advance", "/api/v1/purchase-orders/{poId}/advance", `{"next":"teleported"}`)
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestGetOpenPurchaseOrderNotFound(t *testing.T) {
	svc := &stubConsolidationService{detailErr: pkgerrors.New(pkgerrors.CodeNotFound, "no purchase order is accepting orders")}
	handler := GetOpenPurchaseOrder(svc, nil)

	req, resp := poRequest(http.MethodGet, "/api/v1/purchase-orders/open", "/api/v1/purchase-orders/open", "")
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestListPurchaseOrdersRejectsBadStatus(t *testing.T) {
	svc := &stubConsolidationService{list: &consolidation.POListDTO{}}
	handler := ListPurchaseOrders(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/purchase-orders?status=bogus", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
