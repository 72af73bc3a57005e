package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sivermarket/siver-backend/internal/consolidation"
	"github.com/sivermarket/siver-backend/internal/shipping"
	pkgAuth "github.com/sivermarket/siver-backend/pkg/auth"
	"github.com/sivermarket/siver-backend/pkg/config"
	"github.com/sivermarket/siver-backend/pkg/db/models"
	"github.com/sivermarket/siver-backend/pkg/enums"
	"github.com/sivermarket/siver-backend/pkg/logger"
	"github.com/sivermarket/siver-backend/pkg/outbox"
	"github.com/sivermarket/siver-backend/pkg/pagination"
	"github.com/sivermarket/siver-backend/pkg/redis"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubShippingService struct{}

func (stubShippingService) Quote(context.Context, shipping.QuoteRequest) (*shipping.QuoteResponse, error) {
	return &shipping.QuoteResponse{Quoted: false}, nil
}

func (stubShippingService) ListCommunes(context.Context, bool) ([]shipping.CommuneDTO, error) {
	return nil, nil
}

func (stubShippingService) ListDepartments(context.Context) ([]models.Department, error) {
	return nil, nil
}

func (stubShippingService) ListBrackets(context.Context) ([]models.ShippingRateBracket, error) {
	return nil, nil
}

func (stubShippingService) ListCategoryRates(context.Context) ([]models.CategoryShippingRate, error) {
	return nil, nil
}

func (stubShippingService) CreateCommune(context.Context, shipping.CreateCommuneRequest) (*shipping.CommuneDTO, error) {
	return &shipping.CommuneDTO{}, nil
}

func (stubShippingService) UpdateCommune(context.Context, uuid.UUID, shipping.UpdateCommuneRequest) error {
	return nil
}

func (stubShippingService) ReplaceBrackets(context.Context, shipping.ReplaceBracketsRequest) error {
	return nil
}

func (stubShippingService) UpsertCategoryRate(context.Context, shipping.CategoryRateRequest) error {
	return nil
}

func (stubShippingService) DeleteCategoryRate(context.Context, uuid.UUID) error {
	return nil
}

type stubConsolidationService struct{}

func (stubConsolidationService) Open(context.Context, *outbox.ActorRef) (*consolidation.PODTO, error) {
	return &consolidation.PODTO{}, nil
}

func (stubConsolidationService) LinkPendingOrders(context.Context, uuid.UUID) (int, error) {
	return 0, nil
}

func (stubConsolidationService) EvaluateAutoClose(context.Context) (bool, error) {
	return false, nil
}

func (stubConsolidationService) Close(context.Context, uuid.UUID, string, *outbox.ActorRef) error {
	return nil
}

func (stubConsolidationService) AssignChinaTracking(context.Context, uuid.UUID, string, *outbox.ActorRef) error {
	return nil
}

func (stubConsolidationService) AdvanceStage(context.Context, uuid.UUID, enums.POStatus, *outbox.ActorRef) error {
	return nil
}

func (stubConsolidationService) Get(context.Context, uuid.UUID) (*consolidation.PODetail, error) {
	return &consolidation.PODetail{}, nil
}

func (stubConsolidationService) GetOpen(context.Context) (*consolidation.PODetail, error) {
	return &consolidation.PODetail{}, nil
}

func (stubConsolidationService) List(context.Context, pagination.Params, consolidation.ListFilters) (*consolidation.POListDTO, error) {
	return &consolidation.POListDTO{}, nil
}

func (stubConsolidationService) Manifest(context.Context, uuid.UUID) (*consolidation.Manifest, error) {
	return &consolidation.Manifest{}, nil
}

type stubSettingsService struct{}

func (stubSettingsService) Get(context.Context) (*consolidation.SettingsDTO, error) {
	return &consolidation.SettingsDTO{}, nil
}

func (stubSettingsService) Update(context.Context, consolidation.UpdateSettingsRequest, *outbox.ActorRef) (*consolidation.SettingsDTO, error) {
	return &consolidation.SettingsDTO{}, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		(*redis.Client)(nil),
		stubShippingService{},
		stubConsolidationService{},
		stubSettingsService{},
	)
}

func buildToken(t *testing.T, cfg *config.Config, role enums.ActorRole) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestShippingQuoteIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/shipping/quote", strings.NewReader(`{"weightGrams":500,"referencePrice":10}`))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
}

func TestPurchaseOrdersRequireJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/purchase-orders/open", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestPurchaseOrderMutationsRequireAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	ops := httptest.NewRequest(http.MethodPost, "/api/v1/purchase-orders", nil)
	ops.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleOps))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, ops)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for ops role got %d", resp.Code)
	}

	// Past the role gate the idempotency layer asks for a key.
	admin := httptest.NewRequest(http.MethodPost, "/api/v1/purchase-orders", nil)
	admin.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleAdmin))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, admin)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without idempotency key got %d", resp.Code)
	}
}

func TestPurchaseOrderReadsAllowOpsRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/purchase-orders/open", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleOps))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for ops read got %d", resp.Code)
	}
}

func TestSettingsUpdateRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/consolidation/settings", strings.NewReader(`{"isActive":true}`))
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.RoleOps))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for ops settings update got %d", resp.Code)
	}
}
