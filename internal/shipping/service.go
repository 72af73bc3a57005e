package shipping

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sivermarket/siver-backend/pkg/db/models"
	pkgerrors "github.com/sivermarket/siver-backend/pkg/errors"
	"github.com/sivermarket/siver-backend/pkg/metrics"
)

// Service exposes quoting plus the admin rate-configuration surface.
type Service interface {
	Quote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error)
	ListCommunes(ctx context.Context, activeOnly bool) ([]CommuneDTO, error)
	ListDepartments(ctx context.Context) ([]models.Department, error)
	ListBrackets(ctx context.Context) ([]models.ShippingRateBracket, error)
	ListCategoryRates(ctx context.Context) ([]models.CategoryShippingRate, error)
	CreateCommune(ctx context.Context, req CreateCommuneRequest) (*CommuneDTO, error)
	UpdateCommune(ctx context.Context, id uuid.UUID, req UpdateCommuneRequest) error
	ReplaceBrackets(ctx context.Context, req ReplaceBracketsRequest) error
	UpsertCategoryRate(ctx context.Context, req CategoryRateRequest) error
	DeleteCategoryRate(ctx context.Context, categoryID uuid.UUID) error
}

type service struct {
	repo    Repository
	rates   RateProvider
	metrics *metrics.ShippingMetrics
}

// NewService builds the shipping service.
func NewService(repo Repository, rates RateProvider, m *metrics.ShippingMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("shipping repository required")
	}
	if rates == nil {
		return nil, fmt.Errorf("rate provider required")
	}
	return &service{repo: repo, rates: rates, metrics: m}, nil
}

func (s *service) Quote(ctx context.Context, req QuoteRequest) (*QuoteResponse, error) {
	if req.WeightGrams < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "weight must be non-negative")
	}
	if req.ReferencePrice < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reference price must be non-negative")
	}

	if req.CommuneID == nil {
		s.metrics.IncUnresolved()
		return &QuoteResponse{Quoted: false}, nil
	}

	commune, err := s.repo.FindCommuneByID(ctx, *req.CommuneID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.metrics.IncUnresolved()
			return &QuoteResponse{Quoted: false}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load commune")
	}
	if !commune.Active {
		s.metrics.IncUnresolved()
		return &QuoteResponse{Quoted: false}, nil
	}

	brackets, err := s.rates.Brackets(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load rate table")
	}

	surcharges, err := s.categorySurcharges(ctx, req.CategoryIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load category rates")
	}

	quote := Calculate(Input{
		WeightGrams:        req.WeightGrams,
		ReferencePrice:     req.ReferencePrice,
		Commune:            commune,
		Brackets:           brackets,
		CategorySurcharges: surcharges,
	})
	if quote == nil {
		s.metrics.IncUnresolved()
		return &QuoteResponse{Quoted: false}, nil
	}

	s.metrics.IncQuote(commune.Code)
	return &QuoteResponse{Quoted: true, Quote: toBreakdown(quote)}, nil
}

// categorySurcharges resolves one surcharge per distinct configured category.
func (s *service) categorySurcharges(ctx context.Context, categoryIDs []uuid.UUID) ([]float64, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}
	seen := map[uuid.UUID]struct{}{}
	distinct := make([]uuid.UUID, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}
	rates, err := s.repo.FindCategoryRates(ctx, distinct)
	if err != nil {
		return nil, err
	}
	surcharges := make([]float64, 0, len(rates))
	for _, r := range rates {
		surcharges = append(surcharges, r.Surcharge)
	}
	return surcharges, nil
}

func (s *service) ListCommunes(ctx context.Context, activeOnly bool) ([]CommuneDTO, error) {
	communes, err := s.repo.ListCommunes(ctx, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list communes")
	}
	out := make([]CommuneDTO, 0, len(communes))
	for _, c := range communes {
		out = append(out, communeDTO(c))
	}
	return out, nil
}

func (s *service) ListDepartments(ctx context.Context) ([]models.Department, error) {
	departments, err := s.repo.ListDepartments(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list departments")
	}
	return departments, nil
}

func (s *service) ListBrackets(ctx context.Context) ([]models.ShippingRateBracket, error) {
	brackets, err := s.rates.Brackets(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load rate table")
	}
	return brackets, nil
}

func (s *service) ListCategoryRates(ctx context.Context) ([]models.CategoryShippingRate, error) {
	rates, err := s.repo.ListCategoryRates(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list category rates")
	}
	return rates, nil
}

func (s *service) CreateCommune(ctx context.Context, req CreateCommuneRequest) (*CommuneDTO, error) {
	code := strings.TrimSpace(req.Code)
	name := strings.TrimSpace(req.Name)
	if code == "" || name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "commune code and name required")
	}

	commune := &models.Commune{
		DepartmentID:         req.DepartmentID,
		Code:                 code,
		Name:                 name,
		LocalDeliveryFee:     req.LocalDeliveryFee,
		OperationalFee:       req.OperationalFee,
		InsuranceRatePercent: req.InsuranceRatePercent,
		Active:               true,
	}
	created, err := s.repo.CreateCommune(ctx, commune)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create commune")
	}
	dto := communeDTO(*created)
	return &dto, nil
}

func (s *service) UpdateCommune(ctx context.Context, id uuid.UUID, req UpdateCommuneRequest) error {
	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.LocalDeliveryFee != nil {
		updates["local_delivery_fee"] = *req.LocalDeliveryFee
	}
	if req.OperationalFee != nil {
		updates["operational_fee"] = *req.OperationalFee
	}
	if req.InsuranceRatePercent != nil {
		updates["insurance_rate_percent"] = *req.InsuranceRatePercent
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if len(updates) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	if _, err := s.repo.FindCommuneByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "commune not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load commune")
	}
	if err := s.repo.UpdateCommune(ctx, id, updates); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update commune")
	}
	return nil
}

func (s *service) ReplaceBrackets(ctx context.Context, req ReplaceBracketsRequest) error {
	brackets := make([]models.ShippingRateBracket, 0, len(req.Brackets))
	for _, b := range req.Brackets {
		brackets = append(brackets, models.ShippingRateBracket{
			MinWeightKg:       b.MinWeightKg,
			MaxWeightKg:       b.MaxWeightKg,
			ChinaUSACostPerKg: b.ChinaUSACostPerKg,
			USADestCostPerLb:  b.USADestCostPerLb,
			Position:          b.Position,
		})
	}
	if err := ValidateBrackets(brackets); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid rate table")
	}
	if err := s.repo.ReplaceBrackets(ctx, brackets); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace rate table")
	}
	s.rates.Invalidate(ctx)
	return nil
}

func (s *service) UpsertCategoryRate(ctx context.Context, req CategoryRateRequest) error {
	if req.CategoryID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}
	rate := &models.CategoryShippingRate{
		CategoryID: req.CategoryID,
		Surcharge:  req.Surcharge,
	}
	if err := s.repo.UpsertCategoryRate(ctx, rate); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upsert category rate")
	}
	return nil
}

func (s *service) DeleteCategoryRate(ctx context.Context, categoryID uuid.UUID) error {
	if categoryID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}
	if err := s.repo.DeleteCategoryRate(ctx, categoryID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete category rate")
	}
	return nil
}

func communeDTO(c models.Commune) CommuneDTO {
	return CommuneDTO{
		ID:                   c.ID,
		DepartmentID:         c.DepartmentID,
		Code:                 c.Code,
		Name:                 c.Name,
		LocalDeliveryFee:     c.LocalDeliveryFee,
		OperationalFee:       c.OperationalFee,
		InsuranceRatePercent: c.InsuranceRatePercent,
		Active:               c.Active,
	}
}
