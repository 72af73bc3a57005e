package shipping

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sivermarket/siver-backend/pkg/db/models"
)

// Repository defines persistence operations for rate configuration and
// destination geography.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	ListBrackets(ctx context.Context) ([]models.ShippingRateBracket, error)
	ReplaceBrackets(ctx context.Context, brackets []models.ShippingRateBracket) error

	ListCategoryRates(ctx context.Context) ([]models.CategoryShippingRate, error)
	FindCategoryRates(ctx context.Context, categoryIDs []uuid.UUID) ([]models.CategoryShippingRate, error)
	UpsertCategoryRate(ctx context.Context, rate *models.CategoryShippingRate) error
	DeleteCategoryRate(ctx context.Context, categoryID uuid.UUID) error

	ListDepartments(ctx context.Context) ([]models.Department, error)
	FindCommuneByID(ctx context.Context, id uuid.UUID) (*models.Commune, error)
	ListCommunes(ctx context.Context, activeOnly bool) ([]models.Commune, error)
	CreateCommune(ctx context.Context, commune *models.Commune) (*models.Commune, error)
	UpdateCommune(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

// RateProvider resolves the bracket table, optionally through a cache.
type RateProvider interface {
	Brackets(ctx context.Context) ([]models.ShippingRateBracket, error)
	Invalidate(ctx context.Context)
}
