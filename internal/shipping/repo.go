package shipping

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sivermarket/siver-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a shipping rate repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ListBrackets(ctx context.Context) ([]models.ShippingRateBracket, error) {
	var brackets []models.ShippingRateBracket
	err := r.db.WithContext(ctx).
		Order("position ASC").
		Find(&brackets).Error
	if err != nil {
		return nil, err
	}
	return brackets, nil
}

// ReplaceBrackets swaps the whole table. Bracket invariants are global, so
// partial edits are not supported.
func (r *repository) ReplaceBrackets(ctx context.Context, brackets []models.ShippingRateBracket) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.ShippingRateBracket{}).Error; err != nil {
			return err
		}
		if len(brackets) == 0 {
			return nil
		}
		return tx.Create(&brackets).Error
	})
}

func (r *repository) ListCategoryRates(ctx context.Context) ([]models.CategoryShippingRate, error) {
	var rates []models.CategoryShippingRate
	err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rates).Error
	if err != nil {
		return nil, err
	}
	return rates, nil
}

func (r *repository) FindCategoryRates(ctx context.Context, categoryIDs []uuid.UUID) ([]models.CategoryShippingRate, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}
	var rates []models.CategoryShippingRate
	err := r.db.WithContext(ctx).
		Where("category_id IN ?", categoryIDs).
		Find(&rates).Error
	if err != nil {
		return nil, err
	}
	return rates, nil
}

func (r *repository) UpsertCategoryRate(ctx context.Context, rate *models.CategoryShippingRate) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "category_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"surcharge", "updated_at"}),
		}).
		Create(rate).Error
}

func (r *repository) DeleteCategoryRate(ctx context.Context, categoryID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Delete(&models.CategoryShippingRate{}).Error
}

func (r *repository) ListDepartments(ctx context.Context) ([]models.Department, error) {
	var departments []models.Department
	err := r.db.WithContext(ctx).
		Preload("Communes").
		Order("code ASC").
		Find(&departments).Error
	if err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *repository) FindCommuneByID(ctx context.Context, id uuid.UUID) (*models.Commune, error) {
	var commune models.Commune
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&commune).Error
	if err != nil {
		return nil, err
	}
	return &commune, nil
}

func (r *repository) ListCommunes(ctx context.Context, activeOnly bool) ([]models.Commune, error) {
	q := r.db.WithContext(ctx).Order("code ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var communes []models.Commune
	if err := q.Find(&communes).Error; err != nil {
		return nil, err
	}
	return communes, nil
}

func (r *repository) CreateCommune(ctx context.Context, commune *models.Commune) (*models.Commune, error) {
	if err := r.db.WithContext(ctx).Create(commune).Error; err != nil {
		return nil, err
	}
	return commune, nil
}

func (r *repository) UpdateCommune(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Commune{}).
		Where("id = ?", id).
		Updates(updates).Error
}
