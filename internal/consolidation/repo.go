package consolidation

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sivermarket/siver-backend/pkg/db/models"
	"github.com/sivermarket/siver-backend/pkg/enums"
	"github.com/sivermarket/siver-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a consolidation repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, po *models.PurchaseOrder) (*models.PurchaseOrder, error) {
	if err := r.db.WithContext(ctx).Create(po).Error; err != nil {
		return nil, err
	}
	return po, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error) {
	var po models.PurchaseOrder
	err := r.db.WithContext(ctx).
		Preload("Links").
		Where("id = ?", id).
		First(&po).Error
	if err != nil {
		return nil, err
	}
	return &po, nil
}

func (r *repository) FindAccepting(ctx context.Context, forUpdate bool) (*models.PurchaseOrder, error) {
	accepting := []enums.POStatus{enums.POStatusDraft, enums.POStatusOpen}
	q := r.db.WithContext(ctx).Where("status IN ?", accepting)
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var po models.PurchaseOrder
	if err := q.First(&po).Error; err != nil {
		return nil, err
	}
	return &po, nil
}

// NextSequence derives the next cycle number. POs are never deleted and the
// accepting-PO invariant serializes inserts, so MAX+1 stays monotonic.
func (r *repository) NextSequence(ctx context.Context) (int64, error) {
	var next int64
	err := r.db.WithContext(ctx).
		Model(&models.PurchaseOrder{}).
		Select("COALESCE(MAX(sequence), 0) + 1").
		Scan(&next).Error
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.PurchaseOrder{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) List(ctx context.Context, params pagination.Params, filters ListFilters) (*POList, error) {
	limit := pagination.NormalizeLimit(params.Limit)
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	q := r.db.WithContext(ctx).Model(&models.PurchaseOrder{})
	if filters.Status != nil {
		q = q.Where("status = ?", *filters.Status)
	}
	if cursor != nil {
		q = q.Where(
			"(created_at, id) < (?, ?)",
			cursor.CreatedAt, cursor.ID,
		)
	}

	var rows []models.PurchaseOrder
	err = q.Order("created_at DESC").
		Order("id DESC").
		Limit(limit + 1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	list := &POList{}
	if len(rows) > limit {
		rows = rows[:limit]
		last := rows[len(rows)-1]
		list.NextCursor = pagination.EncodeCursor(pagination.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}
	list.Items = rows
	return list, nil
}

func (r *repository) CreateLinks(ctx context.Context, links []models.OrderPOLink) error {
	if len(links) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&links).Error
}

func (r *repository) FindLinks(ctx context.Context, poID uuid.UUID) ([]models.OrderPOLink, error) {
	var links []models.OrderPOLink
	err := r.db.WithContext(ctx).
		Where("purchase_order_id = ?", poID).
		Order("created_at ASC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (r *repository) UpdateLink(ctx context.Context, linkID uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.OrderPOLink{}).
		Where("id = ?", linkID).
		Updates(updates).Error
}

func (r *repository) UpdateLinksStatus(ctx context.Context, poID uuid.UUID, status enums.POStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.OrderPOLink{}).
		Where("purchase_order_id = ?", poID).
		Update("current_status", status).Error
}

func (r *repository) DepartmentCodes(ctx context.Context) (map[uuid.UUID]string, error) {
	var departments []models.Department
	if err := r.db.WithContext(ctx).Find(&departments).Error; err != nil {
		return nil, err
	}
	codes := make(map[uuid.UUID]string, len(departments))
	for _, d := range departments {
		codes[d.ID] = d.Code
	}
	return codes, nil
}

func (r *repository) GetSettings(ctx context.Context) (*models.ConsolidationSettings, error) {
	var settings models.ConsolidationSettings
	err := r.db.WithContext(ctx).
		Where("id = ?", models.SettingsSingletonID).
		First(&settings).Error
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *repository) UpdateSettings(ctx context.Context, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.ConsolidationSettings{}).
		Where("id = ?", models.SettingsSingletonID).
		Updates(updates).Error
}
