package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sivermarket/siver-backend/pkg/db/models"
	"github.com/sivermarket/siver-backend/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a customer order repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.CustomerOrder) (*models.CustomerOrder, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.CustomerOrder, error) {
	var order models.CustomerOrder
	err := r.db.WithContext(ctx).
		Preload("Commune").
		Preload("POLink").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindEligibleUnlinked(ctx context.Context) ([]models.CustomerOrder, error) {
	var orders []models.CustomerOrder
	err := r.db.WithContext(ctx).
		Where("payment_status = ?", enums.PaymentStatusPaid).
		Where("status IN ?", []enums.OrderStatus{enums.OrderStatusPending, enums.OrderStatusConfirmed}).
		Where("id NOT IN (?)",
			r.db.Model(&models.OrderPOLink{}).Select("order_id"),
		).
		Order("created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) FindByPurchaseOrder(ctx context.Context, poID uuid.UUID) ([]models.CustomerOrder, error) {
	var orders []models.CustomerOrder
	err := r.db.WithContext(ctx).
		Preload("Commune").
		Joins("JOIN order_po_links ON order_po_links.order_id = customer_orders.id").
		Where("order_po_links.purchase_order_id = ?", poID).
		Order("customer_orders.created_at ASC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *repository) UpdateStatus(ctx context.Context, ids []uuid.UUID, status enums.OrderStatus) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.CustomerOrder{}).
		Where("id IN ?", ids).
		Update("status", status).Error
}
