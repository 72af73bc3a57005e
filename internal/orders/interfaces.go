package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sivermarket/siver-backend/pkg/db/models"
	"github.com/sivermarket/siver-backend/pkg/enums"
)

// Repository defines persistence operations for customer orders.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.CustomerOrder) (*models.CustomerOrder, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.CustomerOrder, error)
	// FindEligibleUnlinked returns paid orders still awaiting consolidation:
	// eligible status, no existing PO link.
	FindEligibleUnlinked(ctx context.Context) ([]models.CustomerOrder, error)
	FindByPurchaseOrder(ctx context.Context, poID uuid.UUID) ([]models.CustomerOrder, error)
	UpdateStatus(ctx context.Context, ids []uuid.UUID, status enums.OrderStatus) error
}
