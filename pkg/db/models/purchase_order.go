package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sivermarket/siver-backend/pkg/enums"
)

// PurchaseOrder is one consolidation cycle. A partial unique index on status
// guarantees at most one row sits in draft/open at any time; the engine
// still checks in-transaction so the conflict surfaces before insert.
type PurchaseOrder struct {
	ID                  uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PONumber            string          `gorm:"column:po_number;not null;uniqueIndex"`
	Sequence            int64           `gorm:"column:sequence;not null"`
	Status              enums.POStatus  `gorm:"column:status;type:text;not null;default:'open'"`
	CycleStartAt        time.Time       `gorm:"column:cycle_start_at;not null"`
	ClosedAt            *time.Time      `gorm:"column:closed_at"`
	CompletedAt         *time.Time      `gorm:"column:completed_at"`
	ChinaTrackingNumber *string         `gorm:"column:china_tracking_number"`
	TotalOrders         int             `gorm:"column:total_orders;not null;default:0"`
	TotalQuantity       int             `gorm:"column:total_quantity;not null;default:0"`
	TotalAmount         decimal.Decimal `gorm:"column:total_amount;type:numeric(14,2);not null;default:0"`
	Links               []OrderPOLink   `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE"`
	CreatedAt           time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt           time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// OrderPOLink joins a customer order to the purchase order that carries it.
// OrderID is unique: an order joins at most one cycle, ever.
type OrderPOLink struct {
	ID               uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PurchaseOrderID  uuid.UUID         `gorm:"column:purchase_order_id;type:uuid;not null;index"`
	OrderID          uuid.UUID         `gorm:"column:order_id;type:uuid;not null;uniqueIndex:ux_order_po_links_order"`
	Source           enums.OrderSource `gorm:"column:source;type:text;not null"`
	HybridTrackingID *string           `gorm:"column:hybrid_tracking_id"`
	UnitCount        int               `gorm:"column:unit_count;not null;default:0"`
	CurrentStatus    enums.POStatus    `gorm:"column:current_status;type:text;not null"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
