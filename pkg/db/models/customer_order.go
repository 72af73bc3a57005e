package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sivermarket/siver-backend/pkg/enums"
)

// CustomerOrder is a storefront order (B2C or B2B) awaiting consolidation
// into a purchase order cycle.
type CustomerOrder struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber   string              `gorm:"column:order_number;not null;uniqueIndex"`
	Source        enums.OrderSource   `gorm:"column:source;type:text;not null"`
	Status        enums.OrderStatus   `gorm:"column:status;type:text;not null;default:'pending'"`
	PaymentStatus enums.PaymentStatus `gorm:"column:payment_status;type:text;not null;default:'unpaid'"`
	CommuneID     uuid.UUID           `gorm:"column:commune_id;type:uuid;not null"`
	UnitCount     int                 `gorm:"column:unit_count;not null;default:0"`
	WeightGrams   float64             `gorm:"column:weight_grams;not null;default:0"`
	TotalAmount   decimal.Decimal     `gorm:"column:total_amount;type:numeric(12,2);not null;default:0"`
	Commune       *Commune            `gorm:"foreignKey:CommuneID"`
	POLink        *OrderPOLink        `gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}
