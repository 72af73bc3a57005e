package models

import (
	"time"

	"github.com/google/uuid"
)

// ShippingRateBracket is one weight band of the multi-leg rate table.
// Brackets must be contiguous, non-overlapping, and ascending by MinWeightKg;
// the shipping rate provider validates the full table on load.
type ShippingRateBracket struct {
	ID                uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MinWeightKg       float64   `gorm:"column:min_weight_kg;not null"`
	MaxWeightKg       float64   `gorm:"column:max_weight_kg;not null"`
	ChinaUSACostPerKg float64   `gorm:"column:china_usa_cost_per_kg;not null"`
	USADestCostPerLb  float64   `gorm:"column:usa_dest_cost_per_lb;not null"`
	Position          int       `gorm:"column:position;not null;uniqueIndex"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// CategoryShippingRate is an additive China-leg surcharge applied once per
// product category present in a cart (oversize furniture and the like).
type CategoryShippingRate struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	CategoryID uuid.UUID `gorm:"column:category_id;type:uuid;not null;uniqueIndex"`
	Surcharge  float64   `gorm:"column:surcharge;not null;default:0"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
