package shipping

import (
	"math"

	"github.com/google/uuid"
)

// QuoteRequest is the public quote input. CommuneID may be absent while the
// customer is still picking a destination.
type QuoteRequest struct {
	CommuneID      *uuid.UUID  `json:"communeId" validate:"omitempty"`
	WeightGrams    float64     `json:"weightGrams" validate:"gte=0"`
	ReferencePrice float64     `json:"referencePrice" validate:"gte=0"`
	CategoryIDs    []uuid.UUID `json:"categoryIds" validate:"omitempty,dive,required"`
}

// QuoteBreakdown is the API-facing quote, rounded to cents.
type QuoteBreakdown struct {
	WeightKg          float64 `json:"weightKg"`
	WeightLb          float64 `json:"weightLb"`
	ChinaUSACost      float64 `json:"chinaUsaCost"`
	USAHaitiCost      float64 `json:"usaHaitiCost"`
	InsuranceCost     float64 `json:"insuranceCost"`
	LocalDeliveryFee  float64 `json:"localDeliveryFee"`
	OperationalFee    float64 `json:"operationalFee"`
	CategorySurcharge float64 `json:"categorySurcharge"`
	Total             float64 `json:"total"`
}

// QuoteResponse wraps the breakdown; Quoted is false when the destination is
// not resolvable yet.
type QuoteResponse struct {
	Quoted bool            `json:"quoted"`
	Quote  *QuoteBreakdown `json:"quote,omitempty"`
}

// CommuneDTO is the read shape for destination communes.
type CommuneDTO struct {
	ID                   uuid.UUID `json:"id"`
	DepartmentID         uuid.UUID `json:"departmentId"`
	Code                 string    `json:"code"`
	Name                 string    `json:"name"`
	LocalDeliveryFee     float64   `json:"localDeliveryFee"`
	OperationalFee       float64   `json:"operationalFee"`
	InsuranceRatePercent float64   `json:"insuranceRatePercent"`
	Active               bool      `json:"active"`
}

// CreateCommuneRequest is the admin input for a new commune.
type CreateCommuneRequest struct {
	DepartmentID         uuid.UUID `json:"departmentId" validate:"required"`
	Code                 string    `json:"code" validate:"required"`
	Name                 string    `json:"name" validate:"required"`
	LocalDeliveryFee     float64   `json:"localDeliveryFee" validate:"gte=0"`
	OperationalFee       float64   `json:"operationalFee" validate:"gte=0"`
	InsuranceRatePercent float64   `json:"insuranceRatePercent" validate:"gte=0"`
}

// UpdateCommuneRequest carries partial commune updates.
type UpdateCommuneRequest struct {
	Name                 *string  `json:"name" validate:"omitempty,min=1"`
	LocalDeliveryFee     *float64 `json:"localDeliveryFee" validate:"omitempty,gte=0"`
	OperationalFee       *float64 `json:"operationalFee" validate:"omitempty,gte=0"`
	InsuranceRatePercent *float64 `json:"insuranceRatePercent" validate:"omitempty,gte=0"`
	Active               *bool    `json:"active"`
}

// BracketDTO is one weight band in admin reads and writes.
type BracketDTO struct {
	MinWeightKg       float64 `json:"minWeightKg" validate:"gte=0"`
	MaxWeightKg       float64 `json:"maxWeightKg" validate:"gtfield=MinWeightKg"`
	ChinaUSACostPerKg float64 `json:"chinaUsaCostPerKg" validate:"gte=0"`
	USADestCostPerLb  float64 `json:"usaDestCostPerLb" validate:"gte=0"`
	Position          int     `json:"position" validate:"gte=0"`
}

// ReplaceBracketsRequest swaps the full rate table.
type ReplaceBracketsRequest struct {
	Brackets []BracketDTO `json:"brackets" validate:"required,min=1,dive"`
}

// CategoryRateRequest upserts one category surcharge.
type CategoryRateRequest struct {
	CategoryID uuid.UUID `json:"categoryId" validate:"required"`
	Surcharge  float64   `json:"surcharge" validate:"gte=0"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func toBreakdown(q *Quote) *QuoteBreakdown {
	if q == nil {
		return nil
	}
	return &QuoteBreakdown{
		WeightKg:          round2(q.WeightKg),
		WeightLb:          round2(q.WeightLb),
		ChinaUSACost:      round2(q.ChinaUSACost),
		USAHaitiCost:      round2(q.USAHaitiCost),
		InsuranceCost:     round2(q.InsuranceCost),
		LocalDeliveryFee:  round2(q.LocalDeliveryFee),
		OperationalFee:    round2(q.OperationalFee),
		CategorySurcharge: round2(q.CategorySurcharge),
		Total:             round2(q.Total),
	}
}
