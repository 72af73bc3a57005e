package shipping

import (
	"github.com/sivermarket/siver-backend/pkg/db/models"
)

// KgPerGram and LbPerKg are the conversion constants used across every quote.
const (
	KgPerGram = 0.001
	LbPerKg   = 2.20462
)

// Input carries everything a quote needs. Commune and Brackets come from the
// rate provider; CategorySurcharges holds one configured surcharge per
// distinct cart category.
type Input struct {
	WeightGrams        float64
	ReferencePrice     float64
	Commune            *models.Commune
	Brackets           []models.ShippingRateBracket
	CategorySurcharges []float64
}

// Quote is the full cost breakdown. All values are kept at full float64
// precision; rounding happens only at the API boundary.
type Quote struct {
	WeightKg          float64
	WeightLb          float64
	ChinaUSACost      float64
	USAHaitiCost      float64
	InsuranceCost     float64
	LocalDeliveryFee  float64
	OperationalFee    float64
	CategorySurcharge float64
	Total             float64
}

// Calculate produces a deterministic quote, or nil when the destination
// commune is unresolved or no rate bracket covers any weight. Callers treat
// nil as "cannot quote yet".
func Calculate(in Input) *Quote {
	if in.Commune == nil || len(in.Brackets) == 0 {
		return nil
	}
	if in.WeightGrams < 0 {
		return nil
	}

	kg := in.WeightGrams * KgPerGram
	lb := kg * LbPerKg

	bracket := bracketFor(in.Brackets, kg)
	if bracket == nil {
		return nil
	}

	surcharge := 0.0
	for _, s := range in.CategorySurcharges {
		surcharge += s
	}

	chinaUSA := kg*bracket.ChinaUSACostPerKg + surcharge
	usaHaiti := lb * bracket.USADestCostPerLb

	insurance := in.ReferencePrice * in.Commune.InsuranceRatePercent / 100
	if insurance < 0 {
		insurance = 0
	}

	q := &Quote{
		WeightKg:          kg,
		WeightLb:          lb,
		ChinaUSACost:      chinaUSA,
		USAHaitiCost:      usaHaiti,
		InsuranceCost:     insurance,
		LocalDeliveryFee:  in.Commune.LocalDeliveryFee,
		OperationalFee:    in.Commune.OperationalFee,
		CategorySurcharge: surcharge,
	}
	q.Total = q.ChinaUSACost + q.USAHaitiCost + q.InsuranceCost + q.LocalDeliveryFee + q.OperationalFee
	return q
}

// bracketFor returns the first bracket whose range covers the weight.
// Weights past the largest bracket clamp to the last bracket's rates so
// quotes stay finite and monotonic.
func bracketFor(brackets []models.ShippingRateBracket, kg float64) *models.ShippingRateBracket {
	if len(brackets) == 0 {
		return nil
	}
	for i := range brackets {
		if kg >= brackets[i].MinWeightKg && kg <= brackets[i].MaxWeightKg {
			return &brackets[i]
		}
	}
	last := &brackets[len(brackets)-1]
	if kg > last.MaxWeightKg {
		return last
	}
	return nil
}
