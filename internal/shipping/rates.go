package shipping

import (
	"fmt"
	"math"
	"sort"

	"github.com/sivermarket/siver-backend/pkg/db/models"
)

// bracketEpsilon absorbs float drift when checking contiguity.
const bracketEpsilon = 1e-9

// SortBrackets orders the table by position for lookup and validation.
func SortBrackets(brackets []models.ShippingRateBracket) {
	sort.Slice(brackets, func(i, j int) bool {
		return brackets[i].Position < brackets[j].Position
	})
}

// ValidateBrackets checks the rate table invariants: non-empty, starts at
// zero, each bracket well-formed, contiguous with its neighbor, ascending by
// min weight, non-negative rates.
func ValidateBrackets(brackets []models.ShippingRateBracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("rate table is empty")
	}

	sorted := make([]models.ShippingRateBracket, len(brackets))
	copy(sorted, brackets)
	SortBrackets(sorted)

	if math.Abs(sorted[0].MinWeightKg) > bracketEpsilon {
		return fmt.Errorf("first bracket must start at 0kg, got %.4f", sorted[0].MinWeightKg)
	}

	for i, b := range sorted {
		if b.MaxWeightKg <= b.MinWeightKg {
			return fmt.Errorf("bracket %d: max weight %.4f must exceed min weight %.4f", b.Position, b.MaxWeightKg, b.MinWeightKg)
		}
		if b.ChinaUSACostPerKg < 0 || b.USADestCostPerLb < 0 {
			return fmt.Errorf("bracket %d: negative rate", b.Position)
		}
		if i == 0 {
			continue
		}
		prev := sorted[i-1]
		if b.MinWeightKg <= prev.MinWeightKg {
			return fmt.Errorf("bracket %d: min weight not ascending", b.Position)
		}
		gap := b.MinWeightKg - prev.MaxWeightKg
		if gap > bracketEpsilon {
			return fmt.Errorf("gap between brackets %d and %d (%.4f..%.4f)", prev.Position, b.Position, prev.MaxWeightKg, b.MinWeightKg)
		}
		if gap < -bracketEpsilon {
			return fmt.Errorf("overlap between brackets %d and %d (%.4f..%.4f)", prev.Position, b.Position, b.MinWeightKg, prev.MaxWeightKg)
		}
	}
	return nil
}
