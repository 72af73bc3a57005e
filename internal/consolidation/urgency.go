package consolidation

import (
	"time"

	"github.com/sivermarket/siver-backend/pkg/enums"
)

// CycleStats is the input to the urgency classifier.
type CycleStats struct {
	Mode              enums.ConsolidationMode
	TotalOrders       int
	QuantityThreshold int
	Elapsed           time.Duration
	TimeInterval      time.Duration
}

// UrgencyFor classifies how close an open cycle is to auto-closing. Pure and
// UI-only; the engine never consults it.
func UrgencyFor(stats CycleStats) enums.UrgencyLevel {
	pct := 0.0
	if stats.Mode.UsesQuantity() && stats.QuantityThreshold > 0 {
		qty := float64(stats.TotalOrders) / float64(stats.QuantityThreshold) * 100
		if qty > pct {
			pct = qty
		}
	}
	if stats.Mode.UsesTime() && stats.TimeInterval > 0 {
		t := float64(stats.Elapsed) / float64(stats.TimeInterval) * 100
		if t > pct {
			pct = t
		}
	}

	switch {
	case pct >= 100:
		return enums.UrgencyCritical
	case pct >= 80:
		return enums.UrgencyHigh
	case pct >= 50:
		return enums.UrgencyMedium
	default:
		return enums.UrgencyLow
	}
}
