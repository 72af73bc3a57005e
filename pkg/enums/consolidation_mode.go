package enums

import "fmt"

// ConsolidationMode selects the rule family that closes an open purchase order.
type ConsolidationMode string

const (
	ConsolidationModeTime     ConsolidationMode = "time"
	ConsolidationModeQuantity ConsolidationMode = "quantity"
	ConsolidationModeHybrid   ConsolidationMode = "hybrid"
)

var validConsolidationModes = []ConsolidationMode{
	ConsolidationModeTime,
	ConsolidationModeQuantity,
	ConsolidationModeHybrid,
}

// String implements fmt.Stringer.
func (c ConsolidationMode) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ConsolidationMode.
func (c ConsolidationMode) IsValid() bool {
	for _, candidate := range validConsolidationModes {
		if candidate == c {
			return true
		}
	}
	return false
}

// UsesTime reports whether the time window condition applies.
func (c ConsolidationMode) UsesTime() bool {
	return c == ConsolidationModeTime || c == ConsolidationModeHybrid
}

// UsesQuantity reports whether the order count condition applies.
func (c ConsolidationMode) UsesQuantity() bool {
	return c == ConsolidationModeQuantity || c == ConsolidationModeHybrid
}

// ParseConsolidationMode converts raw input into a ConsolidationMode.
func ParseConsolidationMode(value string) (ConsolidationMode, error) {
	for _, candidate := range validConsolidationModes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid consolidation mode %q", value)
}
