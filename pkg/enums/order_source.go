package enums

import "fmt"

// OrderSource identifies which storefront produced a customer order.
type OrderSource string

const (
	OrderSourceB2C        OrderSource = "b2c"
	OrderSourceB2B        OrderSource = "b2b"
	OrderSourceSiverMatch OrderSource = "siver_match"
)

var validOrderSources = []OrderSource{
	OrderSourceB2C,
	OrderSourceB2B,
	OrderSourceSiverMatch,
}

// String implements fmt.Stringer.
func (o OrderSource) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderSource.
func (o OrderSource) IsValid() bool {
	for _, candidate := range validOrderSources {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOrderSource converts raw input into an OrderSource.
func ParseOrderSource(value string) (OrderSource, error) {
	for _, candidate := range validOrderSources {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order source %q", value)
}
