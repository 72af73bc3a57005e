package enums

// UrgencyLevel classifies how close an open purchase order is to closing.
// It drives board coloring only, never business decisions.
type UrgencyLevel string

const (
	UrgencyLow      UrgencyLevel = "low"
	UrgencyMedium   UrgencyLevel = "medium"
	UrgencyHigh     UrgencyLevel = "high"
	UrgencyCritical UrgencyLevel = "critical"
)

// String implements fmt.Stringer.
func (u UrgencyLevel) String() string {
	return string(u)
}
