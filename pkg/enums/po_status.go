package enums

import "fmt"

// POStatus tracks the lifecycle of a consolidation purchase order.
type POStatus string

const (
	POStatusDraft          POStatus = "draft"
	POStatusOpen           POStatus = "open"
	POStatusOrdered        POStatus = "ordered"
	POStatusInTransitChina POStatus = "in_transit_china"
	POStatusInTransitUSA   POStatus = "in_transit_usa"
	POStatusArrivedHub     POStatus = "arrived_hub"
	POStatusProcessing     POStatus = "processing"
	POStatusCompleted      POStatus = "completed"
)

var validPOStatuses = []POStatus{
	POStatusDraft,
	POStatusOpen,
	POStatusOrdered,
	POStatusInTransitChina,
	POStatusInTransitUSA,
	POStatusArrivedHub,
	POStatusProcessing,
	POStatusCompleted,
}

// poTransitions is the total transition table. Every status has an entry;
// completed maps to the empty set.
var poTransitions = map[POStatus][]POStatus{
	POStatusDraft:          {POStatusOpen},
	POStatusOpen:           {POStatusOrdered},
	POStatusOrdered:        {POStatusInTransitChina},
	POStatusInTransitChina: {POStatusInTransitUSA},
	POStatusInTransitUSA:   {POStatusArrivedHub},
	POStatusArrivedHub:     {POStatusProcessing},
	POStatusProcessing:     {POStatusCompleted},
	POStatusCompleted:      {},
}

// String implements fmt.Stringer.
func (p POStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known POStatus.
func (p POStatus) IsValid() bool {
	for _, candidate := range validPOStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// AcceptsOrders reports whether new order links may still be attached.
func (p POStatus) AcceptsOrders() bool {
	return p == POStatusDraft || p == POStatusOpen
}

// CanTransitionTo reports whether next is a legal forward transition.
func (p POStatus) CanTransitionTo(next POStatus) bool {
	for _, candidate := range poTransitions[p] {
		if candidate == next {
			return true
		}
	}
	return false
}

// NextStatuses returns the allowed transitions from the current status.
func (p POStatus) NextStatuses() []POStatus {
	next := make([]POStatus, len(poTransitions[p]))
	copy(next, poTransitions[p])
	return next
}

// ParsePOStatus converts raw input into a POStatus.
func ParsePOStatus(value string) (POStatus, error) {
	for _, candidate := range validPOStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid purchase order status %q", value)
}
