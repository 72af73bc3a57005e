package enums

import "fmt"

// OutboxAggregateType maps to the aggregate_type enum in Postgres.
type OutboxAggregateType string

const (
	AggregatePurchaseOrder OutboxAggregateType = "purchase_order"
	AggregateCustomerOrder OutboxAggregateType = "customer_order"
	AggregateSettings      OutboxAggregateType = "consolidation_settings"
)

var validAggregateTypes = []OutboxAggregateType{
	AggregatePurchaseOrder,
	AggregateCustomerOrder,
	AggregateSettings,
}

// IsValid reports whether the value matches the canonical aggregate_type enum.
func (a OutboxAggregateType) IsValid() bool {
	for _, candidate := range validAggregateTypes {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseOutboxAggregateType converts raw input into OutboxAggregateType.
func ParseOutboxAggregateType(value string) (OutboxAggregateType, error) {
	for _, candidate := range validAggregateTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid aggregate type %q", value)
}

// OutboxEventType maps to the event_type enum in Postgres.
type OutboxEventType string

const (
	EventPOOpened           OutboxEventType = "po_opened"
	EventPOClosed           OutboxEventType = "po_closed"
	EventPOOrdersLinked     OutboxEventType = "po_orders_linked"
	EventPOTrackingAssigned OutboxEventType = "po_tracking_assigned"
	EventPOStageChanged     OutboxEventType = "po_stage_changed"
	EventSettingsUpdated    OutboxEventType = "consolidation_settings_updated"
)

var validOutboxEventTypes = []OutboxEventType{
	EventPOOpened,
	EventPOClosed,
	EventPOOrdersLinked,
	EventPOTrackingAssigned,
	EventPOStageChanged,
	EventSettingsUpdated,
}

// IsValid reports whether the value matches the canonical event_type enum.
func (e OutboxEventType) IsValid() bool {
	for _, candidate := range validOutboxEventTypes {
		if candidate == e {
			return true
		}
	}
	return false
}

// ParseOutboxEventType converts raw input into OutboxEventType.
func ParseOutboxEventType(value string) (OutboxEventType, error) {
	for _, candidate := range validOutboxEventTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid event type %q", value)
}
