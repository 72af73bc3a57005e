package payloads

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sivermarket/siver-backend/pkg/enums"
)

// POOpenedEvent announces a new consolidation cycle.
type POOpenedEvent struct {
	POID         uuid.UUID `json:"poId"`
	PONumber     string    `json:"poNumber"`
	CycleStartAt time.Time `json:"cycleStartAt"`
}

// POClosedEvent announces a cycle stopped accepting orders.
type POClosedEvent struct {
	POID        uuid.UUID       `json:"poId"`
	PONumber    string          `json:"poNumber"`
	Reason      string          `json:"reason"`
	TotalOrders int             `json:"totalOrders"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	ClosedAt    time.Time       `json:"closedAt"`
}

// POOrdersLinkedEvent reports how many orders a link sweep attached.
type POOrdersLinkedEvent struct {
	POID          uuid.UUID       `json:"poId"`
	PONumber      string          `json:"poNumber"`
	LinkedOrders  int             `json:"linkedOrders"`
	TotalOrders   int             `json:"totalOrders"`
	TotalQuantity int             `json:"totalQuantity"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
}

// POTrackingAssignedEvent reports the China tracking number assignment.
type POTrackingAssignedEvent struct {
	POID           uuid.UUID `json:"poId"`
	PONumber       string    `json:"poNumber"`
	TrackingNumber string    `json:"trackingNumber"`
	LinkedOrders   int       `json:"linkedOrders"`
}

// POStageChangedEvent reports a logistics stage transition.
type POStageChangedEvent struct {
	POID     uuid.UUID      `json:"poId"`
	PONumber string         `json:"poNumber"`
	From     enums.POStatus `json:"from"`
	To       enums.POStatus `json:"to"`
}

// SettingsUpdatedEvent reports an admin change to the auto-close policy.
type SettingsUpdatedEvent struct {
	Mode                   enums.ConsolidationMode `json:"mode"`
	TimeIntervalHours      int                     `json:"timeIntervalHours"`
	OrderQuantityThreshold int                     `json:"orderQuantityThreshold"`
	IsActive               bool                    `json:"isActive"`
}
