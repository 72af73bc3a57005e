package consolidation

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sivermarket/siver-backend/pkg/db/models"
	"github.com/sivermarket/siver-backend/pkg/enums"
)

// ListFilters narrows PO list queries.
type ListFilters struct {
	Status *enums.POStatus
}

// POList is a cursor page of purchase orders.
type POList struct {
	Items      []models.PurchaseOrder
	NextCursor string
}

// PODTO is the API shape of one purchase order.
type PODTO struct {
	ID                  uuid.UUID       `json:"id"`
	PONumber            string          `json:"poNumber"`
	Status              enums.POStatus  `json:"status"`
	CycleStartAt        time.Time       `json:"cycleStartAt"`
	ClosedAt            *time.Time      `json:"closedAt,omitempty"`
	CompletedAt         *time.Time      `json:"completedAt,omitempty"`
	ChinaTrackingNumber *string         `json:"chinaTrackingNumber,omitempty"`
	TotalOrders         int             `json:"totalOrders"`
	TotalQuantity       int             `json:"totalQuantity"`
	TotalAmount         decimal.Decimal `json:"totalAmount"`
	CreatedAt           time.Time       `json:"createdAt"`
}

// PODetail adds the board-facing urgency classification.
type PODetail struct {
	PODTO
	Urgency enums.UrgencyLevel `json:"urgency"`
}

// POListDTO is the paged API response for the PO board.
type POListDTO struct {
	Items      []PODTO `json:"items"`
	NextCursor string  `json:"nextCursor,omitempty"`
}

// CloseRequest carries the manual-close reason.
type CloseRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=200"`
}

// AssignTrackingRequest carries the China-leg master tracking number.
type AssignTrackingRequest struct {
	TrackingNumber string `json:"trackingNumber" validate:"required"`
}

// AdvanceStageRequest names the next logistics stage.
type AdvanceStageRequest struct {
	Next string `json:"next" validate:"required"`
}

// SettingsDTO mirrors the consolidation settings singleton.
type SettingsDTO struct {
	Mode                   enums.ConsolidationMode `json:"mode"`
	TimeIntervalHours      int                     `json:"timeIntervalHours"`
	OrderQuantityThreshold int                     `json:"orderQuantityThreshold"`
	IsActive               bool                    `json:"isActive"`
	UpdatedAt              time.Time               `json:"updatedAt"`
}

// UpdateSettingsRequest carries partial settings updates.
type UpdateSettingsRequest struct {
	Mode                   *string `json:"mode" validate:"omitempty,oneof=time quantity hybrid"`
	TimeIntervalHours      *int    `json:"timeIntervalHours" validate:"omitempty,gt=0"`
	OrderQuantityThreshold *int    `json:"orderQuantityThreshold" validate:"omitempty,gt=0"`
	IsActive               *bool   `json:"isActive"`
}

// ManifestOrder is one picking line in the warehouse manifest.
type ManifestOrder struct {
	OrderID          uuid.UUID         `json:"orderId"`
	OrderNumber      string            `json:"orderNumber"`
	Source           enums.OrderSource `json:"source"`
	UnitCount        int               `json:"unitCount"`
	TotalAmount      decimal.Decimal   `json:"totalAmount"`
	CommuneName      string            `json:"communeName"`
	HybridTrackingID *string           `json:"hybridTrackingId,omitempty"`
}

// Manifest is the JSON picking manifest; rendering is left to clients.
type Manifest struct {
	PO         PODTO           `json:"po"`
	Orders     []ManifestOrder `json:"orders"`
	TotalUnits int             `json:"totalUnits"`
}

func poDTO(po *models.PurchaseOrder) PODTO {
	return PODTO{
		ID:                  po.ID,
		PONumber:            po.PONumber,
		Status:              po.Status,
		CycleStartAt:        po.CycleStartAt,
		ClosedAt:            po.ClosedAt,
		CompletedAt:         po.CompletedAt,
		ChinaTrackingNumber: po.ChinaTrackingNumber,
		TotalOrders:         po.TotalOrders,
		TotalQuantity:       po.TotalQuantity,
		TotalAmount:         po.TotalAmount,
		CreatedAt:           po.CreatedAt,
	}
}
