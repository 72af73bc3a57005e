package consolidation

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sivermarket/siver-backend/pkg/db/models"
	"github.com/sivermarket/siver-backend/pkg/enums"
	"github.com/sivermarket/siver-backend/pkg/pagination"
)

// Repository defines persistence operations for purchase orders, their order
// links, and the consolidation settings singleton.
type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, po *models.PurchaseOrder) (*models.PurchaseOrder, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.PurchaseOrder, error)
	// FindAccepting returns the PO currently in draft/open, locking it when
	// forUpdate is set. gorm.ErrRecordNotFound when no cycle is accepting.
	FindAccepting(ctx context.Context, forUpdate bool) (*models.PurchaseOrder, error)
	NextSequence(ctx context.Context) (int64, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*POList, error)

	CreateLinks(ctx context.Context, links []models.OrderPOLink) error
	FindLinks(ctx context.Context, poID uuid.UUID) ([]models.OrderPOLink, error)
	UpdateLink(ctx context.Context, linkID uuid.UUID, updates map[string]any) error
	UpdateLinksStatus(ctx context.Context, poID uuid.UUID, status enums.POStatus) error

	// DepartmentCodes maps department id to its short code for tracking ids.
	DepartmentCodes(ctx context.Context) (map[uuid.UUID]string, error)

	GetSettings(ctx context.Context) (*models.ConsolidationSettings, error)
	UpdateSettings(ctx context.Context, updates map[string]any) error
}
