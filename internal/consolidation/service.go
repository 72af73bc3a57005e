package consolidation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sivermarket/siver-backend/internal/orders"
	dbpkg "github.com/sivermarket/siver-backend/pkg/db"
	"github.com/sivermarket/siver-backend/pkg/db/models"
	"github.com/sivermarket/siver-backend/pkg/enums"
	pkgerrors "github.com/sivermarket/siver-backend/pkg/errors"
	"github.com/sivermarket/siver-backend/pkg/outbox"
	"github.com/sivermarket/siver-backend/pkg/outbox/payloads"
	"github.com/sivermarket/siver-backend/pkg/pagination"
)

const (
	// singleOpenConstraint is the partial unique index that backstops the
	// one-accepting-PO invariant.
	singleOpenConstraint = "ux_purchase_orders_single_open"
	singleLinkConstraint = "ux_order_po_links_order"

	CloseReasonManual            = "manual"
	CloseReasonTimeInterval      = "time_interval_reached"
	CloseReasonQuantityThreshold = "quantity_threshold_reached"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type outboxEmitter interface {
	Emit(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
	EmitIfNotExists(ctx context.Context, tx *gorm.DB, event outbox.DomainEvent) error
}

// Service is the purchase-order consolidation engine.
type Service interface {
	Open(ctx context.Context, actor *outbox.ActorRef) (*PODTO, error)
	LinkPendingOrders(ctx context.Context, poID uuid.UUID) (int, error)
	EvaluateAutoClose(ctx context.Context) (bool, error)
	Close(ctx context.Context, poID uuid.UUID, reason string, actor *outbox.ActorRef) error
	AssignChinaTracking(ctx context.Context, poID uuid.UUID, trackingNumber string, actor *outbox.ActorRef) error
	AdvanceStage(ctx context.Context, poID uuid.UUID, next enums.POStatus, actor *outbox.ActorRef) error
	Get(ctx context.Context, id uuid.UUID) (*PODetail, error)
	GetOpen(ctx context.Context) (*PODetail, error)
	List(ctx context.Context, params pagination.Params, filters ListFilters) (*POListDTO, error)
	Manifest(ctx context.Context, poID uuid.UUID) (*Manifest, error)
}

type service struct {
	repo   Repository
	orders orders.Repository
	tx     txRunner
	outbox outboxEmitter
	now    func() time.Time
}

// NewService builds the consolidation engine with its dependencies.
func NewService(repo Repository, ordersRepo orders.Repository, tx txRunner, ob outboxEmitter) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("consolidation repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if ob == nil {
		return nil, fmt.Errorf("outbox emitter required")
	}
	return &service{
		repo:   repo,
		orders: ordersRepo,
		tx:     tx,
		outbox: ob,
		now:    time.Now,
	}, nil
}

func (s *service) Open(ctx context.Context, actor *outbox.ActorRef) (*PODTO, error) {
	var created *models.PurchaseOrder

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		_, err := repo.FindAccepting(ctx, true)
		if err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "a purchase order is already accepting orders")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check open purchase order")
		}

		seq, err := repo.NextSequence(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "next po sequence")
		}

		now := s.now().UTC()
		po := &models.PurchaseOrder{
			PONumber:     fmt.Sprintf("PO-%d-%04d", now.Year(), seq),
			Sequence:     seq,
			Status:       enums.POStatusOpen,
			CycleStartAt: now,
			TotalAmount:  decimal.Zero,
		}
		if _, err := repo.Create(ctx, po); err != nil {
			if dbpkg.IsUniqueViolation(err, singleOpenConstraint) {
				return pkgerrors.New(pkgerrors.CodeConflict, "a purchase order is already accepting orders")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create purchase order")
		}
		created = po

		return s.outbox.EmitIfNotExists(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventPOOpened,
			AggregateType: enums.AggregatePurchaseOrder,
			AggregateID:   po.ID,
			Actor:         actor,
			Version:       1,
			Data: payloads.POOpenedEvent{
				POID:         po.ID,
				PONumber:     po.PONumber,
				CycleStartAt: po.CycleStartAt,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	dto := poDTO(created)
	return &dto, nil
}

func (s *service) LinkPendingOrders(ctx context.Context, poID uuid.UUID) (int, error) {
	if poID == uuid.Nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "purchase order id required")
	}

	linked := 0
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		ordersRepo := s.orders.WithTx(tx)

		po, err := repo.FindByID(ctx, poID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "purchase order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load purchase order")
		}
		if !po.Status.AcceptsOrders() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "purchase order no longer accepts orders")
		}

		eligible, err := ordersRepo.FindEligibleUnlinked(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "scan eligible orders")
		}
		if len(eligible) == 0 {
			return nil
		}

		links := make([]models.OrderPOLink, 0, len(eligible))
		orderIDs := make([]uuid.UUID, 0, len(eligible))
		addedQuantity := 0
		addedAmount := decimal.Zero
		for _, order := range eligible {
			links = append(links, models.OrderPOLink{
				PurchaseOrderID: po.ID,
				OrderID:         order.ID,
				Source:          order.Source,
				UnitCount:       order.UnitCount,
				CurrentStatus:   po.Status,
			})
			orderIDs = append(orderIDs, order.ID)
			addedQuantity += order.UnitCount
			addedAmount = addedAmount.Add(order.TotalAmount)
		}

		if err := repo.CreateLinks(ctx, links); err != nil {
			if dbpkg.IsUniqueViolation(err, singleLinkConstraint) {
				// Another sweep linked these orders between scan and insert.
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order links")
		}

		newTotalOrders := po.TotalOrders + len(links)
		newTotalQuantity := po.TotalQuantity + addedQuantity
		newTotalAmount := po.TotalAmount.Add(addedAmount)
		err = repo.Update(ctx, po.ID, map[string]any{
			"total_orders":   newTotalOrders,
			"total_quantity": newTotalQuantity,
			"total_amount":   newTotalAmount,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update purchase order totals")
		}

		if err := ordersRepo.UpdateStatus(ctx, orderIDs, enums.OrderStatusInCycle); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark orders in cycle")
		}

		linked = len(links)
		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventPOOrdersLinked,
			AggregateType: enums.AggregatePurchaseOrder,
			AggregateID:   po.ID,
			Version:       1,
			Data: payloads.POOrdersLinkedEvent{
				POID:          po.ID,
				PONumber:      po.PONumber,
				LinkedOrders:  linked,
				TotalOrders:   newTotalOrders,
				TotalQuantity: newTotalQuantity,
				TotalAmount:   newTotalAmount,
			},
		})
	})
	if err != nil {
		return 0, err
	}
	return linked, nil
}

func (s *service) EvaluateAutoClose(ctx context.Context) (bool, error) {
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load consolidation settings")
	}
	if !settings.IsActive {
		return false, nil
	}

	closed := false
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		po, err := repo.FindAccepting(ctx, true)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load open purchase order")
		}
		if po.Status != enums.POStatusOpen {
			// draft cycles are never auto-closed
			return nil
		}

		reason := s.autoCloseReason(po, settings)
		if reason == "" {
			return nil
		}
		if err := s.closeInTx(ctx, tx, po, reason, nil); err != nil {
			return err
		}
		closed = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return closed, nil
}

// autoCloseReason returns the close reason when a threshold is met, "" otherwise.
func (s *service) autoCloseReason(po *models.PurchaseOrder, settings *models.ConsolidationSettings) string {
	if settings.Mode.UsesQuantity() && po.TotalOrders >= settings.OrderQuantityThreshold {
		return CloseReasonQuantityThreshold
	}
	if settings.Mode.UsesTime() {
		elapsed := s.now().UTC().Sub(po.CycleStartAt)
		if elapsed >= time.Duration(settings.TimeIntervalHours)*time.Hour {
			return CloseReasonTimeInterval
		}
	}
	return ""
}

func (s *service) Close(ctx context.Context, poID uuid.UUID, reason string, actor *outbox.ActorRef) error {
	if poID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "purchase order id required")
	}
	if reason == "" {
		reason = CloseReasonManual
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		po, err := repo.FindByID(ctx, poID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "purchase order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load purchase order")
		}
		return s.closeInTx(ctx, tx, po, reason, actor)
	})
}

// closeInTx is the single close path shared by manual close and auto-close.
func (s *service) closeInTx(ctx context.Context, tx *gorm.DB, po *models.PurchaseOrder, reason string, actor *outbox.ActorRef) error {
	if !po.Status.CanTransitionTo(enums.POStatusOrdered) {
		return pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("purchase order in status %s cannot close", po.Status))
	}

	repo := s.repo.WithTx(tx)
	closedAt := s.now().UTC()
	err := repo.Update(ctx, po.ID, map[string]any{
		"status":    enums.POStatusOrdered,
		"closed_at": closedAt,
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "close purchase order")
	}
	if err := repo.UpdateLinksStatus(ctx, po.ID, enums.POStatusOrdered); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update link statuses")
	}

	return s.outbox.EmitIfNotExists(ctx, tx, outbox.DomainEvent{
		EventType:     enums.EventPOClosed,
		AggregateType: enums.AggregatePurchaseOrder,
		AggregateID:   po.ID,
		Actor:         actor,
		Version:       1,
		Data: payloads.POClosedEvent{
			POID:        po.ID,
			PONumber:    po.PONumber,
			Reason:      reason,
			TotalOrders: po.TotalOrders,
			TotalAmount: po.TotalAmount,
			ClosedAt:    closedAt,
		},
	})
}

func (s *service) AssignChinaTracking(ctx context.Context, poID uuid.UUID, trackingNumber string, actor *outbox.ActorRef) error {
	if poID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "purchase order id required")
	}
	trimmed := strings.TrimSpace(trackingNumber)
	if trimmed == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "tracking number required")
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		ordersRepo := s.orders.WithTx(tx)

		po, err := repo.FindByID(ctx, poID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "purchase order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load purchase order")
		}
		if po.Status != enums.POStatusOrdered {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("tracking can only be assigned in status %s, current %s", enums.POStatusOrdered, po.Status))
		}

		linkedOrders, err := ordersRepo.FindByPurchaseOrder(ctx, po.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load linked orders")
		}
		deptCodes, err := repo.DepartmentCodes(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load department codes")
		}
		links, err := repo.FindLinks(ctx, po.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order links")
		}

		ordersByID := make(map[uuid.UUID]models.CustomerOrder, len(linkedOrders))
		for _, o := range linkedOrders {
			ordersByID[o.ID] = o
		}

		for _, link := range links {
			order, ok := ordersByID[link.OrderID]
			if !ok || order.Commune == nil {
				return pkgerrors.New(pkgerrors.CodeDependency,
					fmt.Sprintf("order %s has no resolvable destination", link.OrderID))
			}
			trackingID := BuildHybridTrackingID(
				deptCodes[order.Commune.DepartmentID],
				order.Commune.Code,
				po.PONumber,
				trimmed,
				order.ID,
			)
			err := repo.UpdateLink(ctx, link.ID, map[string]any{
				"hybrid_tracking_id": trackingID,
				"current_status":     enums.POStatusInTransitChina,
			})
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write hybrid tracking id")
			}
		}

		err = repo.Update(ctx, po.ID, map[string]any{
			"china_tracking_number": trimmed,
			"status":                enums.POStatusInTransitChina,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign tracking number")
		}

		return s.outbox.EmitIfNotExists(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventPOTrackingAssigned,
			AggregateType: enums.AggregatePurchaseOrder,
			AggregateID:   po.ID,
			Actor:         actor,
			Version:       1,
			Data: payloads.POTrackingAssignedEvent{
				POID:           po.ID,
				PONumber:       po.PONumber,
				TrackingNumber: trimmed,
				LinkedOrders:   len(links),
			},
		})
	})
}

func (s *service) AdvanceStage(ctx context.Context, poID uuid.UUID, next enums.POStatus, actor *outbox.ActorRef) error {
	if poID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "purchase order id required")
	}
	if !next.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown status %q", next))
	}

	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		po, err := repo.FindByID(ctx, poID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "purchase order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load purchase order")
		}
		if !po.Status.CanTransitionTo(next) {
			return pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("cannot transition from %s to %s", po.Status, next))
		}

		updates := map[string]any{"status": next}
		if next == enums.POStatusCompleted {
			updates["completed_at"] = s.now().UTC()
		}
		if err := repo.Update(ctx, po.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "advance purchase order")
		}
		if err := repo.UpdateLinksStatus(ctx, po.ID, next); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update link statuses")
		}

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventPOStageChanged,
			AggregateType: enums.AggregatePurchaseOrder,
			AggregateID:   po.ID,
			Actor:         actor,
			Version:       1,
			Data: payloads.POStageChangedEvent{
				POID:     po.ID,
				PONumber: po.PONumber,
				From:     po.Status,
				To:       next,
			},
		})
	})
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*PODetail, error) {
	po, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "purchase order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load purchase order")
	}
	return s.detail(ctx, po)
}

func (s *service) GetOpen(ctx context.Context) (*PODetail, error) {
	po, err := s.repo.FindAccepting(ctx, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no purchase order is accepting orders")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load open purchase order")
	}
	return s.detail(ctx, po)
}

func (s *service) detail(ctx context.Context, po *models.PurchaseOrder) (*PODetail, error) {
	urgency := enums.UrgencyLow
	if po.Status.AcceptsOrders() {
		settings, err := s.repo.GetSettings(ctx)
		if err == nil {
			urgency = UrgencyFor(CycleStats{
				Mode:              settings.Mode,
				TotalOrders:       po.TotalOrders,
				QuantityThreshold: settings.OrderQuantityThreshold,
				Elapsed:           s.now().UTC().Sub(po.CycleStartAt),
				TimeInterval:      time.Duration(settings.TimeIntervalHours) * time.Hour,
			})
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load consolidation settings")
		}
	}
	return &PODetail{PODTO: poDTO(po), Urgency: urgency}, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters ListFilters) (*POListDTO, error) {
	list, err := s.repo.List(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list purchase orders")
	}
	out := &POListDTO{NextCursor: list.NextCursor, Items: make([]PODTO, 0, len(list.Items))}
	for i := range list.Items {
		out.Items = append(out.Items, poDTO(&list.Items[i]))
	}
	return out, nil
}

func (s *service) Manifest(ctx context.Context, poID uuid.UUID) (*Manifest, error) {
	po, err := s.repo.FindByID(ctx, poID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "purchase order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load purchase order")
	}

	linkedOrders, err := s.orders.FindByPurchaseOrder(ctx, po.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load linked orders")
	}
	links, err := s.repo.FindLinks(ctx, po.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order links")
	}
	trackingByOrder := make(map[uuid.UUID]*string, len(links))
	for _, link := range links {
		trackingByOrder[link.OrderID] = link.HybridTrackingID
	}

	manifest := &Manifest{PO: poDTO(po), Orders: make([]ManifestOrder, 0, len(linkedOrders))}
	for _, order := range linkedOrders {
		communeName := ""
		if order.Commune != nil {
			communeName = order.Commune.Name
		}
		manifest.Orders = append(manifest.Orders, ManifestOrder{
			OrderID:          order.ID,
			OrderNumber:      order.OrderNumber,
			Source:           order.Source,
			UnitCount:        order.UnitCount,
			TotalAmount:      order.TotalAmount,
			CommuneName:      communeName,
			HybridTrackingID: trackingByOrder[order.ID],
		})
		manifest.TotalUnits += order.UnitCount
	}
	return manifest, nil
}

