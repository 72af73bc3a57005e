package consolidation

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sivermarket/siver-backend/pkg/db/models"
	"github.com/sivermarket/siver-backend/pkg/enums"
	pkgerrors "github.com/sivermarket/siver-backend/pkg/errors"
	"github.com/sivermarket/siver-backend/pkg/outbox"
	"github.com/sivermarket/siver-backend/pkg/outbox/payloads"
)

// settingsAggregateID is the fixed aggregate id for the settings singleton;
// the row itself is keyed by a plain integer.
var settingsAggregateID = uuid.MustParse("00000000-0000-0000-0000-000000000001")

// SettingsService reads and updates the auto-close policy singleton.
type SettingsService interface {
	Get(ctx context.Context) (*SettingsDTO, error)
	Update(ctx context.Context, req UpdateSettingsRequest, actor *outbox.ActorRef) (*SettingsDTO, error)
}

type settingsService struct {
	repo   Repository
	tx     txRunner
	outbox outboxEmitter
}

// NewSettingsService builds the settings service.
func NewSettingsService(repo Repository, tx txRunner, ob outboxEmitter) (SettingsService, error) {
	if repo == nil {
		return nil, fmt.Errorf("consolidation repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if ob == nil {
		return nil, fmt.Errorf("outbox emitter required")
	}
	return &settingsService{repo: repo, tx: tx, outbox: ob}, nil
}

func (s *settingsService) Get(ctx context.Context) (*SettingsDTO, error) {
	settings, err := s.repo.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "consolidation settings not seeded")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load consolidation settings")
	}
	return settingsDTO(settings), nil
}

func (s *settingsService) Update(ctx context.Context, req UpdateSettingsRequest, actor *outbox.ActorRef) (*SettingsDTO, error) {
	updates := map[string]any{}
	if req.Mode != nil {
		mode, err := enums.ParseConsolidationMode(*req.Mode)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
		}
		updates["mode"] = mode
	}
	if req.TimeIntervalHours != nil {
		if *req.TimeIntervalHours <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "time interval must be positive")
		}
		updates["time_interval_hours"] = *req.TimeIntervalHours
	}
	if req.OrderQuantityThreshold != nil {
		if *req.OrderQuantityThreshold <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity threshold must be positive")
		}
		updates["order_quantity_threshold"] = *req.OrderQuantityThreshold
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	var updated *models.ConsolidationSettings
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := repo.GetSettings(ctx); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "consolidation settings not seeded")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load consolidation settings")
		}
		if err := repo.UpdateSettings(ctx, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update consolidation settings")
		}
		settings, err := repo.GetSettings(ctx)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload consolidation settings")
		}
		updated = settings

		return s.outbox.Emit(ctx, tx, outbox.DomainEvent{
			EventType:     enums.EventSettingsUpdated,
			AggregateType: enums.AggregateSettings,
			AggregateID:   settingsAggregateID,
			Actor:         actor,
			Version:       1,
			Data: payloads.SettingsUpdatedEvent{
				Mode:                   settings.Mode,
				TimeIntervalHours:      settings.TimeIntervalHours,
				OrderQuantityThreshold: settings.OrderQuantityThreshold,
				IsActive:               settings.IsActive,
			},
		})
	})
	if err != nil {
		return nil, err
	}
	return settingsDTO(updated), nil
}

func settingsDTO(m *models.ConsolidationSettings) *SettingsDTO {
	return &SettingsDTO{
		Mode:                   m.Mode,
		TimeIntervalHours:      m.TimeIntervalHours,
		OrderQuantityThreshold: m.OrderQuantityThreshold,
		IsActive:               m.IsActive,
		UpdatedAt:              m.UpdatedAt,
	}
}
