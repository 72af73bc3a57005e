package models

import (
	"time"

	"github.com/sivermarket/siver-backend/pkg/enums"
)

// SettingsSingletonID pins the consolidation settings to a single row.
const SettingsSingletonID = 1

// ConsolidationSettings is the tenant-wide auto-close policy. Create-once,
// update-in-place.
type ConsolidationSettings struct {
	ID                     int                     `gorm:"column:id;primaryKey"`
	Mode                   enums.ConsolidationMode `gorm:"column:mode;type:text;not null;default:'hybrid'"`
	TimeIntervalHours      int                     `gorm:"column:time_interval_hours;not null;default:72"`
	OrderQuantityThreshold int                     `gorm:"column:order_quantity_threshold;not null;default:20"`
	IsActive               bool                    `gorm:"column:is_active;not null;default:true"`
	UpdatedAt              time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
