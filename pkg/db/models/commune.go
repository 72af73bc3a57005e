package models

import (
	"time"

	"github.com/google/uuid"
)

// Commune is a destination locality. Local fees and the insurance rate are
// looked up directly during shipping quotes; no arithmetic happens here.
type Commune struct {
	ID                   uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	DepartmentID         uuid.UUID `gorm:"column:department_id;type:uuid;not null;index"`
	Code                 string    `gorm:"column:code;not null"`
	Name                 string    `gorm:"column:name;not null"`
	LocalDeliveryFee     float64   `gorm:"column:local_delivery_fee;not null;default:0"`
	OperationalFee       float64   `gorm:"column:operational_fee;not null;default:0"`
	InsuranceRatePercent float64   `gorm:"column:insurance_rate_percent;not null;default:0"`
	Active               bool      `gorm:"column:active;not null;default:true"`
	CreatedAt            time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt            time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
