package models

import (
	"time"

	"github.com/google/uuid"
)

// Department is a destination region grouping communes. Code is the short
// prefix embedded in hybrid tracking ids.
type Department struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code      string    `gorm:"column:code;not null;uniqueIndex"`
	Name      string    `gorm:"column:name;not null"`
	Communes  []Commune `gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
