package model

import (
	"time"

	"github.com/google/uuid"
)

// Area belongs to a company and may have a supervising employee.
type Area struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name         string     `gorm:"not null"`
	CompanyID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	SupervisorID *uuid.UUID `gorm:"type:uuid;index"`
	Active       bool       `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Company    *Company   `gorm:"foreignKey:CompanyID"`
	Supervisor *Employee  `gorm:"foreignKey:SupervisorID"`
	Locations  []Location `gorm:"foreignKey:AreaID"`
}
