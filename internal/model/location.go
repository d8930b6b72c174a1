package model

import (
	"time"

	"github.com/google/uuid"
)

// Location belongs to an area and may have a monitoring employee.
type Location struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string     `gorm:"not null"`
	AreaID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	MonitorID *uuid.UUID `gorm:"type:uuid;index"`
	Active    bool       `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Area    *Area     `gorm:"foreignKey:AreaID"`
	Monitor *Employee `gorm:"foreignKey:MonitorID"`
	Places  []Place   `gorm:"foreignKey:LocationID"`
}
