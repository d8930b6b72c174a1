package model

import (
	"time"

	"github.com/google/uuid"
)

// Company is the root of the containment hierarchy.
type Company struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"uniqueIndex;not null"`
	Address       string
	ContactPerson string
	Phone         string
	Email         string
	Active        bool `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Areas []Area `gorm:"foreignKey:CompanyID"`
}
