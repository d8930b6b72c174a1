package model

import (
	"time"

	"github.com/google/uuid"
)

// Place is the leaf of the hierarchy: a cleanable spot staffed by one worker.
type Place struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string     `gorm:"not null"`
	LocationID uuid.UUID  `gorm:"type:uuid;not null;index"`
	WorkerID   *uuid.UUID `gorm:"type:uuid;index"`
	Active     bool       `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Location *Location `gorm:"foreignKey:LocationID"`
	Worker   *Employee `gorm:"foreignKey:WorkerID"`
}
