package model

import (
	"time"

	"github.com/google/uuid"
)

// User stores system accounts with role-based access.
// Role: "owner" | "supervisor" | "monitor" | "worker"
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;not null"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	Role         string    `gorm:"type:varchar(20);not null"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// EmployeeProfile is the optional linked employee identity. A bare owner
	// account before profile creation has none.
	EmployeeProfile *Employee `gorm:"foreignKey:UserID"`
}
