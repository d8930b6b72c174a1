package model

import (
	"time"

	"github.com/google/uuid"
)

// Attendance records one shift for one employee on one date.
// The composite unique index is the correctness mechanism for the
// no-duplicate-shift rule: two racing submissions cannot both insert.
type Attendance struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_shift"`
	Date       time.Time `gorm:"type:date;not null;uniqueIndex:idx_attendance_shift"`
	ShiftType  string    `gorm:"type:varchar(20);not null;default:'morning';uniqueIndex:idx_attendance_shift"`

	// Status: "present" | "absent" | "late"
	Status   string     `gorm:"type:varchar(20);not null"`
	CheckIn  *time.Time `gorm:"type:time"`
	CheckOut *time.Time `gorm:"type:time"`
	Notes    string

	CreatedAt time.Time
	UpdatedAt time.Time

	Employee *Employee `gorm:"foreignKey:EmployeeID"`
}

const (
	ShiftMorning = "morning"
	ShiftEvening = "evening"
)
