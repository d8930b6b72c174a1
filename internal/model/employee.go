package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Employee is the staff profile behind a user account.
// Position: "supervisor" | "monitor" | "worker".
//
// An employee participates in two independent relation families: the
// hierarchy assignments (supervisor of areas, monitor of locations, worker of
// places) and the direct-report link via SupervisorID. Neither implies the
// other.
type Employee struct {
	ID       uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID   *uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	FullName string     `gorm:"index;not null"`
	Phone    string
	Address  string
	Position string          `gorm:"type:varchar(20);not null"`
	Salary   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	HireDate time.Time       `gorm:"type:date;not null"`
	// CompanyID is the optional direct company assignment, used to narrow
	// evaluation eligibility.
	CompanyID *uuid.UUID `gorm:"type:uuid;index"`
	// SupervisorID is the direct-report link to another employee.
	SupervisorID *uuid.UUID `gorm:"type:uuid;index"`
	Active       bool       `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Company    *Company  `gorm:"foreignKey:CompanyID"`
	Supervisor *Employee `gorm:"foreignKey:SupervisorID"`
}

// Employee positions and user roles share the same tags except "owner",
// which is a role without a position.
const (
	PositionSupervisor = "supervisor"
	PositionMonitor    = "monitor"
	PositionWorker     = "worker"
)
