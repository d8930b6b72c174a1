package model

import (
	"time"

	"github.com/google/uuid"
)

// Evaluation is a graded cleaning inspection of an employee at a place.
// The five ratings are integers on a 1–5 scale; OverallScore is their
// average, also on a 5-point scale.
type Evaluation struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Date                time.Time `gorm:"type:date;not null;index"`
	PlaceID             uuid.UUID `gorm:"type:uuid;not null;index"`
	EvaluatedEmployeeID uuid.UUID `gorm:"type:uuid;not null;index"`
	EvaluatorID         uuid.UUID `gorm:"type:uuid;not null;index"`

	Cleanliness        int     `gorm:"not null"`
	Organization       int     `gorm:"not null"`
	EquipmentCondition int     `gorm:"not null"`
	SafetyMeasures     int     `gorm:"not null"`
	Timeliness         int     `gorm:"column:time;not null"`
	OverallScore       float64 `gorm:"not null"`
	Comments           string

	CreatedAt time.Time
	UpdatedAt time.Time

	Place             *Place    `gorm:"foreignKey:PlaceID"`
	EvaluatedEmployee *Employee `gorm:"foreignKey:EvaluatedEmployeeID"`
	Evaluator         *Employee `gorm:"foreignKey:EvaluatorID"`
}

// ComputeOverallScore derives the 5-point overall score from the five ratings.
func (e *Evaluation) ComputeOverallScore() {
	total := e.Cleanliness + e.Organization + e.EquipmentCondition + e.SafetyMeasures + e.Timeliness
	e.OverallScore = float64(total) / 5.0
}
