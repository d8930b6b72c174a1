package repository

import (
	"context"
	"time"

	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceRepository interface {
	// Create inserts one record. The composite unique index on
	// (employee_id, date, shift_type) makes the insert the atomic
	// insert-if-absent; a duplicate surfaces as gorm.ErrDuplicatedKey.
	Create(ctx context.Context, a *model.Attendance) error
	Exists(ctx context.Context, employeeID uuid.UUID, date time.Time, shiftType string) (bool, error)
	ListByDate(ctx context.Context, date time.Time) ([]model.Attendance, error)
	ListByEmployee(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]model.Attendance, error)
	ListByRange(ctx context.Context, from, to time.Time) ([]model.Attendance, error)
}

type attendanceRepo struct{ db *gorm.DB }

func NewAttendanceRepository(db *gorm.DB) AttendanceRepository { return &attendanceRepo{db: db} }

func (r *attendanceRepo) Create(ctx context.Context, a *model.Attendance) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *attendanceRepo) Exists(ctx context.Context, employeeID uuid.UUID, date time.Time, shiftType string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Attendance{}).
		Where("employee_id = ? AND date = ? AND shift_type = ?",
			employeeID, date.Format("2006-01-02"), shiftType).
		Count(&n).Error
	return n > 0, err
}

func (r *attendanceRepo) ListByDate(ctx context.Context, date time.Time) ([]model.Attendance, error) {
	var records []model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("date = ?", date.Format("2006-01-02")).
		Order("shift_type ASC").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepo) ListByEmployee(ctx context.Context, employeeID uuid.UUID, from, to time.Time) ([]model.Attendance, error) {
	var records []model.Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND date >= ? AND date <= ?",
			employeeID, from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date DESC").
		Find(&records).Error
	return records, err
}

func (r *attendanceRepo) ListByRange(ctx context.Context, from, to time.Time) ([]model.Attendance, error) {
	var records []model.Attendance
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Where("date >= ? AND date <= ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("date DESC").
		Find(&records).Error
	return records, err
}
