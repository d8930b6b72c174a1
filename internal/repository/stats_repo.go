package repository

import (
	"context"
	"time"

	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/model"

	"gorm.io/gorm"
)

// StatsRepository groups the dashboard count queries. All of them are plain
// aggregates; scoping decisions stay out of this layer.
type StatsRepository interface {
	CountEmployees(ctx context.Context) (total, active int64, err error)
	CountEmployeesByPosition(ctx context.Context, position string) (int64, error)
	CountCompanies(ctx context.Context) (int64, error)
	CountAreas(ctx context.Context) (int64, error)
	CountEmployeesHiredSince(ctx context.Context, date time.Time) (int64, error)
}

type statsRepo struct{ db *gorm.DB }

func NewStatsRepository(db *gorm.DB) StatsRepository { return &statsRepo{db: db} }

func (r *statsRepo) CountEmployees(ctx context.Context) (int64, int64, error) {
	var total, active int64
	if err := r.db.WithContext(ctx).Model(&model.Employee{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err := r.db.WithContext(ctx).Model(&model.Employee{}).Where("active = true").Count(&active).Error
	return total, active, err
}

func (r *statsRepo) CountEmployeesByPosition(ctx context.Context, position string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Employee{}).
		Where("position = ? AND active = true", position).
		Count(&n).Error
	return n, err
}

func (r *statsRepo) CountCompanies(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Company{}).Where("active = true").Count(&n).Error
	return n, err
}

func (r *statsRepo) CountAreas(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Area{}).Where("active = true").Count(&n).Error
	return n, err
}

func (r *statsRepo) CountEmployeesHiredSince(ctx context.Context, date time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Employee{}).
		Where("hire_date >= ?", date.Format("2006-01-02")).
		Count(&n).Error
	return n, err
}
