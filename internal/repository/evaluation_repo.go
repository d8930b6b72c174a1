package repository

import (
	"context"
	"time"

	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PerformerStat is a per-employee aggregate for the dashboard.
type PerformerStat struct {
	EmployeeID      uuid.UUID
	FullName        string
	Position        string
	AvgScore        float64
	EvaluationCount int64
}

type EvaluationRepository interface {
	Create(ctx context.Context, e *model.Evaluation) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Evaluation, error)
	ListAll(ctx context.Context) ([]model.Evaluation, error)
	ListByPlaceIDs(ctx context.Context, placeIDs []uuid.UUID) ([]model.Evaluation, error)
	ListByEvaluatedEmployee(ctx context.Context, employeeID uuid.UUID) ([]model.Evaluation, error)
	ListRecent(ctx context.Context, limit int) ([]model.Evaluation, error)

	CountForDate(ctx context.Context, date time.Time) (int64, error)
	CountSince(ctx context.Context, date time.Time) (int64, error)
	AvgScoreForDate(ctx context.Context, date time.Time) (float64, error)
	TopPerformers(ctx context.Context, limit int) ([]PerformerStat, error)
}

type evaluationRepo struct{ db *gorm.DB }

func NewEvaluationRepository(db *gorm.DB) EvaluationRepository { return &evaluationRepo{db: db} }

func (r *evaluationRepo) Create(ctx context.Context, e *model.Evaluation) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *evaluationRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Evaluation, error) {
	var e model.Evaluation
	err := r.db.WithContext(ctx).
		Preload("Place").Preload("Evaluator").Preload("EvaluatedEmployee").
		First(&e, id).Error
	return &e, err
}

func (r *evaluationRepo) ListAll(ctx context.Context) ([]model.Evaluation, error) {
	var evaluations []model.Evaluation
	err := r.db.WithContext(ctx).
		Preload("Place").Preload("Evaluator").Preload("EvaluatedEmployee").
		Order("date DESC").
		Find(&evaluations).Error
	return evaluations, err
}

func (r *evaluationRepo) ListByPlaceIDs(ctx context.Context, placeIDs []uuid.UUID) ([]model.Evaluation, error) {
	if len(placeIDs) == 0 {
		return nil, nil
	}
	var evaluations []model.Evaluation
	err := r.db.WithContext(ctx).
		Preload("Place").Preload("Evaluator").Preload("EvaluatedEmployee").
		Where("place_id IN ?", placeIDs).
		Order("date DESC").
		Find(&evaluations).Error
	return evaluations, err
}

func (r *evaluationRepo) ListByEvaluatedEmployee(ctx context.Context, employeeID uuid.UUID) ([]model.Evaluation, error) {
	var evaluations []model.Evaluation
	err := r.db.WithContext(ctx).
		Preload("Place").Preload("Evaluator").Preload("EvaluatedEmployee").
		Where("evaluated_employee_id = ?", employeeID).
		Order("date DESC").
		Find(&evaluations).Error
	return evaluations, err
}

func (r *evaluationRepo) ListRecent(ctx context.Context, limit int) ([]model.Evaluation, error) {
	var evaluations []model.Evaluation
	err := r.db.WithContext(ctx).
		Preload("Place").Preload("Evaluator").Preload("EvaluatedEmployee").
		Order("created_at DESC").
		Limit(limit).
		Find(&evaluations).Error
	return evaluations, err
}

func (r *evaluationRepo) CountForDate(ctx context.Context, date time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Evaluation{}).
		Where("date = ?", date.Format("2006-01-02")).
		Count(&n).Error
	return n, err
}

func (r *evaluationRepo) CountSince(ctx context.Context, date time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Evaluation{}).
		Where("date >= ?", date.Format("2006-01-02")).
		Count(&n).Error
	return n, err
}

func (r *evaluationRepo) AvgScoreForDate(ctx context.Context, date time.Time) (float64, error) {
	var avg *float64
	err := r.db.WithContext(ctx).Model(&model.Evaluation{}).
		Select("AVG(overall_score)").
		Where("date = ?", date.Format("2006-01-02")).
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

func (r *evaluationRepo) TopPerformers(ctx context.Context, limit int) ([]PerformerStat, error) {
	var stats []PerformerStat
	err := r.db.WithContext(ctx).Model(&model.Evaluation{}).
		Select(`employees.id AS employee_id,
			employees.full_name,
			employees.position,
			AVG(evaluations.overall_score) AS avg_score,
			COUNT(evaluations.id) AS evaluation_count`).
		Joins("JOIN employees ON employees.id = evaluations.evaluated_employee_id").
		Group("employees.id, employees.full_name, employees.position").
		Order("avg_score DESC").
		Limit(limit).
		Scan(&stats).Error
	return stats, err
}
