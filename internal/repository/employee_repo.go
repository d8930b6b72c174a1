package repository

import (
	"context"

	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmployeeRepository is the write-side companion of the read-only hierarchy
// store. Services depend on the interface, not the GORM implementation.
type EmployeeRepository interface {
	Create(ctx context.Context, tx *gorm.DB, e *model.Employee) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Employee, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Employee, error)
	FindFirstActiveByPosition(ctx context.Context, position string) (*model.Employee, error)
	List(ctx context.Context) ([]model.Employee, error)
	ListAll(ctx context.Context) ([]model.Employee, error)
	ListActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Employee, error)
	Update(ctx context.Context, e *model.Employee) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivate(ctx context.Context, id uuid.UUID) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type employeeRepo struct{ db *gorm.DB }

func NewEmployeeRepository(db *gorm.DB) EmployeeRepository { return &employeeRepo{db: db} }

func (r *employeeRepo) Create(ctx context.Context, tx *gorm.DB, e *model.Employee) error {
	if tx == nil {
		tx = r.db
	}
	return tx.WithContext(ctx).Create(e).Error
}

func (r *employeeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	var e model.Employee
	err := r.db.WithContext(ctx).First(&e, id).Error
	return &e, err
}

func (r *employeeRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*model.Employee, error) {
	var e model.Employee
	err := r.db.WithContext(ctx).Where("user_id = ? AND active = true", userID).First(&e).Error
	return &e, err
}

func (r *employeeRepo) FindFirstActiveByPosition(ctx context.Context, position string) (*model.Employee, error) {
	var e model.Employee
	err := r.db.WithContext(ctx).
		Where("position = ? AND active = true", position).
		Order("created_at ASC").
		First(&e).Error
	return &e, err
}

func (r *employeeRepo) List(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	err := r.db.WithContext(ctx).Where("active = true").Order("full_name ASC").Find(&employees).Error
	return employees, err
}

func (r *employeeRepo) ListAll(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	err := r.db.WithContext(ctx).Order("full_name ASC").Find(&employees).Error
	return employees, err
}

func (r *employeeRepo) ListActiveByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Employee, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var employees []model.Employee
	err := r.db.WithContext(ctx).
		Where("id IN ? AND active = true", ids).
		Order("full_name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *employeeRepo) Update(ctx context.Context, e *model.Employee) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *employeeRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Employee{}).Where("id = ?", id).Update("active", false).Error
}

func (r *employeeRepo) Reactivate(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Employee{}).Where("id = ?", id).Update("active", true).Error
}

func (r *employeeRepo) DB() *gorm.DB { return r.db }
