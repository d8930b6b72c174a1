package repository

import (
	"context"
	"errors"

	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/authz"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// hierarchyStore is the GORM implementation of authz.HierarchyStore.
// Active-only filtering happens here so the engine never has to re-check
// flags on listed rows; the *Any getters are the single escape hatch.
type hierarchyStore struct{ db *gorm.DB }

func NewHierarchyStore(db *gorm.DB) authz.HierarchyStore { return &hierarchyStore{db: db} }

// first runs the query and maps gorm.ErrRecordNotFound to (nil, nil):
// absent rows are an expected condition for the resolver, not an error.
func first[T any](q *gorm.DB) (*T, error) {
	var out T
	if err := q.First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

func (s *hierarchyStore) GetEmployee(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	return first[model.Employee](s.db.WithContext(ctx).Where("id = ? AND active = true", id))
}

func (s *hierarchyStore) GetEmployeeAny(ctx context.Context, id uuid.UUID) (*model.Employee, error) {
	return first[model.Employee](s.db.WithContext(ctx).Where("id = ?", id))
}

func (s *hierarchyStore) GetArea(ctx context.Context, id uuid.UUID) (*model.Area, error) {
	return first[model.Area](s.db.WithContext(ctx).Where("id = ? AND active = true", id))
}

func (s *hierarchyStore) GetLocation(ctx context.Context, id uuid.UUID) (*model.Location, error) {
	return first[model.Location](s.db.WithContext(ctx).Where("id = ? AND active = true", id))
}

func (s *hierarchyStore) GetPlace(ctx context.Context, id uuid.UUID) (*model.Place, error) {
	return first[model.Place](s.db.WithContext(ctx).Where("id = ? AND active = true", id))
}

func (s *hierarchyStore) GetPlaceAny(ctx context.Context, id uuid.UUID) (*model.Place, error) {
	return first[model.Place](s.db.WithContext(ctx).Where("id = ?", id))
}

func (s *hierarchyStore) ListAreasBySupervisor(ctx context.Context, employeeID uuid.UUID) ([]model.Area, error) {
	var areas []model.Area
	err := s.db.WithContext(ctx).
		Where("supervisor_id = ? AND active = true", employeeID).
		Find(&areas).Error
	return areas, err
}

func (s *hierarchyStore) ListLocationsByArea(ctx context.Context, areaID uuid.UUID) ([]model.Location, error) {
	var locations []model.Location
	err := s.db.WithContext(ctx).
		Where("area_id = ? AND active = true", areaID).
		Find(&locations).Error
	return locations, err
}

func (s *hierarchyStore) ListLocationsByMonitor(ctx context.Context, employeeID uuid.UUID) ([]model.Location, error) {
	var locations []model.Location
	err := s.db.WithContext(ctx).
		Where("monitor_id = ? AND active = true", employeeID).
		Find(&locations).Error
	return locations, err
}

func (s *hierarchyStore) ListPlacesByLocation(ctx context.Context, locationID uuid.UUID) ([]model.Place, error) {
	var places []model.Place
	err := s.db.WithContext(ctx).
		Where("location_id = ? AND active = true", locationID).
		Find(&places).Error
	return places, err
}

func (s *hierarchyStore) ListEmployeesBySupervisorID(ctx context.Context, employeeID uuid.UUID) ([]model.Employee, error) {
	var employees []model.Employee
	err := s.db.WithContext(ctx).
		Where("supervisor_id = ? AND active = true", employeeID).
		Find(&employees).Error
	return employees, err
}

func (s *hierarchyStore) ListActiveEmployees(ctx context.Context) ([]model.Employee, error) {
	var employees []model.Employee
	err := s.db.WithContext(ctx).Where("active = true").Find(&employees).Error
	return employees, err
}

func (s *hierarchyStore) ListActivePlaces(ctx context.Context) ([]model.Place, error) {
	var places []model.Place
	err := s.db.WithContext(ctx).Where("active = true").Find(&places).Error
	return places, err
}

// CountAreasByCompany counts all areas including inactive ones: a company
// with any area history refuses deletion.
func (s *hierarchyStore) CountAreasByCompany(ctx context.Context, companyID uuid.UUID) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.Area{}).
		Where("company_id = ?", companyID).
		Count(&n).Error
	return n, err
}

func (s *hierarchyStore) CountEvaluationsByPlace(ctx context.Context, placeID uuid.UUID) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&model.Evaluation{}).
		Where("place_id = ?", placeID).
		Count(&n).Error
	return n, err
}
