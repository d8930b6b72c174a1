package repository

import (
	"context"

	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AreaRepository, LocationRepository, and PlaceRepository are the write-side
// access for the three inner hierarchy levels. Read traversal goes through
// the hierarchy store; these exist for management operations.

type AreaRepository interface {
	Create(ctx context.Context, a *model.Area) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Area, error)
	ListByCompany(ctx context.Context, companyID uuid.UUID, includeInactive bool) ([]model.Area, error)
	Update(ctx context.Context, a *model.Area) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type LocationRepository interface {
	Create(ctx context.Context, l *model.Location) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Location, error)
	ListByArea(ctx context.Context, areaID uuid.UUID, includeInactive bool) ([]model.Location, error)
	Update(ctx context.Context, l *model.Location) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type PlaceRepository interface {
	Create(ctx context.Context, p *model.Place) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Place, error)
	ListByLocation(ctx context.Context, locationID uuid.UUID, includeInactive bool) ([]model.Place, error)
	Update(ctx context.Context, p *model.Place) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type areaRepo struct{ db *gorm.DB }

func NewAreaRepository(db *gorm.DB) AreaRepository { return &areaRepo{db: db} }

func (r *areaRepo) Create(ctx context.Context, a *model.Area) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *areaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Area, error) {
	var a model.Area
	err := r.db.WithContext(ctx).First(&a, id).Error
	return &a, err
}

func (r *areaRepo) ListByCompany(ctx context.Context, companyID uuid.UUID, includeInactive bool) ([]model.Area, error) {
	var areas []model.Area
	q := r.db.WithContext(ctx).Where("company_id = ?", companyID).Order("name ASC")
	if !includeInactive {
		q = q.Where("active = true")
	}
	err := q.Find(&areas).Error
	return areas, err
}

func (r *areaRepo) Update(ctx context.Context, a *model.Area) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *areaRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Area{}).Where("id = ?", id).Update("active", false).Error
}

type locationRepo struct{ db *gorm.DB }

func NewLocationRepository(db *gorm.DB) LocationRepository { return &locationRepo{db: db} }

func (r *locationRepo) Create(ctx context.Context, l *model.Location) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *locationRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Location, error) {
	var l model.Location
	err := r.db.WithContext(ctx).First(&l, id).Error
	return &l, err
}

func (r *locationRepo) ListByArea(ctx context.Context, areaID uuid.UUID, includeInactive bool) ([]model.Location, error) {
	var locations []model.Location
	q := r.db.WithContext(ctx).Where("area_id = ?", areaID).Order("name ASC")
	if !includeInactive {
		q = q.Where("active = true")
	}
	err := q.Find(&locations).Error
	return locations, err
}

func (r *locationRepo) Update(ctx context.Context, l *model.Location) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *locationRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Location{}).Where("id = ?", id).Update("active", false).Error
}

type placeRepo struct{ db *gorm.DB }

func NewPlaceRepository(db *gorm.DB) PlaceRepository { return &placeRepo{db: db} }

func (r *placeRepo) Create(ctx context.Context, p *model.Place) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *placeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Place, error) {
	var p model.Place
	err := r.db.WithContext(ctx).First(&p, id).Error
	return &p, err
}

func (r *placeRepo) ListByLocation(ctx context.Context, locationID uuid.UUID, includeInactive bool) ([]model.Place, error) {
	var places []model.Place
	q := r.db.WithContext(ctx).Where("location_id = ?", locationID).Order("name ASC")
	if !includeInactive {
		q = q.Where("active = true")
	}
	err := q.Find(&places).Error
	return places, err
}

func (r *placeRepo) Update(ctx context.Context, p *model.Place) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *placeRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Place{}).Where("id = ?", id).Update("active", false).Error
}
