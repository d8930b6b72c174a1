package authz

import (
	"context"

	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/model"
	"github.com/google/uuid"
)

// HierarchyStore is the read-only view of the hierarchy the engine consumes.
// All queries return active records only, except the *Any getters which also
// return soft-deleted rows (used to tell "missing" from "inactive").
//
// Get methods return (nil, nil) when no matching record exists — dangling
// references are an expected condition, never an error. Errors are reserved
// for store failures.
type HierarchyStore interface {
	GetEmployee(ctx context.Context, id uuid.UUID) (*model.Employee, error)
	GetEmployeeAny(ctx context.Context, id uuid.UUID) (*model.Employee, error)
	GetArea(ctx context.Context, id uuid.UUID) (*model.Area, error)
	GetLocation(ctx context.Context, id uuid.UUID) (*model.Location, error)
	GetPlace(ctx context.Context, id uuid.UUID) (*model.Place, error)
	GetPlaceAny(ctx context.Context, id uuid.UUID) (*model.Place, error)

	ListAreasBySupervisor(ctx context.Context, employeeID uuid.UUID) ([]model.Area, error)
	ListLocationsByArea(ctx context.Context, areaID uuid.UUID) ([]model.Location, error)
	ListLocationsByMonitor(ctx context.Context, employeeID uuid.UUID) ([]model.Location, error)
	ListPlacesByLocation(ctx context.Context, locationID uuid.UUID) ([]model.Place, error)
	ListEmployeesBySupervisorID(ctx context.Context, employeeID uuid.UUID) ([]model.Employee, error)

	ListActiveEmployees(ctx context.Context) ([]model.Employee, error)
	ListActivePlaces(ctx context.Context) ([]model.Place, error)

	// Structural-integrity counts consulted before deletions.
	CountAreasByCompany(ctx context.Context, companyID uuid.UUID) (int64, error)
	CountEvaluationsByPlace(ctx context.Context, placeID uuid.UUID) (int64, error)
}
