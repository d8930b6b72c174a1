package authz

import (
	"context"

	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/model"
	"github.com/google/uuid"
)

// Resolver computes the organizational scope of an identity: the sets of
// employees and places it may see. Results are computed fresh from the store
// snapshot on every call; calling twice against an unchanged snapshot yields
// identical sets.
type Resolver struct {
	store HierarchyStore
}

func NewResolver(store HierarchyStore) *Resolver { return &Resolver{store: store} }

// VisibleEmployees returns the ids of every employee the identity may view.
//
//   - owner: all active employees.
//   - supervisor: direct reports (SupervisorID == caller) unioned with every
//     monitor and worker reachable through the caller's supervised areas. The
//     direct-report path is honored even when the report is placed in an area
//     the caller does not supervise.
//   - monitor: active workers assigned to places under monitored locations.
//   - worker and anything else: the caller's own employee id.
func (r *Resolver) VisibleEmployees(ctx context.Context, id Identity) (IDSet, error) {
	switch id.Role {
	case RoleOwner:
		employees, err := r.store.ListActiveEmployees(ctx)
		if err != nil {
			return nil, err
		}
		set := make(IDSet, len(employees))
		for _, e := range employees {
			set.add(e.ID)
		}
		return set, nil

	case RoleSupervisor, RoleMonitor:
		records, err := r.visibleEmployeeRecords(ctx, id)
		if err != nil {
			return nil, err
		}
		set := make(IDSet, len(records))
		for eid := range records {
			set.add(eid)
		}
		return set, nil

	default:
		if !id.Linked() {
			return IDSet{}, nil
		}
		return NewIDSet(*id.EmployeeID), nil
	}
}

// VisibleEvaluationEligibleEmployees returns the employees the identity may
// pick as evaluation targets. It matches VisibleEmployees except that a
// supervisor's result is narrowed to employees of the caller's own company,
// and a worker gets nothing (workers cannot evaluate).
func (r *Resolver) VisibleEvaluationEligibleEmployees(ctx context.Context, id Identity) (IDSet, error) {
	switch id.Role {
	case RoleOwner:
		return r.VisibleEmployees(ctx, id)

	case RoleSupervisor:
		if !id.Linked() {
			return IDSet{}, nil
		}
		self, err := r.store.GetEmployee(ctx, *id.EmployeeID)
		if err != nil {
			return nil, err
		}
		if self == nil {
			return IDSet{}, nil
		}
		records, err := r.visibleEmployeeRecords(ctx, id)
		if err != nil {
			return nil, err
		}
		set := make(IDSet, len(records))
		for eid, e := range records {
			// Company narrowing applies only when the caller has a company
			// assignment; an unassigned candidate never matches the filter.
			if self.CompanyID != nil {
				if e.CompanyID == nil || *e.CompanyID != *self.CompanyID {
					continue
				}
			}
			set.add(eid)
		}
		return set, nil

	case RoleMonitor:
		return r.VisibleEmployees(ctx, id)

	default:
		return IDSet{}, nil
	}
}

// VisiblePlaces mirrors VisibleEmployees at the place layer. It scopes the
// target lists for attendance and evaluation forms, so roles that cannot
// submit either (workers) get the empty set.
func (r *Resolver) VisiblePlaces(ctx context.Context, id Identity) (IDSet, error) {
	switch id.Role {
	case RoleOwner:
		places, err := r.store.ListActivePlaces(ctx)
		if err != nil {
			return nil, err
		}
		set := make(IDSet, len(places))
		for _, p := range places {
			set.add(p.ID)
		}
		return set, nil

	case RoleSupervisor:
		if !id.Linked() {
			return IDSet{}, nil
		}
		set := IDSet{}
		areas, err := r.store.ListAreasBySupervisor(ctx, *id.EmployeeID)
		if err != nil {
			return nil, err
		}
		for _, area := range areas {
			locations, err := r.store.ListLocationsByArea(ctx, area.ID)
			if err != nil {
				return nil, err
			}
			for _, loc := range locations {
				if err := r.addPlaces(ctx, loc.ID, set); err != nil {
					return nil, err
				}
			}
		}
		return set, nil

	case RoleMonitor:
		if !id.Linked() {
			return IDSet{}, nil
		}
		set := IDSet{}
		locations, err := r.store.ListLocationsByMonitor(ctx, *id.EmployeeID)
		if err != nil {
			return nil, err
		}
		for _, loc := range locations {
			if err := r.addPlaces(ctx, loc.ID, set); err != nil {
				return nil, err
			}
		}
		return set, nil

	default:
		return IDSet{}, nil
	}
}

func (r *Resolver) addPlaces(ctx context.Context, locationID uuid.UUID, set IDSet) error {
	places, err := r.store.ListPlacesByLocation(ctx, locationID)
	if err != nil {
		return err
	}
	for _, p := range places {
		set.add(p.ID)
	}
	return nil
}

// visibleEmployeeRecords computes the supervisor/monitor scope with full
// employee records, so callers that need attributes (the company filter) do
// not re-fetch. Missing or inactive employees behind a dangling assignment
// contribute nothing.
func (r *Resolver) visibleEmployeeRecords(ctx context.Context, id Identity) (map[uuid.UUID]*model.Employee, error) {
	records := make(map[uuid.UUID]*model.Employee)
	if !id.Linked() {
		return records, nil
	}
	caller := *id.EmployeeID

	collect := func(employeeID uuid.UUID, wantPosition string) error {
		if _, seen := records[employeeID]; seen {
			return nil
		}
		e, err := r.store.GetEmployee(ctx, employeeID)
		if err != nil {
			return err
		}
		if e == nil {
			return nil
		}
		if wantPosition != "" && e.Position != wantPosition {
			return nil
		}
		records[e.ID] = e
		return nil
	}

	switch id.Role {
	case RoleSupervisor:
		// Path one: direct reports.
		reports, err := r.store.ListEmployeesBySupervisorID(ctx, caller)
		if err != nil {
			return nil, err
		}
		for i := range reports {
			e := reports[i]
			records[e.ID] = &e
		}

		// Path two: the supervised subtree. Inactive areas or locations prune
		// everything below them because the store lists active rows only.
		areas, err := r.store.ListAreasBySupervisor(ctx, caller)
		if err != nil {
			return nil, err
		}
		for _, area := range areas {
			locations, err := r.store.ListLocationsByArea(ctx, area.ID)
			if err != nil {
				return nil, err
			}
			for _, loc := range locations {
				if loc.MonitorID != nil {
					if err := collect(*loc.MonitorID, ""); err != nil {
						return nil, err
					}
				}
				places, err := r.store.ListPlacesByLocation(ctx, loc.ID)
				if err != nil {
					return nil, err
				}
				for _, p := range places {
					if p.WorkerID == nil {
						continue
					}
					if err := collect(*p.WorkerID, ""); err != nil {
						return nil, err
					}
				}
			}
		}

	case RoleMonitor:
		locations, err := r.store.ListLocationsByMonitor(ctx, caller)
		if err != nil {
			return nil, err
		}
		for _, loc := range locations {
			places, err := r.store.ListPlacesByLocation(ctx, loc.ID)
			if err != nil {
				return nil, err
			}
			for _, p := range places {
				if p.WorkerID == nil {
					continue
				}
				if err := collect(*p.WorkerID, model.PositionWorker); err != nil {
					return nil, err
				}
			}
		}
	}

	return records, nil
}
