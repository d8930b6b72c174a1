package authz

import (
	"context"
	"time"

	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/model"

	"github.com/google/uuid"
)

// ── In-memory HierarchyStore stub ────────────────────────────────────────────

type stubStore struct {
	employees map[uuid.UUID]*model.Employee
	areas     map[uuid.UUID]*model.Area
	locations map[uuid.UUID]*model.Location
	places    map[uuid.UUID]*model.Place

	evaluationsByPlace map[uuid.UUID]int64
}

func newStubStore() *stubStore {
	return &stubStore{
		employees:          make(map[uuid.UUID]*model.Employee),
		areas:              make(map[uuid.UUID]*model.Area),
		locations:          make(map[uuid.UUID]*model.Location),
		places:             make(map[uuid.UUID]*model.Place),
		evaluationsByPlace: make(map[uuid.UUID]int64),
	}
}

func (s *stubStore) GetEmployee(_ context.Context, id uuid.UUID) (*model.Employee, error) {
	e, ok := s.employees[id]
	if !ok || !e.Active {
		return nil, nil
	}
	return e, nil
}

func (s *stubStore) GetEmployeeAny(_ context.Context, id uuid.UUID) (*model.Employee, error) {
	e, ok := s.employees[id]
	if !ok {
		return nil, nil
	}
	return e, nil
}

func (s *stubStore) GetArea(_ context.Context, id uuid.UUID) (*model.Area, error) {
	a, ok := s.areas[id]
	if !ok || !a.Active {
		return nil, nil
	}
	return a, nil
}

func (s *stubStore) GetLocation(_ context.Context, id uuid.UUID) (*model.Location, error) {
	l, ok := s.locations[id]
	if !ok || !l.Active {
		return nil, nil
	}
	return l, nil
}

func (s *stubStore) GetPlace(_ context.Context, id uuid.UUID) (*model.Place, error) {
	p, ok := s.places[id]
	if !ok || !p.Active {
		return nil, nil
	}
	return p, nil
}

func (s *stubStore) GetPlaceAny(_ context.Context, id uuid.UUID) (*model.Place, error) {
	p, ok := s.places[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (s *stubStore) ListAreasBySupervisor(_ context.Context, employeeID uuid.UUID) ([]model.Area, error) {
	var out []model.Area
	for _, a := range s.areas {
		if a.Active && a.SupervisorID != nil && *a.SupervisorID == employeeID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *stubStore) ListLocationsByArea(_ context.Context, areaID uuid.UUID) ([]model.Location, error) {
	var out []model.Location
	for _, l := range s.locations {
		if l.Active && l.AreaID == areaID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (s *stubStore) ListLocationsByMonitor(_ context.Context, employeeID uuid.UUID) ([]model.Location, error) {
	var out []model.Location
	for _, l := range s.locations {
		if l.Active && l.MonitorID != nil && *l.MonitorID == employeeID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (s *stubStore) ListPlacesByLocation(_ context.Context, locationID uuid.UUID) ([]model.Place, error) {
	var out []model.Place
	for _, p := range s.places {
		if p.Active && p.LocationID == locationID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubStore) ListEmployeesBySupervisorID(_ context.Context, employeeID uuid.UUID) ([]model.Employee, error) {
	var out []model.Employee
	for _, e := range s.employees {
		if e.Active && e.SupervisorID != nil && *e.SupervisorID == employeeID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s *stubStore) ListActiveEmployees(_ context.Context) ([]model.Employee, error) {
	var out []model.Employee
	for _, e := range s.employees {
		if e.Active {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (s *stubStore) ListActivePlaces(_ context.Context) ([]model.Place, error) {
	var out []model.Place
	for _, p := range s.places {
		if p.Active {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubStore) CountAreasByCompany(_ context.Context, companyID uuid.UUID) (int64, error) {
	var n int64
	for _, a := range s.areas {
		if a.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

func (s *stubStore) CountEvaluationsByPlace(_ context.Context, placeID uuid.UUID) (int64, error) {
	return s.evaluationsByPlace[placeID], nil
}

// ── Fixture helpers ──────────────────────────────────────────────────────────

func (s *stubStore) addEmployee(position string, companyID, supervisorID *uuid.UUID) uuid.UUID {
	id := uuid.New()
	s.employees[id] = &model.Employee{
		ID:           id,
		FullName:     "Employee " + id.String()[:8],
		Position:     position,
		CompanyID:    companyID,
		SupervisorID: supervisorID,
		HireDate:     time.Now().AddDate(-1, 0, 0),
		Active:       true,
	}
	return id
}

func (s *stubStore) addArea(companyID uuid.UUID, supervisorID *uuid.UUID) uuid.UUID {
	id := uuid.New()
	s.areas[id] = &model.Area{ID: id, Name: "Area", CompanyID: companyID, SupervisorID: supervisorID, Active: true}
	return id
}

func (s *stubStore) addLocation(areaID uuid.UUID, monitorID *uuid.UUID) uuid.UUID {
	id := uuid.New()
	s.locations[id] = &model.Location{ID: id, Name: "Location", AreaID: areaID, MonitorID: monitorID, Active: true}
	return id
}

func (s *stubStore) addPlace(locationID uuid.UUID, workerID *uuid.UUID) uuid.UUID {
	id := uuid.New()
	s.places[id] = &model.Place{ID: id, Name: "Place", LocationID: locationID, WorkerID: workerID, Active: true}
	return id
}

func ptr(id uuid.UUID) *uuid.UUID { return &id }

// fixture is one fully-wired hierarchy used by most scope tests:
//
//	company ── area (supervised by sup)
//	             └── location (monitored by mon)
//	                   ├── place1 (worker1)
//	                   └── place2 (worker2)
//
// directReport reports to sup but is placed in otherArea, which sup does
// not supervise.
type fixture struct {
	store *stubStore

	company   uuid.UUID
	area      uuid.UUID
	location  uuid.UUID
	place1    uuid.UUID
	place2    uuid.UUID
	otherArea uuid.UUID

	sup          uuid.UUID
	mon          uuid.UUID
	worker1      uuid.UUID
	worker2      uuid.UUID
	directReport uuid.UUID
}

func newFixture() *fixture {
	s := newStubStore()
	f := &fixture{store: s}

	f.company = uuid.New()
	f.sup = s.addEmployee(model.PositionSupervisor, ptr(f.company), nil)
	f.mon = s.addEmployee(model.PositionMonitor, ptr(f.company), nil)
	f.worker1 = s.addEmployee(model.PositionWorker, ptr(f.company), nil)
	f.worker2 = s.addEmployee(model.PositionWorker, ptr(f.company), nil)

	f.area = s.addArea(f.company, ptr(f.sup))
	f.location = s.addLocation(f.area, ptr(f.mon))
	f.place1 = s.addPlace(f.location, ptr(f.worker1))
	f.place2 = s.addPlace(f.location, ptr(f.worker2))

	f.otherArea = s.addArea(f.company, nil)
	f.directReport = s.addEmployee(model.PositionWorker, ptr(f.company), ptr(f.sup))

	return f
}

func supervisorIdentity(f *fixture) Identity {
	return Identity{Role: RoleSupervisor, EmployeeID: &f.sup}
}
func monitorIdentity(f *fixture) Identity { return Identity{Role: RoleMonitor, EmployeeID: &f.mon} }
func ownerIdentity() Identity             { return Identity{Role: RoleOwner} }
