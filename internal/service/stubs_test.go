package service

import (
	"context"
	"fmt"
	"time"

	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/authz"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/model"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ── In-memory hierarchy snapshot ─────────────────────────────────────────────

type fakeHierarchy struct {
	employees  map[uuid.UUID]*model.Employee
	areas      map[uuid.UUID]*model.Area
	locations  map[uuid.UUID]*model.Location
	places     map[uuid.UUID]*model.Place
	evalCounts map[uuid.UUID]int64
}

func newFakeHierarchy() *fakeHierarchy {
	return &fakeHierarchy{
		employees:  make(map[uuid.UUID]*model.Employee),
		areas:      make(map[uuid.UUID]*model.Area),
		locations:  make(map[uuid.UUID]*model.Location),
		places:     make(map[uuid.UUID]*model.Place),
		evalCounts: make(map[uuid.UUID]int64),
	}
}

func (f *fakeHierarchy) GetEmployee(_ context.Context, id uuid.UUID) (*model.Employee, error) {
	if e, ok := f.employees[id]; ok && e.Active {
		return e, nil
	}
	return nil, nil
}

func (f *fakeHierarchy) GetEmployeeAny(_ context.Context, id uuid.UUID) (*model.Employee, error) {
	return f.employees[id], nil
}

func (f *fakeHierarchy) GetArea(_ context.Context, id uuid.UUID) (*model.Area, error) {
	if a, ok := f.areas[id]; ok && a.Active {
		return a, nil
	}
	return nil, nil
}

func (f *fakeHierarchy) GetLocation(_ context.Context, id uuid.UUID) (*model.Location, error) {
	if l, ok := f.locations[id]; ok && l.Active {
		return l, nil
	}
	return nil, nil
}

func (f *fakeHierarchy) GetPlace(_ context.Context, id uuid.UUID) (*model.Place, error) {
	if p, ok := f.places[id]; ok && p.Active {
		return p, nil
	}
	return nil, nil
}

func (f *fakeHierarchy) GetPlaceAny(_ context.Context, id uuid.UUID) (*model.Place, error) {
	return f.places[id], nil
}

func (f *fakeHierarchy) ListAreasBySupervisor(_ context.Context, employeeID uuid.UUID) ([]model.Area, error) {
	var out []model.Area
	for _, a := range f.areas {
		if a.Active && a.SupervisorID != nil && *a.SupervisorID == employeeID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (f *fakeHierarchy) ListLocationsByArea(_ context.Context, areaID uuid.UUID) ([]model.Location, error) {
	var out []model.Location
	for _, l := range f.locations {
		if l.Active && l.AreaID == areaID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeHierarchy) ListLocationsByMonitor(_ context.Context, employeeID uuid.UUID) ([]model.Location, error) {
	var out []model.Location
	for _, l := range f.locations {
		if l.Active && l.MonitorID != nil && *l.MonitorID == employeeID {
			out = append(out, *l)
		}
	}
	return out, nil
}

func (f *fakeHierarchy) ListPlacesByLocation(_ context.Context, locationID uuid.UUID) ([]model.Place, error) {
	var out []model.Place
	for _, p := range f.places {
		if p.Active && p.LocationID == locationID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeHierarchy) ListEmployeesBySupervisorID(_ context.Context, employeeID uuid.UUID) ([]model.Employee, error) {
	var out []model.Employee
	for _, e := range f.employees {
		if e.Active && e.SupervisorID != nil && *e.SupervisorID == employeeID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeHierarchy) ListActiveEmployees(_ context.Context) ([]model.Employee, error) {
	var out []model.Employee
	for _, e := range f.employees {
		if e.Active {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (f *fakeHierarchy) ListActivePlaces(_ context.Context) ([]model.Place, error) {
	var out []model.Place
	for _, p := range f.places {
		if p.Active {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeHierarchy) CountAreasByCompany(_ context.Context, companyID uuid.UUID) (int64, error) {
	var n int64
	for _, a := range f.areas {
		if a.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}

func (f *fakeHierarchy) CountEvaluationsByPlace(_ context.Context, placeID uuid.UUID) (int64, error) {
	return f.evalCounts[placeID], nil
}

// guardFixture wires one company → area → location → place chain with a
// supervisor, a monitor and an assigned worker, plus the engine pieces the
// submission guards consume.
type guardFixture struct {
	hierarchy  *fakeHierarchy
	resolver   *authz.Resolver
	authorizer *authz.Authorizer

	company  uuid.UUID
	area     uuid.UUID
	location uuid.UUID
	place    uuid.UUID

	sup    uuid.UUID
	mon    uuid.UUID
	worker uuid.UUID
}

func newGuardFixture() *guardFixture {
	h := newFakeHierarchy()
	f := &guardFixture{
		hierarchy:  h,
		resolver:   authz.NewResolver(h),
		authorizer: authz.NewAuthorizer(h),
		company:    uuid.New(),
	}

	f.sup = f.addEmployee(model.PositionSupervisor)
	f.mon = f.addEmployee(model.PositionMonitor)
	f.worker = f.addEmployee(model.PositionWorker)

	f.area = uuid.New()
	h.areas[f.area] = &model.Area{ID: f.area, Name: "North", CompanyID: f.company, SupervisorID: &f.sup, Active: true}
	f.location = uuid.New()
	h.locations[f.location] = &model.Location{ID: f.location, Name: "Tower A", AreaID: f.area, MonitorID: &f.mon, Active: true}
	f.place = uuid.New()
	h.places[f.place] = &model.Place{ID: f.place, Name: "Lobby", LocationID: f.location, WorkerID: &f.worker, Active: true}

	return f
}

func (f *guardFixture) addEmployee(position string) uuid.UUID {
	id := uuid.New()
	f.hierarchy.employees[id] = &model.Employee{
		ID:       id,
		FullName: fmt.Sprintf("%s %s", position, id.String()[:8]),
		Position: position,
		HireDate: time.Now().AddDate(-1, 0, 0),
		Active:   true,
	}
	return id
}

func (f *guardFixture) owner() authz.Identity { return authz.Identity{Role: authz.RoleOwner} }

func (f *guardFixture) monitor() authz.Identity {
	return authz.Identity{Role: authz.RoleMonitor, EmployeeID: &f.mon}
}
func (f *guardFixture) supervisor() authz.Identity {
	return authz.Identity{Role: authz.RoleSupervisor, EmployeeID: &f.sup}
}

// ── Repository stubs ─────────────────────────────────────────────────────────

type stubEvaluationRepo struct {
	created []*model.Evaluation
}

func (r *stubEvaluationRepo) Create(_ context.Context, e *model.Evaluation) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.created = append(r.created, e)
	return nil
}

func (r *stubEvaluationRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Evaluation, error) {
	for _, e := range r.created {
		if e.ID == id {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubEvaluationRepo) ListAll(_ context.Context) ([]model.Evaluation, error) {
	out := make([]model.Evaluation, 0, len(r.created))
	for _, e := range r.created {
		out = append(out, *e)
	}
	return out, nil
}

func (r *stubEvaluationRepo) ListByPlaceIDs(_ context.Context, placeIDs []uuid.UUID) ([]model.Evaluation, error) {
	allowed := make(map[uuid.UUID]struct{}, len(placeIDs))
	for _, id := range placeIDs {
		allowed[id] = struct{}{}
	}
	var out []model.Evaluation
	for _, e := range r.created {
		if _, ok := allowed[e.PlaceID]; ok {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubEvaluationRepo) ListByEvaluatedEmployee(_ context.Context, employeeID uuid.UUID) ([]model.Evaluation, error) {
	var out []model.Evaluation
	for _, e := range r.created {
		if e.EvaluatedEmployeeID == employeeID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubEvaluationRepo) ListRecent(_ context.Context, limit int) ([]model.Evaluation, error) {
	all, _ := r.ListAll(context.Background())
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r *stubEvaluationRepo) CountForDate(_ context.Context, _ time.Time) (int64, error) {
	return int64(len(r.created)), nil
}

func (r *stubEvaluationRepo) CountSince(_ context.Context, _ time.Time) (int64, error) {
	return int64(len(r.created)), nil
}

func (r *stubEvaluationRepo) AvgScoreForDate(_ context.Context, _ time.Time) (float64, error) {
	return 0, nil
}

func (r *stubEvaluationRepo) TopPerformers(_ context.Context, _ int) ([]repository.PerformerStat, error) {
	return nil, nil
}

type stubAttendanceRepo struct {
	records map[string]*model.Attendance
	// failNextCreate simulates losing the insert race: the pre-check saw no
	// row but the unique index rejects the write.
	failNextCreate bool
}

func newStubAttendanceRepo() *stubAttendanceRepo {
	return &stubAttendanceRepo{records: make(map[string]*model.Attendance)}
}

func attendanceKey(employeeID uuid.UUID, date time.Time, shiftType string) string {
	return fmt.Sprintf("%s|%s|%s", employeeID, date.Format("2006-01-02"), shiftType)
}

func (r *stubAttendanceRepo) Create(_ context.Context, a *model.Attendance) error {
	if r.failNextCreate {
		r.failNextCreate = false
		return gorm.ErrDuplicatedKey
	}
	key := attendanceKey(a.EmployeeID, a.Date, a.ShiftType)
	if _, ok := r.records[key]; ok {
		return gorm.ErrDuplicatedKey
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	r.records[key] = a
	return nil
}

func (r *stubAttendanceRepo) Exists(_ context.Context, employeeID uuid.UUID, date time.Time, shiftType string) (bool, error) {
	_, ok := r.records[attendanceKey(employeeID, date, shiftType)]
	return ok, nil
}

func (r *stubAttendanceRepo) ListByDate(_ context.Context, date time.Time) ([]model.Attendance, error) {
	var out []model.Attendance
	for _, a := range r.records {
		if a.Date.Equal(date) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubAttendanceRepo) ListByEmployee(_ context.Context, employeeID uuid.UUID, from, to time.Time) ([]model.Attendance, error) {
	var out []model.Attendance
	for _, a := range r.records {
		if a.EmployeeID == employeeID && !a.Date.Before(from) && !a.Date.After(to) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubAttendanceRepo) ListByRange(_ context.Context, from, to time.Time) ([]model.Attendance, error) {
	var out []model.Attendance
	for _, a := range r.records {
		if !a.Date.Before(from) && !a.Date.After(to) {
			out = append(out, *a)
		}
	}
	return out, nil
}

// stubEmployeeRepo serves reads from the same hierarchy snapshot the engine
// sees, so the two never disagree in a test.
type stubEmployeeRepo struct {
	hierarchy *fakeHierarchy
}

func (r *stubEmployeeRepo) Create(_ context.Context, _ *gorm.DB, e *model.Employee) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	r.hierarchy.employees[e.ID] = e
	return nil
}

func (r *stubEmployeeRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Employee, error) {
	if e, ok := r.hierarchy.employees[id]; ok {
		return e, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubEmployeeRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*model.Employee, error) {
	for _, e := range r.hierarchy.employees {
		if e.Active && e.UserID != nil && *e.UserID == userID {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubEmployeeRepo) FindFirstActiveByPosition(_ context.Context, position string) (*model.Employee, error) {
	for _, e := range r.hierarchy.employees {
		if e.Active && e.Position == position {
			return e, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubEmployeeRepo) List(_ context.Context) ([]model.Employee, error) {
	return r.hierarchy.ListActiveEmployees(context.Background())
}

func (r *stubEmployeeRepo) ListAll(_ context.Context) ([]model.Employee, error) {
	var out []model.Employee
	for _, e := range r.hierarchy.employees {
		out = append(out, *e)
	}
	return out, nil
}

func (r *stubEmployeeRepo) ListActiveByIDs(_ context.Context, ids []uuid.UUID) ([]model.Employee, error) {
	var out []model.Employee
	for _, id := range ids {
		if e, ok := r.hierarchy.employees[id]; ok && e.Active {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubEmployeeRepo) Update(_ context.Context, e *model.Employee) error {
	r.hierarchy.employees[e.ID] = e
	return nil
}

func (r *stubEmployeeRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if e, ok := r.hierarchy.employees[id]; ok {
		e.Active = false
	}
	return nil
}

func (r *stubEmployeeRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	if e, ok := r.hierarchy.employees[id]; ok {
		e.Active = true
	}
	return nil
}

func (r *stubEmployeeRepo) DB() *gorm.DB { return nil }

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo { return &stubUserRepo{users: make(map[uuid.UUID]*model.User)} }

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByLogin(_ context.Context, login string) (*model.User, error) {
	for _, u := range r.users {
		if u.Active && (u.Username == login || u.Email == login) {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		if u.Active {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUserRepo) ListAll(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if u, ok := r.users[id]; ok {
		u.Active = false
	}
	return nil
}

func (r *stubUserRepo) Reactivate(_ context.Context, id uuid.UUID) error {
	if u, ok := r.users[id]; ok {
		u.Active = true
	}
	return nil
}
