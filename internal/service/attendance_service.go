package service

import (
	"context"
	"errors"
	"time"

	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/authz"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/dto"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/model"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttendanceService interface {
	Submit(ctx context.Context, ident authz.Identity, req dto.SubmitAttendanceRequest) (*dto.AttendanceResponse, error)
	ListForDate(ctx context.Context, ident authz.Identity, date time.Time) ([]dto.AttendanceResponse, error)
	MonthlyReport(ctx context.Context, ident authz.Identity, year, month int) ([]dto.AttendanceResponse, error)
	MyAttendance(ctx context.Context, ident authz.Identity, year, month int) ([]dto.AttendanceResponse, error)
	EligibleEmployees(ctx context.Context, ident authz.Identity) ([]dto.EmployeeResponse, error)
	EmployeeFeed(ctx context.Context, ident authz.Identity, employeeID uuid.UUID, year, month int) ([]dto.AttendanceResponse, error)
}

type attendanceService struct {
	repo         repository.AttendanceRepository
	employeeRepo repository.EmployeeRepository
	store        authz.HierarchyStore
	resolver     *authz.Resolver
	authorizer   *authz.Authorizer
}

func NewAttendanceService(
	repo repository.AttendanceRepository,
	employeeRepo repository.EmployeeRepository,
	store authz.HierarchyStore,
	resolver *authz.Resolver,
	authorizer *authz.Authorizer,
) AttendanceService {
	return &attendanceService{
		repo:         repo,
		employeeRepo: employeeRepo,
		store:        store,
		resolver:     resolver,
		authorizer:   authorizer,
	}
}

// Submit records one shift. Uniqueness of (employee, date, shift) is enforced
// twice: a pre-check for a friendly error path, then the composite unique
// index inside the insert itself — the index, not the pre-check, is what
// makes concurrent duplicate submissions impossible.
func (s *attendanceService) Submit(ctx context.Context, ident authz.Identity, req dto.SubmitAttendanceRequest) (*dto.AttendanceResponse, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return nil, reject(ReasonNotFound, "invalid employee id")
	}

	// 1. Referential checkpoint.
	target, err := s.store.GetEmployeeAny(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, reject(ReasonNotFound, "employee does not exist")
	}
	if !target.Active {
		return nil, reject(ReasonInactiveTarget, "employee %s is inactive", target.FullName)
	}

	// 2. Temporal/uniqueness checkpoint.
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, reject(ReasonInvalidTimeRange, "invalid date %q, expected YYYY-MM-DD", req.Date)
	}
	checkIn, rej := parseShiftTime(req.CheckIn)
	if rej != nil {
		return nil, rej
	}
	checkOut, rej := parseShiftTime(req.CheckOut)
	if rej != nil {
		return nil, rej
	}
	if checkIn != nil && checkOut != nil && !checkOut.After(*checkIn) {
		return nil, reject(ReasonInvalidTimeRange, "check-out must be after check-in")
	}
	exists, err := s.repo.Exists(ctx, employeeID, date, req.ShiftType)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, reject(ReasonDuplicateRecord, "attendance already recorded for this employee, date and shift")
	}

	// 3. Authorization checkpoint.
	allowed, err := s.authorizer.CanRecordAttendance(ctx, ident, employeeID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, reject(ReasonUnauthorized, "not allowed to record attendance for this employee")
	}

	record := &model.Attendance{
		EmployeeID: employeeID,
		Date:       date,
		ShiftType:  req.ShiftType,
		Status:     req.Status,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Notes:      req.Notes,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		// The race the pre-check cannot close: two submissions passing it
		// together. The unique index catches the loser.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, reject(ReasonDuplicateRecord, "attendance already recorded for this employee, date and shift")
		}
		return nil, err
	}

	resp := attendanceToResponse(record)
	resp.Employee = target.FullName
	return &resp, nil
}

// parseShiftTime parses an optional "HH:MM" value.
func parseShiftTime(value string) (*time.Time, *Reject) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("15:04", value)
	if err != nil {
		return nil, reject(ReasonInvalidTimeRange, "invalid time %q, expected HH:MM", value)
	}
	return &t, nil
}

// ListForDate returns the day's records scoped to the identity: owners and
// supervisors see everyone (matching their blanket recording rights),
// monitors see their workers, workers see themselves.
func (s *attendanceService) ListForDate(ctx context.Context, ident authz.Identity, date time.Time) ([]dto.AttendanceResponse, error) {
	records, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	return s.filterVisible(ctx, ident, records)
}

func (s *attendanceService) MonthlyReport(ctx context.Context, ident authz.Identity, year, month int) ([]dto.AttendanceResponse, error) {
	from, to := monthRange(year, month)
	records, err := s.repo.ListByRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	return s.filterVisible(ctx, ident, records)
}

func (s *attendanceService) MyAttendance(ctx context.Context, ident authz.Identity, year, month int) ([]dto.AttendanceResponse, error) {
	if !ident.Linked() {
		return []dto.AttendanceResponse{}, nil
	}
	from, to := monthRange(year, month)
	records, err := s.repo.ListByEmployee(ctx, *ident.EmployeeID, from, to)
	if err != nil {
		return nil, err
	}
	return attendancesToResponses(records), nil
}

// EligibleEmployees lists who the identity may record attendance for. This is
// deliberately broader than the evaluation scope for supervisors: they get
// the whole active roster.
func (s *attendanceService) EligibleEmployees(ctx context.Context, ident authz.Identity) ([]dto.EmployeeResponse, error) {
	var employees []model.Employee
	var err error
	switch ident.Role {
	case authz.RoleOwner, authz.RoleSupervisor:
		employees, err = s.employeeRepo.List(ctx)
	case authz.RoleMonitor:
		var set authz.IDSet
		set, err = s.resolver.VisibleEmployees(ctx, ident)
		if err == nil {
			employees, err = s.employeeRepo.ListActiveByIDs(ctx, set.IDs())
		}
	default:
		return []dto.EmployeeResponse{}, nil
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		out = append(out, employeeToResponse(&employees[i]))
	}
	return out, nil
}

// EmployeeFeed returns one employee's records for a month, provided the
// employee is within the identity's visible scope.
func (s *attendanceService) EmployeeFeed(ctx context.Context, ident authz.Identity, employeeID uuid.UUID, year, month int) ([]dto.AttendanceResponse, error) {
	visible, err := s.visibleSet(ctx, ident)
	if err != nil {
		return nil, err
	}
	if visible != nil && !visible.Has(employeeID) {
		return nil, reject(ReasonUnauthorized, "employee is outside your scope")
	}
	from, to := monthRange(year, month)
	records, err := s.repo.ListByEmployee(ctx, employeeID, from, to)
	if err != nil {
		return nil, err
	}
	return attendancesToResponses(records), nil
}

// visibleSet returns nil for identities with blanket attendance visibility.
func (s *attendanceService) visibleSet(ctx context.Context, ident authz.Identity) (authz.IDSet, error) {
	switch ident.Role {
	case authz.RoleOwner, authz.RoleSupervisor:
		return nil, nil
	default:
		return s.resolver.VisibleEmployees(ctx, ident)
	}
}

func (s *attendanceService) filterVisible(ctx context.Context, ident authz.Identity, records []model.Attendance) ([]dto.AttendanceResponse, error) {
	visible, err := s.visibleSet(ctx, ident)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AttendanceResponse, 0, len(records))
	for i := range records {
		if visible != nil && !visible.Has(records[i].EmployeeID) {
			continue
		}
		out = append(out, attendanceToResponse(&records[i]))
	}
	return out, nil
}

func monthRange(year, month int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	return from, to
}

func attendanceToResponse(a *model.Attendance) dto.AttendanceResponse {
	resp := dto.AttendanceResponse{
		ID:         a.ID.String(),
		EmployeeID: a.EmployeeID.String(),
		Date:       a.Date.Format("2006-01-02"),
		ShiftType:  a.ShiftType,
		Status:     a.Status,
		Notes:      a.Notes,
	}
	if a.CheckIn != nil {
		resp.CheckIn = a.CheckIn.Format("15:04")
	}
	if a.CheckOut != nil {
		resp.CheckOut = a.CheckOut.Format("15:04")
	}
	if a.Employee != nil {
		resp.Employee = a.Employee.FullName
	}
	return resp
}

func attendancesToResponses(records []model.Attendance) []dto.AttendanceResponse {
	out := make([]dto.AttendanceResponse, 0, len(records))
	for i := range records {
		out = append(out, attendanceToResponse(&records[i]))
	}
	return out
}
