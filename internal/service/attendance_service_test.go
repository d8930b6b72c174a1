package service

import (
	"context"
	"testing"
	"time"

	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/authz"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/dto"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAttendanceService(f *guardFixture) (AttendanceService, *stubAttendanceRepo) {
	repo := newStubAttendanceRepo()
	svc := NewAttendanceService(
		repo,
		&stubEmployeeRepo{hierarchy: f.hierarchy},
		f.hierarchy,
		f.resolver,
		f.authorizer,
	)
	return svc, repo
}

func attendanceRequest(f *guardFixture) dto.SubmitAttendanceRequest {
	return dto.SubmitAttendanceRequest{
		EmployeeID: f.worker.String(),
		Date:       "2026-08-03",
		ShiftType:  model.ShiftMorning,
		Status:     "present",
		CheckIn:    "07:30",
		CheckOut:   "15:30",
	}
}

func TestAttendanceSubmit_Success(t *testing.T) {
	f := newGuardFixture()
	svc, repo := newAttendanceService(f)

	resp, err := svc.Submit(context.Background(), f.monitor(), attendanceRequest(f))
	require.NoError(t, err)
	require.Len(t, repo.records, 1)

	assert.Equal(t, f.worker.String(), resp.EmployeeID)
	assert.Equal(t, "2026-08-03", resp.Date)
	assert.Equal(t, "07:30", resp.CheckIn)
	assert.Equal(t, "15:30", resp.CheckOut)
}

func TestAttendanceSubmit_OptionalTimesOmitted(t *testing.T) {
	f := newGuardFixture()
	svc, _ := newAttendanceService(f)

	req := attendanceRequest(f)
	req.Status = "absent"
	req.CheckIn, req.CheckOut = "", ""

	resp, err := svc.Submit(context.Background(), f.supervisor(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.CheckIn)
	assert.Empty(t, resp.CheckOut)
}

func TestAttendanceSubmit_CheckOutMustFollowCheckIn(t *testing.T) {
	f := newGuardFixture()
	svc, repo := newAttendanceService(f)
	ctx := context.Background()

	req := attendanceRequest(f)
	req.CheckIn, req.CheckOut = "15:30", "07:30"
	_, err := svc.Submit(ctx, f.monitor(), req)
	rej, ok := AsReject(err)
	require.True(t, ok)
	assert.Equal(t, ReasonInvalidTimeRange, rej.Reason)

	req.CheckIn, req.CheckOut = "07:30", "07:30"
	_, err = svc.Submit(ctx, f.monitor(), req)
	rej, ok = AsReject(err)
	require.True(t, ok)
	assert.Equal(t, ReasonInvalidTimeRange, rej.Reason)

	assert.Empty(t, repo.records)
}

func TestAttendanceSubmit_MalformedTimeRejected(t *testing.T) {
	f := newGuardFixture()
	svc, _ := newAttendanceService(f)

	req := attendanceRequest(f)
	req.CheckIn = "7h30"
	_, err := svc.Submit(context.Background(), f.monitor(), req)
	rej, ok := AsReject(err)
	require.True(t, ok)
	assert.Equal(t, ReasonInvalidTimeRange, rej.Reason)
}

func TestAttendanceSubmit_MalformedDateRejected(t *testing.T) {
	f := newGuardFixture()
	svc, repo := newAttendanceService(f)

	req := attendanceRequest(f)
	req.Date = "03/08/2026"
	_, err := svc.Submit(context.Background(), f.monitor(), req)
	rej, ok := AsReject(err)
	require.True(t, ok)
	assert.Equal(t, ReasonInvalidTimeRange, rej.Reason, "a bad date is a format failure, not a duplicate")
	assert.Empty(t, repo.records)
}

func TestAttendanceSubmit_DuplicateShiftRejected(t *testing.T) {
	f := newGuardFixture()
	svc, _ := newAttendanceService(f)
	ctx := context.Background()

	_, err := svc.Submit(ctx, f.monitor(), attendanceRequest(f))
	require.NoError(t, err)

	_, err = svc.Submit(ctx, f.monitor(), attendanceRequest(f))
	rej, ok := AsReject(err)
	require.True(t, ok)
	assert.Equal(t, ReasonDuplicateRecord, rej.Reason)

	// The evening shift on the same date is a distinct record.
	req := attendanceRequest(f)
	req.ShiftType = model.ShiftEvening
	_, err = svc.Submit(ctx, f.monitor(), req)
	assert.NoError(t, err)
}

func TestAttendanceSubmit_InsertRaceLoserGetsDuplicate(t *testing.T) {
	f := newGuardFixture()
	svc, repo := newAttendanceService(f)

	repo.failNextCreate = true
	_, err := svc.Submit(context.Background(), f.monitor(), attendanceRequest(f))
	rej, ok := AsReject(err)
	require.True(t, ok)
	assert.Equal(t, ReasonDuplicateRecord, rej.Reason)
}

func TestAttendanceSubmit_UnknownAndInactiveEmployee(t *testing.T) {
	f := newGuardFixture()
	svc, _ := newAttendanceService(f)
	ctx := context.Background()

	req := attendanceRequest(f)
	req.EmployeeID = uuid.NewString()
	_, err := svc.Submit(ctx, f.owner(), req)
	rej, ok := AsReject(err)
	require.True(t, ok)
	assert.Equal(t, ReasonNotFound, rej.Reason)

	f.hierarchy.employees[f.worker].Active = false
	_, err = svc.Submit(ctx, f.owner(), attendanceRequest(f))
	rej, ok = AsReject(err)
	require.True(t, ok)
	assert.Equal(t, ReasonInactiveTarget, rej.Reason)
}

func TestAttendanceSubmit_MonitorOutOfScopeDenied(t *testing.T) {
	f := newGuardFixture()
	svc, repo := newAttendanceService(f)

	outsider := f.addEmployee(model.PositionWorker)
	req := attendanceRequest(f)
	req.EmployeeID = outsider.String()

	_, err := svc.Submit(context.Background(), f.monitor(), req)
	rej, ok := AsReject(err)
	require.True(t, ok)
	assert.Equal(t, ReasonUnauthorized, rej.Reason)
	assert.Empty(t, repo.records)
}

func TestAttendanceSubmit_WorkerDenied(t *testing.T) {
	f := newGuardFixture()
	svc, _ := newAttendanceService(f)

	ident := authz.Identity{Role: authz.RoleWorker, EmployeeID: &f.worker}
	_, err := svc.Submit(context.Background(), ident, attendanceRequest(f))
	rej, ok := AsReject(err)
	require.True(t, ok)
	assert.Equal(t, ReasonUnauthorized, rej.Reason)
}

func TestAttendanceListForDate_ScopedPerRole(t *testing.T) {
	f := newGuardFixture()
	svc, _ := newAttendanceService(f)
	ctx := context.Background()

	// One record for the assigned worker, one for an outsider the monitor
	// cannot see.
	require.NoError(t, submit(t, svc, f.supervisor(), attendanceRequest(f)))
	outsider := f.addEmployee(model.PositionWorker)
	req := attendanceRequest(f)
	req.EmployeeID = outsider.String()
	require.NoError(t, submit(t, svc, f.supervisor(), req))

	date, _ := time.Parse("2006-01-02", "2026-08-03")

	all, err := svc.ListForDate(ctx, f.supervisor(), date)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	scoped, err := svc.ListForDate(ctx, f.monitor(), date)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, f.worker.String(), scoped[0].EmployeeID)
}

func submit(t *testing.T, svc AttendanceService, ident authz.Identity, req dto.SubmitAttendanceRequest) error {
	t.Helper()
	_, err := svc.Submit(context.Background(), ident, req)
	return err
}

func TestAttendanceMyAttendance_MonthWindow(t *testing.T) {
	f := newGuardFixture()
	svc, _ := newAttendanceService(f)
	ctx := context.Background()

	require.NoError(t, submit(t, svc, f.supervisor(), attendanceRequest(f)))
	july := attendanceRequest(f)
	july.Date = "2026-07-31"
	require.NoError(t, submit(t, svc, f.supervisor(), july))

	ident := authz.Identity{Role: authz.RoleWorker, EmployeeID: &f.worker}
	records, err := svc.MyAttendance(ctx, ident, 2026, 8)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2026-08-03", records[0].Date)
}

func TestAttendanceEligibleEmployees_PerRole(t *testing.T) {
	f := newGuardFixture()
	svc, _ := newAttendanceService(f)
	ctx := context.Background()

	roster, err := svc.EligibleEmployees(ctx, f.supervisor())
	require.NoError(t, err)
	assert.Len(t, roster, 3, "supervisors get the whole active roster")

	scoped, err := svc.EligibleEmployees(ctx, f.monitor())
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, f.worker.String(), scoped[0].ID)

	none, err := svc.EligibleEmployees(ctx, authz.Identity{Role: authz.RoleWorker, EmployeeID: &f.worker})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAttendanceEmployeeFeed_ScopeEnforced(t *testing.T) {
	f := newGuardFixture()
	svc, _ := newAttendanceService(f)
	ctx := context.Background()

	require.NoError(t, submit(t, svc, f.supervisor(), attendanceRequest(f)))

	records, err := svc.EmployeeFeed(ctx, f.monitor(), f.worker, 2026, 8)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	_, err = svc.EmployeeFeed(ctx, f.monitor(), f.sup, 2026, 8)
	rej, ok := AsReject(err)
	require.True(t, ok)
	assert.Equal(t, ReasonUnauthorized, rej.Reason)

	// Blanket visibility for supervisors.
	_, err = svc.EmployeeFeed(ctx, f.supervisor(), f.mon, 2026, 8)
	assert.NoError(t, err)
}
