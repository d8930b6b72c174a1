package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/authz"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEvaluationService(f *guardFixture) (EvaluationService, *stubEvaluationRepo) {
	repo := &stubEvaluationRepo{}
	svc := NewEvaluationService(
		repo,
		&stubEmployeeRepo{hierarchy: f.hierarchy},
		newStubUserRepo(),
		f.hierarchy,
		f.resolver,
		f.authorizer,
		nil, // no dispatcher: alerts are best-effort and skipped
	)
	return svc, repo
}

func evaluationRequest(f *guardFixture) dto.SubmitEvaluationRequest {
	return dto.SubmitEvaluationRequest{
		Date:                time.Now().UTC().Format("2006-01-02"),
		PlaceID:             f.place.String(),
		EvaluatedEmployeeID: f.worker.String(),
		Cleanliness:         4,
		Organization:        5,
		EquipmentCondition:  3,
		SafetyMeasures:      4,
		Timeliness:          4,
	}
}

func TestEvaluationSubmit_MonitorSuccess(t *testing.T) {
	f := newGuardFixture()
	svc, repo := newEvaluationService(f)

	resp, err := svc.Submit(context.Background(), f.monitor(), evaluationRequest(f))
	require.NoError(t, err)
	require.Len(t, repo.created, 1)

	assert.Equal(t, f.mon.String(), resp.EvaluatorID)
	assert.Equal(t, f.worker.String(), resp.EvaluatedEmployeeID)
	assert.InDelta(t, 4.0, resp.OverallScore, 0.001)
	assert.Equal(t, "Lobby", resp.PlaceName)
}

func TestEvaluationSubmit_OwnerAttributedToSupervisor(t *testing.T) {
	f := newGuardFixture()
	svc, repo := newEvaluationService(f)

	resp, err := svc.Submit(context.Background(), f.owner(), evaluationRequest(f))
	require.NoError(t, err)

	assert.Equal(t, f.sup.String(), resp.EvaluatorID)
	assert.Equal(t, f.sup, repo.created[0].EvaluatorID)
}

func TestEvaluationSubmit_FutureDateRejected(t *testing.T) {
	f := newGuardFixture()
	svc, repo := newEvaluationService(f)

	req := evaluationRequest(f)
	req.Date = time.Now().UTC().AddDate(0, 0, 1).Format("2006-01-02")

	_, err := svc.Submit(context.Background(), f.monitor(), req)
	rej, ok := AsReject(err)
	require.True(t, ok)
	assert.Equal(t, ReasonFutureDate, rej.Reason)
	assert.Empty(t, repo.created, "nothing persisted on rejection")
}

func TestEvaluationSubmit_MalformedDateRejected(t *testing.T) {
	f := newGuardFixture()
	svc, repo := newEvaluationService(f)

	req := evaluationRequest(f)
	req.Date = "tomorrow"

	_, err := svc.Submit(context.Background(), f.monitor(), req)
	rej, ok := AsReject(err)
	require.True(t, ok)
	assert.Equal(t, ReasonInvalidTimeRange, rej.Reason, "a bad date is a format failure, not a future date")
	assert.Empty(t, repo.created)
}

func TestEvaluationSubmit_UnknownTargets(t *testing.T) {
	f := newGuardFixture()
	svc, _ := newEvaluationService(f)
	ctx := context.Background()

	req := evaluationRequest(f)
	req.EvaluatedEmployeeID = uuid.NewString()
	_, err := svc.Submit(ctx, f.monitor(), req)
	rej, ok := AsReject(err)
	require.True(t, ok)
	assert.Equal(t, ReasonNotFound, rej.Reason)

	req = evaluationRequest(f)
	req.PlaceID = uuid.NewString()
	_, err = svc.Submit(ctx, f.monitor(), req)
	rej, ok = AsReject(err)
	require.True(t, ok)
	assert.Equal(t, ReasonNotFound, rej.Reason)
}

func TestEvaluationSubmit_InactiveTargetBeatsAuthorization(t *testing.T) {
	f := newGuardFixture()
	svc, _ := newEvaluationService(f)

	// The monitor would be denied here anyway (worker moved off the place),
	// but the referential checkpoint must fire first.
	f.hierarchy.employees[f.worker].Active = false
	f.hierarchy.places[f.place].WorkerID = nil

	_, err := svc.Submit(context.Background(), f.monitor(), evaluationRequest(f))
	rej, ok := AsReject(err)
	require.True(t, ok)
	assert.Equal(t, ReasonInactiveTarget, rej.Reason)
}

func TestEvaluationSubmit_InactivePlaceRejected(t *testing.T) {
	f := newGuardFixture()
	svc, _ := newEvaluationService(f)
	f.hierarchy.places[f.place].Active = false

	_, err := svc.Submit(context.Background(), f.owner(), evaluationRequest(f))
	rej, ok := AsReject(err)
	require.True(t, ok)
	assert.Equal(t, ReasonInactiveTarget, rej.Reason)
}

func TestEvaluationSubmit_OutOfScopeUnauthorized(t *testing.T) {
	f := newGuardFixture()
	svc, repo := newEvaluationService(f)

	// A worker who is not the one assigned to the monitored place.
	otherWorker := f.addEmployee("worker")
	req := evaluationRequest(f)
	req.EvaluatedEmployeeID = otherWorker.String()

	_, err := svc.Submit(context.Background(), f.monitor(), req)
	rej, ok := AsReject(err)
	require.True(t, ok)
	assert.Equal(t, ReasonUnauthorized, rej.Reason)
	assert.Empty(t, repo.created)
}

func TestEvaluationSubmit_LowScoreStillPersists(t *testing.T) {
	f := newGuardFixture()
	svc, repo := newEvaluationService(f)

	req := evaluationRequest(f)
	req.Cleanliness, req.Organization, req.EquipmentCondition = 1, 1, 1
	req.SafetyMeasures, req.Timeliness = 1, 2

	resp, err := svc.Submit(context.Background(), f.monitor(), req)
	require.NoError(t, err)
	assert.InDelta(t, 1.2, resp.OverallScore, 0.001)
	assert.Len(t, repo.created, 1)
}

func TestEvaluationList_ScopedPerRole(t *testing.T) {
	f := newGuardFixture()
	svc, _ := newEvaluationService(f)
	ctx := context.Background()

	_, err := svc.Submit(ctx, f.monitor(), evaluationRequest(f))
	require.NoError(t, err)

	all, err := svc.List(ctx, f.owner())
	require.NoError(t, err)
	assert.Len(t, all, 1)

	mine, err := svc.List(ctx, authz.Identity{Role: authz.RoleWorker, EmployeeID: &f.worker})
	require.NoError(t, err)
	assert.Len(t, mine, 1, "workers see their own received evaluations")
}

func TestEvaluationEligibleEmployees_MonitorGetsAssignedWorkers(t *testing.T) {
	f := newGuardFixture()
	svc, _ := newEvaluationService(f)

	eligible, err := svc.EligibleEmployees(context.Background(), f.monitor())
	require.NoError(t, err)
	require.Len(t, eligible, 1)
	assert.Equal(t, f.worker.String(), eligible[0].ID)
}

func TestAsReject_PlainErrorIsNotAReject(t *testing.T) {
	_, ok := AsReject(errors.New("connection refused"))
	assert.False(t, ok)
}
