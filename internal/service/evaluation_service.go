package service

import (
	"context"
	"errors"
	"time"

	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/authz"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/dto"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/model"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/repository"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// lowScoreThreshold triggers a supervisor alert email when an evaluation's
// overall score falls below it.
const lowScoreThreshold = 2.5

type EvaluationService interface {
	Submit(ctx context.Context, ident authz.Identity, req dto.SubmitEvaluationRequest) (*dto.EvaluationResponse, error)
	List(ctx context.Context, ident authz.Identity) ([]dto.EvaluationResponse, error)
	MyEvaluations(ctx context.Context, ident authz.Identity) ([]dto.EvaluationResponse, error)
	EligibleEmployees(ctx context.Context, ident authz.Identity) ([]dto.EmployeeResponse, error)
}

type evaluationService struct {
	repo         repository.EvaluationRepository
	employeeRepo repository.EmployeeRepository
	userRepo     repository.UserRepository
	store        authz.HierarchyStore
	resolver     *authz.Resolver
	authorizer   *authz.Authorizer
	dispatcher   *worker.Dispatcher
}

func NewEvaluationService(
	repo repository.EvaluationRepository,
	employeeRepo repository.EmployeeRepository,
	userRepo repository.UserRepository,
	store authz.HierarchyStore,
	resolver *authz.Resolver,
	authorizer *authz.Authorizer,
	dispatcher *worker.Dispatcher,
) EvaluationService {
	return &evaluationService{
		repo:         repo,
		employeeRepo: employeeRepo,
		userRepo:     userRepo,
		store:        store,
		resolver:     resolver,
		authorizer:   authorizer,
		dispatcher:   dispatcher,
	}
}

// Submit runs the three submission checkpoints in order — referential,
// temporal, authorization — and only then writes. Any failure aborts with a
// typed reject and nothing is persisted.
func (s *evaluationService) Submit(ctx context.Context, ident authz.Identity, req dto.SubmitEvaluationRequest) (*dto.EvaluationResponse, error) {
	placeID, err := uuid.Parse(req.PlaceID)
	if err != nil {
		return nil, reject(ReasonNotFound, "invalid place id")
	}
	employeeID, err := uuid.Parse(req.EvaluatedEmployeeID)
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
	place, err := s.store.GetPlaceAny(ctx, placeID)
	if err != nil {
		return nil, err
	}
	if place == nil {
		return nil, reject(ReasonNotFound, "place does not exist")
	}
	if !place.Active {
		return nil, reject(ReasonInactiveTarget, "place %s is inactive", place.Name)
	}

	// 2. Temporal checkpoint.
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, reject(ReasonInvalidTimeRange, "invalid date %q, expected YYYY-MM-DD", req.Date)
	}
	if date.After(today()) {
		return nil, reject(ReasonFutureDate, "evaluation date cannot be in the future")
	}

	// 3. Authorization checkpoint.
	allowed, err := s.authorizer.CanEvaluate(ctx, ident, employeeID, placeID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, reject(ReasonUnauthorized, "not allowed to evaluate this employee at this place")
	}

	evaluatorID, rej := s.resolveEvaluator(ctx, ident)
	if rej != nil {
		return nil, rej
	}

	eval := &model.Evaluation{
		Date:                date,
		PlaceID:             placeID,
		EvaluatedEmployeeID: employeeID,
		EvaluatorID:         evaluatorID,
		Cleanliness:         req.Cleanliness,
		Organization:        req.Organization,
		EquipmentCondition:  req.EquipmentCondition,
		SafetyMeasures:      req.SafetyMeasures,
		Timeliness:          req.Timeliness,
		Comments:            req.Comments,
	}
	eval.ComputeOverallScore()

	if err := s.repo.Create(ctx, eval); err != nil {
		return nil, err
	}

	if eval.OverallScore < lowScoreThreshold {
		s.dispatchLowScoreAlert(ctx, eval, target, place)
	}

	resp := evaluationToResponse(eval)
	resp.EvaluatedEmployee = target.FullName
	resp.PlaceName = place.Name
	return &resp, nil
}

// resolveEvaluator attributes the evaluation: owners are recorded behind the
// first active supervisor (owners carry no employee profile of their own);
// everyone else is recorded as themselves.
func (s *evaluationService) resolveEvaluator(ctx context.Context, ident authz.Identity) (uuid.UUID, *Reject) {
	if ident.Role == authz.RoleOwner {
		sup, err := s.employeeRepo.FindFirstActiveByPosition(ctx, model.PositionSupervisor)
		if err != nil {
			return uuid.Nil, reject(ReasonNotFound, "no active supervisor to attribute the evaluation to")
		}
		return sup.ID, nil
	}
	if !ident.Linked() {
		return uuid.Nil, reject(ReasonUnauthorized, "no employee profile linked to this account")
	}
	return *ident.EmployeeID, nil
}

func (s *evaluationService) dispatchLowScoreAlert(ctx context.Context, eval *model.Evaluation, target *model.Employee, place *model.Place) {
	if s.dispatcher == nil {
		return
	}
	email, ok := s.areaSupervisorEmail(ctx, place)
	if !ok {
		return
	}
	payload := worker.AlertJobPayload{
		ToEmail:      email,
		EmployeeName: target.FullName,
		PlaceName:    place.Name,
		Score:        eval.OverallScore,
		Date:         eval.Date.Format("2006-01-02"),
	}
	// Best-effort — a full queue never blocks the submission.
	if err := s.dispatcher.EnqueueAlert(ctx, payload); err != nil {
		log.Warn().Err(err).Str("place", place.Name).Msg("failed to enqueue low-score alert")
	}
}

// areaSupervisorEmail walks place → location → area → supervisor → user and
// returns the supervisor's account email. Any gap on the path means no alert.
func (s *evaluationService) areaSupervisorEmail(ctx context.Context, place *model.Place) (string, bool) {
	location, err := s.store.GetLocation(ctx, place.LocationID)
	if err != nil || location == nil {
		return "", false
	}
	area, err := s.store.GetArea(ctx, location.AreaID)
	if err != nil || area == nil || area.SupervisorID == nil {
		return "", false
	}
	sup, err := s.store.GetEmployee(ctx, *area.SupervisorID)
	if err != nil || sup == nil || sup.UserID == nil {
		return "", false
	}
	user, err := s.userRepo.FindByID(ctx, *sup.UserID)
	if err != nil || !user.Active {
		return "", false
	}
	return user.Email, true
}

// List returns the evaluations the identity may see: everything for owners,
// evaluations at visible places for supervisors and monitors, own received
// evaluations for workers.
func (s *evaluationService) List(ctx context.Context, ident authz.Identity) ([]dto.EvaluationResponse, error) {
	var (
		evaluations []model.Evaluation
		err         error
	)
	switch ident.Role {
	case authz.RoleOwner:
		evaluations, err = s.repo.ListAll(ctx)
	case authz.RoleSupervisor, authz.RoleMonitor:
		var places authz.IDSet
		places, err = s.resolver.VisiblePlaces(ctx, ident)
		if err == nil {
			evaluations, err = s.repo.ListByPlaceIDs(ctx, places.IDs())
		}
	default:
		if !ident.Linked() {
			return []dto.EvaluationResponse{}, nil
		}
		evaluations, err = s.repo.ListByEvaluatedEmployee(ctx, *ident.EmployeeID)
	}
	if err != nil {
		return nil, err
	}
	return evaluationsToResponses(evaluations), nil
}

func (s *evaluationService) MyEvaluations(ctx context.Context, ident authz.Identity) ([]dto.EvaluationResponse, error) {
	if !ident.Linked() {
		return []dto.EvaluationResponse{}, nil
	}
	evaluations, err := s.repo.ListByEvaluatedEmployee(ctx, *ident.EmployeeID)
	if err != nil {
		return nil, err
	}
	return evaluationsToResponses(evaluations), nil
}

// EligibleEmployees lists the employees the identity may pick as evaluation
// targets, resolved through the company-narrowed eligibility scope.
func (s *evaluationService) EligibleEmployees(ctx context.Context, ident authz.Identity) ([]dto.EmployeeResponse, error) {
	set, err := s.resolver.VisibleEvaluationEligibleEmployees(ctx, ident)
	if err != nil {
		return nil, err
	}
	employees, err := s.employeeRepo.ListActiveByIDs(ctx, set.IDs())
	if err != nil {
		return nil, err
	}
	out := make([]dto.EmployeeResponse, 0, len(employees))
	for i := range employees {
		out = append(out, employeeToResponse(&employees[i]))
	}
	return out, nil
}

// today returns the current date truncated to midnight UTC, matching the
// date-only storage of evaluation dates.
func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func evaluationToResponse(e *model.Evaluation) dto.EvaluationResponse {
	resp := dto.EvaluationResponse{
		ID:                  e.ID.String(),
		Date:                e.Date.Format("2006-01-02"),
		PlaceID:             e.PlaceID.String(),
		EvaluatedEmployeeID: e.EvaluatedEmployeeID.String(),
		EvaluatorID:         e.EvaluatorID.String(),
		Cleanliness:         e.Cleanliness,
		Organization:        e.Organization,
		EquipmentCondition:  e.EquipmentCondition,
		SafetyMeasures:      e.SafetyMeasures,
		Timeliness:          e.Timeliness,
		OverallScore:        e.OverallScore,
		Comments:            e.Comments,
	}
	if e.Place != nil {
		resp.PlaceName = e.Place.Name
	}
	if e.EvaluatedEmployee != nil {
		resp.EvaluatedEmployee = e.EvaluatedEmployee.FullName
	}
	if e.Evaluator != nil {
		resp.Evaluator = e.Evaluator.FullName
	}
	return resp
}

func evaluationsToResponses(evaluations []model.Evaluation) []dto.EvaluationResponse {
	out := make([]dto.EvaluationResponse, 0, len(evaluations))
	for i := range evaluations {
		out = append(out, evaluationToResponse(&evaluations[i]))
	}
	return out
}

// AsReject unwraps a typed reject from a service error, if present.
func AsReject(err error) (*Reject, bool) {
	var rej *Reject
	ok := errors.As(err, &rej)
	return rej, ok
}
