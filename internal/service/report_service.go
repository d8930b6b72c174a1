package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/authz"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/dto"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/infra"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/model"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/repository"

	"github.com/redis/go-redis/v9"
)

const (
	dashboardCacheKey = "dashboard:stats"
	dashboardCacheTTL = 30 * time.Second

	recentEvaluationsLimit = 10
	topPerformersLimit     = 5
)

type ReportService interface {
	Dashboard(ctx context.Context, ident authz.Identity) (*dto.DashboardResponse, error)
	MonthlyAttendancePDF(ctx context.Context, ident authz.Identity, year, month int) (string, error)
}

type reportService struct {
	stats          repository.StatsRepository
	evaluations    repository.EvaluationRepository
	attendance     repository.AttendanceRepository
	rdb            *redis.Client
	pdfStoragePath string
}

func NewReportService(
	stats repository.StatsRepository,
	evaluations repository.EvaluationRepository,
	attendance repository.AttendanceRepository,
	rdb *redis.Client,
	pdfStoragePath string,
) ReportService {
	return &reportService{
		stats:          stats,
		evaluations:    evaluations,
		attendance:     attendance,
		rdb:            rdb,
		pdfStoragePath: pdfStoragePath,
	}
}

// Dashboard aggregates the landing-page numbers. The whole payload is cached
// in Redis for a short window; the counts are too expensive to recompute on
// every poll and a 30 second lag is invisible on a dashboard.
func (s *reportService) Dashboard(ctx context.Context, ident authz.Identity) (*dto.DashboardResponse, error) {
	if ident.Role != authz.RoleOwner && ident.Role != authz.RoleSupervisor {
		return nil, reject(ReasonUnauthorized, "dashboard is restricted to owners and supervisors")
	}

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, dashboardCacheKey).Bytes(); err == nil {
			var resp dto.DashboardResponse
			if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
				return &resp, nil
			}
		}
	}

	resp, err := s.buildDashboard(ctx)
	if err != nil {
		return nil, err
	}

	// Populate cache — best effort, ignore errors
	if s.rdb != nil {
		if b, jsonErr := json.Marshal(resp); jsonErr == nil {
			_ = s.rdb.Set(context.Background(), dashboardCacheKey, b, dashboardCacheTTL).Err()
		}
	}

	return resp, nil
}

func (s *reportService) buildDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	var stats dto.DashboardStats

	total, active, err := s.stats.CountEmployees(ctx)
	if err != nil {
		return nil, err
	}
	stats.TotalEmployees = total
	stats.ActiveEmployees = active
	stats.InactiveEmployees = total - active

	if stats.SupervisorCount, err = s.stats.CountEmployeesByPosition(ctx, model.PositionSupervisor); err != nil {
		return nil, err
	}
	if stats.MonitorCount, err = s.stats.CountEmployeesByPosition(ctx, model.PositionMonitor); err != nil {
		return nil, err
	}
	if stats.WorkerCount, err = s.stats.CountEmployeesByPosition(ctx, model.PositionWorker); err != nil {
		return nil, err
	}
	if stats.TotalCompanies, err = s.stats.CountCompanies(ctx); err != nil {
		return nil, err
	}
	if stats.TotalAreas, err = s.stats.CountAreas(ctx); err != nil {
		return nil, err
	}

	day := today()
	if stats.EvaluationsToday, err = s.evaluations.CountForDate(ctx, day); err != nil {
		return nil, err
	}
	if stats.AvgScoreToday, err = s.evaluations.AvgScoreForDate(ctx, day); err != nil {
		return nil, err
	}
	if stats.EvaluationsThisWeek, err = s.evaluations.CountSince(ctx, day.AddDate(0, 0, -7)); err != nil {
		return nil, err
	}
	monthStart := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
	if stats.NewEmployeesThisMonth, err = s.stats.CountEmployeesHiredSince(ctx, monthStart); err != nil {
		return nil, err
	}

	recent, err := s.evaluations.ListRecent(ctx, recentEvaluationsLimit)
	if err != nil {
		return nil, err
	}
	performers, err := s.evaluations.TopPerformers(ctx, topPerformersLimit)
	if err != nil {
		return nil, err
	}

	top := make([]dto.TopPerformer, len(performers))
	for i, p := range performers {
		top[i] = dto.TopPerformer{
			EmployeeID:      p.EmployeeID.String(),
			FullName:        p.FullName,
			Position:        p.Position,
			AvgScore:        p.AvgScore,
			EvaluationCount: p.EvaluationCount,
		}
	}

	return &dto.DashboardResponse{
		Stats:             stats,
		RecentEvaluations: evaluationsToResponses(recent),
		TopPerformers:     top,
	}, nil
}

// MonthlyAttendancePDF renders the month's attendance table to a file and
// returns its path.
func (s *reportService) MonthlyAttendancePDF(ctx context.Context, ident authz.Identity, year, month int) (string, error) {
	if ident.Role != authz.RoleOwner && ident.Role != authz.RoleSupervisor {
		return "", reject(ReasonUnauthorized, "attendance reports are restricted to owners and supervisors")
	}
	from, to := monthRange(year, month)
	records, err := s.attendance.ListByRange(ctx, from, to)
	if err != nil {
		return "", err
	}
	return infra.GenerateAttendanceReportPDF(records, year, time.Month(month), s.pdfStoragePath)
}
