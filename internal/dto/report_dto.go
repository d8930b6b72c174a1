package dto

type DashboardStats struct {
	TotalEmployees        int64   `json:"total_employees"`
	ActiveEmployees       int64   `json:"active_employees"`
	InactiveEmployees     int64   `json:"inactive_employees"`
	SupervisorCount       int64   `json:"supervisor_count"`
	MonitorCount          int64   `json:"monitor_count"`
	WorkerCount           int64   `json:"worker_count"`
	TotalCompanies        int64   `json:"total_companies"`
	TotalAreas            int64   `json:"total_areas"`
	EvaluationsToday      int64   `json:"evaluations_today"`
	AvgScoreToday         float64 `json:"avg_score_today"`
	EvaluationsThisWeek   int64   `json:"evaluations_this_week"`
	NewEmployeesThisMonth int64   `json:"new_employees_this_month"`
}

type TopPerformer struct {
	EmployeeID      string  `json:"employee_id"`
	FullName        string  `json:"full_name"`
	Position        string  `json:"position"`
	AvgScore        float64 `json:"avg_score"`
	EvaluationCount int64   `json:"evaluation_count"`
}

type DashboardResponse struct {
	Stats             DashboardStats       `json:"stats"`
	RecentEvaluations []EvaluationResponse `json:"recent_evaluations"`
	TopPerformers     []TopPerformer       `json:"top_performers"`
}
