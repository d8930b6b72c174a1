package handler

import (
	"net/http"

	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/middleware"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/service"

	"github.com/gin-gonic/gin"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// Dashboard godoc
// @Summary Operational dashboard
// @Description Staff counts, today's evaluation activity, recent evaluations and top performers. Cached for 30 seconds.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.DashboardResponse
// @Failure 403 {object} apierror.APIError
// @Router /v1/reports/dashboard [get]
func (h *ReportsHandler) Dashboard(c *gin.Context) {
	ident := middleware.GetClaims(c).Identity()
	resp, err := h.svc.Dashboard(c.Request.Context(), ident)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AttendancePDF godoc
// @Summary Download the monthly attendance report as PDF
// @Tags reports
// @Produce application/pdf
// @Security BearerAuth
// @Param year query int false "Year (default: current)"
// @Param month query int false "Month 1-12 (default: current)"
// @Success 200 {file} binary
// @Failure 403 {object} apierror.APIError
// @Router /v1/reports/attendance/pdf [get]
func (h *ReportsHandler) AttendancePDF(c *gin.Context) {
	year, month := yearMonth(c)
	ident := middleware.GetClaims(c).Identity()
	path, err := h.svc.MonthlyAttendancePDF(c.Request.Context(), ident, year, month)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.FileAttachment(path, "attendance_report.pdf")
}
