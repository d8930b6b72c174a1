package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/apierror"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/dto"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/middleware"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AttendanceHandler struct{ svc service.AttendanceService }

func NewAttendanceHandler(svc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{svc: svc}
}

// yearMonth reads ?year= and ?month= query params, defaulting to the current
// month.
func yearMonth(c *gin.Context) (int, int) {
	now := time.Now().UTC()
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2200 {
		year = now.Year()
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		month = int(now.Month())
	}
	return year, month
}

// Submit godoc
// @Summary Record a shift for an employee
// @Description One record per (employee, date, shift); duplicates are refused.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.SubmitAttendanceRequest true "Shift record"
// @Success 201 {object} dto.AttendanceResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/attendance [post]
func (h *AttendanceHandler) Submit(c *gin.Context) {
	var req dto.SubmitAttendanceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ident := middleware.GetClaims(c).Identity()
	resp, err := h.svc.Submit(c.Request.Context(), ident, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListForDate returns the day's records within the caller's scope.
// ?date=YYYY-MM-DD, default today.
func (h *AttendanceHandler) ListForDate(c *gin.Context) {
	date := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("Invalid date, expected YYYY-MM-DD"))
			return
		}
		date = parsed
	}
	ident := middleware.GetClaims(c).Identity()
	resp, err := h.svc.ListForDate(c.Request.Context(), ident, date)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AttendanceHandler) MonthlyReport(c *gin.Context) {
	year, month := yearMonth(c)
	ident := middleware.GetClaims(c).Identity()
	resp, err := h.svc.MonthlyReport(c.Request.Context(), ident, year, month)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AttendanceHandler) MyAttendance(c *gin.Context) {
	year, month := yearMonth(c)
	ident := middleware.GetClaims(c).Identity()
	resp, err := h.svc.MyAttendance(c.Request.Context(), ident, year, month)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EligibleEmployees returns who the caller may record attendance for.
func (h *AttendanceHandler) EligibleEmployees(c *gin.Context) {
	ident := middleware.GetClaims(c).Identity()
	resp, err := h.svc.EligibleEmployees(c.Request.Context(), ident)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EmployeeFeed returns one employee's records for a month.
func (h *AttendanceHandler) EmployeeFeed(c *gin.Context) {
	employeeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	year, month := yearMonth(c)
	ident := middleware.GetClaims(c).Identity()
	resp, err := h.svc.EmployeeFeed(c.Request.Context(), ident, employeeID, year, month)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
