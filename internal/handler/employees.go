package handler

import (
	"net/http"

	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/apierror"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/dto"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/middleware"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type EmployeesHandler struct{ svc service.EmployeeService }

func NewEmployeesHandler(svc service.EmployeeService) *EmployeesHandler {
	return &EmployeesHandler{svc: svc}
}

// Create godoc
// @Summary Create an employee with a linked user account
// @Tags employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateEmployeeRequest true "Employee details"
// @Success 201 {object} dto.EmployeeResponse
// @Failure 403 {object} apierror.APIError
// @Router /v1/employees [post]
func (h *EmployeesHandler) Create(c *gin.Context) {
	var req dto.CreateEmployeeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ident := middleware.GetClaims(c).Identity()
	resp, err := h.svc.Create(c.Request.Context(), ident, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *EmployeesHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	ident := middleware.GetClaims(c).Identity()
	resp, err := h.svc.Get(c.Request.Context(), ident, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EmployeesHandler) List(c *gin.Context) {
	ident := middleware.GetClaims(c).Identity()
	includeInactive := c.Query("include_inactive") == "true"
	resp, err := h.svc.List(c.Request.Context(), ident, includeInactive)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EmployeesHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	var req dto.UpdateEmployeeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ident := middleware.GetClaims(c).Identity()
	resp, err := h.svc.Update(c.Request.Context(), ident, id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EmployeesHandler) Deactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	ident := middleware.GetClaims(c).Identity()
	if err := h.svc.Deactivate(c.Request.Context(), ident, id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *EmployeesHandler) Reactivate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return
	}
	ident := middleware.GetClaims(c).Identity()
	if err := h.svc.Reactivate(c.Request.Context(), ident, id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
