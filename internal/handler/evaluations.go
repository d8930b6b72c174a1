package handler

import (
	"net/http"

	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/dto"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/middleware"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/service"

	"github.com/gin-gonic/gin"
)

type EvaluationsHandler struct{ svc service.EvaluationService }

func NewEvaluationsHandler(svc service.EvaluationService) *EvaluationsHandler {
	return &EvaluationsHandler{svc: svc}
}

// Submit godoc
// @Summary Submit a place evaluation
// @Description Records one scored evaluation of an employee at a place. Refused for unknown or inactive targets, future dates, and out-of-scope evaluators.
// @Tags evaluations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.SubmitEvaluationRequest true "Evaluation"
// @Success 201 {object} dto.EvaluationResponse
// @Failure 400 {object} apierror.APIError
// @Failure 403 {object} apierror.APIError
// @Failure 404 {object} apierror.APIError
// @Router /v1/evaluations [post]
func (h *EvaluationsHandler) Submit(c *gin.Context) {
	var req dto.SubmitEvaluationRequest
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

// List returns the evaluations within the caller's scope.
func (h *EvaluationsHandler) List(c *gin.Context) {
	ident := middleware.GetClaims(c).Identity()
	resp, err := h.svc.List(c.Request.Context(), ident)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MyEvaluations returns evaluations received by the caller's own profile.
func (h *EvaluationsHandler) MyEvaluations(c *gin.Context) {
	ident := middleware.GetClaims(c).Identity()
	resp, err := h.svc.MyEvaluations(c.Request.Context(), ident)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EligibleEmployees returns the valid evaluation targets for the caller.
func (h *EvaluationsHandler) EligibleEmployees(c *gin.Context) {
	ident := middleware.GetClaims(c).Identity()
	resp, err := h.svc.EligibleEmployees(c.Request.Context(), ident)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
