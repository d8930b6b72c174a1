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

// HierarchyHandler exposes company / area / location / place management.
// Child creation hangs off the parent route (e.g. POST /companies/:id/areas)
// so the parent id is always explicit.
type HierarchyHandler struct{ svc service.HierarchyService }

func NewHierarchyHandler(svc service.HierarchyService) *HierarchyHandler {
	return &HierarchyHandler{svc: svc}
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid id"))
		return uuid.Nil, false
	}
	return id, true
}

// ── Companies ────────────────────────────────────────────────────────────────

// CreateCompany godoc
// @Summary Create a client company
// @Tags hierarchy
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateCompanyRequest true "Company details"
// @Success 201 {object} dto.CompanyResponse
// @Failure 403 {object} apierror.APIError
// @Router /v1/companies [post]
func (h *HierarchyHandler) CreateCompany(c *gin.Context) {
	var req dto.CreateCompanyRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ident := middleware.GetClaims(c).Identity()
	resp, err := h.svc.CreateCompany(c.Request.Context(), ident, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *HierarchyHandler) ListCompanies(c *gin.Context) {
	ident := middleware.GetClaims(c).Identity()
	includeInactive := c.Query("include_inactive") == "true"
	resp, err := h.svc.ListCompanies(c.Request.Context(), ident, includeInactive)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HierarchyHandler) UpdateCompany(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateCompanyRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ident := middleware.GetClaims(c).Identity()
	resp, err := h.svc.UpdateCompany(c.Request.Context(), ident, id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteCompany godoc
// @Summary Delete a company
// @Description Refused while the company still has areas.
// @Tags hierarchy
// @Produce json
// @Security BearerAuth
// @Param id path string true "Company UUID"
// @Success 204
// @Failure 409 {object} apierror.APIError
// @Router /v1/companies/{id} [delete]
func (h *HierarchyHandler) DeleteCompany(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ident := middleware.GetClaims(c).Identity()
	if err := h.svc.DeleteCompany(c.Request.Context(), ident, id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Areas ────────────────────────────────────────────────────────────────────

func (h *HierarchyHandler) CreateArea(c *gin.Context) {
	companyID, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.CreateAreaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ident := middleware.GetClaims(c).Identity()
	resp, err := h.svc.CreateArea(c.Request.Context(), ident, companyID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *HierarchyHandler) ListAreas(c *gin.Context) {
	companyID, ok := pathID(c)
	if !ok {
		return
	}
	ident := middleware.GetClaims(c).Identity()
	resp, err := h.svc.ListAreas(c.Request.Context(), ident, companyID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HierarchyHandler) UpdateArea(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateAreaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ident := middleware.GetClaims(c).Identity()
	resp, err := h.svc.UpdateArea(c.Request.Context(), ident, id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HierarchyHandler) DeleteArea(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ident := middleware.GetClaims(c).Identity()
	if err := h.svc.DeleteArea(c.Request.Context(), ident, id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Locations ────────────────────────────────────────────────────────────────

func (h *HierarchyHandler) CreateLocation(c *gin.Context) {
	areaID, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.CreateLocationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ident := middleware.GetClaims(c).Identity()
	resp, err := h.svc.CreateLocation(c.Request.Context(), ident, areaID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *HierarchyHandler) ListLocations(c *gin.Context) {
	areaID, ok := pathID(c)
	if !ok {
		return
	}
	ident := middleware.GetClaims(c).Identity()
	resp, err := h.svc.ListLocations(c.Request.Context(), ident, areaID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HierarchyHandler) UpdateLocation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdateLocationRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ident := middleware.GetClaims(c).Identity()
	resp, err := h.svc.UpdateLocation(c.Request.Context(), ident, id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HierarchyHandler) DeleteLocation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ident := middleware.GetClaims(c).Identity()
	if err := h.svc.DeleteLocation(c.Request.Context(), ident, id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ── Places ───────────────────────────────────────────────────────────────────

func (h *HierarchyHandler) CreatePlace(c *gin.Context) {
	locationID, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.CreatePlaceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ident := middleware.GetClaims(c).Identity()
	resp, err := h.svc.CreatePlace(c.Request.Context(), ident, locationID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *HierarchyHandler) ListPlaces(c *gin.Context) {
	locationID, ok := pathID(c)
	if !ok {
		return
	}
	ident := middleware.GetClaims(c).Identity()
	resp, err := h.svc.ListPlaces(c.Request.Context(), ident, locationID)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VisiblePlaces godoc
// @Summary List every place within the caller's evaluation scope
// @Tags hierarchy
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.PlaceResponse
// @Router /v1/places/visible [get]
func (h *HierarchyHandler) VisiblePlaces(c *gin.Context) {
	ident := middleware.GetClaims(c).Identity()
	resp, err := h.svc.VisiblePlaces(c.Request.Context(), ident)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HierarchyHandler) UpdatePlace(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.UpdatePlaceRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ident := middleware.GetClaims(c).Identity()
	resp, err := h.svc.UpdatePlace(c.Request.Context(), ident, id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *HierarchyHandler) DeletePlace(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ident := middleware.GetClaims(c).Identity()
	if err := h.svc.DeletePlace(c.Request.Context(), ident, id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
