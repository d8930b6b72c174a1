package service

import (
	"context"
	"errors"

	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/authz"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/dto"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/model"
	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HierarchyService manages the containment tree. The rule throughout is
// "creating a child requires managing the parent": adding an area needs
// company rights, adding a location needs area rights, adding a place needs
// location rights. Deletion additionally refuses while dependents remain.
type HierarchyService interface {
	CreateCompany(ctx context.Context, ident authz.Identity, req dto.CreateCompanyRequest) (*dto.CompanyResponse, error)
	ListCompanies(ctx context.Context, ident authz.Identity, includeInactive bool) ([]dto.CompanyResponse, error)
	UpdateCompany(ctx context.Context, ident authz.Identity, id uuid.UUID, req dto.UpdateCompanyRequest) (*dto.CompanyResponse, error)
	DeleteCompany(ctx context.Context, ident authz.Identity, id uuid.UUID) error

	CreateArea(ctx context.Context, ident authz.Identity, companyID uuid.UUID, req dto.CreateAreaRequest) (*dto.AreaResponse, error)
	ListAreas(ctx context.Context, ident authz.Identity, companyID uuid.UUID) ([]dto.AreaResponse, error)
	UpdateArea(ctx context.Context, ident authz.Identity, id uuid.UUID, req dto.UpdateAreaRequest) (*dto.AreaResponse, error)
	DeleteArea(ctx context.Context, ident authz.Identity, id uuid.UUID) error

	CreateLocation(ctx context.Context, ident authz.Identity, areaID uuid.UUID, req dto.CreateLocationRequest) (*dto.LocationResponse, error)
	ListLocations(ctx context.Context, ident authz.Identity, areaID uuid.UUID) ([]dto.LocationResponse, error)
	UpdateLocation(ctx context.Context, ident authz.Identity, id uuid.UUID, req dto.UpdateLocationRequest) (*dto.LocationResponse, error)
	DeleteLocation(ctx context.Context, ident authz.Identity, id uuid.UUID) error

	CreatePlace(ctx context.Context, ident authz.Identity, locationID uuid.UUID, req dto.CreatePlaceRequest) (*dto.PlaceResponse, error)
	ListPlaces(ctx context.Context, ident authz.Identity, locationID uuid.UUID) ([]dto.PlaceResponse, error)
	VisiblePlaces(ctx context.Context, ident authz.Identity) ([]dto.PlaceResponse, error)
	UpdatePlace(ctx context.Context, ident authz.Identity, id uuid.UUID, req dto.UpdatePlaceRequest) (*dto.PlaceResponse, error)
	DeletePlace(ctx context.Context, ident authz.Identity, id uuid.UUID) error
}

type hierarchyService struct {
	companies  repository.CompanyRepository
	areas      repository.AreaRepository
	locations  repository.LocationRepository
	places     repository.PlaceRepository
	store      authz.HierarchyStore
	resolver   *authz.Resolver
	authorizer *authz.Authorizer
}

func NewHierarchyService(
	companies repository.CompanyRepository,
	areas repository.AreaRepository,
	locations repository.LocationRepository,
	places repository.PlaceRepository,
	store authz.HierarchyStore,
	resolver *authz.Resolver,
	authorizer *authz.Authorizer,
) HierarchyService {
	return &hierarchyService{
		companies:  companies,
		areas:      areas,
		locations:  locations,
		places:     places,
		store:      store,
		resolver:   resolver,
		authorizer: authorizer,
	}
}

// ─── Companies ───────────────────────────────────────────────────────────────

func (s *hierarchyService) CreateCompany(ctx context.Context, ident authz.Identity, req dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if ident.Role != authz.RoleOwner {
		return nil, reject(ReasonUnauthorized, "only the owner can create companies")
	}
	c := &model.Company{
		Name:          req.Name,
		Address:       req.Address,
		ContactPerson: req.ContactPerson,
		Phone:         req.Phone,
		Email:         req.Email,
		Active:        true,
	}
	if err := s.companies.Create(ctx, c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, reject(ReasonDuplicateRecord, "a company named %q already exists", req.Name)
		}
		return nil, err
	}
	resp := companyToResponse(c)
	return &resp, nil
}

func (s *hierarchyService) ListCompanies(ctx context.Context, ident authz.Identity, includeInactive bool) ([]dto.CompanyResponse, error) {
	companies, err := s.companies.List(ctx, includeInactive && ident.Role == authz.RoleOwner)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanyResponse, 0, len(companies))
	for i := range companies {
		out = append(out, companyToResponse(&companies[i]))
	}
	return out, nil
}

func (s *hierarchyService) UpdateCompany(ctx context.Context, ident authz.Identity, id uuid.UUID, req dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := s.requireManage(ctx, ident, authz.NodeCompany, id); err != nil {
		return nil, err
	}
	c, err := s.companies.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reject(ReasonNotFound, "company does not exist")
		}
		return nil, err
	}
	if req.Name != "" {
		c.Name = req.Name
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.ContactPerson != nil {
		c.ContactPerson = *req.ContactPerson
	}
	if req.Phone != nil {
		c.Phone = *req.Phone
	}
	if req.Email != nil {
		c.Email = *req.Email
	}
	if err := s.companies.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := companyToResponse(c)
	return &resp, nil
}

func (s *hierarchyService) DeleteCompany(ctx context.Context, ident authz.Identity, id uuid.UUID) error {
	if err := s.requireDelete(ctx, ident, authz.NodeCompany, id, "company still has areas"); err != nil {
		return err
	}
	return s.companies.SetActive(ctx, id, false)
}

// ─── Areas ───────────────────────────────────────────────────────────────────

func (s *hierarchyService) CreateArea(ctx context.Context, ident authz.Identity, companyID uuid.UUID, req dto.CreateAreaRequest) (*dto.AreaResponse, error) {
	if err := s.requireManage(ctx, ident, authz.NodeCompany, companyID); err != nil {
		return nil, err
	}
	company, err := s.companies.FindByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reject(ReasonNotFound, "company does not exist")
		}
		return nil, err
	}
	if !company.Active {
		return nil, reject(ReasonInactiveTarget, "company %s is inactive", company.Name)
	}
	supervisorID, err := parseOptionalID(req.SupervisorID)
	if err != nil {
		return nil, reject(ReasonNotFound, "invalid supervisor id")
	}
	a := &model.Area{
		Name:         req.Name,
		CompanyID:    companyID,
		SupervisorID: supervisorID,
		Active:       true,
	}
	if err := s.areas.Create(ctx, a); err != nil {
		return nil, err
	}
	resp := areaToResponse(a)
	return &resp, nil
}

func (s *hierarchyService) ListAreas(ctx context.Context, ident authz.Identity, companyID uuid.UUID) ([]dto.AreaResponse, error) {
	areas, err := s.areas.ListByCompany(ctx, companyID, ident.Role == authz.RoleOwner)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AreaResponse, 0, len(areas))
	for i := range areas {
		out = append(out, areaToResponse(&areas[i]))
	}
	return out, nil
}

func (s *hierarchyService) UpdateArea(ctx context.Context, ident authz.Identity, id uuid.UUID, req dto.UpdateAreaRequest) (*dto.AreaResponse, error) {
	if err := s.requireManage(ctx, ident, authz.NodeArea, id); err != nil {
		return nil, err
	}
	a, err := s.areas.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reject(ReasonNotFound, "area does not exist")
		}
		return nil, err
	}
	if req.Name != "" {
		a.Name = req.Name
	}
	if req.SupervisorID != nil {
		// Reassigning the supervisor is owner-only: a supervisor editing
		// their own area must not be able to hand it to someone else and
		// keep access through the stale claim.
		if ident.Role != authz.RoleOwner {
			return nil, reject(ReasonUnauthorized, "only the owner can reassign an area supervisor")
		}
		supervisorID, err := parseOptionalID(req.SupervisorID)
		if err != nil {
			return nil, reject(ReasonNotFound, "invalid supervisor id")
		}
		a.SupervisorID = supervisorID
	}
	if err := s.areas.Update(ctx, a); err != nil {
		return nil, err
	}
	resp := areaToResponse(a)
	return &resp, nil
}

func (s *hierarchyService) DeleteArea(ctx context.Context, ident authz.Identity, id uuid.UUID) error {
	if err := s.requireDelete(ctx, ident, authz.NodeArea, id, "area still has active locations"); err != nil {
		return err
	}
	return s.areas.SoftDelete(ctx, id)
}

// ─── Locations ───────────────────────────────────────────────────────────────

func (s *hierarchyService) CreateLocation(ctx context.Context, ident authz.Identity, areaID uuid.UUID, req dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if err := s.requireManage(ctx, ident, authz.NodeArea, areaID); err != nil {
		return nil, err
	}
	area, err := s.store.GetArea(ctx, areaID)
	if err != nil {
		return nil, err
	}
	if area == nil {
		return nil, reject(ReasonNotFound, "area does not exist or is inactive")
	}
	monitorID, err := parseOptionalID(req.MonitorID)
	if err != nil {
		return nil, reject(ReasonNotFound, "invalid monitor id")
	}
	l := &model.Location{
		Name:      req.Name,
		AreaID:    areaID,
		MonitorID: monitorID,
		Active:    true,
	}
	if err := s.locations.Create(ctx, l); err != nil {
		return nil, err
	}
	resp := locationToResponse(l)
	return &resp, nil
}

func (s *hierarchyService) ListLocations(ctx context.Context, ident authz.Identity, areaID uuid.UUID) ([]dto.LocationResponse, error) {
	locations, err := s.locations.ListByArea(ctx, areaID, ident.Role == authz.RoleOwner)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(locations))
	for i := range locations {
		out = append(out, locationToResponse(&locations[i]))
	}
	return out, nil
}

func (s *hierarchyService) UpdateLocation(ctx context.Context, ident authz.Identity, id uuid.UUID, req dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	if err := s.requireManage(ctx, ident, authz.NodeLocation, id); err != nil {
		return nil, err
	}
	l, err := s.locations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reject(ReasonNotFound, "location does not exist")
		}
		return nil, err
	}
	if req.Name != "" {
		l.Name = req.Name
	}
	if req.MonitorID != nil {
		if ident.Role == authz.RoleMonitor {
			return nil, reject(ReasonUnauthorized, "monitors cannot reassign a location monitor")
		}
		monitorID, err := parseOptionalID(req.MonitorID)
		if err != nil {
			return nil, reject(ReasonNotFound, "invalid monitor id")
		}
		l.MonitorID = monitorID
	}
	if err := s.locations.Update(ctx, l); err != nil {
		return nil, err
	}
	resp := locationToResponse(l)
	return &resp, nil
}

func (s *hierarchyService) DeleteLocation(ctx context.Context, ident authz.Identity, id uuid.UUID) error {
	if err := s.requireDelete(ctx, ident, authz.NodeLocation, id, "location still has active places"); err != nil {
		return err
	}
	return s.locations.SoftDelete(ctx, id)
}

// ─── Places ──────────────────────────────────────────────────────────────────

func (s *hierarchyService) CreatePlace(ctx context.Context, ident authz.Identity, locationID uuid.UUID, req dto.CreatePlaceRequest) (*dto.PlaceResponse, error) {
	if err := s.requireManage(ctx, ident, authz.NodeLocation, locationID); err != nil {
		return nil, err
	}
	location, err := s.store.GetLocation(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, reject(ReasonNotFound, "location does not exist or is inactive")
	}
	workerID, err := parseOptionalID(req.WorkerID)
	if err != nil {
		return nil, reject(ReasonNotFound, "invalid worker id")
	}
	p := &model.Place{
		Name:       req.Name,
		LocationID: locationID,
		WorkerID:   workerID,
		Active:     true,
	}
	if err := s.places.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := placeToResponse(p)
	return &resp, nil
}

func (s *hierarchyService) ListPlaces(ctx context.Context, ident authz.Identity, locationID uuid.UUID) ([]dto.PlaceResponse, error) {
	places, err := s.places.ListByLocation(ctx, locationID, ident.Role == authz.RoleOwner)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PlaceResponse, 0, len(places))
	for i := range places {
		out = append(out, placeToResponse(&places[i]))
	}
	return out, nil
}

// VisiblePlaces lists every place the identity could evaluate at, across the
// whole tree.
func (s *hierarchyService) VisiblePlaces(ctx context.Context, ident authz.Identity) ([]dto.PlaceResponse, error) {
	set, err := s.resolver.VisiblePlaces(ctx, ident)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PlaceResponse, 0, len(set))
	for _, id := range set.IDs() {
		p, err := s.store.GetPlace(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			continue
		}
		out = append(out, placeToResponse(p))
	}
	return out, nil
}

func (s *hierarchyService) UpdatePlace(ctx context.Context, ident authz.Identity, id uuid.UUID, req dto.UpdatePlaceRequest) (*dto.PlaceResponse, error) {
	if err := s.requireManage(ctx, ident, authz.NodePlace, id); err != nil {
		return nil, err
	}
	p, err := s.places.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reject(ReasonNotFound, "place does not exist")
		}
		return nil, err
	}
	if req.Name != "" {
		p.Name = req.Name
	}
	if req.WorkerID != nil {
		workerID, err := parseOptionalID(req.WorkerID)
		if err != nil {
			return nil, reject(ReasonNotFound, "invalid worker id")
		}
		p.WorkerID = workerID
	}
	if err := s.places.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := placeToResponse(p)
	return &resp, nil
}

func (s *hierarchyService) DeletePlace(ctx context.Context, ident authz.Identity, id uuid.UUID) error {
	if err := s.requireDelete(ctx, ident, authz.NodePlace, id, "place still has evaluation history"); err != nil {
		return err
	}
	return s.places.SoftDelete(ctx, id)
}

// ─── Shared gates ────────────────────────────────────────────────────────────

func (s *hierarchyService) requireManage(ctx context.Context, ident authz.Identity, node authz.NodeType, id uuid.UUID) error {
	ok, err := s.authorizer.CanManageNode(ctx, ident, node, id)
	if err != nil {
		return err
	}
	if !ok {
		return reject(ReasonUnauthorized, "not allowed to manage this %s", node)
	}
	return nil
}

func (s *hierarchyService) requireDelete(ctx context.Context, ident authz.Identity, node authz.NodeType, id uuid.UUID, dependentsMsg string) error {
	ok, deny, err := s.authorizer.CanDeleteNode(ctx, ident, node, id)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}
	if deny == authz.DenyHasDependents {
		return reject(ReasonHasDependents, dependentsMsg)
	}
	return reject(ReasonUnauthorized, "not allowed to delete this %s", node)
}

func companyToResponse(c *model.Company) dto.CompanyResponse {
	return dto.CompanyResponse{
		ID:            c.ID.String(),
		Name:          c.Name,
		Address:       c.Address,
		ContactPerson: c.ContactPerson,
		Phone:         c.Phone,
		Email:         c.Email,
		Active:        c.Active,
	}
}

func areaToResponse(a *model.Area) dto.AreaResponse {
	resp := dto.AreaResponse{
		ID:        a.ID.String(),
		Name:      a.Name,
		CompanyID: a.CompanyID.String(),
		Active:    a.Active,
	}
	if a.SupervisorID != nil {
		v := a.SupervisorID.String()
		resp.SupervisorID = &v
	}
	return resp
}

func locationToResponse(l *model.Location) dto.LocationResponse {
	resp := dto.LocationResponse{
		ID:     l.ID.String(),
		Name:   l.Name,
		AreaID: l.AreaID.String(),
		Active: l.Active,
	}
	if l.MonitorID != nil {
		v := l.MonitorID.String()
		resp.MonitorID = &v
	}
	return resp
}

func placeToResponse(p *model.Place) dto.PlaceResponse {
	resp := dto.PlaceResponse{
		ID:         p.ID.String(),
		Name:       p.Name,
		LocationID: p.LocationID.String(),
		Active:     p.Active,
	}
	if p.WorkerID != nil {
		v := p.WorkerID.String()
		resp.WorkerID = &v
	}
	return resp
}
