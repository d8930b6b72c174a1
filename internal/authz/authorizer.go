package authz

import (
	"context"

	"github.com/ali11954/Al-Jawhara-Land-Cleaning-Office/internal/model"
	"github.com/google/uuid"
)

// NodeType names a manageable hierarchy node.
type NodeType string

const (
	NodeCompany  NodeType = "company"
	NodeArea     NodeType = "area"
	NodeLocation NodeType = "location"
	NodePlace    NodeType = "place"
)

// DenyReason explains a CanDeleteNode refusal so callers can render the
// right message.
type DenyReason int

const (
	DenyNone DenyReason = iota
	// DenyUnauthorized: the identity may not manage the node at all.
	DenyUnauthorized
	// DenyHasDependents: the node still has active children or history.
	DenyHasDependents
)

// Authorizer answers allow/deny questions for concrete actions. Like the
// Resolver it is pure over the store snapshot: a missing identity, a dangling
// reference, or an inactive node on the path is always a plain deny.
type Authorizer struct {
	store HierarchyStore
}

func NewAuthorizer(store HierarchyStore) *Authorizer { return &Authorizer{store: store} }

// CanEvaluate decides whether the identity may submit an evaluation of the
// given employee at the given place.
//
//   - owner: always.
//   - supervisor: the target is a direct report (regardless of place), or the
//     place lies in a supervised area and the target is that location's
//     monitor, the worker of that place, or a worker assigned anywhere in the
//     same area.
//   - monitor: the place's location is monitored by the caller and the target
//     is the worker actually assigned to that exact place.
func (a *Authorizer) CanEvaluate(ctx context.Context, id Identity, employeeID, placeID uuid.UUID) (bool, error) {
	if id.Role == RoleOwner {
		return true, nil
	}
	if !id.Linked() {
		return false, nil
	}

	target, err := a.store.GetEmployee(ctx, employeeID)
	if err != nil {
		return false, err
	}
	if target == nil {
		return false, nil
	}

	switch id.Role {
	case RoleSupervisor:
		// Direct report wins independent of place.
		if target.SupervisorID != nil && id.Is(*target.SupervisorID) {
			return true, nil
		}

		place, location, area, err := a.resolveChain(ctx, placeID)
		if err != nil {
			return false, err
		}
		if area == nil || area.SupervisorID == nil || !id.Is(*area.SupervisorID) {
			return false, nil
		}
		switch target.Position {
		case model.PositionMonitor:
			return location.MonitorID != nil && *location.MonitorID == target.ID, nil
		case model.PositionWorker:
			if place.WorkerID != nil && *place.WorkerID == target.ID {
				return true, nil
			}
			return a.workerAssignedInArea(ctx, area.ID, target.ID)
		}
		return false, nil

	case RoleMonitor:
		if target.Position != model.PositionWorker {
			return false, nil
		}
		place, location, _, err := a.resolveChain(ctx, placeID)
		if err != nil {
			return false, err
		}
		if location == nil || location.MonitorID == nil || !id.Is(*location.MonitorID) {
			return false, nil
		}
		return place.WorkerID != nil && *place.WorkerID == target.ID, nil
	}

	return false, nil
}

// CanRecordAttendance decides whether the identity may record a shift for the
// given employee. Owners and supervisors hold blanket attendance rights —
// deliberately broader than their evaluation scope. Monitors are limited to
// workers assigned somewhere under their monitored locations.
func (a *Authorizer) CanRecordAttendance(ctx context.Context, id Identity, employeeID uuid.UUID) (bool, error) {
	switch id.Role {
	case RoleOwner, RoleSupervisor:
		return true, nil
	case RoleMonitor:
		if !id.Linked() {
			return false, nil
		}
		target, err := a.store.GetEmployee(ctx, employeeID)
		if err != nil {
			return false, err
		}
		if target == nil || target.Position != model.PositionWorker {
			return false, nil
		}
		locations, err := a.store.ListLocationsByMonitor(ctx, *id.EmployeeID)
		if err != nil {
			return false, err
		}
		for _, loc := range locations {
			places, err := a.store.ListPlacesByLocation(ctx, loc.ID)
			if err != nil {
				return false, err
			}
			for _, p := range places {
				if p.WorkerID != nil && *p.WorkerID == target.ID {
					return true, nil
				}
			}
		}
		return false, nil
	}
	return false, nil
}

// CanManageNode decides whether the identity may edit the given node.
// Owners manage everything. A supervisor manages their own areas and the
// locations/places beneath them; a monitor manages their own locations and
// the places beneath them. Companies are owner-only.
func (a *Authorizer) CanManageNode(ctx context.Context, id Identity, node NodeType, nodeID uuid.UUID) (bool, error) {
	if id.Role == RoleOwner {
		return true, nil
	}
	if !id.Linked() {
		return false, nil
	}

	switch node {
	case NodeCompany:
		return false, nil

	case NodeArea:
		if id.Role != RoleSupervisor {
			return false, nil
		}
		area, err := a.store.GetArea(ctx, nodeID)
		if err != nil {
			return false, err
		}
		return area != nil && area.SupervisorID != nil && id.Is(*area.SupervisorID), nil

	case NodeLocation:
		location, err := a.store.GetLocation(ctx, nodeID)
		if err != nil {
			return false, err
		}
		if location == nil {
			return false, nil
		}
		switch id.Role {
		case RoleSupervisor:
			area, err := a.store.GetArea(ctx, location.AreaID)
			if err != nil {
				return false, err
			}
			return area != nil && area.SupervisorID != nil && id.Is(*area.SupervisorID), nil
		case RoleMonitor:
			return location.MonitorID != nil && id.Is(*location.MonitorID), nil
		}
		return false, nil

	case NodePlace:
		place, location, area, err := a.resolveChain(ctx, nodeID)
		if err != nil {
			return false, err
		}
		if place == nil {
			return false, nil
		}
		switch id.Role {
		case RoleSupervisor:
			return area != nil && area.SupervisorID != nil && id.Is(*area.SupervisorID), nil
		case RoleMonitor:
			return location != nil && location.MonitorID != nil && id.Is(*location.MonitorID), nil
		}
		return false, nil
	}

	return false, nil
}

// CanDeleteNode layers the structural-integrity rule on top of CanManageNode:
// areas refuse deletion while they hold active locations, locations while they
// hold active places, places while any evaluation history exists, and
// companies while any areas exist at all. The check is part of the authorizer
// because it is the only thing preventing orphaned evaluation history.
func (a *Authorizer) CanDeleteNode(ctx context.Context, id Identity, node NodeType, nodeID uuid.UUID) (bool, DenyReason, error) {
	ok, err := a.CanManageNode(ctx, id, node, nodeID)
	if err != nil {
		return false, DenyNone, err
	}
	if !ok {
		return false, DenyUnauthorized, nil
	}

	var dependents int64
	switch node {
	case NodeCompany:
		dependents, err = a.store.CountAreasByCompany(ctx, nodeID)
	case NodeArea:
		var locations []model.Location
		locations, err = a.store.ListLocationsByArea(ctx, nodeID)
		dependents = int64(len(locations))
	case NodeLocation:
		var places []model.Place
		places, err = a.store.ListPlacesByLocation(ctx, nodeID)
		dependents = int64(len(places))
	case NodePlace:
		dependents, err = a.store.CountEvaluationsByPlace(ctx, nodeID)
	}
	if err != nil {
		return false, DenyNone, err
	}
	if dependents > 0 {
		return false, DenyHasDependents, nil
	}
	return true, DenyNone, nil
}

// resolveChain walks place → location → area through active records only.
// Any gap (missing or inactive link) returns nils for the remainder of the
// chain without error, so an inactive ancestor denies by absence.
func (a *Authorizer) resolveChain(ctx context.Context, placeID uuid.UUID) (*model.Place, *model.Location, *model.Area, error) {
	place, err := a.store.GetPlace(ctx, placeID)
	if err != nil || place == nil {
		return nil, nil, nil, err
	}
	location, err := a.store.GetLocation(ctx, place.LocationID)
	if err != nil || location == nil {
		return place, nil, nil, err
	}
	area, err := a.store.GetArea(ctx, location.AreaID)
	if err != nil || area == nil {
		return place, location, nil, err
	}
	return place, location, area, nil
}

// workerAssignedInArea reports whether the employee is the assigned worker of
// any place under the area's active locations.
func (a *Authorizer) workerAssignedInArea(ctx context.Context, areaID, employeeID uuid.UUID) (bool, error) {
	locations, err := a.store.ListLocationsByArea(ctx, areaID)
	if err != nil {
		return false, err
	}
	for _, loc := range locations {
		places, err := a.store.ListPlacesByLocation(ctx, loc.ID)
		if err != nil {
			return false, err
		}
		for _, p := range places {
			if p.WorkerID != nil && *p.WorkerID == employeeID {
				return true, nil
			}
		}
	}
	return false, nil
}
