// Package authz is the organizational scope and authorization engine.
//
// Given an identity (role + optional linked employee) and a read snapshot of
// the company→area→location→place hierarchy, the Resolver computes which
// employees and places that identity may see, and the Authorizer decides
// whether a specific action is permitted. Both are pure functions of the
// hierarchy snapshot and are safe for concurrent use: they hold no state
// beyond the injected store handle and perform no mutation.
//
// Every decision fails closed: a missing employee link, a dangling reference,
// or an inactive node anywhere on the path always yields "not visible" /
// "denied", never an error.
package authz

import "github.com/google/uuid"

// Role is the access tag carried by a user account.
type Role string

const (
	RoleOwner      Role = "owner"
	RoleSupervisor Role = "supervisor"
	RoleMonitor    Role = "monitor"
	RoleWorker     Role = "worker"
)

// Identity is the acting principal, constructed once per request.
// EmployeeID is nil when the account has no linked employee profile
// (e.g. a bare owner account before profile creation).
type Identity struct {
	Role       Role
	EmployeeID *uuid.UUID
}

// Linked reports whether the identity carries an employee profile.
func (id Identity) Linked() bool { return id.EmployeeID != nil }

// Is reports whether the identity's employee link equals the given id.
func (id Identity) Is(employeeID uuid.UUID) bool {
	return id.EmployeeID != nil && *id.EmployeeID == employeeID
}

// IDSet is a set of entity ids.
type IDSet map[uuid.UUID]struct{}

// NewIDSet builds a set from the given ids.
func NewIDSet(ids ...uuid.UUID) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports set membership.
func (s IDSet) Has(id uuid.UUID) bool {
	_, ok := s[id]
	return ok
}

func (s IDSet) add(id uuid.UUID) { s[id] = struct{}{} }

// IDs returns the members as a slice, in unspecified order.
func (s IDSet) IDs() []uuid.UUID {
	out := make([]uuid.UUID, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	return out
}
