// Package gate provides a small Gate/Policy authorization layer for the
// two-role staff model: every policy answers whether a role may perform an
// action on a resource type. The gate itself is a registry of policies keyed
// by resource name and has no dependency on domain models.
package gate

import (
	"context"
	"errors"
)

// Role is the actor role attached to a verified session.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleReception Role = "reception"
)

// rank orders roles so that admin implies every reception permission.
var rank = map[Role]int{
	RoleReception: 1,
	RoleAdmin:     2,
}

// Known reports whether r is one of the roles this application issues.
func (r Role) Known() bool { _, ok := rank[r]; return ok }

// AtLeast reports whether r sits at or above min in the hierarchy.
func (r Role) AtLeast(min Role) bool { return rank[r] >= rank[min] }

// Action describes the kind of operation a role wants to perform.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionList   Action = "list"
)

// Policy defines the authorization rule for one resource type.
type Policy interface {
	Can(ctx context.Context, role Role, action Action) bool
}

// MinRole is the common policy: any action is allowed from Min upward.
type MinRole struct{ Min Role }

func (p MinRole) Can(_ context.Context, role Role, _ Action) bool { return role.AtLeast(p.Min) }

// Sentinel errors returned by Authorize.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNoPolicyDefined = errors.New("no policy defined for resource")
)

// Gate is the central authorization checkpoint.
type Gate struct {
	policies map[string]Policy
}

func New() *Gate { return &Gate{policies: make(map[string]Policy)} }

// Register adds a policy for a resource type (e.g. "plan"), replacing any
// existing one.
func (g *Gate) Register(resource string, p Policy) { g.policies[resource] = p }

// Authorize returns nil when role may perform action on resource.
// An empty or unknown role is treated as unauthenticated.
func (g *Gate) Authorize(ctx context.Context, role Role, action Action, resource string) error {
	if !role.Known() {
		return ErrUnauthenticated
	}
	p, ok := g.policies[resource]
	if !ok {
		return ErrNoPolicyDefined
	}
	if !p.Can(ctx, role, action) {
		return ErrForbidden
	}
	return nil
}

// Can is a convenience wrapper returning bool instead of error.
func (g *Gate) Can(ctx context.Context, role Role, action Action, resource string) bool {
	return g.Authorize(ctx, role, action, resource) == nil
}
