package gate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinRoleHierarchy(t *testing.T) {
	g := New()
	g.Register("plan", MinRole{Min: RoleReception})
	g.Register("staff", MinRole{Min: RoleAdmin})

	ctx := context.Background()

	assert.True(t, g.Can(ctx, RoleReception, ActionCreate, "plan"))
	assert.True(t, g.Can(ctx, RoleAdmin, ActionCreate, "plan"), "admin inherits reception permissions")
	assert.False(t, g.Can(ctx, RoleReception, ActionList, "staff"))
	assert.True(t, g.Can(ctx, RoleAdmin, ActionDelete, "staff"))
}

func TestAuthorizeErrors(t *testing.T) {
	g := New()
	g.Register("plan", MinRole{Min: RoleReception})

	ctx := context.Background()

	err := g.Authorize(ctx, "", ActionView, "plan")
	assert.True(t, errors.Is(err, ErrUnauthenticated))

	err = g.Authorize(ctx, Role("visitor"), ActionView, "plan")
	assert.True(t, errors.Is(err, ErrUnauthenticated), "unknown role is unauthenticated, not forbidden")

	err = g.Authorize(ctx, RoleReception, ActionView, "unknown-resource")
	assert.True(t, errors.Is(err, ErrNoPolicyDefined))

	g.Register("staff", MinRole{Min: RoleAdmin})
	err = g.Authorize(ctx, RoleReception, ActionList, "staff")
	assert.True(t, errors.Is(err, ErrForbidden))
}
