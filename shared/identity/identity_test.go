package identity_test

import (
	"context"
	"hotel/shared/identity"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundTrip(t *testing.T) {
	ctx := identity.WithIdentity(context.Background(), identity.Identity{
		UserID: "u-1",
		Email:  "ana@example.com",
		Role:   "admin",
	}, "Bearer token")

	id, ok := identity.FromContext(ctx)

	assert.True(t, ok)
	assert.Equal(t, "u-1", id.UserID)
	assert.True(t, id.IsAdmin())
	assert.False(t, id.IsCustomer())
	assert.Equal(t, "Bearer token", identity.Authorization(ctx))
}

func TestFromContext_Anonymous(t *testing.T) {
	_, ok := identity.FromContext(context.Background())

	assert.False(t, ok)
	assert.Empty(t, identity.Authorization(context.Background()))
}
