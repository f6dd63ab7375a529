package permissions_test

import (
	"hotel/permissions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	for _, service := range []string{"auth", "room", "booking"} {
		t.Run(service, func(t *testing.T) {
			data, err := permissions.Get(service)

			require.NoError(t, err)
			assert.NotEmpty(t, data.Endpoints)
		})
	}

	_, err := permissions.Get("gateway")
	assert.Error(t, err)
}

func TestRoomWritesAreAdminOnly(t *testing.T) {
	data, err := permissions.Get("room")
	require.NoError(t, err)

	create := data.FindPermissions("/api/rooms", "POST")
	assert.False(t, create.Allows("customer"))
	assert.True(t, create.Allows("admin"))
	assert.Equal(t, "Admin access required", create.Message)

	list := data.FindPermissions("/api/rooms", "GET")
	assert.True(t, list.Allows("customer"))

	assert.True(t, data.FindPermissions("/uploads/{filename}", "GET").Skip)
	assert.Equal(t, permissions.Permission{}, data.FindPermissions("/nowhere", "GET"))
}
