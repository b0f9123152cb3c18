package permissions_test

import (
	"net/http"
	"testing"

	"seatq/permissions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)
	assert.False(t, data.Skip)
	assert.NotEmpty(t, data.Endpoints)
}

func TestFindPermissions(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name        string
		path        string
		method      string
		skip        bool
		permissions []string
	}{
		{name: "guest joins queue", path: "/v1/queue/", method: http.MethodPost, skip: true},
		{name: "guest watches stream", path: "/v1/queue/stream", method: http.MethodGet, skip: true},
		{name: "staff clears queue", path: "/v1/queue/", method: http.MethodDelete, permissions: []string{"staff"}},
		{name: "staff frees table", path: "/v1/tables/{number}/free", method: http.MethodPost, permissions: []string{"staff"}},
		{name: "method is case insensitive", path: "/v1/queue/rebalance", method: "post", permissions: []string{"staff"}},
		{name: "unknown route", path: "/v1/unknown", method: http.MethodGet},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permission := data.FindPermissions(tt.path, tt.method)

			assert.Equal(t, tt.skip, permission.Skip)
			assert.Equal(t, tt.permissions, permission.Permissions)
		})
	}
}

func TestFindPermissions_BuildsIndexLazily(t *testing.T) {
	data := &permissions.PermissionData{
		Endpoints: []permissions.Permission{
			{Path: "/v1/tables/", Method: http.MethodGet, Skip: true},
			{Path: "/v1/tables/", Method: http.MethodGet, Permissions: []string{"staff"}},
		},
	}

	permission := data.FindPermissions("/v1/tables/", http.MethodGet)
	assert.True(t, permission.Skip)
	assert.Empty(t, permission.Permissions)
}
