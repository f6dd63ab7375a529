package permissions

import (
	"embed"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/rs/zerolog/log"
)

//go:embed *.json
var permissionFiles embed.FS

// Permission is the access rule of one route pattern. An empty Roles list
// admits any authenticated caller.
type Permission struct {
	Roles   []string `json:"roles"`
	Path    string   `json:"path"`
	Method  string   `json:"method"`
	Skip    bool     `json:"skip"`
	Message string   `json:"message"`
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`
}

func (r *PermissionData) FindPermissions(path, method string) Permission {
	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return rp.Path == path && rp.Method == method
	})

	if idx == -1 {
		return Permission{}
	}

	return r.Endpoints[idx]
}

// Allows reports whether role may call the endpoint.
func (p Permission) Allows(role string) bool {
	return len(p.Roles) == 0 || slices.Contains(p.Roles, role)
}

// Get loads the embedded table of one service, e.g. Get("room").
func Get(service string) (*PermissionData, error) {
	raw, err := permissionFiles.ReadFile(service + ".json")
	if err != nil {
		return nil, fmt.Errorf("failed to read permissions of %s: %w", service, err)
	}

	var permissions PermissionData

	if err = json.Unmarshal(raw, &permissions); err != nil {
		return nil, fmt.Errorf("failed to decode permissions of %s: %w", service, err)
	}

	log.Info().Str("service", service).Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return &permissions, nil
}
