package routes

import (
	"github.com/danielgtaylor/huma/v2"

	"github.com/janisto/connect-provisioner/internal/http/v1/profiles"
	"github.com/janisto/connect-provisioner/internal/http/v1/users"
)

// Service is what the v1 API needs from the provisioning layer.
type Service interface {
	users.Provisioner
	profiles.CatalogSource
}

// Register wires all v1 routes into the provided API.
func Register(api huma.API, svc Service) {
	users.Register(api, svc)
	profiles.Register(api, svc)
}
