// Package profiles lists the profile names agents can be provisioned with.
package profiles

import (
	"cmp"
	"context"
	"net/http"
	"slices"

	"github.com/danielgtaylor/huma/v2"

	applog "github.com/janisto/connect-provisioner/internal/platform/logging"
	"github.com/janisto/connect-provisioner/internal/service/provisioning"
)

// CatalogSource lists the live profile catalog.
type CatalogSource interface {
	Catalog(ctx context.Context) (*provisioning.Catalog, error)
}

// Register registers the profile catalog endpoint.
func Register(api huma.API, src CatalogSource) {
	huma.Register(api, huma.Operation{
		OperationID: "list-profiles",
		Method:      http.MethodGet,
		Path:        "/profiles",
		Summary:     "List profiles",
		Description: "Lists the security and routing profile names accepted by the create-user operation.",
		Tags:        []string{"Profiles"},
		Errors:      []int{http.StatusBadGateway},
	}, func(ctx context.Context, _ *struct{}) (*ListProfilesOutput, error) {
		catalog, err := src.Catalog(ctx)
		if err != nil {
			applog.LogError(ctx, "profile catalog unavailable", err)
			return nil, huma.Error502BadGateway(err.Error())
		}
		return &ListProfilesOutput{Body: CatalogData{
			SecurityProfiles: toProfiles(catalog.Security),
			RoutingProfiles:  toProfiles(catalog.Routing),
		}}, nil
	})
}

func toProfiles(lookup map[string]string) []Profile {
	out := make([]Profile, 0, len(lookup))
	for name, id := range lookup {
		out = append(out, Profile{Name: name, ID: id})
	}
	slices.SortFunc(out, func(a, b Profile) int { return cmp.Compare(a.Name, b.Name) })
	return out
}
