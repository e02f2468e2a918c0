// Package users exposes agent provisioning over HTTP.
package users

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/janisto/connect-provisioner/internal/platform/logging"
	"github.com/janisto/connect-provisioner/internal/service/connect"
	"github.com/janisto/connect-provisioner/internal/service/provisioning"
)

// Provisioner creates agents.
type Provisioner interface {
	Provision(ctx context.Context, req provisioning.Request) (*provisioning.Result, error)
}

// Register registers the user provisioning endpoint.
func Register(api huma.API, svc Provisioner) {
	huma.Register(api, huma.Operation{
		OperationID: "create-user",
		Method:      http.MethodPost,
		Path:        "/users",
		Summary:     "Create contact center agent",
		Description: "Validates the request, resolves security and routing profile names against the " +
			"instance catalog and creates the agent account.",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreateUserInput) (*CreateUserOutput, error) {
		res, err := svc.Provision(ctx, input.request())
		if err != nil {
			return &CreateUserOutput{
				Status: statusForError(err),
				Body:   provisioning.Result{Error: err.Error()},
			}, nil
		}
		if res.Error != "" {
			return &CreateUserOutput{Status: statusForError(res.Err()), Body: *res}, nil
		}

		applog.LogInfo(ctx, "agent created", zap.String("user_id", res.Data.UserID))
		return &CreateUserOutput{Status: http.StatusCreated, Body: *res}, nil
	})
}

func statusForError(err error) int {
	kind, _ := provisioning.KindOf(err)
	switch kind {
	case provisioning.KindValidation:
		return http.StatusBadRequest
	case provisioning.KindResolution:
		var catErr *provisioning.CatalogError
		if errors.As(err, &catErr) {
			return http.StatusBadGateway
		}
		return http.StatusUnprocessableEntity
	case provisioning.KindRemoteCreation:
		if errors.Is(err, connect.ErrDuplicateUser) {
			return http.StatusConflict
		}
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
