package users

import "github.com/janisto/connect-provisioner/internal/service/provisioning"

// CreateUserOutput for POST /users. Status is 201 on success; failures carry
// the provisioning error message under "error".
type CreateUserOutput struct {
	Status int
	Body   provisioning.Result
}
