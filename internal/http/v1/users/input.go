package users

import "github.com/janisto/connect-provisioner/internal/service/provisioning"

// CreateUserInput for POST /users. Field presence and phone type are checked
// by the provisioning service so clients get its messages verbatim.
type CreateUserInput struct {
	Body *provisioning.Request `required:"false"`
}

func (in *CreateUserInput) request() provisioning.Request {
	if in.Body == nil {
		return provisioning.Request{}
	}
	return *in.Body
}
