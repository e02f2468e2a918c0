package provisioning

import (
	"slices"

	"github.com/janisto/connect-provisioner/internal/service/connect"
)

// UserSpec is a validated request with profile names replaced by identifiers,
// bound to the target instance.
type UserSpec struct {
	InstanceID         string
	Username           string
	Password           string
	PhoneConfig        PhoneConfig
	IdentityInfo       *IdentityInfo
	SecurityProfileIDs []string
	RoutingProfileID   string
}

// NewUserSpec resolves req against catalog. req must already be valid.
// A missing name returns a *KeyResolutionError.
func NewUserSpec(req Request, catalog *Catalog, instanceID string) (*UserSpec, error) {
	securityIDs, err := ResolveNames(ProfileKindSecurity, catalog.Security, req.SecurityProfileIDs)
	if err != nil {
		return nil, err
	}
	routingID, err := ResolveName(ProfileKindRouting, catalog.Routing, req.RoutingProfileID)
	if err != nil {
		return nil, err
	}

	spec := &UserSpec{
		InstanceID:         instanceID,
		Username:           req.Username,
		Password:           req.Password,
		SecurityProfileIDs: securityIDs,
		RoutingProfileID:   routingID,
	}
	if req.PhoneConfig != nil {
		spec.PhoneConfig = *req.PhoneConfig
	}
	if req.IdentityInfo != nil {
		info := *req.IdentityInfo
		spec.IdentityInfo = &info
	}
	return spec, nil
}

// CreateUserParams converts the resolved user into the Connect create call input.
func (s *UserSpec) CreateUserParams() connect.CreateUserParams {
	params := connect.CreateUserParams{
		InstanceID: s.InstanceID,
		Username:   s.Username,
		Password:   s.Password,
		PhoneConfig: connect.PhoneConfig{
			PhoneType:                 s.PhoneConfig.PhoneType,
			AutoAccept:                s.PhoneConfig.AutoAccept,
			AfterContactWorkTimeLimit: s.PhoneConfig.AfterContactWorkTimeLimit,
			DeskPhoneNumber:           s.PhoneConfig.DeskPhoneNumber,
		},
		SecurityProfileIDs: slices.Clone(s.SecurityProfileIDs),
		RoutingProfileID:   s.RoutingProfileID,
	}
	if s.IdentityInfo != nil {
		params.IdentityInfo = &connect.IdentityInfo{
			FirstName:      s.IdentityInfo.FirstName,
			LastName:       s.IdentityInfo.LastName,
			Email:          s.IdentityInfo.Email,
			SecondaryEmail: s.IdentityInfo.SecondaryEmail,
			Mobile:         s.IdentityInfo.Mobile,
		}
	}
	return params
}
