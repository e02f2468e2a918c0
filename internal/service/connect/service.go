// Package connect wraps the Amazon Connect user directory operations the
// provisioner depends on: listing security and routing profiles and creating
// agent accounts.
package connect

import (
	"context"
	"errors"
	"fmt"
)

// Service errors
var (
	ErrDuplicateUser  = errors.New("connect user already exists")
	ErrNotFound       = errors.New("connect resource not found")
	ErrInvalidRequest = errors.New("connect rejected the request")
	ErrForbidden      = errors.New("connect access denied")
	ErrThrottled      = errors.New("connect request throttled")
	ErrUpstream       = errors.New("connect upstream error")
)

// UpstreamErrorKind classifies Amazon Connect API failures.
type UpstreamErrorKind string

const (
	UpstreamErrorKindDuplicate UpstreamErrorKind = "duplicate"
	UpstreamErrorKindNotFound  UpstreamErrorKind = "not_found"
	UpstreamErrorKindInvalid   UpstreamErrorKind = "invalid_request"
	UpstreamErrorKindForbidden UpstreamErrorKind = "forbidden"
	UpstreamErrorKindThrottled UpstreamErrorKind = "throttled"
	UpstreamErrorKindUpstream  UpstreamErrorKind = "upstream"
)

// UpstreamError carries the API error code and message returned by Connect.
// Error returns the platform's message so callers can surface it verbatim.
type UpstreamError struct {
	Kind    UpstreamErrorKind
	Code    string
	Message string
	Status  int
	cause   error
}

func (e *UpstreamError) Error() string {
	if e == nil {
		return "connect upstream error"
	}
	switch {
	case e.Code != "" && e.Message != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	case e.Message != "":
		return e.Message
	case e.Code != "":
		return e.Code
	default:
		return fmt.Sprintf("connect upstream error (kind=%s status=%d)", e.Kind, e.Status)
	}
}

// Unwrap enables errors.Is against the sentinel service errors.
func (e *UpstreamError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// ProfileSummary is a named profile listed from an instance.
type ProfileSummary struct {
	ID   string
	Name string
	ARN  string
}

// PhoneConfig mirrors the Connect user phone settings.
type PhoneConfig struct {
	PhoneType                 string
	AutoAccept                *bool
	AfterContactWorkTimeLimit *int32
	DeskPhoneNumber           string
}

// IdentityInfo holds optional personal details of an agent.
type IdentityInfo struct {
	FirstName      string
	LastName       string
	Email          string
	SecondaryEmail string
	Mobile         string
}

// CreateUserParams for creating an agent account. Profile fields hold
// platform identifiers, not names.
type CreateUserParams struct {
	InstanceID         string
	Username           string
	Password           string
	PhoneConfig        PhoneConfig
	IdentityInfo       *IdentityInfo
	SecurityProfileIDs []string
	RoutingProfileID   string
}

// CreatedUser holds the identifiers assigned by Connect plus response metadata.
type CreatedUser struct {
	UserID         string
	UserARN        string
	RequestID      string
	HTTPStatusCode int
}

// Service defines the Connect operations used for provisioning.
//
// List operations must return every profile of the instance, paging with at
// most pageSize results per call.
type Service interface {
	ListSecurityProfiles(ctx context.Context, instanceID string, pageSize int32) ([]ProfileSummary, error)
	ListRoutingProfiles(ctx context.Context, instanceID string, pageSize int32) ([]ProfileSummary, error)
	CreateUser(ctx context.Context, params CreateUserParams) (*CreatedUser, error)
}
