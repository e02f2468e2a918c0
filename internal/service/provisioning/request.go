// Package provisioning validates agent provisioning requests, resolves
// profile names against the live Connect catalog and creates the user.
package provisioning

// Phone types accepted by Connect.
const (
	PhoneTypeSoftPhone = "SOFT_PHONE"
	PhoneTypeDeskPhone = "DESK_PHONE"
)

// Request describes the agent to create. Profile fields hold human-readable
// names; they are resolved to identifiers before the create call. JSON names
// follow the Connect CreateUser field names.
type Request struct {
	Username           string        `json:"Username,omitempty"`
	Password           string        `json:"Password,omitempty"`
	PhoneConfig        *PhoneConfig  `json:"PhoneConfig,omitempty"`
	SecurityProfileIDs []string      `json:"SecurityProfileIds,omitempty"`
	RoutingProfileID   string        `json:"RoutingProfileId,omitempty"`
	IdentityInfo       *IdentityInfo `json:"IdentityInfo,omitempty"`
}

// PhoneConfig holds the agent's phone settings.
type PhoneConfig struct {
	PhoneType                 string `json:"PhoneType,omitempty"`
	AutoAccept                *bool  `json:"AutoAccept,omitempty"`
	AfterContactWorkTimeLimit *int32 `json:"AfterContactWorkTimeLimit,omitempty"`
	DeskPhoneNumber           string `json:"DeskPhoneNumber,omitempty"`
}

// IdentityInfo holds optional personal details.
type IdentityInfo struct {
	FirstName      string `json:"FirstName,omitempty"`
	LastName       string `json:"LastName,omitempty"`
	Email          string `json:"Email,omitempty"`
	SecondaryEmail string `json:"SecondaryEmail,omitempty"`
	Mobile         string `json:"Mobile,omitempty"`
}

// Result is the normalized outcome: exactly one of Data or Error is set.
type Result struct {
	Data  *UserData `json:"data,omitempty"`
	Error string    `json:"error,omitempty"`

	err error
}

// Err returns the typed failure behind Error, or nil on success.
func (r *Result) Err() error {
	if r == nil {
		return nil
	}
	return r.err
}

// UserData holds the identifiers assigned by Connect.
type UserData struct {
	UserID           string            `json:"UserId"`
	UserARN          string            `json:"UserArn"`
	ResponseMetadata *ResponseMetadata `json:"ResponseMetadata,omitempty"`
}

// ResponseMetadata describes the create call's HTTP exchange.
type ResponseMetadata struct {
	RequestID      string `json:"RequestId,omitempty"`
	HTTPStatusCode int    `json:"HTTPStatusCode"`
}

func successResult(data *UserData) *Result {
	return &Result{Data: data}
}

func errorResult(err *Error) *Result {
	return &Result{Error: err.Error(), err: err}
}
