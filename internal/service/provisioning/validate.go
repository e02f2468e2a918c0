package provisioning

// requiredFields lists the mandatory request fields in the order they are checked.
var requiredFields = []struct {
	name    string
	present func(Request) bool
}{
	{"Username", func(r Request) bool { return r.Username != "" }},
	{"Password", func(r Request) bool { return r.Password != "" }},
	{"PhoneConfig", func(r Request) bool { return r.PhoneConfig != nil }},
	{"SecurityProfileIds", func(r Request) bool { return len(r.SecurityProfileIDs) > 0 }},
	{"RoutingProfileId", func(r Request) bool { return r.RoutingProfileID != "" }},
}

// Validate checks req and returns the first violation as a validation *Error.
// It has no side effects.
func Validate(req Request) error {
	for _, f := range requiredFields {
		if !f.present(req) {
			return validationError("Missing required field: " + f.name)
		}
	}

	switch req.PhoneConfig.PhoneType {
	case PhoneTypeSoftPhone, PhoneTypeDeskPhone:
	default:
		return validationError("Invalid PhoneType")
	}
	return nil
}
