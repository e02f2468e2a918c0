package profiles

// Profile is a named profile of the instance.
type Profile struct {
	Name string `json:"name" doc:"Profile name as used in provisioning requests" example:"Agent"`
	ID   string `json:"id"   doc:"Platform identifier"                           example:"4f2c9a1e-0000-4000-8000-000000000001"`
}

// CatalogData lists the security and routing profiles of the instance.
type CatalogData struct {
	SecurityProfiles []Profile `json:"securityProfiles" doc:"Security profiles, sorted by name"`
	RoutingProfiles  []Profile `json:"routingProfiles"  doc:"Routing profiles, sorted by name"`
}
