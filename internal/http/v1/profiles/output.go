package profiles

// ListProfilesOutput for GET /profiles
type ListProfilesOutput struct {
	Body CatalogData
}
