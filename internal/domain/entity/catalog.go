package entity

// ServiceCatalogEntry is immutable reference data for one communal service,
// loaded once per import batch and keyed by service id.
type ServiceCatalogEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
