package dto

// ImportRequest asks the service to import an export file from disk.
// When Path is empty the request body itself is treated as the export.
type ImportRequest struct {
	Path string `json:"path"`
}

// ImportSummary reports the outcome of an import.
type ImportSummary struct {
	Houses   int    `json:"houses"`
	Accounts int    `json:"accounts"`
	Errors   int    `json:"errors"`
	Period   string `json:"period"`
}
