package dto

// GenerateRequest selects the houses to render.
type GenerateRequest struct {
	HouseIDs []string `json:"houseIds"`
}

// HouseResultItem reports one house's outcome in a generation run.
type HouseResultItem struct {
	HouseID string `json:"houseId"`
	Address string `json:"address,omitempty"`
	Status  string `json:"status"`
	Pages   int    `json:"pages,omitempty"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message,omitempty"`
}

// GenerateResponse is the full run report.
type GenerateResponse struct {
	Results []HouseResultItem `json:"results"`
}

// ErrorListResponse is the accumulated error list with its running count.
type ErrorListResponse struct {
	Count  int      `json:"count"`
	Errors []string `json:"errors"`
}
