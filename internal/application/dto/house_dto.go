package dto

// HouseItem is one row of the houses listing.
type HouseItem struct {
	ID       string `json:"id"`
	Address  string `json:"address"`
	Accounts int    `json:"accounts"`
	Printed  bool   `json:"printed"`
}

// HouseStats are the running counters above the listing.
type HouseStats struct {
	Houses            int    `json:"houses"`
	UnprintedHouses   int    `json:"unprintedHouses"`
	Accounts          int    `json:"accounts"`
	UnprintedAccounts int    `json:"unprintedAccounts"`
	BeginDate         string `json:"beginDate"`
	EndDate           string `json:"endDate"`
}

// HouseListResponse is the houses listing with its counters.
type HouseListResponse struct {
	Houses []HouseItem `json:"houses"`
	Stats  HouseStats  `json:"stats"`
}

// ChargeLineView is one computed charge row of an account.
type ChargeLineView struct {
	ServiceName      string `json:"serviceName"`
	Consumption      string `json:"consumption"`
	Price            string `json:"price"`
	ChargeSum        string `json:"chargeSum"`
	RecalculationSum string `json:"recalculationSum"`
	Total            string `json:"total"`
}

// AccountView is one account with its computed charges, as shown in the
// receipt preview.
type AccountView struct {
	Key         string           `json:"key"`
	Owner       string           `json:"owner"`
	FlatNumber  string           `json:"flatNumber"`
	Lines       []ChargeLineView `json:"lines,omitempty"`
	Placeholder string           `json:"placeholder,omitempty"`
	Total       string           `json:"total"`
	Printed     bool             `json:"printed"`
}

// HouseAccountsResponse lists the accounts of one house.
type HouseAccountsResponse struct {
	HouseID  string        `json:"houseId"`
	Address  string        `json:"address"`
	Accounts []AccountView `json:"accounts"`
}
