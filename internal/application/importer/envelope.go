package importer

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// FlexString decodes a JSON value that the exporter emits inconsistently
// as either a number or a string (flat numbers, account ids).
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

// String returns the decoded value.
func (f FlexString) String() string { return string(f) }

// Envelope mirrors the raw billing export file. Field names (including the
// "SerivceCollections" misspelling) are fixed by the upstream exporter and
// must not be corrected here.
type Envelope struct {
	BeginDate      string                `json:"BeginDate"`
	EndDate        string                `json:"EndDate"`
	OrganizationID string                `json:"OrganizationId"`
	ServiceObjects map[string]RawService `json:"ServiceObjects"`
	Errors         []string              `json:"Errors"`
	Accounts       map[string]RawAccount `json:"Accounts"`
}

// RawService is a service catalog record of the export.
type RawService struct {
	Name string `json:"Name"`
}

// RawAccount is one account record of the export.
type RawAccount struct {
	HouseInfoID         FlexString      `json:"HouseInfoId"`
	AddressName         string          `json:"AddressName"`
	FlatNumber          FlexString      `json:"FlatNumber"`
	OwnerSurname        string          `json:"OwnerSurname"`
	OwnerName           string          `json:"OwnerName"`
	OwnerMiddleName     string          `json:"OwnerMiddleName"`
	TotalArea           decimal.Decimal `json:"TotalArea"`
	LodgerCount         int             `json:"LodgerCount"`
	AccountNumber       FlexString      `json:"AccountNumber"`
	GisGkhServiceNumber string          `json:"GisGkhUniqueServiceNumber"`
	PersonalAccountID   FlexString      `json:"PersonalAccountId"`
	ServiceCollections  []RawCollection `json:"SerivceCollections"`
	IsAccountClosed     bool            `json:"IsAccountClosed"`
	IsHouseClosed       bool            `json:"IsHouseClosed"`
}

// RawCollection is one accrual block of an account.
type RawCollection struct {
	Services []RawCharge `json:"Services"`
}

// RawCharge is one raw service charge line.
type RawCharge struct {
	ServiceID        FlexString       `json:"ServiceId"`
	Consumption      decimal.Decimal  `json:"Consumption"`
	Price            decimal.Decimal  `json:"Price"`
	ChargeSum        decimal.Decimal  `json:"ChargeSum"`
	RecalculationSum *decimal.Decimal `json:"RecalculationSum"`
}
