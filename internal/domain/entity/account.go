package entity

import "github.com/shopspring/decimal"

// ServiceCharge is one raw charge record inside a service collection,
// as delivered by the billing export. Amounts keep the export's decimal
// precision; RecalculationSum is nil when the export omits it.
type ServiceCharge struct {
	ServiceID        string           `json:"serviceId"`
	Consumption      decimal.Decimal  `json:"consumption"`
	Price            decimal.Decimal  `json:"price"`
	ChargeSum        decimal.Decimal  `json:"chargeSum"`
	RecalculationSum *decimal.Decimal `json:"recalculationSum,omitempty"`
}

// ServiceCollection groups the charges of one accrual block. Order of
// collections and of charges within a collection follows the export.
type ServiceCollection struct {
	Services []ServiceCharge `json:"services"`
}

// Account is one payer's billing record within a house for the active period.
type Account struct {
	Key               string              `json:"accountKey"`
	HouseID           string              `json:"houseId"`
	Address           string              `json:"address"`
	FlatNumber        string              `json:"flatNumber"`
	OwnerSurname      string              `json:"ownerSurname"`
	OwnerName         string              `json:"ownerName"`
	OwnerMiddleName   string              `json:"ownerMiddleName"`
	TotalArea         decimal.Decimal     `json:"totalArea"`
	LodgerCount       int                 `json:"lodgerCount"`
	AccountNumber     string              `json:"accountNumber"`
	GisServiceNumber  string              `json:"gisServiceNumber"`
	PersonalAccountID string              `json:"personalAccountId"`
	Collections       []ServiceCollection `json:"serviceCollections"`
	Printed           bool                `json:"printed"`
}

// OwnerFullName composes the payer line as printed on the receipt.
func (a *Account) OwnerFullName() string {
	return a.OwnerSurname + " " + a.OwnerName + " " + a.OwnerMiddleName
}
