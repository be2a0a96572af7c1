package entity

import "github.com/shopspring/decimal"

// ChargeLineItem is one computed row of the receipt's charge table.
// Derived data: never persisted, regenerated on every computation pass.
type ChargeLineItem struct {
	ServiceName      string
	Consumption      decimal.Decimal
	Price            decimal.Decimal
	ChargeSum        decimal.Decimal
	RecalculationSum decimal.Decimal
	Total            decimal.Decimal
}

// ChargeResult is the outcome of computing one account's charges.
// Placeholder is set instead of Lines when there is no data to show.
type ChargeResult struct {
	Lines       []ChargeLineItem
	Total       decimal.Decimal
	Placeholder string
}
