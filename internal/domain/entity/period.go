package entity

import "fmt"

// Date is a calendar date (no time component, no timezone).
type Date struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// String renders the date the way the receipt shows it: dd.MM.yyyy.
func (d Date) String() string {
	return fmt.Sprintf("%02d.%02d.%d", d.Day, d.Month, d.Year)
}

// IsZero reports whether the date was never set.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Period is the billing date range and organization id of the import batch.
type Period struct {
	BeginDate      Date   `json:"beginDate"`
	EndDate        Date   `json:"endDate"`
	OrganizationID string `json:"organization"`
}

var monthNames = map[int]string{
	1:  "Январь",
	2:  "Февраль",
	3:  "Март",
	4:  "Апрель",
	5:  "Май",
	6:  "Июнь",
	7:  "Июль",
	8:  "Август",
	9:  "Сентябрь",
	10: "Октябрь",
	11: "Ноябрь",
	12: "Декабрь",
}

// Label renders the billing month for the receipt header, e.g. "Март 2024 г.".
func (p Period) Label() string {
	return fmt.Sprintf("%s %d г.", monthNames[p.BeginDate.Month], p.BeginDate.Year)
}
