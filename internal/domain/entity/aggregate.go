package entity

// Aggregate is the full snapshot of the current import batch: the
// house→account hierarchy, the service catalog, the accumulated error
// list and the active billing period. It is created wholesale on each
// successful import, persisted by the snapshot store and replaced (never
// merged) by the next import.
type Aggregate struct {
	Houses      map[string]*House              `json:"houseDict"`
	Catalog     map[string]ServiceCatalogEntry `json:"serviceDict"`
	Errors      []string                       `json:"errors"`
	Preferences Period                         `json:"preferences"`
}

// NewAggregate returns an empty aggregate with initialized maps.
func NewAggregate() *Aggregate {
	return &Aggregate{
		Houses:  make(map[string]*House),
		Catalog: make(map[string]ServiceCatalogEntry),
		Errors:  []string{},
	}
}

// AddError appends a human-readable message to the visible error list.
// Non-fatal failures all funnel through here; nothing is dropped.
func (a *Aggregate) AddError(msg string) {
	a.Errors = append(a.Errors, msg)
}

// Stats are the counters shown in the house listing.
type Stats struct {
	Houses            int `json:"houses"`
	UnprintedHouses   int `json:"unprintedHouses"`
	Accounts          int `json:"accounts"`
	UnprintedAccounts int `json:"unprintedAccounts"`
}

// Stats computes the printed/unprinted counters over all houses.
func (a *Aggregate) Stats() Stats {
	var s Stats
	for _, h := range a.Houses {
		s.Houses++
		if !h.Printed {
			s.UnprintedHouses++
		}
		s.Accounts += len(h.Accounts)
		s.UnprintedAccounts += h.UnprintedAccounts()
	}
	return s
}
