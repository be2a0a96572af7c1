package entity

import "sort"

// House aggregates the open accounts sharing one building. The address is
// the one recorded from the first account encountered for the house id.
type House struct {
	ID       string              `json:"houseId"`
	Address  string              `json:"address"`
	Accounts map[string]*Account `json:"data"`
	Printed  bool                `json:"printed"`
}

// SortedAccountKeys returns the account keys in ascending order. Receipt
// pages are rendered in this order so regeneration is deterministic.
func (h *House) SortedAccountKeys() []string {
	keys := make([]string, 0, len(h.Accounts))
	for k := range h.Accounts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UnprintedAccounts counts accounts not yet rendered into a document.
func (h *House) UnprintedAccounts() int {
	n := 0
	for _, acc := range h.Accounts {
		if !acc.Printed {
			n++
		}
	}
	return n
}
