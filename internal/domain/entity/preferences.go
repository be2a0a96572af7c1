package entity

// BankParty holds the requisites of one payment party (executor or
// recipient). The JSON tags match the on-disk pref.json layout.
type BankParty struct {
	Name     string `json:"name"`
	Bank     string `json:"bank"`
	INN      string `json:"inn"`
	KPP      string `json:"kpp,omitempty"`
	CalcAcc  string `json:"calc_acc"`
	CorrAcc  string `json:"corr_acc"`
	BIK      string `json:"bik"`
	Address  string `json:"address,omitempty"`
	Phones   string `json:"phones,omitempty"`
	Site     string `json:"site,omitempty"`
	Email    string `json:"email,omitempty"`
	WorkTime string `json:"work_time,omitempty"`
	GisID    string `json:"gis_id,omitempty"`
}

// StoredPreferences are operator-edited settings that survive across import
// batches: where to write documents, who executes the services and who
// receives the payment. An absent preferences file means zero values.
type StoredPreferences struct {
	OutputPath string    `json:"output"`
	Executor   BankParty `json:"executor"`
	Recipient  BankParty `json:"recipient"`
}
