package storage

// AttributedRow is one (service order, dimension) pair that passed the
// ownership check for the selected staff member.
type AttributedRow struct {
	KeyID       string `json:"key_id"`
	ServiceCode string `json:"service_code"`
	Received    string `json:"received"`
	Category    string `json:"category"`
	Class       string `json:"classification"`
	OrigCode    string `json:"orig_code"`
	Reason      string `json:"reason"`
	Customer    string `json:"customer"`
	Link        string `json:"bms_link"`
}

// AggregatedRow is one worklist row: every attributed row that shares
// (original order code, received date, customer) merged together. KeyID is
// the comma-joined list of contributing row keys, so dismissing the row
// dismisses all contributors.
type AggregatedRow struct {
	KeyID       string `json:"key_id"`
	ServiceCode string `json:"service_code"`
	Received    string `json:"received"`
	Category    string `json:"category"`
	Class       string `json:"classification"`
	OrigCode    string `json:"orig_code"`
	Reason      string `json:"reason"`
	Customer    string `json:"customer"`
	Link        string `json:"bms_link"`
}
