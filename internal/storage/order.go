package storage

// Logical column names of the order snapshot. The sync layer flattens the
// BMS detail JSON with these dotted paths, so the core can check whether a
// service dimension was ever present upstream.
const (
	ColLensType       = "lensType"
	ColFrameType      = "frameType"
	ColLensStaff      = "statusDetail.lensStaff"
	ColFrameStaff     = "statusDetail.frameStaff"
	ColLasReferenceID = "data.las.referenceId"
	ColFasReferenceID = "data.fas.referenceId"
)

// ServiceRecord is the AS/fitting sub-record of one dimension (lens or frame)
// of an order. ReferenceID points back at the id of the original order whose
// part is being serviced.
type ServiceRecord struct {
	ReferenceID    string `json:"referenceId"`
	Classification string `json:"classification"`
	Comment        string `json:"comment"`
}

// OrderRecord is one flattened row of the BMS order store.
type OrderRecord struct {
	ID         string `json:"id"`
	Code       string `json:"code"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
	Customer   string `json:"customer"`
	LensStaff  string `json:"lensStaff"`
	FrameStaff string `json:"frameStaff"`
	LensType   string `json:"lensType"`
	FrameType  string `json:"frameType"`

	LensService  ServiceRecord `json:"las"`
	FrameService ServiceRecord `json:"fas"`
}

// Snapshot is one immutable copy of the order store. Columns holds the
// logical columns that carry data in this snapshot; a pass whose column is
// missing has no candidates and is skipped.
type Snapshot struct {
	Orders  []OrderRecord
	Columns map[string]bool
}

func (s Snapshot) HasColumn(name string) bool {
	return s.Columns[name]
}

func (s Snapshot) Empty() bool {
	return len(s.Orders) == 0
}
