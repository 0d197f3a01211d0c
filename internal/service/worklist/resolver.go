package worklist

import (
	"strconv"
	"strings"

	"bms-board/internal/storage"
)

var refIDCleaner = strings.NewReplacer("[", "", "]", "", "'", "", `"`, "")

// NormalizeRefID reduces a reference id to its canonical integer-string form.
// The store delivers ids as bare numbers, float-formatted text ("123.0") or
// list-wrapped strings ("['123']"); anything that does not survive the float
// round-trip becomes "", which never matches a real order id.
func NormalizeRefID(raw string) string {
	s := strings.TrimSpace(refIDCleaner.Replace(strings.TrimSpace(raw)))
	if s == "" {
		return ""
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ""
	}

	return strconv.FormatInt(int64(f), 10)
}

// lookups are the precomputed original-order maps for one processing pass,
// keyed by normalized order id.
type lookups struct {
	code       map[string]string
	lensStaff  map[string]string
	frameStaff map[string]string
}

// buildLookups indexes a snapshot of non-archived orders. A staff map whose
// source column is absent stays empty, so that dimension attributes nothing.
func buildLookups(snap storage.Snapshot, orders []storage.OrderRecord) lookups {
	lk := lookups{
		code:       make(map[string]string, len(orders)),
		lensStaff:  make(map[string]string),
		frameStaff: make(map[string]string),
	}

	hasLens := snap.HasColumn(storage.ColLensStaff)
	hasFrame := snap.HasColumn(storage.ColFrameStaff)

	for _, o := range orders {
		id := NormalizeRefID(o.ID)
		if id == "" {
			// an unparseable order id must not become a join target,
			// otherwise the empty sentinel would match it
			continue
		}
		lk.code[id] = o.Code
		if hasLens {
			lk.lensStaff[id] = o.LensStaff
		}
		if hasFrame {
			lk.frameStaff[id] = o.FrameStaff
		}
	}

	return lk
}

// resolveOwner returns the staff member recorded for the given dimension of
// the original order, or "" when the id resolves to nothing.
func (lk lookups) resolveOwner(id string, dimension string) string {
	if id == "" {
		return ""
	}
	switch dimension {
	case dimensionLens:
		return lk.lensStaff[id]
	case dimensionFrame:
		return lk.frameStaff[id]
	}
	return ""
}

func (lk lookups) resolveCode(id string) string {
	if id == "" {
		return ""
	}
	return lk.code[id]
}
