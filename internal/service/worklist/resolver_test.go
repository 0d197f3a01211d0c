package worklist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"bms-board/internal/storage"
)

func TestNormalizeRefID_WrappedForms(t *testing.T) {
	// all of these must resolve to the same canonical id
	for _, raw := range []string{"5", "5.0", " 5 ", "['5']", `["5"]`, "[5]"} {
		assert.Equal(t, "5", NormalizeRefID(raw), "raw=%q", raw)
	}
}

func TestNormalizeRefID_Unparseable(t *testing.T) {
	for _, raw := range []string{"", "   ", "abc", "[]", "1,2"} {
		assert.Equal(t, "", NormalizeRefID(raw), "raw=%q", raw)
	}
}

func TestNormalizeRefID_Idempotent(t *testing.T) {
	for _, raw := range []string{"123.0", "['42']", "garbage", "", "7"} {
		once := NormalizeRefID(raw)
		assert.Equal(t, once, NormalizeRefID(once), "raw=%q", raw)
	}
}

func TestBuildLookups_SkipsUnparseableIDs(t *testing.T) {
	snap := newTestSnapshot(
		storage.OrderRecord{ID: "1", Code: "A100", LensStaff: "Sen", FrameStaff: "Joel"},
		storage.OrderRecord{ID: "broken", Code: "A101", LensStaff: "Lily"},
	)

	lk := buildLookups(snap, snap.Orders)

	assert.Equal(t, "A100", lk.resolveCode("1"))
	assert.Equal(t, "Sen", lk.resolveOwner("1", dimensionLens))
	assert.Equal(t, "Joel", lk.resolveOwner("1", dimensionFrame))

	// the empty sentinel must never hit a real order
	assert.Equal(t, "", lk.resolveCode(""))
	assert.Equal(t, "", lk.resolveOwner("", dimensionLens))
}

func TestBuildLookups_MissingStaffColumnStaysEmpty(t *testing.T) {
	snap := newTestSnapshot(
		storage.OrderRecord{ID: "1", Code: "A100", LensStaff: "Sen"},
	)
	delete(snap.Columns, storage.ColFrameStaff)

	lk := buildLookups(snap, snap.Orders)

	assert.Equal(t, "Sen", lk.resolveOwner("1", dimensionLens))
	assert.Equal(t, "", lk.resolveOwner("1", dimensionFrame))
}

func TestNormalizeRefID_FloatFormWholeNumber(t *testing.T) {
	assert.Equal(t, "123", NormalizeRefID("123.0"))
	assert.Equal(t, "123", NormalizeRefID("['123.0']"))
}
