package worklist

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"bms-board/internal/storage"
)

const testOrderURL = "https://bms.breezm.com/order"

// newTestSnapshot mirrors what the mysql store does: column presence is
// derived from the data itself.
func newTestSnapshot(orders ...storage.OrderRecord) storage.Snapshot {
	snap := storage.Snapshot{Orders: orders, Columns: make(map[string]bool)}
	for _, o := range orders {
		if o.LensType != "" {
			snap.Columns[storage.ColLensType] = true
		}
		if o.FrameType != "" {
			snap.Columns[storage.ColFrameType] = true
		}
		if o.LensStaff != "" {
			snap.Columns[storage.ColLensStaff] = true
		}
		if o.FrameStaff != "" {
			snap.Columns[storage.ColFrameStaff] = true
		}
		if o.LensService.ReferenceID != "" {
			snap.Columns[storage.ColLasReferenceID] = true
		}
		if o.FrameService.ReferenceID != "" {
			snap.Columns[storage.ColFasReferenceID] = true
		}
	}
	return snap
}

func TestAttribute_LensASAttributedToOriginalOwner(t *testing.T) {
	snap := newTestSnapshot(
		storage.OrderRecord{ID: "1", Code: "A100", LensStaff: "Sen", LensType: "none"},
		storage.OrderRecord{
			ID: "2", Code: "A205", LensType: "as", CreatedAt: "2024-09-01", Customer: "김민수",
			LensService: storage.ServiceRecord{
				ReferenceID:    "1",
				Classification: "[{'first':'exchange','second':'change_of_mind'}]",
				Comment:        "customer request",
			},
		},
	)

	rows := Attribute(snap, "Sen", testOrderURL)

	assert.Len(t, rows, 1)
	assert.Equal(t, CategoryLensAS, rows[0].Category)
	assert.Equal(t, "교환 🔄 > 단순변심", rows[0].Class)
	assert.Equal(t, "A100", rows[0].OrigCode)
	assert.Equal(t, "💎 customer request", rows[0].Reason)
	assert.Equal(t, "2024-09-01", rows[0].Received)
	assert.Equal(t, "2", rows[0].KeyID)
	assert.Equal(t, testOrderURL+"?startDate=2024-09-01&endDate=2024-09-01", rows[0].Link)

	agg := Aggregate(rows)
	assert.Len(t, agg, 1)
	assert.Equal(t, "A100", agg[0].OrigCode)
	assert.Equal(t, CategoryLensAS, agg[0].Category)
}

func TestAttribute_OwnershipMismatchExcluded(t *testing.T) {
	snap := newTestSnapshot(
		storage.OrderRecord{ID: "1", Code: "A100", LensStaff: "Joel", LensType: "none"},
		storage.OrderRecord{
			ID: "2", Code: "A205", LensType: "as", CreatedAt: "2024-09-01",
			LensService: storage.ServiceRecord{ReferenceID: "1", Comment: "customer request"},
		},
	)

	assert.Empty(t, Attribute(snap, "Sen", testOrderURL))
}

func TestAttribute_LensAndFrameSameVisitMerge(t *testing.T) {
	snap := newTestSnapshot(
		storage.OrderRecord{ID: "1", Code: "A100", LensStaff: "Sen", FrameStaff: "Sen", LensType: "none", FrameType: "none"},
		storage.OrderRecord{
			ID: "2", Code: "A300", LensType: "as", CreatedAt: "2024-09-02", Customer: "김민수",
			LensService: storage.ServiceRecord{ReferenceID: "1", Comment: "렌즈 흠집"},
		},
		storage.OrderRecord{
			ID: "3", Code: "A301", FrameType: "as", CreatedAt: "2024-09-02", Customer: "김민수",
			FrameService: storage.ServiceRecord{ReferenceID: "1", Comment: "다리 휨"},
		},
	)

	rows := Attribute(snap, "Sen", testOrderURL)
	assert.Len(t, rows, 2)

	agg := Aggregate(rows)
	assert.Len(t, agg, 1)
	assert.Equal(t, "렌즈 AS + 테 AS", agg[0].Category)
	assert.Equal(t, "A301", agg[0].ServiceCode)
	assert.Equal(t, "3,2", agg[0].KeyID)
}

func TestAttribute_OneRowBothDimensions(t *testing.T) {
	// a repair order carrying a lens AS and a frame AS at once emits two rows
	snap := newTestSnapshot(
		storage.OrderRecord{ID: "1", Code: "A100", LensStaff: "Sen", FrameStaff: "Sen", LensType: "none", FrameType: "none"},
		storage.OrderRecord{
			ID: "2", Code: "A300", LensType: "as", FrameType: "as", CreatedAt: "2024-09-02",
			LensService:  storage.ServiceRecord{ReferenceID: "1"},
			FrameService: storage.ServiceRecord{ReferenceID: "1"},
		},
	)

	rows := Attribute(snap, "Sen", testOrderURL)
	assert.Len(t, rows, 2)
	assert.Len(t, Aggregate(rows), 1)
}

func TestAttribute_FittingCategoryAndDecoration(t *testing.T) {
	snap := newTestSnapshot(
		storage.OrderRecord{ID: "1", Code: "A100", FrameStaff: "Lily", FrameType: "none"},
		storage.OrderRecord{
			ID: "2", Code: "A400", FrameType: "fitting", CreatedAt: "2024-09-03",
			FrameService: storage.ServiceRecord{ReferenceID: "1", Comment: "코받침 조정"},
		},
	)

	rows := Attribute(snap, "Lily", testOrderURL)
	assert.Len(t, rows, 1)
	assert.Equal(t, CategoryFitting, rows[0].Category)
	assert.Equal(t, "🛠️ 코받침 조정", rows[0].Reason)
}

func TestAttribute_ArchivedOrdersExcluded(t *testing.T) {
	snap := newTestSnapshot(
		storage.OrderRecord{ID: "1", Code: "A100", Status: "Archived", LensStaff: "Sen", LensType: "none"},
		storage.OrderRecord{
			ID: "2", Code: "A205", LensType: "as", CreatedAt: "2024-09-01",
			LensService: storage.ServiceRecord{ReferenceID: "1"},
		},
	)

	// the archived original is no join target anymore
	assert.Empty(t, Attribute(snap, "Sen", testOrderURL))
}

func TestAttribute_ArchivedServiceRowExcluded(t *testing.T) {
	snap := newTestSnapshot(
		storage.OrderRecord{ID: "1", Code: "A100", LensStaff: "Sen", LensType: "none"},
		storage.OrderRecord{
			ID: "2", Code: "A205", Status: " archived ", LensType: "as",
			LensService: storage.ServiceRecord{ReferenceID: "1"},
		},
	)

	assert.Empty(t, Attribute(snap, "Sen", testOrderURL))
}

func TestAttribute_MissingLensColumnSkipsPassOnly(t *testing.T) {
	snap := newTestSnapshot(
		storage.OrderRecord{ID: "1", Code: "A100", FrameStaff: "Sen", FrameType: "none"},
		storage.OrderRecord{
			ID: "2", Code: "A205", FrameType: "as", CreatedAt: "2024-09-01",
			FrameService: storage.ServiceRecord{ReferenceID: "1"},
		},
	)
	assert.False(t, snap.HasColumn(storage.ColLensType))

	rows := Attribute(snap, "Sen", testOrderURL)
	assert.Len(t, rows, 1)
	assert.Equal(t, CategoryFrameAS, rows[0].Category)
}

func TestAttribute_UnresolvableReferenceSilentlyExcluded(t *testing.T) {
	snap := newTestSnapshot(
		storage.OrderRecord{ID: "1", Code: "A100", LensStaff: "Sen", LensType: "none"},
		storage.OrderRecord{
			ID: "2", Code: "A205", LensType: "as",
			LensService: storage.ServiceRecord{ReferenceID: "999"},
		},
		storage.OrderRecord{
			ID: "3", Code: "A206", LensType: "as",
			LensService: storage.ServiceRecord{ReferenceID: "garbage"},
		},
	)

	assert.Empty(t, Attribute(snap, "Sen", testOrderURL))
}

func TestAttribute_EmptyOriginalCodeStillAppears(t *testing.T) {
	snap := newTestSnapshot(
		storage.OrderRecord{ID: "1", Code: "", LensStaff: "Sen", LensType: "none"},
		storage.OrderRecord{
			ID: "2", Code: "A205", LensType: "as", CreatedAt: "2024-09-01",
			LensService: storage.ServiceRecord{ReferenceID: "1"},
		},
	)

	rows := Attribute(snap, "Sen", testOrderURL)
	assert.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].OrigCode)
}

func TestAttribute_SortedByServiceCodeDescending(t *testing.T) {
	snap := newTestSnapshot(
		storage.OrderRecord{ID: "1", Code: "A100", LensStaff: "Sen", LensType: "none"},
		storage.OrderRecord{
			ID: "2", Code: "A201", LensType: "as", CreatedAt: "2024-09-01",
			LensService: storage.ServiceRecord{ReferenceID: "1"},
		},
		storage.OrderRecord{
			ID: "3", Code: "A305", LensType: "as", CreatedAt: "2024-09-05",
			LensService: storage.ServiceRecord{ReferenceID: "1"},
		},
	)

	rows := Attribute(snap, "Sen", testOrderURL)
	assert.Len(t, rows, 2)
	assert.Equal(t, "A305", rows[0].ServiceCode)
	assert.Equal(t, "A201", rows[1].ServiceCode)
}

func TestAttribute_NumericStaffIdentifiersCompareAsStrings(t *testing.T) {
	snap := newTestSnapshot(
		storage.OrderRecord{ID: "1", Code: "A100", LensStaff: "1001", LensType: "none"},
		storage.OrderRecord{
			ID: "2", Code: "A205", LensType: "as",
			LensService: storage.ServiceRecord{ReferenceID: "1"},
		},
	)

	assert.Len(t, Attribute(snap, "1001", testOrderURL), 1)
	assert.Empty(t, Attribute(snap, "1001.0", testOrderURL))
}

func TestAttribute_MalformedCreatedAtBecomesEmpty(t *testing.T) {
	snap := newTestSnapshot(
		storage.OrderRecord{ID: "1", Code: "A100", LensStaff: "Sen", LensType: "none"},
		storage.OrderRecord{
			ID: "2", Code: "A205", LensType: "as", CreatedAt: "not-a-date",
			LensService: storage.ServiceRecord{ReferenceID: "1"},
		},
	)

	rows := Attribute(snap, "Sen", testOrderURL)
	assert.Len(t, rows, 1)
	assert.Equal(t, "", rows[0].Received)
	assert.Equal(t, testOrderURL, rows[0].Link)
}

func TestFormatReceivedDate(t *testing.T) {
	assert.Equal(t, "2024-09-01", formatReceivedDate("2024-09-01T14:03:00.000Z"))
	assert.Equal(t, "2024-09-01", formatReceivedDate("2024-09-01 14:03:00"))
	assert.Equal(t, "2024-09-01", formatReceivedDate("2024-09-01"))
	assert.Equal(t, "", formatReceivedDate(""))
	assert.Equal(t, "", formatReceivedDate("09/01/2024"))
}

func TestBuildLink(t *testing.T) {
	assert.Equal(t, testOrderURL, BuildLink(testOrderURL, ""))
	assert.Equal(t,
		testOrderURL+"?startDate=2024-09-01&endDate=2024-09-01",
		BuildLink(testOrderURL, "2024-09-01"),
	)
}

func TestStaffList_PriorityThenAlphabetical(t *testing.T) {
	snap := newTestSnapshot(
		storage.OrderRecord{ID: "1", LensStaff: "Ben", FrameStaff: "Lily"},
		storage.OrderRecord{ID: "2", LensStaff: "Sen", FrameStaff: "Anna"},
		storage.OrderRecord{ID: "3", LensStaff: "Joel", FrameStaff: "nan"},
		storage.OrderRecord{ID: "4", LensStaff: "", FrameStaff: "Sen"},
	)

	assert.Equal(t, []string{"Sen", "Joel", "Lily", "Anna", "Ben"}, StaffList(snap))
}

func TestStaffRank(t *testing.T) {
	assert.Equal(t, 0, StaffRank("sen"))
	assert.Equal(t, 1, StaffRank(" Joel "))
	assert.Equal(t, 2, StaffRank("LILY"))
	assert.Equal(t, 100, StaffRank("Anna"))
}

type stubSnapshotProvider struct {
	snap storage.Snapshot
	err  error
}

func (s stubSnapshotProvider) Snapshot(ctx context.Context) (storage.Snapshot, error) {
	return s.snap, s.err
}

func TestService_WorklistPropagatesStoreError(t *testing.T) {
	svc := NewService(stubSnapshotProvider{err: errors.New("db gone")}, testOrderURL)

	_, _, err := svc.Worklist(context.Background(), "Sen")
	assert.Error(t, err)
}

func TestService_WorklistEmptySnapshot(t *testing.T) {
	svc := NewService(stubSnapshotProvider{snap: newTestSnapshot()}, testOrderURL)

	agg, raw, err := svc.Worklist(context.Background(), "Sen")
	assert.NoError(t, err)
	assert.Empty(t, agg)
	assert.Empty(t, raw)
}
