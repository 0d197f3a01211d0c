package worklist

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"bms-board/internal/storage"
)

const (
	dimensionLens  = "lens"
	dimensionFrame = "frame"

	CategoryLensAS  = "렌즈 AS"
	CategoryFrameAS = "테 AS"
	CategoryFitting = "피팅"

	statusArchived = "archived"
)

type SnapshotProvider interface {
	Snapshot(ctx context.Context) (storage.Snapshot, error)
}

// Service computes the per-staff AS/fitting worklist from the current order
// snapshot. It holds no state of its own; every call re-runs the full pass.
type Service struct {
	storage  SnapshotProvider
	orderURL string
}

func NewService(storage SnapshotProvider, orderURL string) *Service {
	return &Service{storage: storage, orderURL: orderURL}
}

// Worklist returns both the merged worklist rows and the raw attributed rows
// for the selected staff member. The raw rows feed the per-category charts.
func (s *Service) Worklist(ctx context.Context, staff string) ([]storage.AggregatedRow, []storage.AttributedRow, error) {
	const op = "service.worklist.Worklist"

	snap, err := s.storage.Snapshot(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	attributed := Attribute(snap, staff, s.orderURL)
	return Aggregate(attributed), attributed, nil
}

// Staff returns the staff-name universe of the current snapshot, ordered for
// display.
func (s *Service) Staff(ctx context.Context) ([]string, error) {
	const op = "service.worklist.Staff"

	snap, err := s.storage.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return StaffList(snap), nil
}

// Attribute scans the snapshot and keeps every lens/frame service row whose
// original owner is the selected staff member.
func Attribute(snap storage.Snapshot, staff string, orderURL string) []storage.AttributedRow {
	if snap.Empty() {
		return nil
	}

	active := make([]storage.OrderRecord, 0, len(snap.Orders))
	for _, o := range snap.Orders {
		if isArchived(o.Status) {
			continue
		}
		active = append(active, o)
	}

	lk := buildLookups(snap, active)

	var rows []storage.AttributedRow

	// lens pass
	if snap.HasColumn(storage.ColLensType) {
		for _, o := range active {
			if o.LensType != "as" {
				continue
			}
			refID := NormalizeRefID(o.LensService.ReferenceID)
			if lk.resolveOwner(refID, dimensionLens) != staff {
				continue
			}
			rows = append(rows, newRow(o, lk, refID, CategoryLensAS, "💎 "+o.LensService.Comment, o.LensService.Classification, orderURL))
		}
	}

	// frame pass: both plain AS and fitting requests live on frameType
	if snap.HasColumn(storage.ColFrameType) {
		for _, o := range active {
			var category, reason string
			switch o.FrameType {
			case "as":
				category = CategoryFrameAS
				reason = "👓 " + o.FrameService.Comment
			case "fitting":
				category = CategoryFitting
				reason = "🛠️ " + o.FrameService.Comment
			default:
				continue
			}
			refID := NormalizeRefID(o.FrameService.ReferenceID)
			if lk.resolveOwner(refID, dimensionFrame) != staff {
				continue
			}
			rows = append(rows, newRow(o, lk, refID, category, reason, o.FrameService.Classification, orderURL))
		}
	}

	// most recent service request first
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ServiceCode > rows[j].ServiceCode
	})

	return rows
}

func newRow(o storage.OrderRecord, lk lookups, refID, category, reason, classification, orderURL string) storage.AttributedRow {
	received := formatReceivedDate(o.CreatedAt)
	return storage.AttributedRow{
		KeyID:       keyID(o),
		ServiceCode: o.Code,
		Received:    received,
		Category:    category,
		Class:       ParseClassification(classification),
		OrigCode:    lk.resolveCode(refID),
		Reason:      reason,
		Customer:    o.Customer,
		Link:        BuildLink(orderURL, received),
	}
}

// keyID is the row-identity key used for dismissal. It is built from the
// service order's own id, so it stays stable across store refreshes.
func keyID(o storage.OrderRecord) string {
	if id := NormalizeRefID(o.ID); id != "" {
		return id
	}
	return strings.TrimSpace(o.ID)
}

func isArchived(status string) bool {
	return strings.EqualFold(strings.TrimSpace(status), statusArchived)
}

var createdAtLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// formatReceivedDate derives the display date from the service order's own
// createdAt. Malformed dates become "" instead of failing the pass.
func formatReceivedDate(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	for _, layout := range createdAtLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return ""
}

// BuildLink reproduces the BMS order-search URL the staff click through to:
// the received date goes in as both start and end filter, a missing date
// falls back to the bare order page.
func BuildLink(orderURL, date string) string {
	if date == "" {
		return orderURL
	}
	return fmt.Sprintf("%s?startDate=%s&endDate=%s", orderURL, date, date)
}

// StaffRank is the display priority of a staff name: the three front-desk
// names come first, everyone else sorts alphabetically after them.
func StaffRank(name string) int {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sen":
		return 0
	case "joel":
		return 1
	case "lily":
		return 2
	}
	return 100
}

// StaffList collects the union of lens and frame staff names present in the
// snapshot, ordered by StaffRank then name.
func StaffList(snap storage.Snapshot) []string {
	seen := make(map[string]bool)
	for _, o := range snap.Orders {
		seen[o.LensStaff] = true
		seen[o.FrameStaff] = true
	}

	var staff []string
	for name := range seen {
		// "nan" shows up in rows that went through the old sheet export
		if strings.TrimSpace(name) == "" || name == "nan" {
			continue
		}
		staff = append(staff, name)
	}

	sort.Slice(staff, func(i, j int) bool {
		ri, rj := StaffRank(staff[i]), StaffRank(staff[j])
		if ri != rj {
			return ri < rj
		}
		return staff[i] < staff[j]
	})

	return staff
}
