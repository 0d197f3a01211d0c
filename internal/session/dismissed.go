// Package session holds the presentation-side state that survives between
// worklist renders: the set of row keys a staff member marked as done. The
// set is process-local; a restart brings every row back.
package session

import (
	"strings"
	"sync"

	"bms-board/internal/storage"
)

type DismissedSet struct {
	mu   sync.RWMutex
	keys map[string]bool
}

func NewDismissedSet() *DismissedSet {
	return &DismissedSet{keys: make(map[string]bool)}
}

func splitComposite(composite string) []string {
	var parts []string
	for _, p := range strings.Split(composite, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// Dismiss marks every contributor key of a worklist row as done.
func (s *DismissedSet) Dismiss(composite string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range splitComposite(composite) {
		s.keys[k] = true
	}
}

// Restore brings a dismissed row back.
func (s *DismissedSet) Restore(composite string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range splitComposite(composite) {
		delete(s.keys, k)
	}
}

// Reset clears the whole set ("숨긴 항목 다시 보기").
func (s *DismissedSet) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = make(map[string]bool)
}

// Hidden reports whether every contributor of the composite key has been
// dismissed. A row stays visible while any contributor is still open.
func (s *DismissedSet) Hidden(composite string) bool {
	parts := splitComposite(composite)
	if len(parts) == 0 {
		return false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, k := range parts {
		if !s.keys[k] {
			return false
		}
	}
	return true
}

// Filter applies the set to an aggregated worklist. It runs strictly after
// aggregation; the core never sees dismissal state.
func (s *DismissedSet) Filter(rows []storage.AggregatedRow) []storage.AggregatedRow {
	visible := make([]storage.AggregatedRow, 0, len(rows))
	for _, r := range rows {
		if s.Hidden(r.KeyID) {
			continue
		}
		visible = append(visible, r)
	}
	return visible
}

func (s *DismissedSet) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.keys)
}
