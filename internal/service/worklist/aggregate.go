package worklist

import (
	"sort"
	"strings"

	"bms-board/internal/storage"
)

type groupKey struct {
	OrigCode string
	Received string
	Customer string
}

// Aggregate merges attributed rows that belong to the same original order
// into one worklist row. The grouping key is (original order code, received
// date, customer), deliberately not the service order's own code: two issues
// raised in one visit collapse, visits on different days stay separate.
func Aggregate(rows []storage.AttributedRow) []storage.AggregatedRow {
	if len(rows) == 0 {
		return nil
	}

	var order []groupKey
	groups := make(map[groupKey][]storage.AttributedRow)
	for _, r := range rows {
		k := groupKey{OrigCode: r.OrigCode, Received: r.Received, Customer: r.Customer}
		if _, ok := groups[k]; !ok {
			order = append(order, k)
		}
		groups[k] = append(groups[k], r)
	}

	out := make([]storage.AggregatedRow, 0, len(order))
	for _, k := range order {
		out = append(out, mergeGroup(k, groups[k]))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ServiceCode > out[j].ServiceCode
	})

	return out
}

func mergeGroup(k groupKey, group []storage.AttributedRow) storage.AggregatedRow {
	var (
		categories = make([]string, 0, len(group))
		classes    = make([]string, 0, len(group))
		reasons    = make([]string, 0, len(group))
		keys       = make([]string, 0, len(group))
		maxCode    string
	)

	for _, r := range group {
		categories = append(categories, r.Category)
		classes = append(classes, r.Class)
		reasons = append(reasons, r.Reason)
		keys = append(keys, r.KeyID)
		if r.ServiceCode > maxCode {
			maxCode = r.ServiceCode
		}
	}

	return storage.AggregatedRow{
		KeyID:       strings.Join(keys, ","),
		ServiceCode: maxCode,
		Received:    k.Received,
		Category:    sortedSetJoin(categories, " + "),
		Class:       sortedSetJoin(classes, "\n"),
		OrigCode:    k.OrigCode,
		Reason:      strings.Join(reasons, "\n"),
		Customer:    k.Customer,
		// rows in one group share a received date, so the first link is safe
		Link: group[0].Link,
	}
}

// sortedSetJoin joins the distinct values in sorted order, so the result is
// stable regardless of input row order.
func sortedSetJoin(vals []string, sep string) string {
	seen := make(map[string]bool, len(vals))
	var distinct []string
	for _, v := range vals {
		if seen[v] {
			continue
		}
		seen[v] = true
		distinct = append(distinct, v)
	}
	sort.Strings(distinct)
	return strings.Join(distinct, sep)
}
