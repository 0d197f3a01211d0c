package sync

import (
	"encoding/json"
	"strconv"
	"strings"

	"bms-board/internal/storage"
)

// FlattenDetail reduces one detail document to the flat columns the store
// keeps. Numbers become canonical strings, nested lists (classification)
// are kept as their JSON serialization and decoded again by the core.
func FlattenDetail(d map[string]any) storage.OrderRecord {
	return storage.OrderRecord{
		ID:         pathString(d, "id"),
		Code:       pathString(d, "code"),
		Status:     pathString(d, "status"),
		CreatedAt:  pathString(d, "createdAt"),
		Customer:   pathString(d, "customer.name"),
		LensStaff:  pathString(d, "statusDetail.lensStaff"),
		FrameStaff: pathString(d, "statusDetail.frameStaff"),
		LensType:   pathString(d, "lensType"),
		FrameType:  pathString(d, "frameType"),
		LensService: storage.ServiceRecord{
			ReferenceID:    pathString(d, "data.las.referenceId"),
			Classification: pathString(d, "data.las.classification"),
			Comment:        pathString(d, "data.las.comment"),
		},
		FrameService: storage.ServiceRecord{
			ReferenceID:    pathString(d, "data.fas.referenceId"),
			Classification: pathString(d, "data.fas.classification"),
			Comment:        pathString(d, "data.fas.comment"),
		},
	}
}

// lookupPath walks a dotted path through nested objects.
func lookupPath(m map[string]any, path string) (any, bool) {
	parts := strings.Split(path, ".")
	var cur any = m
	for _, p := range parts {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[p]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func pathString(m map[string]any, path string) string {
	v, ok := lookupPath(m, path)
	if !ok || v == nil {
		return ""
	}
	return stringValue(v)
}

func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		// ids arrive as JSON numbers; keep "123", not "123.000000"
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
