package worklist

import (
	"encoding/json"
	"strings"
	"unicode"
)

// translationMap maps raw BMS classification codes to the labels the staff
// actually read. Codes missing here fall back to a capitalized raw code.
var translationMap = map[string]string{
	// base
	"exchange": "교환 🔄", "return": "반품 ↩️", "repair": "수리 🔧",
	"fitting": "피팅 👓", "quality_issue": "품질불량 ⚠️",

	// customer reasons
	"change_of_mind": "단순변심", "change_of_mind_customer": "단순변심 (고객)",
	"discomfort": "착용감 불편", "fit_dissatisfied": "착용감 불편",
	"design_dissatisfied": "디자인 불만", "lens_dissatisfied": "렌즈 불편",
	"dissatisfied_customer": "고객 불만",
	"breakage":              "파손", "lost_customer": "분실 (고객 과실)",
	"external_shock_customer": "외부 충격 (고객 과실)",
	"prescription_error":      "도수 부적응", "distortion": "어지러움/왜곡",

	// product/quality issues
	"scratch": "스크래치", "coating": "코팅 불량", "bubble": "기포 발생",
	"quality":     "품질 불량",
	"slipping_off": "흘러내림", "temple_pressure": "관자놀이 눌림",
	"nose_bridge_pressure": "코받침 눌림",
	"mastoid_stimulation":  "귀 뒤 통증/자극", "ear_root_stimulation": "귀 뿌리 통증/자극",
	"asymmetry_frontal": "전면 비대칭", "asymmetry_planar": "평면 비대칭",

	// internal/machining issues
	"machining_error_internal": "가공 실수 (내부)", "ordering_error_internal": "주문 실수 (내부)",
	"design_error_internal": "설계 오류 (내부)", "internal_assembly": "조립 불량 (내부)",
	"external_shock_internal": "외부 충격 (내부 과실)", "lost": "분실 (내부)",

	// change/etc
	"frame_exchange": "테 교환", "part_replacement": "부품 교체",
	"change_frame": "테 변경", "change_grade": "등급 변경",
	"change_index": "굴절률 변경", "change_type": "타입 변경",
	"reorder": "재주문", "redesign": "재설계", "redo_correction": "재교정",
	"etc": "기타", "Other": "기타", "other": "기타",
}

type classPair struct {
	First  string `json:"first"`
	Second string `json:"second"`
}

// decodeClassification parses the serialized classification list. The store
// carries it either as real JSON or as a Python repr with single quotes; both
// forms are accepted.
func decodeClassification(raw string) ([]classPair, bool) {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "[") {
		return nil, false
	}

	var pairs []classPair
	if err := json.Unmarshal([]byte(s), &pairs); err == nil {
		return pairs, true
	}

	// repr form: [{'first': 'exchange', 'second': 'change_of_mind'}]
	if err := json.Unmarshal([]byte(strings.ReplaceAll(s, "'", `"`)), &pairs); err == nil {
		return pairs, true
	}

	return nil, false
}

func translateCode(code string) string {
	if label, ok := translationMap[code]; ok {
		return label
	}
	return capitalize(code)
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	r := []rune(s)
	return string(unicode.ToUpper(r[0])) + strings.ToLower(string(r[1:]))
}

// ParseClassification turns a raw classification value into a display label.
// Empty input gives an empty label; anything unparseable is returned as-is
// rather than failing the pass. Only the first element of a multi-valued
// classification is surfaced.
func ParseClassification(raw string) string {
	if raw == "" {
		return ""
	}

	pairs, ok := decodeClassification(raw)
	if !ok || len(pairs) == 0 {
		return raw
	}

	first := translateCode(pairs[0].First)
	second := ""
	if pairs[0].Second != "" {
		second = translateCode(pairs[0].Second)
	}

	if second != "" {
		return first + " > " + second
	}
	return first
}
