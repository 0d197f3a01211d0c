package worklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClassification_TwoLevel(t *testing.T) {
	got := ParseClassification("[{'first':'exchange','second':'change_of_mind'}]")
	assert.Equal(t, "교환 🔄 > 단순변심", got)
}

func TestParseClassification_JSONForm(t *testing.T) {
	// the sync layer re-serializes the list as real JSON
	got := ParseClassification(`[{"first":"repair","second":"scratch"}]`)
	assert.Equal(t, "수리 🔧 > 스크래치", got)
}

func TestParseClassification_FirstLevelOnly(t *testing.T) {
	got := ParseClassification("[{'first':'fitting'}]")
	assert.Equal(t, "피팅 👓", got)
}

func TestParseClassification_UnknownCodeCapitalized(t *testing.T) {
	got := ParseClassification("[{'first':'weird_code','second':'lens_dissatisfied'}]")
	assert.Equal(t, "Weird_code > 렌즈 불편", got)
}

func TestParseClassification_Empty(t *testing.T) {
	assert.Equal(t, "", ParseClassification(""))
}

func TestParseClassification_MalformedReturnsRaw(t *testing.T) {
	// anything unparseable passes through unchanged, never an error
	assert.Equal(t, "not a list", ParseClassification("not a list"))
	assert.Equal(t, "[broken", ParseClassification("[broken"))
	assert.Equal(t, "[]", ParseClassification("[]"))
}

func TestParseClassification_OnlyFirstElementSurfaced(t *testing.T) {
	got := ParseClassification("[{'first':'exchange','second':'breakage'},{'first':'repair'}]")
	assert.Equal(t, "교환 🔄 > 파손", got)
}
