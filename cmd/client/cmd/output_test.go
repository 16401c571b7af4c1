// cmd/client/cmd/output_test.go
package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockroom/internal/domain/resource"
)

func TestParseFieldValue(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want any
	}{
		{name: "integer reads as number", raw: "5", want: float64(5)},
		{name: "decimal reads as number", raw: "2.5", want: 2.5},
		{name: "boolean", raw: "true", want: true},
		{name: "null", raw: "null", want: nil},
		{name: "bare word stays a string", raw: "Widget", want: "Widget"},
		{name: "quoted number stays a string", raw: `"5"`, want: "5"},
		{name: "spaces stay a string", raw: "wide gadget", want: "wide gadget"},
		{name: "array", raw: `["a","b"]`, want: []any{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseFieldValue(tt.raw))
		})
	}
}

func TestParseFields(t *testing.T) {
	fields, err := parseFields(`{"name": "Widget", "stock": 5}`, []string{"stock=3", "color=red"})
	require.NoError(t, err)

	// --field wins over --data on overlap.
	assert.Equal(t, resource.Fields{
		"name":  "Widget",
		"stock": float64(3),
		"color": "red",
	}, fields)
}

func TestParseFields_EqualsInValue(t *testing.T) {
	fields, err := parseFields("", []string{"formula=a=b"})
	require.NoError(t, err)
	assert.Equal(t, "a=b", fields["formula"])
}

func TestParseFields_Invalid(t *testing.T) {
	_, err := parseFields("", []string{"no-separator"})
	require.Error(t, err)

	_, err = parseFields("", []string{"=value"})
	require.Error(t, err)

	_, err = parseFields(`{broken`, nil)
	require.Error(t, err)
}

func TestParseFields_Empty(t *testing.T) {
	fields, err := parseFields("", nil)
	require.NoError(t, err)
	assert.Empty(t, fields)
	assert.NotNil(t, fields)
}

func TestParseRecordID(t *testing.T) {
	id, err := parseRecordID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = parseRecordID("forty-two")
	require.Error(t, err)
}

func TestFieldColumns(t *testing.T) {
	records := []resource.Record{
		{ID: 1, Fields: resource.Fields{"name": "Widget", "stock": 5}},
		{ID: 2, Fields: resource.Fields{"name": "Gadget", "color": "red"}},
	}

	assert.Equal(t, []string{"color", "name", "stock"}, fieldColumns(records))
}

func TestFormatFieldValue(t *testing.T) {
	assert.Equal(t, "", formatFieldValue(nil))
	assert.Equal(t, "Widget", formatFieldValue("Widget"))
	assert.Equal(t, "5", formatFieldValue(float64(5)))
	assert.Equal(t, "2.5", formatFieldValue(2.5))
	assert.Equal(t, "true", formatFieldValue(true))
	assert.Equal(t, `{"a":1}`, formatFieldValue(map[string]any{"a": float64(1)}))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exactly-10", truncate("exactly-10", 10))
	assert.Equal(t, "this is...", truncate("this is far too long", 10))
}
