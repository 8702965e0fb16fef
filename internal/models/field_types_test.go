package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateFieldTypes(t *testing.T) {
	assert.NoError(t, ValidateFieldTypes(StringMap{}))
	assert.NoError(t, ValidateFieldTypes(StringMap{
		"name": "text",
		"age":  "number",
		"ok":   "checkbox",
		"day":  "date",
	}))

	err := ValidateFieldTypes(StringMap{"age": "integer"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "field 'age' has unknown type 'integer'")
}

func TestValidateInputs(t *testing.T) {
	tests := []struct {
		name       string
		fieldTypes StringMap
		values     StringMap
		order      []string
		expected   []string
	}{
		{
			name:       "all valid",
			fieldTypes: StringMap{"age": "number", "ok": "checkbox", "day": "date"},
			values:     StringMap{"age": "42.5", "ok": "On", "day": "2024-02-29", "free": "anything"},
			order:      []string{"age", "ok", "day", "free"},
			expected:   nil,
		},
		{
			name:       "number rejects non numeric",
			fieldTypes: StringMap{"age": "number"},
			values:     StringMap{"age": "abc"},
			order:      []string{"age"},
			expected:   []string{"field 'age' must be a number."},
		},
		{
			name:       "checkbox rejects other words",
			fieldTypes: StringMap{"ok": "checkbox"},
			values:     StringMap{"ok": "yes"},
			order:      []string{"ok"},
			expected:   []string{"field 'ok' must be true or false."},
		},
		{
			name:       "date rejects wrong layout",
			fieldTypes: StringMap{"day": "date"},
			values:     StringMap{"day": "29-02-2024"},
			order:      []string{"day"},
			expected:   []string{"field 'day' must be a valid date (YYYY-MM-DD)."},
		},
		{
			name:       "undeclared field defaults to text",
			fieldTypes: StringMap{},
			values:     StringMap{"whatever": "!!!"},
			order:      []string{"whatever"},
			expected:   nil,
		},
		{
			name:       "errors follow template order",
			fieldTypes: StringMap{"a": "number", "b": "number", "c": "number"},
			values:     StringMap{"a": "x", "b": "y", "c": "z"},
			order:      []string{"c", "a", "b"},
			expected: []string{
				"field 'c' must be a number.",
				"field 'a' must be a number.",
				"field 'b' must be a number.",
			},
		},
		{
			name:       "extra fields checked after template order",
			fieldTypes: StringMap{"a": "number", "z1": "number", "z2": "number"},
			values:     StringMap{"a": "x", "z2": "y", "z1": "w"},
			order:      []string{"a"},
			expected: []string{
				"field 'a' must be a number.",
				"field 'z1' must be a number.",
				"field 'z2' must be a number.",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateInputs(tt.fieldTypes, tt.values, tt.order)
			assert.Equal(t, tt.expected, errs)
		})
	}
}

func TestValidateInputsCheckboxValues(t *testing.T) {
	for _, ok := range []string{"true", "false", "1", "0", "on", "off", "TRUE", "Off"} {
		errs := ValidateInputs(StringMap{"c": "checkbox"}, StringMap{"c": ok}, []string{"c"})
		assert.Empty(t, errs, "value %q should be accepted", ok)
	}
}
