package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// FieldType is the closed set of types a template field can declare.
type FieldType string

const (
	FieldTypeText     FieldType = "text"
	FieldTypeNumber   FieldType = "number"
	FieldTypeCheckbox FieldType = "checkbox"
	FieldTypeDate     FieldType = "date"
)

const dateLayout = "2006-01-02"

var checkboxValues = map[string]bool{
	"true": true, "false": true, "1": true, "0": true, "on": true, "off": true,
}

// ValidFieldType reports whether t names a known field type.
func ValidFieldType(t string) bool {
	switch FieldType(t) {
	case FieldTypeText, FieldTypeNumber, FieldTypeCheckbox, FieldTypeDate:
		return true
	}
	return false
}

// ValidateFieldTypes checks a declared field-type mapping at prompt write
// time. Unknown types are rejected explicitly rather than silently dropped.
func ValidateFieldTypes(fieldTypes StringMap) error {
	for name, t := range fieldTypes {
		if !ValidFieldType(t) {
			return fmt.Errorf("field '%s' has unknown type '%s' (expected text, number, checkbox or date)", name, t)
		}
	}
	return nil
}

// ValidateInputs checks submitted raw values against the declared field
// types and returns human-readable error messages, one per offending field.
// Fields without a declared type default to text, which accepts anything.
// Errors follow template placeholder order; extra submitted fields come
// after, in sorted order.
func ValidateInputs(fieldTypes StringMap, values StringMap, order []string) []string {
	var errs []string

	seen := make(map[string]bool, len(values))
	check := func(name string) {
		value, ok := values[name]
		if !ok || seen[name] {
			return
		}
		seen[name] = true
		if msg := validateValue(name, fieldTypes[name], value); msg != "" {
			errs = append(errs, msg)
		}
	}

	for _, name := range order {
		check(name)
	}

	var rest []string
	for name := range values {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		check(name)
	}

	return errs
}

func validateValue(name, declaredType, value string) string {
	switch FieldType(declaredType) {
	case FieldTypeNumber:
		if _, err := strconv.ParseFloat(value, 64); err != nil {
			return fmt.Sprintf("field '%s' must be a number.", name)
		}
	case FieldTypeCheckbox:
		if !checkboxValues[strings.ToLower(value)] {
			return fmt.Sprintf("field '%s' must be true or false.", name)
		}
	case FieldTypeDate:
		if _, err := time.Parse(dateLayout, value); err != nil {
			return fmt.Sprintf("field '%s' must be a valid date (YYYY-MM-DD).", name)
		}
	}
	return ""
}
