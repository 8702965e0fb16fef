package services

import (
	"regexp"
	"strings"
)

var fieldPattern = regexp.MustCompile(`\{\{(.*?)\}\}`)

// ExtractFields returns the placeholder names of a template in the order
// they first appear. Duplicates are collapsed.
func ExtractFields(template string) []string {
	matches := fieldPattern.FindAllStringSubmatch(template, -1)
	fields := make([]string, 0, len(matches))
	seen := make(map[string]bool, len(matches))
	for _, m := range matches {
		if !seen[m[1]] {
			seen[m[1]] = true
			fields = append(fields, m[1])
		}
	}
	return fields
}

// FillTemplate substitutes every literal {{name}} occurrence with its value.
// Values are inserted verbatim, unescaped. Fields missing from the value
// mapping are left as-is.
func FillTemplate(template string, values map[string]string) string {
	filled := template
	for name, value := range values {
		filled = strings.ReplaceAll(filled, "{{"+name+"}}", value)
	}
	return filled
}
