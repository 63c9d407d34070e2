// Package textmatch implements the query matching rules for course
// lookups. All matching is case-insensitive; incoming messages are
// expected to be lower-cased by the caller's normalization step.
package textmatch

import (
	"strings"

	"github.com/bakingstudio/course-linebot-go/internal/catalog"
)

// CategoryPrefix is the token that starts a category query.
const CategoryPrefix = "หมวดหมู่"

// Normalize lower-cases a message for routing and matching.
func Normalize(text string) string {
	return strings.ToLower(text)
}

// FuzzyMatch reports whether input and target match after lower-casing
// and stripping all whitespace. Containment runs both ways, so the
// relation is symmetric. An empty string matches anything.
func FuzzyMatch(input, target string) bool {
	i := stripSpace(strings.ToLower(input))
	t := stripSpace(strings.ToLower(target))
	return strings.Contains(t, i) || strings.Contains(i, t)
}

func stripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}

// ParseCategoryQuery extracts the search term from a category query.
// ok reports whether the message is a category query at all; missing
// reports a bare prefix with no term ("หมวดหมู่" alone, or glued to the
// term without a space). The term is lower-cased with runs of
// whitespace collapsed to single spaces.
func ParseCategoryQuery(message string) (term string, ok, missing bool) {
	if !strings.HasPrefix(message, CategoryPrefix) {
		return "", false, false
	}

	fields := strings.Fields(message)
	if len(fields) < 2 || fields[0] != CategoryPrefix {
		return "", true, true
	}
	return strings.ToLower(strings.Join(fields[1:], " ")), true, false
}

// FilterByCategory keeps courses whose category contains the term.
func FilterByCategory(courses []catalog.Course, term string) []catalog.Course {
	matched := []catalog.Course{}
	for _, c := range courses {
		if strings.Contains(strings.ToLower(c.Category), term) {
			matched = append(matched, c)
		}
	}
	return matched
}

// FilterFuzzy keeps courses whose keywords or title fuzzy-match the
// message. A course with an empty keyword field matches every message;
// setting a keyword is what narrows it down.
func FilterFuzzy(message string, courses []catalog.Course) []catalog.Course {
	matched := []catalog.Course{}
	for _, c := range courses {
		if fuzzyMatchesCourse(message, c) {
			matched = append(matched, c)
		}
	}
	return matched
}

func fuzzyMatchesCourse(message string, c catalog.Course) bool {
	for _, k := range c.Keywords() {
		if FuzzyMatch(message, k) {
			return true
		}
	}
	return FuzzyMatch(message, strings.ToLower(c.Title))
}

// FilterSubstring keeps courses whose keyword field or title contains
// the message verbatim. Used in place of FilterFuzzy when fuzzy
// matching is disabled.
func FilterSubstring(message string, courses []catalog.Course) []catalog.Course {
	matched := []catalog.Course{}
	for _, c := range courses {
		if strings.Contains(strings.ToLower(c.Keyword), message) ||
			strings.Contains(strings.ToLower(c.Title), message) {
			matched = append(matched, c)
		}
	}
	return matched
}
