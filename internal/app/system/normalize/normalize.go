// Package normalize canonicalises the strings the CMS compares or stores:
// admin emails, names, category types and category filters.
package normalize

import "strings"

// AllCategories is the pseudo-category the public site sends for "no filter".
const AllCategories = "All"

// Email trims and lowercases an address before storage or lookup.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims s and collapses inner runs of whitespace to one space, so
// "Income  Tax" and "Income Tax" name the same category or admin.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CategoryType lowercases a category type ("faq", "blog").
func CategoryType(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CategoryFilter reads a ?category= value. Blank and "All" (any case)
// both mean no filter and return "".
func CategoryFilter(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, AllCategories) {
		return ""
	}
	return s
}

// Flag parses a form checkbox or boolean string. Empty or unrecognised
// values yield def.
func Flag(s string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "on", "yes":
		return true
	case "false", "0", "off", "no":
		return false
	default:
		return def
	}
}
