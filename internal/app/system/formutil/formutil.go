// Package formutil reads admin form submissions (multipart or urlencoded)
// with patch semantics: a field that was not sent yields nil, a field sent
// empty yields a pointer to "".
//
// Example usage:
//
//	files, err := uploads.ParseForm(w, r, 3, maxBytes)
//	in := servicestore.UpdateInput{
//		Title:    formutil.String(r, "title"),
//		IsActive: formutil.Bool(r, "isActive"),
//		Order:    formutil.Int(r, "order"),
//	}
//
// uploads.ParseForm (or r.ParseForm) must have been called first.
package formutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/stratacms/internal/app/system/normalize"
)

// Has reports whether key was submitted, even if empty.
func Has(r *http.Request, key string) bool {
	_, ok := r.PostForm[key]
	return ok
}

// Value returns the trimmed value of key, or "" when absent.
func Value(r *http.Request, key string) string {
	return strings.TrimSpace(r.PostForm.Get(key))
}

// String returns the trimmed value of key, or nil when absent.
func String(r *http.Request, key string) *string {
	if !Has(r, key) {
		return nil
	}
	v := Value(r, key)
	return &v
}

// NonEmpty is String for required fields: an absent or blank value yields
// nil, so an update keeps the stored value.
func NonEmpty(r *http.Request, key string) *string {
	if v := Value(r, key); v != "" {
		return &v
	}
	return nil
}

// Raw returns the untrimmed value of key, or nil when absent. Use it for
// rich text where leading whitespace may matter.
func Raw(r *http.Request, key string) *string {
	if !Has(r, key) {
		return nil
	}
	v := r.PostForm.Get(key)
	return &v
}

// Bool parses key as a checkbox or boolean. Unrecognised values count as
// true, matching how the admin UI only ever sends "false" to switch off.
func Bool(r *http.Request, key string) *bool {
	if !Has(r, key) {
		return nil
	}
	v := normalize.Flag(Value(r, key), true)
	return &v
}

// Int parses key as an integer. Absent or malformed values yield nil.
func Int(r *http.Request, key string) *int {
	if !Has(r, key) {
		return nil
	}
	n, err := strconv.Atoi(Value(r, key))
	if err != nil {
		return nil
	}
	return &n
}

// IntOr is Int with a default.
func IntOr(r *http.Request, key string, def int) int {
	if p := Int(r, key); p != nil {
		return *p
	}
	return def
}

// JSON decodes the JSON document held in key into v. It reports whether
// the key was present and non-empty.
func JSON(r *http.Request, key string, v any) (bool, error) {
	raw := Value(r, key)
	if raw == "" {
		return false, nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return true, fmt.Errorf("%s must be valid JSON", key)
	}
	return true, nil
}
