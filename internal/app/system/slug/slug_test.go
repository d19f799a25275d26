package slug

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var slugShape = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func TestMake(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"GST Filing Services", "gst-filing-services"},
		{"Audit Services", "audit-services"},
		{"  Audit   and  Assurance  ", "audit-and-assurance"},
		{"Company & Startup", "company-and-startup"},
		{"Income-Tax -- Returns!", "income-tax-returns"},
		{"Café Résumé", "cafe-resume"},
		{"Client's Guide", "clients-guide"},
		{"NRI Taxation (2024)", "nri-taxation-2024"},
		{"100% Compliance", "100-percent-compliance"},
		{"Łódź Straße", "lodz-strasse"},
		{"Łódź ßtraße", "lodz-sstrasse"},
		{"Øresund Æther Œuvre", "oresund-aether-oeuvre"},
		{"Þórður Đorđević", "thordur-dordevic"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Make(tt.title))
		})
	}
}

func TestMakeShapeAndDeterminism(t *testing.T) {
	titles := []string{
		"Goods and Service Tax",
		"Setup Business in India",
		"Über-Fast   Refunds",
		"Tax/Audit: FAQ?",
		"-leading and trailing-",
		"Naïve façade",
		"日本 Tax",
		"Göteborg Œ ß Ħ",
	}
	for _, title := range titles {
		got := Make(title)
		assert.Equal(t, got, Make(title), "Make(%q) not deterministic", title)
		assert.Regexp(t, slugShape, got, "Make(%q) = %q", title, got)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, Valid("gst-returns"))
	assert.False(t, Valid("GST Returns"))
	assert.False(t, Valid("gst--returns"))
	assert.False(t, Valid(""))
}
