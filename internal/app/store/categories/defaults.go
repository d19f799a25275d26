// internal/app/store/categories/defaults.go
package categorystore

import "github.com/dalemusser/stratacms/internal/domain/models"

// Default is a category seeded into an empty type.
type Default struct {
	Name  string
	Icon  string
	Order int
}

var faqDefaults = []Default{
	{Name: "General", Icon: "HelpCircle", Order: 1},
	{Name: "Income Tax", Icon: "FileText", Order: 2},
	{Name: "GST", Icon: "Receipt", Order: 3},
	{Name: "Company & Startup", Icon: "Building", Order: 4},
	{Name: "Audit & Accounting", Icon: "Users", Order: 5},
}

var blogDefaults = []Default{
	{Name: "All", Icon: "BookOpen", Order: 0},
	{Name: "Income Tax", Icon: "FileText", Order: 1},
	{Name: "GST", Icon: "TrendingUp", Order: 2},
	{Name: "Company Law", Icon: "FileText", Order: 3},
	{Name: "Startups", Icon: "TrendingUp", Order: 4},
}

// Defaults returns the starter categories for t.
func Defaults(t string) []Default {
	switch t {
	case models.CategoryTypeFAQ:
		return faqDefaults
	case models.CategoryTypeBlog:
		return blogDefaults
	}
	return nil
}
