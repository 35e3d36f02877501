package models

import (
	"fmt"
	"strings"
)

// Category is the closed set of semantic app categories.
type Category int

// Categories in classification table order.
const (
	CategoryDevelopment Category = iota
	CategoryTesting
	CategoryOperations
	CategoryTools
	CategoryCommunication
	CategoryBrowser
	CategoryEntertainment
	CategoryOther
)

var categoryNames = [...]string{
	CategoryDevelopment:   "Development",
	CategoryTesting:       "Testing & QA",
	CategoryOperations:    "Operations",
	CategoryTools:         "Tools",
	CategoryCommunication: "Communication",
	CategoryBrowser:       "Browser",
	CategoryEntertainment: "Entertainment",
	CategoryOther:         "Other",
}

var categoryColors = [...]string{
	CategoryDevelopment:   "#3b82f6",
	CategoryTesting:       "#8b5cf6",
	CategoryOperations:    "#f59e0b",
	CategoryTools:         "#10b981",
	CategoryCommunication: "#ec4899",
	CategoryBrowser:       "#06b6d4",
	CategoryEntertainment: "#ef4444",
	CategoryOther:         "#6b7280",
}

// String returns the display name of the category.
func (c Category) String() string {
	if c < 0 || int(c) >= len(categoryNames) {
		return categoryNames[CategoryOther]
	}
	return categoryNames[c]
}

// Color returns the hex color used to chart the category.
func (c Category) Color() string {
	if c < 0 || int(c) >= len(categoryColors) {
		return categoryColors[CategoryOther]
	}
	return categoryColors[c]
}

// IsProductive reports whether the category counts toward a productive day.
func (c Category) IsProductive() bool {
	switch c {
	case CategoryDevelopment, CategoryTesting, CategoryOperations, CategoryTools:
		return true
	default:
		return false
	}
}

// MarshalText encodes the category by display name so map keys and fields
// serialize readably.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category display name.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCategory resolves a display name (case-insensitive) to a Category.
func ParseCategory(name string) (Category, error) {
	for i, n := range categoryNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Category(i), nil
		}
	}
	return CategoryOther, fmt.Errorf("unknown category %q", name)
}

// AllCategories returns every category in classification table order.
func AllCategories() []Category {
	return []Category{
		CategoryDevelopment,
		CategoryTesting,
		CategoryOperations,
		CategoryTools,
		CategoryCommunication,
		CategoryBrowser,
		CategoryEntertainment,
		CategoryOther,
	}
}

// DisplayOrder returns categories in the order charts present them.
func DisplayOrder() []Category {
	return []Category{
		CategoryBrowser,
		CategoryDevelopment,
		CategoryTesting,
		CategoryOperations,
		CategoryCommunication,
		CategoryTools,
		CategoryEntertainment,
		CategoryOther,
	}
}

// ActivityKind splits categories into productive and leisure time.
type ActivityKind string

const (
	// KindProductive is any non-entertainment activity.
	KindProductive ActivityKind = "productive"
	// KindLeisure is entertainment activity.
	KindLeisure ActivityKind = "leisure"
)
