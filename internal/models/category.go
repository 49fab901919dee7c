package models

import (
	"fmt"
	"strings"
)

// Category is the closed set of topics a post can be filed under.
type Category string

const (
	CategoryWork         Category = "work"
	CategoryRelationship Category = "relationship"
	CategoryLove         Category = "love"
	CategoryFamily       Category = "family"
	CategoryHealth       Category = "health"
	CategoryMoney        Category = "money"
	CategoryFuture       Category = "future"
	CategoryOther        Category = "other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryWork,
	CategoryRelationship,
	CategoryLove,
	CategoryFamily,
	CategoryHealth,
	CategoryMoney,
	CategoryFuture,
	CategoryOther,
}

var categoryLabels = map[Category]string{
	CategoryWork:         "Work & career",
	CategoryRelationship: "Relationships",
	CategoryLove:         "Love",
	CategoryFamily:       "Family",
	CategoryHealth:       "Mind & body",
	CategoryMoney:        "Money",
	CategoryFuture:       "Future & path",
	CategoryOther:        "Other",
}

// Label returns the display label. Unknown categories render as their raw value.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// ParseCategory accepts a category value case-insensitively. The empty string
// parses to the empty category, which callers treat as "no filter".
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}
