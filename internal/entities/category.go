package entities

import (
	"sort"
	"strings"

	"github.com/KirkDiggler/rpg-battle/internal/errors"
)

// Category groups units for registry bookkeeping (fire, water, ...)
type Category string

// String implements fmt.Stringer
func (c Category) String() string {
	return string(c)
}

// Universe is the fixed set of every known category. It is built once at
// start-up and shared read-only.
type Universe struct {
	categories []Category
	index      map[Category]struct{}
}

// NewUniverse builds a universe from categories. Names are lower-cased and
// must be non-empty and unique.
func NewUniverse(categories ...Category) (*Universe, error) {
	if len(categories) == 0 {
		return nil, errors.InvalidArgument("universe requires at least one category")
	}

	u := &Universe{
		categories: make([]Category, 0, len(categories)),
		index:      make(map[Category]struct{}, len(categories)),
	}
	for _, c := range categories {
		c = NormalizeCategory(c)
		if c == "" {
			return nil, errors.InvalidArgument("category name cannot be empty")
		}
		if _, dup := u.index[c]; dup {
			return nil, errors.InvalidArgumentf("duplicate category %q", c)
		}
		u.index[c] = struct{}{}
		u.categories = append(u.categories, c)
	}
	sort.Slice(u.categories, func(i, j int) bool { return u.categories[i] < u.categories[j] })

	return u, nil
}

// NormalizeCategory trims and lower-cases a category name
func NormalizeCategory(c Category) Category {
	return Category(strings.ToLower(strings.TrimSpace(string(c))))
}

// Size returns the number of categories
func (u *Universe) Size() int {
	return len(u.categories)
}

// Contains reports whether c belongs to the universe
func (u *Universe) Contains(c Category) bool {
	_, ok := u.index[NormalizeCategory(c)]
	return ok
}

// Categories returns the categories in name order
func (u *Universe) Categories() []Category {
	out := make([]Category, len(u.categories))
	copy(out, u.categories)
	return out
}
