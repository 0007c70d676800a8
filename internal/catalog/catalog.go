package catalog

import (
	"fmt"
	"strings"

	"github.com/dgnsrekt/invest_desk/internal/types"
	"github.com/shopspring/decimal"
)

// Catalog maps category names to ordered instrument lists. It is immutable
// after construction and safe for concurrent readers.
type Catalog struct {
	order   []string
	entries map[string][]Instrument
}

// New validates categories and builds a Catalog. Input slices are copied.
func New(categories []Category) (*Catalog, error) {
	c := &Catalog{
		order:   make([]string, 0, len(categories)),
		entries: make(map[string][]Instrument, len(categories)),
	}
	for i, cat := range categories {
		name := strings.TrimSpace(cat.Name)
		if name == "" {
			return nil, types.Validation("categories[%d] missing name", i)
		}
		if _, dup := c.entries[name]; dup {
			return nil, types.Validation("duplicate category %q", name)
		}
		for j, inst := range cat.Instruments {
			if err := validateInstrument(inst); err != nil {
				return nil, fmt.Errorf("category %q instrument[%d]: %w", name, j, err)
			}
		}
		c.order = append(c.order, name)
		c.entries[name] = append([]Instrument(nil), cat.Instruments...)
	}
	return c, nil
}

// ListCategories returns the category names in display order.
func (c *Catalog) ListCategories() []string {
	return append([]string(nil), c.order...)
}

// GetInstruments returns the ordered instruments for category. Unknown
// categories yield an empty, non-nil slice.
func (c *Catalog) GetInstruments(category string) []Instrument {
	list, ok := c.entries[category]
	if !ok {
		return []Instrument{}
	}
	return append([]Instrument(nil), list...)
}

// Has reports whether category is known.
func (c *Catalog) Has(category string) bool {
	_, ok := c.entries[category]
	return ok
}

// Lookup resolves the trade context for a (symbol, name) pair. The preferred
// category is searched first, then every category in display order. Symbols
// compare case-insensitively; an empty name matches any name.
func (c *Catalog) Lookup(preferred, symbol, name string) (Instrument, string, bool) {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		return Instrument{}, "", false
	}
	match := func(inst Instrument) bool {
		return strings.EqualFold(inst.Symbol, symbol) && (name == "" || inst.Name == name)
	}
	if list, ok := c.entries[preferred]; ok {
		for _, inst := range list {
			if match(inst) {
				return inst, preferred, true
			}
		}
	}
	for _, cat := range c.order {
		if cat == preferred {
			continue
		}
		for _, inst := range c.entries[cat] {
			if match(inst) {
				return inst, cat, true
			}
		}
	}
	return Instrument{}, "", false
}

// Len returns the total number of instruments across categories.
func (c *Catalog) Len() int {
	n := 0
	for _, list := range c.entries {
		n += len(list)
	}
	return n
}

func validateInstrument(inst Instrument) error {
	if strings.TrimSpace(inst.Symbol) == "" {
		return types.Validation("symbol is required")
	}
	if strings.TrimSpace(inst.Name) == "" {
		return types.Validation("name is required")
	}
	if inst.Change == "" {
		return nil
	}
	pct, err := ParseChange(inst.Change)
	if err != nil {
		return err
	}
	if pct.IsNegative() && inst.Positive {
		return types.Validation("%s: positive flag set on negative change %q", inst.Symbol, inst.Change)
	}
	if pct.IsPositive() && !inst.Positive {
		return types.Validation("%s: positive flag unset on positive change %q", inst.Symbol, inst.Change)
	}
	return nil
}

// ParseChange parses a signed percentage display string such as "+2.3%".
func ParseChange(s string) (decimal.Decimal, error) {
	v := strings.TrimSpace(s)
	v = strings.TrimSuffix(v, "%")
	v = strings.TrimPrefix(v, "+")
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Decimal{}, types.NewError(types.CodeValidation, fmt.Sprintf("invalid change %q", s), err)
	}
	return d, nil
}

// FormatChange renders pct as a signed percentage with one decimal place.
func FormatChange(pct decimal.Decimal) string {
	pct = pct.Round(1)
	if pct.IsNegative() {
		return "-" + pct.Abs().StringFixed(1) + "%"
	}
	return "+" + pct.StringFixed(1) + "%"
}
