package catalog

import (
	"fmt"
	"os"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// fileEntry is the YAML form of an instrument. Price may be given
// pre-formatted or as amount+currency; change may be given as a display
// string or as change_pct.
type fileEntry struct {
	Name      string `yaml:"name"`
	Symbol    string `yaml:"symbol"`
	Price     string `yaml:"price"`
	Amount    string `yaml:"amount"`
	Currency  string `yaml:"currency"`
	Change    string `yaml:"change"`
	ChangePct string `yaml:"change_pct"`
	Positive  *bool  `yaml:"positive"`
	Shares    string `yaml:"shares"`
	Icon      string `yaml:"icon"`
}

type fileCategory struct {
	Name        string      `yaml:"name"`
	Instruments []fileEntry `yaml:"instruments"`
}

type catalogFile struct {
	Categories []fileCategory `yaml:"categories"`
}

// Load reads a YAML catalog file that replaces the compiled-in seed.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML catalog data.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("catalog file: %w", err)
	}
	if len(f.Categories) == 0 {
		return nil, fmt.Errorf("catalog file: at least one category is required")
	}
	categories := make([]Category, 0, len(f.Categories))
	for i, fc := range f.Categories {
		cat := Category{Name: fc.Name, Instruments: make([]Instrument, 0, len(fc.Instruments))}
		for j, e := range fc.Instruments {
			inst, err := e.instrument()
			if err != nil {
				return nil, fmt.Errorf("catalog file: categories[%d].instruments[%d]: %w", i, j, err)
			}
			cat.Instruments = append(cat.Instruments, inst)
		}
		categories = append(categories, cat)
	}
	c, err := New(categories)
	if err != nil {
		return nil, fmt.Errorf("catalog file: %w", err)
	}
	return c, nil
}

func (e fileEntry) instrument() (Instrument, error) {
	inst := Instrument{
		Name:        e.Name,
		Symbol:      e.Symbol,
		Price:       e.Price,
		Change:      e.Change,
		SharesOrTag: e.Shares,
		Icon:        e.Icon,
	}
	if inst.Price == "" && e.Amount != "" {
		p, err := FormatPrice(e.Amount, e.Currency)
		if err != nil {
			return Instrument{}, err
		}
		inst.Price = p
	}
	if inst.Change == "" && e.ChangePct != "" {
		pct, err := decimal.NewFromString(e.ChangePct)
		if err != nil {
			return Instrument{}, fmt.Errorf("invalid change_pct %q: %w", e.ChangePct, err)
		}
		inst.Change = FormatChange(pct)
	}
	switch {
	case e.Positive != nil:
		inst.Positive = *e.Positive
	case inst.Change != "":
		pct, err := ParseChange(inst.Change)
		if err != nil {
			return Instrument{}, err
		}
		inst.Positive = !pct.IsNegative()
	}
	return inst, nil
}

// FormatPrice renders a decimal amount as a currency-prefixed display price.
func FormatPrice(amount, currency string) (string, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "", fmt.Errorf("invalid amount %q: %w", amount, err)
	}
	cur := money.GetCurrency(currency)
	if cur == nil {
		return "", fmt.Errorf("unknown currency %q", currency)
	}
	factor := decimal.New(1, int32(cur.Fraction))
	return money.New(d.Mul(factor).Round(0).IntPart(), cur.Code).Display(), nil
}
