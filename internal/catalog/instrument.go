// Package catalog holds the read-only table of tradable instruments grouped
// by category. Category order and per-category instrument order are display
// order.
package catalog

// Instrument is a tradable asset entry with display and trade metadata.
// Price and Change are pre-formatted display strings.
type Instrument struct {
	Name        string `json:"name" yaml:"name"`
	Symbol      string `json:"symbol" yaml:"symbol"`
	Price       string `json:"price" yaml:"price"`
	Change      string `json:"change" yaml:"change"`
	Positive    bool   `json:"positive" yaml:"positive"`
	SharesOrTag string `json:"shares" yaml:"shares"`
	Icon        string `json:"icon" yaml:"icon"`
}

// Category is a named, ordered group of instruments.
type Category struct {
	Name        string       `json:"name" yaml:"name"`
	Instruments []Instrument `json:"instruments" yaml:"instruments"`
}
