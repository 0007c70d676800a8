// Package stats describes the animated statistics counters. Each counter is
// configured explicitly rather than inferred from surrounding page text.
package stats

import (
	"fmt"
	"math"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

const (
	Duration = 2000 * time.Millisecond
	Tick     = 16 * time.Millisecond
)

// Counter is the typed configuration of one count-up statistic.
type Counter struct {
	ID       string  `json:"id" yaml:"id"`
	Label    string  `json:"label" yaml:"label"`
	Target   float64 `json:"target" yaml:"target"`
	Suffix   string  `json:"suffix" yaml:"suffix"`
	Decimals int     `json:"decimals" yaml:"decimals"`
}

// Defaults are the counters shown in the "who we are" section.
var Defaults = []Counter{
	{ID: "active-users", Label: "Active Users", Target: 10000, Suffix: "+", Decimals: 0},
	{ID: "uptime", Label: "Uptime", Target: 99.9, Suffix: "%", Decimals: 1},
	{ID: "secure", Label: "Secure", Target: 100, Suffix: "%", Decimals: 0},
}

var printer = message.NewPrinter(language.English)

func ticks() int64 {
	return int64(Duration / Tick)
}

// Value returns the counter value after n ticks, clamped at the target.
func (c Counter) Value(n int64) decimal.Decimal {
	target := decimal.NewFromFloat(c.Target)
	if n <= 0 {
		return decimal.Zero
	}
	step := target.Div(decimal.NewFromInt(ticks()))
	v := step.Mul(decimal.NewFromInt(n))
	if v.GreaterThanOrEqual(target) {
		return target
	}
	return v
}

// Format renders a value the way the counter displays it.
func (c Counter) Format(v decimal.Decimal) string {
	if c.Decimals > 0 {
		return v.StringFixed(int32(c.Decimals)) + c.Suffix
	}
	return printer.Sprintf("%d", v.Floor().IntPart()) + c.Suffix
}

// Frame returns the display string elapsed time into the animation.
func (c Counter) Frame(elapsed time.Duration) string {
	return c.Format(c.Value(int64(elapsed / Tick)))
}

// Frames returns every displayed string from the first tick until the
// target is reached.
func (c Counter) Frames() []string {
	var out []string
	target := decimal.NewFromFloat(c.Target)
	for n := int64(1); ; n++ {
		v := c.Value(n)
		out = append(out, c.Format(v))
		if v.GreaterThanOrEqual(target) {
			return out
		}
	}
}

type countersFile struct {
	Counters []Counter `yaml:"counters"`
}

// Load reads counter configuration from a YAML file.
func Load(path string) ([]Counter, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("counters file: %w", err)
	}
	var f countersFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("counters file: %w", err)
	}
	for i, c := range f.Counters {
		if c.ID == "" {
			return nil, fmt.Errorf("counters file: counters[%d] missing id", i)
		}
		if math.IsNaN(c.Target) || math.IsInf(c.Target, 0) {
			return nil, fmt.Errorf("counters file: counters[%d] (%s) has non-finite target", i, c.ID)
		}
		if c.Target < 0 || c.Decimals < 0 {
			return nil, fmt.Errorf("counters file: counters[%d] (%s) has negative target or decimals", i, c.ID)
		}
	}
	return f.Counters, nil
}
