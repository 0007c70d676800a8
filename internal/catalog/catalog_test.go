package catalog

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dgnsrekt/invest_desk/internal/types"
	"github.com/shopspring/decimal"
)

func TestSeedCategoriesInDisplayOrder(t *testing.T) {
	c := Seed()
	got := c.ListCategories()
	want := []string{USStocks, NGStocks, TreasuryBills}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ListCategories() = %v; want %v", got, want)
	}
	if c.Len() != 13 {
		t.Fatalf("Len() = %d; want 13", c.Len())
	}
}

func TestGetInstrumentsPreservesOrder(t *testing.T) {
	c := Seed()
	got := c.GetInstruments(NGStocks)
	symbols := make([]string, 0, len(got))
	for _, inst := range got {
		symbols = append(symbols, inst.Symbol)
	}
	want := []string{"DANGCEM", "MTNN", "GTCO", "NESTLE"}
	if !reflect.DeepEqual(symbols, want) {
		t.Fatalf("GetInstruments(%q) symbols = %v; want %v", NGStocks, symbols, want)
	}

	us := c.GetInstruments(USStocks)
	if len(us) != 6 {
		t.Fatalf("len(GetInstruments(%q)) = %d; want 6", USStocks, len(us))
	}
	for i, inst := range us {
		if inst.Symbol != "AAPL" {
			t.Fatalf("US Stocks[%d].Symbol = %q; want AAPL", i, inst.Symbol)
		}
	}
}

func TestGetInstrumentsUnknownCategoryIsEmpty(t *testing.T) {
	c := Seed()
	got := c.GetInstruments("Crypto")
	if got == nil || len(got) != 0 {
		t.Fatalf("GetInstruments(unknown) = %#v; want empty non-nil slice", got)
	}
	if c.Has("Crypto") {
		t.Fatalf("Has(unknown) = true; want false")
	}
}

func TestGetInstrumentsReturnsCopy(t *testing.T) {
	c := Seed()
	list := c.GetInstruments(TreasuryBills)
	list[0].Name = "mutated"
	if got := c.GetInstruments(TreasuryBills)[0].Name; got != "91-Day T-Bill" {
		t.Fatalf("catalog mutated through returned slice: name = %q", got)
	}
}

func TestLookupPrefersCategoryThenFallsBack(t *testing.T) {
	c := Seed()

	inst, cat, ok := c.Lookup(NGStocks, "gtco", "Guaranty Trust")
	if !ok || cat != NGStocks || inst.Price != "₦28.50" {
		t.Fatalf("Lookup(gtco) = %+v, %q, %v; want GTCO in %q", inst, cat, ok, NGStocks)
	}

	inst, cat, ok = c.Lookup(USStocks, "91D", "91-Day T-Bill")
	if !ok || cat != TreasuryBills || inst.Symbol != "91D" {
		t.Fatalf("Lookup(91D) = %+v, %q, %v; want 91D in %q", inst, cat, ok, TreasuryBills)
	}

	if _, _, ok := c.Lookup(USStocks, "AAPL", "Not Apple"); ok {
		t.Fatalf("Lookup(AAPL, wrong name) ok = true; want false")
	}
	if _, _, ok := c.Lookup("", "  ", ""); ok {
		t.Fatalf("Lookup(blank symbol) ok = true; want false")
	}
}

func TestNewRejectsSignMismatch(t *testing.T) {
	_, err := New([]Category{{
		Name: "Broken",
		Instruments: []Instrument{
			{Name: "MTN Nigeria", Symbol: "MTNN", Change: "-0.5%", Positive: true},
		},
	}})
	if err == nil {
		t.Fatal("New() = nil error; want validation error")
	}
	var coded *types.CodedError
	if !errors.As(err, &coded) || coded.Code != types.CodeValidation {
		t.Fatalf("New() error = %v; want %s", err, types.CodeValidation)
	}
}

func TestNewRejectsDuplicateAndBlankCategories(t *testing.T) {
	if _, err := New([]Category{{Name: "A"}, {Name: "A"}}); err == nil {
		t.Fatal("New(duplicate) = nil error; want error")
	}
	if _, err := New([]Category{{Name: "  "}}); err == nil {
		t.Fatal("New(blank) = nil error; want error")
	}
	if _, err := New([]Category{{Name: "A", Instruments: []Instrument{{Name: "x"}}}}); err == nil {
		t.Fatal("New(missing symbol) = nil error; want error")
	}
}

func TestEmptyCategoryIsAllowed(t *testing.T) {
	c, err := New([]Category{{Name: "Bonds"}})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if !c.Has("Bonds") || len(c.GetInstruments("Bonds")) != 0 {
		t.Fatalf("empty category not preserved")
	}
}

func TestParseAndFormatChange(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"+2.3%", "2.3"},
		{"-0.5%", "-0.5"},
		{"0.1", "0.1"},
	}
	for _, tt := range tests {
		got, err := ParseChange(tt.in)
		if err != nil {
			t.Fatalf("ParseChange(%q) error = %v", tt.in, err)
		}
		if got.String() != tt.want {
			t.Fatalf("ParseChange(%q) = %s; want %s", tt.in, got, tt.want)
		}
	}
	if _, err := ParseChange("up a lot"); err == nil {
		t.Fatal("ParseChange(garbage) = nil error; want error")
	}

	if got := FormatChange(decimal.RequireFromString("1.84")); got != "+1.8%" {
		t.Fatalf("FormatChange(1.84) = %q; want +1.8%%", got)
	}
	if got := FormatChange(decimal.RequireFromString("-0.5")); got != "-0.5%" {
		t.Fatalf("FormatChange(-0.5) = %q; want -0.5%%", got)
	}
}

func TestFormatChangeRoundsBeforeSign(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"-0.04", "+0.0%"},
		{"-0.05", "-0.1%"},
		{"0.04", "+0.0%"},
	}
	for _, tt := range tests {
		if got := FormatChange(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Fatalf("FormatChange(%s) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
