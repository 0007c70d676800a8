package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/dgnsrekt/invest_desk/internal/controller"
	"github.com/google/subcommands"
)

type browseCmd struct {
	filter string
	buy    string
	json   bool
}

func (*browseCmd) Name() string     { return "browse" }
func (*browseCmd) Synopsis() string { return "open the stock browser on a category, filter it and optionally buy" }
func (*browseCmd) Usage() string {
	return `deskctl browse [-filter <query>] [-buy <symbol>] [-json] <category>

  Runs the stock browser in-process: opens the category, applies the filter
  and prints the cards. Hidden cards are marked with '-'. With -buy, the card
  is selected afterwards and the acknowledgment printed.
`
}

func (c *browseCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.filter, "filter", "", "Search text applied after opening.")
	f.StringVar(&c.buy, "buy", "", "Symbol to buy after filtering.")
	f.BoolVar(&c.json, "json", false, "Print the final page state as JSON.")
}

func (c *browseCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "category is required")
		return subcommands.ExitUsageError
	}
	svc, err := newService()
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	defer svc.Close()

	page := svc.CreatePage()
	st, err := svc.OpenCategory(page.ID, strings.Join(f.Args(), " "))
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	if c.filter != "" {
		if st, err = svc.ApplyFilter(page.ID, c.filter); err != nil {
			fail(err)
			return subcommands.ExitFailure
		}
	}
	if !c.json {
		printBrowser(st)
	}

	if c.buy != "" {
		st, err = svc.SelectInstrument(ctx, page.ID, c.buy, nameOf(st, c.buy))
		if err != nil {
			fail(err)
			return subcommands.ExitFailure
		}
		if !c.json {
			fmt.Println(st.LastAck.Message)
		}
	}

	if c.json {
		if err := writeJSON(os.Stdout, st); err != nil {
			fail(err)
			return subcommands.ExitFailure
		}
	}
	return subcommands.ExitSuccess
}

func printBrowser(st controller.PageState) {
	v := st.Browser
	fmt.Printf("%s  [%s]  %d/%d visible\n", v.Title, v.SearchPlaceholder, v.VisibleCount, len(v.Cards))
	if v.NoResults != nil {
		fmt.Println("  " + v.NoResults.Message)
		return
	}
	for _, card := range v.Cards {
		mark := "+"
		if !card.Visible {
			mark = "-"
		}
		fmt.Printf("  %s %-8s %-18s %10s %6s\n", mark, card.Symbol, card.Name, card.Price, card.Change)
	}
}

// nameOf returns the displayed name of the first card with symbol.
func nameOf(st controller.PageState, symbol string) string {
	for _, card := range st.Browser.Cards {
		if strings.EqualFold(card.Symbol, symbol) {
			return card.Name
		}
	}
	return ""
}
