package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dgnsrekt/invest_desk/internal/journal"
	"github.com/google/subcommands"
)

type categoriesCmd struct{}

func (*categoriesCmd) Name() string             { return "categories" }
func (*categoriesCmd) Synopsis() string         { return "list instrument categories in display order" }
func (*categoriesCmd) Usage() string            { return "deskctl categories\n" }
func (*categoriesCmd) SetFlags(_ *flag.FlagSet) {}

func (*categoriesCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := newService()
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	defer svc.Close()

	for _, c := range svc.ListCategories() {
		fmt.Printf("%s\t%d\n", c, len(svc.GetInstruments(c)))
	}
	return subcommands.ExitSuccess
}

type instrumentsCmd struct {
	json bool
}

func (*instrumentsCmd) Name() string     { return "instruments" }
func (*instrumentsCmd) Synopsis() string { return "list the instruments of a category" }
func (*instrumentsCmd) Usage() string {
	return `deskctl instruments [-json] <category>

  Prints the instruments of a category in catalog order. Unknown categories
  print nothing.
`
}

func (c *instrumentsCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "Print JSON instead of a table.")
}

func (c *instrumentsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	list := svc.GetInstruments(strings.Join(f.Args(), " "))
	if c.json {
		if err := writeJSON(os.Stdout, list); err != nil {
			fail(err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SYMBOL\tNAME\tPRICE\tCHANGE\tSHARES")
	for _, inst := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", inst.Symbol, inst.Name, inst.Price, inst.Change, inst.SharesOrTag)
	}
	if err := tw.Flush(); err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type searchCmd struct {
	limit int
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search instruments across every category" }
func (*searchCmd) Usage() string    { return "deskctl search [-n <limit>] <query>\n" }

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 10, "Maximum number of hits.")
}

func (c *searchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "query is required")
		return subcommands.ExitUsageError
	}
	svc, err := newService()
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	defer svc.Close()

	hits, err := svc.Search(strings.Join(f.Args(), " "), c.limit)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SCORE\tCATEGORY\tSYMBOL\tNAME")
	for _, h := range hits {
		fmt.Fprintf(tw, "%.3f\t%s\t%s\t%s\n", h.Score, h.Category, h.Symbol, h.Name)
	}
	if err := tw.Flush(); err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type countersCmd struct {
	elapsed time.Duration
	frames  bool
}

func (*countersCmd) Name() string     { return "counters" }
func (*countersCmd) Synopsis() string { return "show the statistics counters" }
func (*countersCmd) Usage() string {
	return `deskctl counters [-at <duration>] [-frames]

  Shows each counter as displayed at a point of its count-up animation, or
  every frame of the animation with -frames.
`
}

func (c *countersCmd) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&c.elapsed, "at", 2*time.Second, "Elapsed time into the animation.")
	f.BoolVar(&c.frames, "frames", false, "Print every animation frame.")
}

func (c *countersCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	svc, err := newService()
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	defer svc.Close()

	for _, fr := range svc.Counters(c.elapsed) {
		if c.frames {
			fmt.Printf("%s\t%s\n", fr.ID, strings.Join(fr.Frames(), " "))
			continue
		}
		fmt.Printf("%s\t%s\t%s\n", fr.ID, fr.Label, fr.Display)
	}
	return subcommands.ExitSuccess
}

type journalCmd struct {
	dir  string
	date string
}

func (*journalCmd) Name() string     { return "journal" }
func (*journalCmd) Synopsis() string { return "print the buy intents journaled on a day" }
func (*journalCmd) Usage() string    { return "deskctl journal [-dir <dir>] [-d YYYY-MM-DD]\n" }

func (c *journalCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.dir, "dir", "", "Journal directory (defaults to DESK_JOURNAL_DIR).")
	f.StringVar(&c.date, "d", "", "UTC day to print (defaults to today).")
}

func (c *journalCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	dir := c.dir
	if dir == "" {
		dir = os.Getenv("DESK_JOURNAL_DIR")
	}
	if dir == "" {
		fmt.Fprintln(os.Stderr, "journal directory is required (-dir or DESK_JOURNAL_DIR)")
		return subcommands.ExitUsageError
	}
	day := time.Now().UTC()
	if c.date != "" {
		var err error
		if day, err = time.Parse("2006-01-02", c.date); err != nil {
			fail(err)
			return subcommands.ExitUsageError
		}
	}
	entries, err := journal.ReadDay(dir, day)
	if err != nil {
		fail(err)
		return subcommands.ExitFailure
	}
	for _, e := range entries {
		fmt.Println(strings.Join([]string{e.At.Format(time.RFC3339), e.PageID, e.Category, e.Symbol, strconv.Quote(e.Message)}, "\t"))
	}
	return subcommands.ExitSuccess
}
