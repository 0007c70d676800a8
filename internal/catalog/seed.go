package catalog

const (
	USStocks      = "US Stocks"
	NGStocks      = "NG Stocks"
	TreasuryBills = "Treasury Bills"
)

var appleInc = Instrument{Name: "Apple Inc", Symbol: "AAPL", Price: "$185.40", Change: "+2.3%", Positive: true, SharesOrTag: "2.9T", Icon: "🍎"}

// seedCategories is the compiled-in catalog. The US list repeats the same
// listing six times; the grid layout is sized for it.
var seedCategories = []Category{
	{
		Name:        USStocks,
		Instruments: []Instrument{appleInc, appleInc, appleInc, appleInc, appleInc, appleInc},
	},
	{
		Name: NGStocks,
		Instruments: []Instrument{
			{Name: "Dangote Cement", Symbol: "DANGCEM", Price: "₦3,850", Change: "+1.8%", Positive: true, SharesOrTag: "₦6.5T", Icon: "🏭"},
			{Name: "MTN Nigeria", Symbol: "MTNN", Price: "₦245", Change: "-0.5%", Positive: false, SharesOrTag: "₦5.0T", Icon: "📱"},
			{Name: "Guaranty Trust", Symbol: "GTCO", Price: "₦28.50", Change: "+3.2%", Positive: true, SharesOrTag: "₦800B", Icon: "🏦"},
			{Name: "Nestle Nigeria", Symbol: "NESTLE", Price: "₦1,450", Change: "+2.1%", Positive: true, SharesOrTag: "₦1.2T", Icon: "🍫"},
		},
	},
	{
		Name: TreasuryBills,
		Instruments: []Instrument{
			{Name: "91-Day T-Bill", Symbol: "91D", Price: "₦98.50", Change: "+0.1%", Positive: true, SharesOrTag: "Gov Backed", Icon: "📊"},
			{Name: "182-Day T-Bill", Symbol: "182D", Price: "₦97.20", Change: "+0.2%", Positive: true, SharesOrTag: "Gov Backed", Icon: "📈"},
			{Name: "364-Day T-Bill", Symbol: "364D", Price: "₦94.80", Change: "+0.3%", Positive: true, SharesOrTag: "Gov Backed", Icon: "📉"},
		},
	},
}

// Seed returns the compiled-in catalog.
func Seed() *Catalog {
	c, err := New(seedCategories)
	if err != nil {
		// The seed table is static; a failure here is a programming error.
		panic("catalog: invalid seed: " + err.Error())
	}
	return c
}
