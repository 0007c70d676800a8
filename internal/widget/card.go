package widget

import "github.com/dgnsrekt/invest_desk/internal/catalog"

const (
	ChangePositive = "positive"
	ChangeNegative = "negative"

	noResultsIcon    = "fa-chart-line"
	noResultsMessage = "No stocks available"
)

var chartBars = []int{40, 60, 80, 50, 90, 70, 85}

// CardViewModel is the template-independent form of one instrument card.
// DataSymbol and DataName are the machine-readable hooks exposed to
// automation; they never change with display formatting.
type CardViewModel struct {
	Name        string `json:"name"`
	Symbol      string `json:"symbol"`
	Price       string `json:"price"`
	Change      string `json:"change"`
	ChangeClass string `json:"change_class"`
	Shares      string `json:"shares"`
	Icon        string `json:"icon"`
	ChartBars   []int  `json:"chart_bars"`
	DataSymbol  string `json:"data_symbol"`
	DataName    string `json:"data_name"`
}

// Card is a rendered card plus its current filter visibility.
type Card struct {
	CardViewModel
	Visible bool `json:"visible"`
}

// Placeholder is the single empty-state card shown for an empty category.
type Placeholder struct {
	Icon    string `json:"icon"`
	Message string `json:"message"`
}

// RenderCard maps an instrument to its card view model.
func RenderCard(inst catalog.Instrument) CardViewModel {
	class := ChangeNegative
	if inst.Positive {
		class = ChangePositive
	}
	return CardViewModel{
		Name:        inst.Name,
		Symbol:      inst.Symbol,
		Price:       inst.Price,
		Change:      inst.Change,
		ChangeClass: class,
		Shares:      inst.SharesOrTag,
		Icon:        inst.Icon,
		ChartBars:   append([]int(nil), chartBars...),
		DataSymbol:  inst.Symbol,
		DataName:    inst.Name,
	}
}

// RenderCards maps instruments to cards preserving order.
func RenderCards(list []catalog.Instrument) []CardViewModel {
	out := make([]CardViewModel, 0, len(list))
	for _, inst := range list {
		out = append(out, RenderCard(inst))
	}
	return out
}
