package automation

import (
	"reflect"
	"testing"

	"github.com/chromedp/cdproto/cdp"
)

func node(attrs ...string) *cdp.Node {
	return &cdp.Node{NodeName: "DIV", Attributes: attrs}
}

func TestCardsFromNodes(t *testing.T) {
	nodes := []*cdp.Node{
		node("class", "stock-card", "data-symbol", "91D", "data-name", "91-Day T-Bill"),
		node("class", "stock-card", "style", "display: none", "data-symbol", "182D", "data-name", "182-Day T-Bill"),
		node("class", "stock-card", "style", "display:none;", "data-symbol", "364D", "data-name", "364-Day T-Bill"),
	}
	got := cardsFromNodes(nodes)
	want := []Card{
		{Symbol: "91D", Name: "91-Day T-Bill", Visible: true},
		{Symbol: "182D", Name: "182-Day T-Bill", Visible: false},
		{Symbol: "364D", Name: "364-Day T-Bill", Visible: false},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("cardsFromNodes() = %+v; want %+v", got, want)
	}
	if vs := VisibleSymbols(got); !reflect.DeepEqual(vs, []string{"91D"}) {
		t.Fatalf("VisibleSymbols() = %v", vs)
	}
}

func TestCardsFromNoNodes(t *testing.T) {
	if got := cardsFromNodes(nil); got == nil || len(got) != 0 {
		t.Fatalf("cardsFromNodes(nil) = %v; want empty slice", got)
	}
}
