// Package search indexes the whole catalog for cross-category lookups.
package search

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/blevesearch/bleve/v2"
	_ "github.com/blevesearch/bleve/v2/analysis/analyzer/simple"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
	"github.com/dgnsrekt/invest_desk/internal/catalog"
)

const defaultLimit = 20

// Source is the catalog read surface the index is built from.
type Source interface {
	ListCategories() []string
	GetInstruments(category string) []catalog.Instrument
}

// Hit is one search result.
type Hit struct {
	Category string  `json:"category"`
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	Tag      string  `json:"tag"`
	Score    float64 `json:"score"`
}

type document struct {
	Category string `json:"category"`
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Tag      string `json:"tag"`
}

// Index is an in-memory bleve index over catalog instruments. Duplicate
// listings of the same symbol within a category are indexed once.
type Index struct {
	index bleve.Index
}

// Build indexes every instrument of src.
func Build(src Source) (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("search: create index: %w", err)
	}

	batch := idx.NewBatch()
	for _, cat := range src.ListCategories() {
		for _, inst := range src.GetInstruments(cat) {
			id := cat + "/" + inst.Symbol
			doc := document{Category: cat, Symbol: inst.Symbol, Name: inst.Name, Tag: inst.SharesOrTag}
			if err := batch.Index(id, doc); err != nil {
				_ = idx.Close()
				return nil, fmt.Errorf("search: add to batch: %w", err)
			}
		}
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return nil, fmt.Errorf("search: execute batch: %w", err)
	}

	count, _ := idx.DocCount()
	slog.Info("search index built", "documents", count)
	return &Index{index: idx}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()
	doc := bleve.NewDocumentMapping()

	text := bleve.NewTextFieldMapping()
	text.Store = true
	text.Index = true
	doc.AddFieldMappingsAt("name", text)
	doc.AddFieldMappingsAt("tag", text)

	keyword := bleve.NewTextFieldMapping()
	keyword.Analyzer = "keyword"
	keyword.Store = true
	keyword.Index = true
	doc.AddFieldMappingsAt("category", keyword)

	symbol := bleve.NewTextFieldMapping()
	symbol.Analyzer = "simple"
	symbol.Store = true
	symbol.Index = true
	doc.AddFieldMappingsAt("symbol", symbol)

	indexMapping.DefaultMapping = doc
	return indexMapping
}

// Search ranks instruments by exact symbol, symbol prefix, name match and
// substring wildcards, in that order of weight.
func (i *Index) Search(q string, limit int) ([]Hit, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return []Hit{}, nil
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	lower := strings.ToLower(q)

	exact := bleve.NewTermQuery(lower)
	exact.SetField("symbol")
	exact.SetBoost(10.0)

	prefix := bleve.NewPrefixQuery(lower)
	prefix.SetField("symbol")
	prefix.SetBoost(5.0)

	name := bleve.NewMatchQuery(q)
	name.SetField("name")
	name.SetBoost(3.0)

	wildSymbol := bleve.NewWildcardQuery("*" + lower + "*")
	wildSymbol.SetField("symbol")
	wildSymbol.SetBoost(2.0)

	wildName := bleve.NewWildcardQuery("*" + lower + "*")
	wildName.SetField("name")
	wildName.SetBoost(1.5)

	tag := bleve.NewMatchQuery(q)
	tag.SetField("tag")
	tag.SetBoost(1.0)

	disjunction := bleve.NewDisjunctionQuery([]query.Query{exact, prefix, name, wildSymbol, wildName, tag}...)

	req := bleve.NewSearchRequest(disjunction)
	req.Fields = []string{"category", "symbol", "name", "tag"}
	req.Size = limit

	res, err := i.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, h := range res.Hits {
		hits = append(hits, Hit{
			Category: fieldString(h.Fields, "category"),
			Symbol:   fieldString(h.Fields, "symbol"),
			Name:     fieldString(h.Fields, "name"),
			Tag:      fieldString(h.Fields, "tag"),
			Score:    h.Score,
		})
	}
	return hits, nil
}

// Close releases the index.
func (i *Index) Close() error {
	return i.index.Close()
}

func fieldString(fields map[string]interface{}, key string) string {
	if v, ok := fields[key].(string); ok {
		return v
	}
	return ""
}
