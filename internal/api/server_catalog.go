package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/dgnsrekt/invest_desk/internal/catalog"
	"github.com/dgnsrekt/invest_desk/internal/controller"
	"github.com/dgnsrekt/invest_desk/internal/search"
)

func registerCatalogHandlers(api huma.API, svc Service) {
	type healthOutput struct {
		Body struct {
			Status string `json:"status"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "health", Method: http.MethodGet, Path: "/healthz", Summary: "Liveness check", Tags: []string{"Health"}},
		func(ctx context.Context, input *struct{}) (*healthOutput, error) {
			out := &healthOutput{}
			out.Body.Status = "ok"
			return out, nil
		})

	type categoriesOutput struct {
		Body struct {
			Categories []string `json:"categories"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "list-categories", Method: http.MethodGet, Path: "/api/v1/categories", Summary: "List categories in display order", Tags: []string{"Catalog"}},
		func(ctx context.Context, input *struct{}) (*categoriesOutput, error) {
			out := &categoriesOutput{}
			out.Body.Categories = svc.ListCategories()
			return out, nil
		})

	type instrumentsInput struct {
		Category string `path:"category" doc:"Category name, e.g. US Stocks. Unknown categories are empty."`
	}
	type instrumentsOutput struct {
		Body struct {
			Category    string               `json:"category"`
			Instruments []catalog.Instrument `json:"instruments"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "get-instruments", Method: http.MethodGet, Path: "/api/v1/categories/{category}/instruments", Summary: "List instruments of a category", Tags: []string{"Catalog"}},
		func(ctx context.Context, input *instrumentsInput) (*instrumentsOutput, error) {
			out := &instrumentsOutput{}
			out.Body.Category = input.Category
			out.Body.Instruments = svc.GetInstruments(input.Category)
			return out, nil
		})

	type searchInput struct {
		Query string `query:"q" doc:"Symbol, name or tag text."`
		Limit int    `query:"limit" default:"20" minimum:"1" maximum:"100"`
	}
	type searchOutput struct {
		Body struct {
			Query string       `json:"query"`
			Hits  []search.Hit `json:"hits"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "search-instruments", Method: http.MethodGet, Path: "/api/v1/search", Summary: "Search instruments across categories", Tags: []string{"Catalog"}},
		func(ctx context.Context, input *searchInput) (*searchOutput, error) {
			hits, err := svc.Search(input.Query, input.Limit)
			if err != nil {
				return nil, mapErr(err)
			}
			out := &searchOutput{}
			out.Body.Query = input.Query
			out.Body.Hits = hits
			return out, nil
		})

	type countersInput struct {
		ElapsedMS int64 `query:"elapsed_ms" default:"2000" minimum:"0" doc:"Milliseconds into the count-up animation."`
	}
	type countersOutput struct {
		Body struct {
			ElapsedMS int64                     `json:"elapsed_ms"`
			Counters  []controller.CounterFrame `json:"counters"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "get-counters", Method: http.MethodGet, Path: "/api/v1/counters", Summary: "Statistics counters at a point of the count-up", Tags: []string{"Stats"}},
		func(ctx context.Context, input *countersInput) (*countersOutput, error) {
			out := &countersOutput{}
			out.Body.ElapsedMS = input.ElapsedMS
			out.Body.Counters = svc.Counters(time.Duration(input.ElapsedMS) * time.Millisecond)
			return out, nil
		})
}
