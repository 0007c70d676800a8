package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func registerPageHandlers(api huma.API, svc Service) {
	huma.Register(api, huma.Operation{OperationID: "create-page", Method: http.MethodPost, Path: "/api/v1/pages", Summary: "Create a page session", Tags: []string{"Pages"}, DefaultStatus: http.StatusCreated},
		func(ctx context.Context, input *struct{}) (*pageOutput, error) {
			return &pageOutput{Body: svc.CreatePage()}, nil
		})

	huma.Register(api, huma.Operation{OperationID: "get-page", Method: http.MethodGet, Path: "/api/v1/pages/{page_id}", Summary: "Get page state", Tags: []string{"Pages"}},
		func(ctx context.Context, input *pageIDInput) (*pageOutput, error) {
			st, err := svc.GetPage(input.PageID)
			if err != nil {
				return nil, mapErr(err)
			}
			return &pageOutput{Body: st}, nil
		})

	huma.Register(api, huma.Operation{OperationID: "delete-page", Method: http.MethodDelete, Path: "/api/v1/pages/{page_id}", Summary: "Discard a page session", Tags: []string{"Pages"}, DefaultStatus: http.StatusNoContent},
		func(ctx context.Context, input *pageIDInput) (*struct{}, error) {
			if err := svc.DeletePage(input.PageID); err != nil {
				return nil, mapErr(err)
			}
			return &struct{}{}, nil
		})

	type openInput struct {
		PageID string `path:"page_id"`
		Body   struct {
			Category string `json:"category" doc:"Category to browse. Unknown categories render the empty state."`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "browser-open", Method: http.MethodPost, Path: "/api/v1/pages/{page_id}/browser/open", Summary: "Open the stock browser on a category", Tags: []string{"Browser"}},
		func(ctx context.Context, input *openInput) (*pageOutput, error) {
			st, err := svc.OpenCategory(input.PageID, input.Body.Category)
			if err != nil {
				return nil, mapErr(err)
			}
			return &pageOutput{Body: st}, nil
		})

	type filterInput struct {
		PageID string `path:"page_id"`
		Body   struct {
			Query string `json:"query,omitempty" doc:"Case-insensitive substring matched against name or symbol."`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "browser-filter", Method: http.MethodPut, Path: "/api/v1/pages/{page_id}/browser/filter", Summary: "Filter the rendered cards", Tags: []string{"Browser"}},
		func(ctx context.Context, input *filterInput) (*pageOutput, error) {
			st, err := svc.ApplyFilter(input.PageID, input.Body.Query)
			if err != nil {
				return nil, mapErr(err)
			}
			return &pageOutput{Body: st}, nil
		})

	type selectInput struct {
		PageID string `path:"page_id"`
		Body   struct {
			Symbol string `json:"symbol" minLength:"1"`
			Name   string `json:"name,omitempty"`
		}
	}
	huma.Register(api, huma.Operation{OperationID: "browser-select", Method: http.MethodPost, Path: "/api/v1/pages/{page_id}/browser/select", Summary: "Buy the selected instrument", Tags: []string{"Browser"}},
		func(ctx context.Context, input *selectInput) (*pageOutput, error) {
			st, err := svc.SelectInstrument(ctx, input.PageID, input.Body.Symbol, input.Body.Name)
			if err != nil {
				return nil, mapErr(err)
			}
			return &pageOutput{Body: st}, nil
		})

	huma.Register(api, huma.Operation{OperationID: "browser-close", Method: http.MethodPost, Path: "/api/v1/pages/{page_id}/browser/close", Summary: "Close the stock browser", Tags: []string{"Browser"}},
		func(ctx context.Context, input *pageIDInput) (*pageOutput, error) {
			st, err := svc.CloseBrowser(input.PageID)
			if err != nil {
				return nil, mapErr(err)
			}
			return &pageOutput{Body: st}, nil
		})

	type modalInput struct {
		PageID  string `path:"page_id"`
		ModalID string `path:"modal_id" doc:"stockSelectionModal, depositModal, withdrawalModal or kycModal."`
	}
	huma.Register(api, huma.Operation{OperationID: "modal-open", Method: http.MethodPost, Path: "/api/v1/pages/{page_id}/modals/{modal_id}/open", Summary: "Open a modal", Tags: []string{"Modals"}},
		func(ctx context.Context, input *modalInput) (*pageOutput, error) {
			st, err := svc.OpenModal(input.PageID, input.ModalID)
			if err != nil {
				return nil, mapErr(err)
			}
			return &pageOutput{Body: st}, nil
		})

	huma.Register(api, huma.Operation{OperationID: "modal-close", Method: http.MethodPost, Path: "/api/v1/pages/{page_id}/modals/{modal_id}/close", Summary: "Close a modal", Tags: []string{"Modals"}},
		func(ctx context.Context, input *modalInput) (*pageOutput, error) {
			st, err := svc.CloseModal(input.PageID, input.ModalID)
			if err != nil {
				return nil, mapErr(err)
			}
			return &pageOutput{Body: st}, nil
		})

	huma.Register(api, huma.Operation{OperationID: "key-escape", Method: http.MethodPost, Path: "/api/v1/pages/{page_id}/keys/escape", Summary: "Press Escape: close the topmost modal", Tags: []string{"Modals"}},
		func(ctx context.Context, input *pageIDInput) (*pageOutput, error) {
			st, err := svc.Escape(input.PageID)
			if err != nil {
				return nil, mapErr(err)
			}
			return &pageOutput{Body: st}, nil
		})
}
