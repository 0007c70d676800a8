package api

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/dgnsrekt/invest_desk/internal/controller"
	"github.com/dgnsrekt/invest_desk/internal/stats"
	"github.com/dgnsrekt/invest_desk/internal/types"
	"github.com/go-chi/chi/v5"
)

var pageTmpl = template.Must(template.New("page").Parse(pageHTML))

type pageData struct {
	Page       controller.PageState
	Categories []string
	Counters   []controller.CounterFrame
}

// registerView mounts the server-rendered page. Every mutation is a form
// post followed by a redirect back to the page.
func registerView(router chi.Router, svc Service) {
	router.Get("/pages/new", func(w http.ResponseWriter, r *http.Request) {
		st := svc.CreatePage()
		http.Redirect(w, r, "/pages/"+st.ID, http.StatusSeeOther)
	})

	router.Get("/pages/{page_id}", func(w http.ResponseWriter, r *http.Request) {
		st, err := svc.GetPage(chi.URLParam(r, "page_id"))
		if err != nil {
			viewError(w, err)
			return
		}
		renderPage(w, pageData{
			Page:       st,
			Categories: svc.ListCategories(),
			Counters:   svc.Counters(stats.Duration),
		})
	})

	router.Post("/pages/{page_id}/open", formAction(svc, func(r *http.Request, id string) error {
		_, err := svc.OpenCategory(id, r.PostFormValue("category"))
		return err
	}))
	router.Post("/pages/{page_id}/filter", formAction(svc, func(r *http.Request, id string) error {
		_, err := svc.ApplyFilter(id, r.PostFormValue("q"))
		return err
	}))
	router.Post("/pages/{page_id}/select", formAction(svc, func(r *http.Request, id string) error {
		_, err := svc.SelectInstrument(r.Context(), id, r.PostFormValue("symbol"), r.PostFormValue("name"))
		return err
	}))
	router.Post("/pages/{page_id}/close", formAction(svc, func(r *http.Request, id string) error {
		_, err := svc.CloseBrowser(id)
		return err
	}))
	router.Post("/pages/{page_id}/escape", formAction(svc, func(r *http.Request, id string) error {
		_, err := svc.Escape(id)
		return err
	}))
}

// formAction runs fn and redirects back to the page. Failures are recorded
// on the page and shown after the redirect; an unknown page is a 404.
func formAction(svc Service, fn func(r *http.Request, pageID string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "page_id")
		if _, err := svc.GetPage(id); err != nil {
			viewError(w, err)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}
		if err := fn(r, id); err != nil {
			slog.Info("page action failed", "page_id", id, "path", r.URL.Path, "error", err)
		}
		http.Redirect(w, r, "/pages/"+id, http.StatusSeeOther)
	}
}

func viewError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case types.HasCode(err, types.CodeNotFound):
		status = http.StatusNotFound
	case types.HasCode(err, types.CodeValidation):
		status = http.StatusBadRequest
	}
	http.Error(w, err.Error(), status)
}

func renderPage(w http.ResponseWriter, data pageData) {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		slog.Error("page render failed", "page_id", data.Page.ID, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(buf.Bytes()); err != nil {
		slog.Debug("page response write failed", "error", err)
	}
}
