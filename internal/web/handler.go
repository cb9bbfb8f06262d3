// Package web serves the board as server-rendered HTML. Every request
// builds its own page.Document, runs at most one flow against it, and
// writes the result.
package web

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"postboard/internal/board"
	"postboard/internal/metrics"
	"postboard/internal/page"
	"postboard/pkg/logger"
)

type baseKey struct{}

// WithBase sets the path prefix the rendered forms post back to. The
// Lambda entry uses it to keep the API Gateway stage in form actions.
func WithBase(ctx context.Context, base string) context.Context {
	return context.WithValue(ctx, baseKey{}, base)
}

func baseFrom(ctx context.Context) string {
	if base, ok := ctx.Value(baseKey{}).(string); ok && base != "" {
		return base
	}
	return "/"
}

// Handler is the board's HTTP frontend.
type Handler struct {
	board *board.Board
	mux   *http.ServeMux
}

func NewHandler(service board.PostService) *Handler {
	h := &Handler{
		board: board.New(service),
		mux:   http.NewServeMux(),
	}
	h.mux.HandleFunc("GET /{$}", h.index)
	h.mux.HandleFunc("POST /fetch", h.fetch)
	h.mux.HandleFunc("POST /posts", h.create)
	h.mux.HandleFunc("POST /posts/{id}/delete", h.delete)
	h.mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	h.mux.ServeHTTP(w, r)
	logger.Debug("handled request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	render(w, page.New(baseFrom(r.Context()), "", ""))
}

func (h *Handler) fetch(w http.ResponseWriter, r *http.Request) {
	doc := page.New(baseFrom(r.Context()), "", "")
	doc.Keyword = r.PostFormValue("q")
	// failures are already written to the page
	_ = h.board.Fetch(r.Context(), doc, doc.Keyword)
	render(w, doc)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	doc := page.New(baseFrom(r.Context()), r.PostFormValue("title"), r.PostFormValue("body"))
	_ = h.board.Submit(r.Context(), doc)
	render(w, doc)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		logger.Warn("invalid post id", "id", r.PathValue("id"))
		http.Error(w, "invalid post id", http.StatusBadRequest)
		return
	}
	doc := page.New(baseFrom(r.Context()), "", "")
	_ = h.board.Delete(r.Context(), doc, id)
	render(w, doc)
}

func render(w http.ResponseWriter, doc *page.Document) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := doc.WriteTo(w); err != nil {
		logger.Error("failed to render page", "error", err)
	}
}
