package web

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"inventory-manager/internal/app"
	webui "inventory-manager/web"
)

// Handler holds the ApplicationService, the chi router, and the pending proposal store.
type Handler struct {
	svc        app.ApplicationService
	log        *zap.Logger
	router     chi.Router
	pending    *pendingStore
	fileServer http.Handler
}

// NewHandler creates and wires the chi router with all routes. ctx bounds the
// background purge of expired proposals.
func NewHandler(ctx context.Context, svc app.ApplicationService, log *zap.Logger, allowedOrigins []string) http.Handler {
	if log == nil {
		log = zap.NewNop()
	}

	h := &Handler{
		svc:        svc,
		log:        log,
		pending:    newPendingStore(),
		fileServer: http.FileServer(http.FS(webui.StaticFS())),
	}
	h.pending.startPurge(ctx)

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(log))
	r.Use(Recoverer(log))
	r.Use(CORS(allowedOrigins))

	r.Get("/api/health", h.health)

	// Static page
	r.Get("/", h.fileServer.ServeHTTP)
	r.Get("/static/*", func(w http.ResponseWriter, req *http.Request) {
		http.StripPrefix("/static", h.fileServer).ServeHTTP(w, req)
	})

	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		r.Get("/api/status", h.status)

		r.Get("/api/items", h.listItems)
		r.Post("/api/items", h.addItem)
		r.Get("/api/items/{name}", h.getItem)
		r.Put("/api/items/{name}", h.updateItem)
		r.Delete("/api/items/{name}", h.removeItem)

		r.Get("/api/reports/value", h.valueReport)
		r.Get("/api/reports/low-stock", h.lowStockReport)

		r.Post("/api/inventory/save", h.save)
		r.Post("/api/inventory/load", h.load)

		r.Post("/api/ask", h.ask)
		r.Post("/api/ask/confirm", h.askConfirm)
	})

	h.router = r
	return r
}

// health returns service status and the number of items held.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
		Items  int    `json:"items"`
	}
	st, err := h.svc.Status(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, response{Status: "ok", Items: st.ItemCount})
}

// itemName extracts the {name} URL parameter.
func itemName(r *http.Request) string {
	raw := chi.URLParam(r, "name")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	return decode(w, r, v, false)
}

// decodeOptionalJSON is decodeJSON for endpoints whose body may be empty.
func decodeOptionalJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	return decode(w, r, v, true)
}

func decode(w http.ResponseWriter, r *http.Request, v any, optional bool) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || (optional && errors.Is(err, io.EOF)) {
		return true
	}
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
		return false
	}
	writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
	return false
}
