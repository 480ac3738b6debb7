package web

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"inventory-manager/internal/app"
	"inventory-manager/internal/core"
)

// Money values are sent as decimal strings rounded to cents, e.g. "12.50".
func money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

type itemJSON struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Value    decimal.Decimal `json:"value"`
}

func toItemJSON(it core.Item) itemJSON {
	return itemJSON{Name: it.Name, Quantity: it.Quantity, Price: money(it.Price), Value: money(it.LineValue())}
}

func rowsJSON(rows []core.Row) []itemJSON {
	out := make([]itemJSON, 0, len(rows))
	for _, r := range rows {
		out = append(out, itemJSON{Name: r.Name, Quantity: r.Quantity, Price: money(r.Price), Value: money(r.LineValue)})
	}
	return out
}

type itemListResponse struct {
	Items  []itemJSON      `json:"items"`
	Total  decimal.Decimal `json:"total"`
	Search string          `json:"search,omitempty"`
}

func toItemList(res *app.ItemListResult) itemListResponse {
	return itemListResponse{Items: rowsJSON(res.Rows), Total: money(res.Total), Search: res.Search}
}

type valueReportResponse struct {
	Items      []itemJSON      `json:"items"`
	GrandTotal decimal.Decimal `json:"grand_total"`
}

func toValueReport(res *app.ValueReportResult) valueReportResponse {
	return valueReportResponse{Items: rowsJSON(res.Rows), GrandTotal: money(res.GrandTotal)}
}

type lowStockJSON struct {
	Name             string `json:"name"`
	Quantity         int    `json:"quantity"`
	ReorderSuggested bool   `json:"reorder_suggested"`
}

type lowStockResponse struct {
	Items     []lowStockJSON `json:"items"`
	Threshold int            `json:"threshold"`
	Count     int            `json:"count"`
	Warning   string         `json:"warning,omitempty"`
}

func toLowStock(res *app.LowStockResult) lowStockResponse {
	items := make([]lowStockJSON, 0, len(res.Rows))
	for _, r := range res.Rows {
		items = append(items, lowStockJSON{Name: r.Name, Quantity: r.Quantity, ReorderSuggested: r.ReorderSuggested})
	}
	return lowStockResponse{Items: items, Threshold: res.Threshold, Count: len(items)}
}

type addItemResponse struct {
	Item    itemJSON `json:"item"`
	Outcome string   `json:"outcome"`
}

// ── Items ─────────────────────────────────────────────────────────────────────

// listItems handles GET /api/items?search=&sort=&desc=.
func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	key, ok := core.ParseSortKey(q.Get("sort"))
	if !ok {
		writeError(w, r, fmt.Sprintf("unknown sort column %q", q.Get("sort")), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	desc, _ := strconv.ParseBool(q.Get("desc"))

	res, err := h.svc.ListItems(r.Context(), app.ListItemsRequest{Search: q.Get("search"), Sort: key, Descending: desc})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, toItemList(res))
}

// getItem handles GET /api/items/{name}.
func (h *Handler) getItem(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.GetItem(r.Context(), itemName(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, toItemJSON(res.Item))
}

type addItemRequest struct {
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	// Merge adds the quantity to an existing item of the same name and replaces its price.
	Merge bool `json:"merge"`
}

// addItem handles POST /api/items. An existing name without merge is a 409.
func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	in := app.AddItemRequest{Name: req.Name, Quantity: req.Quantity, Price: req.Price.InexactFloat64()}
	if req.Merge {
		in.Confirm = core.AlwaysMerge
	}
	res, err := h.svc.AddItem(r.Context(), in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	switch res.Outcome {
	case core.OutcomeUnchanged:
		writeError(w, r, fmt.Sprintf("item %q already exists; set merge to add to it", res.Item.Name), "MERGE_REQUIRED", http.StatusConflict)
	case core.OutcomeAdded:
		writeJSONStatus(w, http.StatusCreated, addItemResponse{Item: toItemJSON(res.Item), Outcome: res.Outcome.String()})
	default:
		writeJSON(w, addItemResponse{Item: toItemJSON(res.Item), Outcome: res.Outcome.String()})
	}
}

type updateItemRequest struct {
	// Name renames the item when set.
	Name     *string          `json:"name"`
	Quantity *int             `json:"quantity"`
	Price    *decimal.Decimal `json:"price"`
}

// updateItem handles PUT /api/items/{name}. Omitted fields keep their current value.
func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	var req updateItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	in := app.PatchItemRequest{Name: itemName(r), NewName: req.Name, Quantity: req.Quantity}
	if req.Price != nil {
		price := req.Price.InexactFloat64()
		in.Price = &price
	}

	res, err := h.svc.PatchItem(r.Context(), in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, toItemJSON(res.Item))
}

// removeItem handles DELETE /api/items/{name}.
func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.RemoveItem(r.Context(), itemName(r))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if !res.Removed {
		writeError(w, r, fmt.Sprintf("no item named %q", res.Name), "NOT_FOUND", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Reports ───────────────────────────────────────────────────────────────────

// valueReport handles GET /api/reports/value.
func (h *Handler) valueReport(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.ValueReport(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, toValueReport(res))
}

// lowStockReport handles GET /api/reports/low-stock?threshold=N. An invalid
// threshold falls back to the default and is reported in the warning field.
func (h *Handler) lowStockReport(w http.ResponseWriter, r *http.Request) {
	threshold := -1
	var warning string
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		var ok bool
		threshold, ok = core.ParseThreshold(raw)
		if !ok {
			threshold = -1
			warning = fmt.Sprintf("invalid threshold %q, using the default", raw)
		}
	}

	res, err := h.svc.LowStockReport(r.Context(), threshold)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	resp := toLowStock(res)
	resp.Warning = warning
	writeJSON(w, resp)
}

// ── Persistence ───────────────────────────────────────────────────────────────

type persistRequest struct {
	Target string `json:"target"`
}

type persistResponse struct {
	Target    string `json:"target"`
	ItemCount int    `json:"item_count"`
}

// save handles POST /api/inventory/save. The body is optional.
func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	var req persistRequest
	if !decodeOptionalJSON(w, r, &req) {
		return
	}
	target, err := h.resolveTarget(r.Context(), req.Target)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	res, err := h.svc.Save(r.Context(), target)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, persistResponse{Target: res.Target, ItemCount: res.ItemCount})
}

// load handles POST /api/inventory/load. The body is optional.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) {
	var req persistRequest
	if !decodeOptionalJSON(w, r, &req) {
		return
	}
	target, err := h.resolveTarget(r.Context(), req.Target)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	res, err := h.svc.Load(r.Context(), target)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, persistResponse{Target: res.Target, ItemCount: res.ItemCount})
}

// resolveTarget confines a client-supplied target to the directory of the
// default target. Only bare names are accepted; empty means the current target.
func (h *Handler) resolveTarget(ctx context.Context, raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", nil
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) || filepath.IsAbs(name) {
		return "", fmt.Errorf("%w: target must be a plain name, got %q", core.ErrValidation, raw)
	}
	st, err := h.svc.Status(ctx)
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(st.DefaultTarget), name), nil
}

type statusResponse struct {
	ItemCount     int             `json:"item_count"`
	TotalValue    decimal.Decimal `json:"total_value"`
	Dirty         bool            `json:"dirty"`
	CurrentTarget string          `json:"current_target"`
	DefaultTarget string          `json:"default_target"`
	AgentEnabled  bool            `json:"agent_enabled"`
}

// status handles GET /api/status.
func (h *Handler) status(w http.ResponseWriter, r *http.Request) {
	st, err := h.svc.Status(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, statusResponse{
		ItemCount:     st.ItemCount,
		TotalValue:    money(st.TotalValue),
		Dirty:         st.Dirty,
		CurrentTarget: st.CurrentTarget,
		DefaultTarget: st.DefaultTarget,
		AgentEnabled:  st.AgentEnabled,
	})
}
