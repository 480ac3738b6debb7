package web

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"inventory-manager/internal/app"
	"inventory-manager/internal/core"
)

// ── Pending proposal store ────────────────────────────────────────────────────

// pendingProposal is stored server-side until the user confirms or cancels.
type pendingProposal struct {
	Proposal  core.Proposal
	CreatedAt time.Time
}

const pendingTTL = 15 * time.Minute

// pendingStore is a thread-safe in-memory store with TTL expiry.
type pendingStore struct {
	mu        sync.Mutex
	proposals map[string]pendingProposal
}

func newPendingStore() *pendingStore {
	return &pendingStore{proposals: make(map[string]pendingProposal)}
}

func (s *pendingStore) put(token string, p pendingProposal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.proposals[token] = p
}

// take removes and returns the proposal for token.
func (s *pendingStore) take(token string) (pendingProposal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.proposals[token]
	if !ok {
		return pendingProposal{}, false
	}
	delete(s.proposals, token)
	if time.Since(p.CreatedAt) > pendingTTL {
		return pendingProposal{}, false
	}
	return p, true
}

// startPurge starts a background goroutine that evicts expired entries every 5 minutes.
func (s *pendingStore) startPurge(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.mu.Lock()
				for token, p := range s.proposals {
					if time.Since(p.CreatedAt) > pendingTTL {
						delete(s.proposals, token)
					}
				}
				s.mu.Unlock()
			}
		}
	}()
}

// ── Request / response types ──────────────────────────────────────────────────

type askRequest struct {
	Text string `json:"text"`
}

type askConfirmRequest struct {
	Token  string `json:"token"`
	Action string `json:"action"` // "confirm" or "cancel"
}

// askResponse is one of: a clarification question, a write proposal awaiting
// confirmation, or the result of a read-only request.
type askResponse struct {
	Kind     string         `json:"kind"`
	Question string         `json:"question,omitempty"`
	Token    string         `json:"token,omitempty"`
	Proposal *core.Proposal `json:"proposal,omitempty"`
	Result   any            `json:"result,omitempty"`
}

// ask handles POST /api/ask. Writes are never applied here; they are parked
// under a token for /api/ask/confirm.
func (h *Handler) ask(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Text == "" {
		writeError(w, r, "text is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.InterpretCommand(r.Context(), req.Text)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	if result.IsClarification {
		writeJSON(w, askResponse{Kind: "clarification", Question: result.ClarificationMessage})
		return
	}

	proposal := result.Proposal
	if proposal.IsWrite() {
		token := uuid.NewString()
		h.pending.put(token, pendingProposal{Proposal: *proposal, CreatedAt: time.Now()})
		writeJSON(w, askResponse{Kind: "proposal", Token: token, Proposal: proposal})
		return
	}

	res, err := h.svc.ExecuteProposal(r.Context(), *proposal)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, askResponse{Kind: "result", Proposal: proposal, Result: proposalResultJSON(res)})
}

// askConfirm handles POST /api/ask/confirm.
func (h *Handler) askConfirm(w http.ResponseWriter, r *http.Request) {
	var req askConfirmRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Action != "confirm" && req.Action != "cancel" {
		writeError(w, r, `action must be "confirm" or "cancel"`, "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	pending, ok := h.pending.take(req.Token)
	if !ok {
		writeError(w, r, "proposal not found or expired", "TOKEN_NOT_FOUND", http.StatusNotFound)
		return
	}
	if req.Action == "cancel" {
		writeJSON(w, askResponse{Kind: "cancelled"})
		return
	}

	res, err := h.svc.ExecuteProposal(r.Context(), pending.Proposal)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	h.log.Info("proposal applied", zap.String("action", string(pending.Proposal.Action)), zapRequestID(r))
	writeJSON(w, askResponse{Kind: "applied", Proposal: &pending.Proposal, Result: proposalResultJSON(res)})
}

func proposalResultJSON(res *app.ProposalResult) any {
	switch {
	case res.Add != nil:
		return addItemResponse{Item: toItemJSON(res.Add.Item), Outcome: res.Add.Outcome.String()}
	case res.Update != nil:
		return toItemJSON(res.Update.Item)
	case res.Remove != nil:
		return map[string]any{"name": res.Remove.Name, "removed": res.Remove.Removed}
	case res.Items != nil:
		return toItemList(res.Items)
	case res.Value != nil:
		return toValueReport(res.Value)
	case res.LowStock != nil:
		return toLowStock(res.LowStock)
	}
	return nil
}
