package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"inventory-manager/internal/ai"
	"inventory-manager/internal/core"
	"inventory-manager/internal/persistence"
)

// Options configures an appService.
type Options struct {
	// DataFile is the save/load target used when neither the caller nor a
	// previous save or load supplied one.
	DataFile string
	// LowStockThreshold is used when LowStockReport is called with a negative
	// threshold. Zero or less means core.DefaultLowStockThreshold.
	LowStockThreshold int
	// NormalizeTarget rewrites save targets, e.g. persistence.NormalizeTarget
	// for the file backend. Nil leaves targets unchanged.
	NormalizeTarget func(string) string
	// Agent is the optional natural-language interpreter.
	Agent  ai.CommandInterpreter
	Logger *zap.Logger
}

type appService struct {
	mu      sync.Mutex
	store   *core.Store
	backend persistence.Backend
	agent   ai.CommandInterpreter
	log     *zap.Logger

	dataFile      string
	threshold     int
	normalize     func(string) string
	currentTarget string
	dirty         bool
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(store *core.Store, backend persistence.Backend, opts Options) ApplicationService {
	if store == nil {
		store = core.NewStore()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	normalize := opts.NormalizeTarget
	if normalize == nil {
		normalize = strings.TrimSpace
	}
	threshold := opts.LowStockThreshold
	if threshold <= 0 {
		threshold = core.DefaultLowStockThreshold
	}
	return &appService{
		store:     store,
		backend:   backend,
		agent:     opts.Agent,
		log:       log,
		dataFile:  opts.DataFile,
		threshold: threshold,
		normalize: normalize,
	}
}

// ListItems returns the filtered, sorted item table.
func (s *appService) ListItems(_ context.Context, req ListItemsRequest) (*ItemListResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.listItems(req), nil
}

func (s *appService) listItems(req ListItemsRequest) *ItemListResult {
	p := core.ProjectFiltered(s.store, req.Search)
	if req.Sort == "" {
		req.Sort = core.SortByName
	}
	core.SortRows(p.Rows, req.Sort, req.Descending)
	return &ItemListResult{Rows: p.Rows, Total: p.Total, Search: strings.TrimSpace(req.Search)}
}

// GetItem returns a single item by exact name.
func (s *appService) GetItem(_ context.Context, name string) (*ItemResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.store.Get(strings.TrimSpace(name))
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrNotFound, strings.TrimSpace(name))
	}
	return &ItemResult{Item: item}, nil
}

// AddItem adds or merges an item.
func (s *appService) AddItem(_ context.Context, req AddItemRequest) (*AddItemResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addItem(req)
}

func (s *appService) addItem(req AddItemRequest) (*AddItemResult, error) {
	name := strings.TrimSpace(req.Name)
	outcome, err := s.store.Add(name, req.Quantity, req.Price, req.Confirm)
	if err != nil {
		s.log.Warn("add item rejected", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	if outcome != core.OutcomeUnchanged {
		s.dirty = true
	}
	item, _ := s.store.Get(name)
	s.log.Info("add item",
		zap.String("name", name),
		zap.Int("quantity", req.Quantity),
		zap.Float64("price", req.Price),
		zap.Stringer("outcome", outcome))
	return &AddItemResult{Item: item, Outcome: outcome}, nil
}

// UpdateItem changes an item's values and optionally renames it.
func (s *appService) UpdateItem(_ context.Context, req UpdateItemRequest) (*ItemResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updateItem(req)
}

func (s *appService) updateItem(req UpdateItemRequest) (*ItemResult, error) {
	oldName := strings.TrimSpace(req.OldName)
	newName := strings.TrimSpace(req.NewName)
	if newName == "" {
		newName = oldName
	}
	if err := s.store.Update(oldName, newName, req.Quantity, req.Price); err != nil {
		s.log.Warn("update item rejected", zap.String("name", oldName), zap.String("new_name", newName), zap.Error(err))
		return nil, err
	}
	s.dirty = true
	s.log.Info("update item",
		zap.String("name", oldName),
		zap.String("new_name", newName),
		zap.Int("quantity", req.Quantity),
		zap.Float64("price", req.Price))
	item, _ := s.store.Get(newName)
	return &ItemResult{Item: item}, nil
}

// PatchItem applies a partial update against the item's current values.
func (s *appService) PatchItem(_ context.Context, req PatchItemRequest) (*ItemResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.TrimSpace(req.Name)
	current, ok := s.store.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrNotFound, name)
	}
	in := UpdateItemRequest{OldName: name, NewName: name, Quantity: current.Quantity, Price: current.Price}
	if req.NewName != nil {
		in.NewName = *req.NewName
		if strings.TrimSpace(in.NewName) == "" {
			return nil, fmt.Errorf("%w: item name cannot be empty", core.ErrValidation)
		}
	}
	if req.Quantity != nil {
		in.Quantity = *req.Quantity
	}
	if req.Price != nil {
		in.Price = *req.Price
	}
	return s.updateItem(in)
}

// RemoveItem deletes an item if present.
func (s *appService) RemoveItem(_ context.Context, name string) (*RemoveItemResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.removeItem(name), nil
}

func (s *appService) removeItem(name string) *RemoveItemResult {
	name = strings.TrimSpace(name)
	removed := s.store.Remove(name)
	if removed {
		s.dirty = true
	}
	s.log.Info("remove item", zap.String("name", name), zap.Bool("removed", removed))
	return &RemoveItemResult{Name: name, Removed: removed}
}

// ValueReport returns every item with its value and the grand total.
func (s *appService) ValueReport(_ context.Context) (*ValueReportResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.valueReport(), nil
}

func (s *appService) valueReport() *ValueReportResult {
	p := core.ProjectValueReport(s.store)
	return &ValueReportResult{Rows: p.Rows, GrandTotal: p.Total}
}

// LowStockReport lists items below threshold.
func (s *appService) LowStockReport(_ context.Context, threshold int) (*LowStockResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lowStock(threshold), nil
}

func (s *appService) lowStock(threshold int) *LowStockResult {
	if threshold < 0 {
		threshold = s.threshold
	}
	return &LowStockResult{Rows: core.ProjectLowStock(s.store, threshold), Threshold: threshold}
}

// Save writes the inventory to target.
func (s *appService) Save(ctx context.Context, target string) (*PersistResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target = s.normalize(s.resolveTarget(target))
	if target == "" {
		return nil, fmt.Errorf("%w: no save target", persistence.ErrWrite)
	}

	items := s.store.List()
	if err := s.backend.Save(ctx, target, items); err != nil {
		s.log.Error("save failed", zap.String("target", target), zap.Error(err))
		return nil, err
	}

	s.currentTarget = target
	s.dirty = false
	s.log.Info("inventory saved", zap.String("target", target), zap.Int("items", len(items)))
	return &PersistResult{Target: target, ItemCount: len(items)}, nil
}

// Load replaces the inventory with the snapshot at target.
func (s *appService) Load(ctx context.Context, target string) (*PersistResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target = strings.TrimSpace(s.resolveTarget(target))
	if target == "" {
		return nil, fmt.Errorf("%w: no load target", persistence.ErrSnapshotNotFound)
	}

	items, err := s.backend.Load(ctx, target)
	if errors.Is(err, persistence.ErrSnapshotNotFound) {
		// A target saved as "stock" lives at "stock.inv".
		if alt := s.normalize(target); alt != target {
			if altItems, altErr := s.backend.Load(ctx, alt); altErr == nil {
				items, err, target = altItems, nil, alt
			}
		}
	}
	if err != nil {
		s.log.Warn("load failed", zap.String("target", target), zap.Error(err))
		return nil, err
	}

	if err := s.store.Replace(items); err != nil {
		s.log.Warn("load rejected", zap.String("target", target), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", persistence.ErrDeserialization, err)
	}

	s.currentTarget = target
	s.dirty = false
	s.log.Info("inventory loaded", zap.String("target", target), zap.Int("items", s.store.Len()))
	return &PersistResult{Target: target, ItemCount: s.store.Len()}, nil
}

func (s *appService) resolveTarget(target string) string {
	if t := strings.TrimSpace(target); t != "" {
		return t
	}
	if s.currentTarget != "" {
		return s.currentTarget
	}
	return s.dataFile
}

// Status reports a summary of the inventory and its save state.
func (s *appService) Status(_ context.Context) (*StatusResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := core.ProjectAll(s.store)
	return &StatusResult{
		ItemCount:     len(p.Rows),
		TotalValue:    p.Total,
		Dirty:         s.dirty,
		CurrentTarget: s.currentTarget,
		DefaultTarget: s.normalize(s.resolveTarget("")),
		AgentEnabled:  s.agent != nil,
	}, nil
}

// InterpretCommand asks the interpreter to turn text into a proposal.
func (s *appService) InterpretCommand(ctx context.Context, text string) (*AIResult, error) {
	if s.agent == nil {
		return nil, ai.ErrAgentUnavailable
	}

	s.mu.Lock()
	summary := inventorySummary(s.store.List())
	s.mu.Unlock()

	// The interpreter call can take seconds; the lock is not held across it.
	proposal, err := s.agent.InterpretCommand(ctx, text, summary)
	if err != nil {
		s.log.Warn("interpret command failed", zap.String("text", text), zap.Error(err))
		return nil, err
	}

	s.log.Info("interpret command",
		zap.String("text", text),
		zap.String("action", string(proposal.Action)),
		zap.Float64("confidence", proposal.Confidence))

	if proposal.Action == core.ActionClarify {
		return &AIResult{IsClarification: true, ClarificationMessage: proposal.Clarification}, nil
	}
	return &AIResult{Proposal: proposal}, nil
}

func inventorySummary(items []core.Item) string {
	if len(items) == 0 {
		return "(empty)"
	}
	var sb strings.Builder
	for _, it := range items {
		fmt.Fprintf(&sb, "- %s | quantity %d | price %.2f\n", it.Name, it.Quantity, it.Price)
	}
	return sb.String()
}

// ExecuteProposal runs a previously interpreted proposal.
func (s *appService) ExecuteProposal(_ context.Context, proposal core.Proposal) (*ProposalResult, error) {
	proposal.Normalize()
	if err := proposal.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res := &ProposalResult{Action: proposal.Action}
	switch proposal.Action {
	case core.ActionAdd:
		r, err := s.addItem(AddItemRequest{Name: proposal.Name, Quantity: proposal.Quantity, Price: proposal.Price, Confirm: core.AlwaysMerge})
		if err != nil {
			return nil, err
		}
		res.Add = r
	case core.ActionUpdate:
		r, err := s.updateItem(UpdateItemRequest{OldName: proposal.Name, NewName: proposal.NewName, Quantity: proposal.Quantity, Price: proposal.Price})
		if err != nil {
			return nil, err
		}
		res.Update = r
	case core.ActionRemove:
		r := s.removeItem(proposal.Name)
		if !r.Removed {
			return nil, fmt.Errorf("%w: %q", core.ErrNotFound, r.Name)
		}
		res.Remove = r
	case core.ActionSearch:
		res.Items = s.listItems(ListItemsRequest{Search: proposal.SearchTerm})
	case core.ActionValueReport:
		res.Value = s.valueReport()
	case core.ActionLowStockReport:
		res.LowStock = s.lowStock(proposal.Threshold)
	default:
		return nil, fmt.Errorf("proposal action %q cannot be executed", proposal.Action)
	}
	return res, nil
}
