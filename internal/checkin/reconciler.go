package checkin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/mcoot/assemblie-checkin/internal/model"
)

// OperationKind names one of the four mutation batches
type OperationKind string

const (
	OpMemberCheckIn     OperationKind = "member_check_in"
	OpMemberCheckOut    OperationKind = "member_check_out"
	OpDependentCheckIn  OperationKind = "dependent_check_in"
	OpDependentCheckOut OperationKind = "dependent_check_out"
)

// Operation is one batched remote call and its outcome
type Operation struct {
	Kind       OperationKind
	Members    []model.MemberID
	Dependents []model.DependentID
	Err        error // nil when the call succeeded
}

// Result describes one reconciliation cycle.
// RosterAfter is what the UI must render; it is nil only when the final
// re-fetch failed.
type Result struct {
	Group            model.GroupCode
	Delta            model.Delta
	RosterAfter      *model.Roster
	Success          bool
	Attempted        []Operation
	FailedOperations []Operation
}

// Celebration is the cosmetic event fired after a successful commit that checked someone in
type Celebration struct {
	Group     model.GroupCode
	CheckedIn model.Change
}

// Reconciler brings the attendance service in line with a selection
type Reconciler struct {
	service AttendanceService
	cache   *RosterCache
	logger  *slog.Logger

	loads singleflight.Group

	mu       sync.Mutex
	inFlight map[model.GroupCode]bool

	listenersMu sync.RWMutex
	listeners   []func(Celebration)
}

// NewReconciler creates a Reconciler writing to cache
func NewReconciler(service AttendanceService, cache *RosterCache, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		service:  service,
		cache:    cache,
		logger:   logger,
		inFlight: make(map[model.GroupCode]bool),
	}
}

// OnCelebration registers a listener for celebration events
func (r *Reconciler) OnCelebration(fn func(Celebration)) {
	r.listenersMu.Lock()
	defer r.listenersMu.Unlock()
	r.listeners = append(r.listeners, fn)
}

// Refresh fetches the roster for the active group and replaces the cache.
// It is the explicit retry path after a fetch failure. A refresh that
// overlaps a cycle never replaces the cycle's re-fetched roster; it returns
// that roster instead.
func (r *Reconciler) Refresh(ctx context.Context, group model.GroupCode) (*model.Roster, error) {
	generation, err := r.checkActive(group)
	if err != nil {
		return nil, err
	}
	return r.load(ctx, group, generation)
}

// Reconcile runs one cycle: fetch if needed, diff, apply batches, re-fetch.
//
// Errors wrapping ErrInvalidContext, ErrCycleInProgress or ErrFetchFailed
// from the initial fetch mean nothing was sent. A failed final re-fetch
// returns both a Result (with FailedOperations but no RosterAfter) and an
// error wrapping ErrFetchFailed. ErrContextChanged means the results were
// discarded because the active group changed.
func (r *Reconciler) Reconcile(ctx context.Context, group model.GroupCode, selection model.Selection) (*Result, error) {
	generation, err := r.checkActive(group)
	if err != nil {
		return nil, err
	}

	if !r.begin(group) {
		return nil, fmt.Errorf("%w: %s", ErrCycleInProgress, group)
	}
	defer r.end(group)

	logger := r.logger.With(slog.String("group", string(group)))

	roster, ok := r.cache.Get(group)
	if !ok {
		roster, err = r.load(ctx, group, generation)
		if err != nil {
			logger.Warn("roster fetch failed, no changes sent", slog.String("error", err.Error()))
			return nil, err
		}
	}

	delta := ComputeDelta(selection, roster)
	result := &Result{Group: group, Delta: delta}
	if delta.Empty() {
		logger.Debug("selection matches roster, nothing to do")
		result.RosterAfter = roster
		result.Success = true
		return result, nil
	}

	for _, op := range planOperations(delta) {
		op.Err = r.apply(ctx, group, op)
		result.Attempted = append(result.Attempted, op)
		if op.Err != nil {
			logger.Warn("batch failed",
				slog.String("operation", string(op.Kind)),
				slog.Int("participants", len(op.Members)+len(op.Dependents)),
				slog.String("error", op.Err.Error()),
			)
			result.FailedOperations = append(result.FailedOperations, op)
			continue
		}
		logger.Debug("batch applied", slog.String("operation", string(op.Kind)))
	}

	// The resync bypasses the load singleflight: a fetch that started before
	// the mutations would hand back a pre-mutation roster.
	fetch := r.cache.BeginFetch(group, generation)
	after, err := r.service.FetchRoster(ctx, group)
	if err != nil {
		r.cache.Invalidate(fetch)
		logger.Warn("roster re-fetch failed", slog.String("error", err.Error()))
		return result, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	after, err = r.cache.Replace(fetch, normalizeRoster(group, after))
	if errors.Is(err, ErrContextChanged) {
		logger.Info("group switched during reconciliation, discarding results")
		return nil, err
	}
	if err != nil {
		return result, err
	}

	result.RosterAfter = after
	result.Success = len(result.FailedOperations) == 0

	logger.Info("reconciliation complete",
		slog.Bool("success", result.Success),
		slog.Int("batches", len(result.Attempted)),
		slog.Int("failed", len(result.FailedOperations)),
	)

	if result.Success && !delta.CheckIn.Empty() {
		r.celebrate(Celebration{Group: group, CheckedIn: delta.CheckIn})
	}
	return result, nil
}

// planOperations orders the non-empty batches: members before dependents,
// check-ins before check-outs
func planOperations(delta model.Delta) []Operation {
	var ops []Operation
	if len(delta.CheckIn.Members) > 0 {
		ops = append(ops, Operation{Kind: OpMemberCheckIn, Members: delta.CheckIn.Members})
	}
	if len(delta.CheckOut.Members) > 0 {
		ops = append(ops, Operation{Kind: OpMemberCheckOut, Members: delta.CheckOut.Members})
	}
	if len(delta.CheckIn.Dependents) > 0 {
		ops = append(ops, Operation{Kind: OpDependentCheckIn, Dependents: delta.CheckIn.Dependents})
	}
	if len(delta.CheckOut.Dependents) > 0 {
		ops = append(ops, Operation{Kind: OpDependentCheckOut, Dependents: delta.CheckOut.Dependents})
	}
	return ops
}

func (r *Reconciler) apply(ctx context.Context, group model.GroupCode, op Operation) error {
	var err error
	switch op.Kind {
	case OpMemberCheckIn, OpDependentCheckIn:
		err = r.service.CheckIn(ctx, group, op.Members, op.Dependents)
	case OpMemberCheckOut, OpDependentCheckOut:
		err = r.service.CheckOut(ctx, group, op.Members, op.Dependents)
	default:
		err = fmt.Errorf("unknown operation %q", op.Kind)
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMutationFailed, op.Kind, err)
	}
	return nil
}

// load fetches and caches the roster, collapsing concurrent loads of the same generation
func (r *Reconciler) load(ctx context.Context, group model.GroupCode, generation uint64) (*model.Roster, error) {
	key := fmt.Sprintf("%s#%d", group, generation)
	v, err, _ := r.loads.Do(key, func() (any, error) {
		fetch := r.cache.BeginFetch(group, generation)
		roster, err := r.service.FetchRoster(ctx, group)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
		}
		return r.cache.Replace(fetch, normalizeRoster(group, roster))
	})
	if err != nil {
		return nil, err
	}
	return v.(*model.Roster).Clone(), nil
}

func (r *Reconciler) checkActive(group model.GroupCode) (uint64, error) {
	if group == "" {
		return 0, fmt.Errorf("%w: no group selected", ErrInvalidContext)
	}
	active, generation := r.cache.ActiveGroup()
	if active != group {
		return 0, fmt.Errorf("%w: %s is not the active group", ErrInvalidContext, group)
	}
	return generation, nil
}

func (r *Reconciler) begin(group model.GroupCode) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inFlight[group] {
		return false
	}
	r.inFlight[group] = true
	return true
}

func (r *Reconciler) end(group model.GroupCode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inFlight, group)
}

func (r *Reconciler) celebrate(c Celebration) {
	r.listenersMu.RLock()
	listeners := make([]func(Celebration), len(r.listeners))
	copy(listeners, r.listeners)
	r.listenersMu.RUnlock()

	for _, fn := range listeners {
		fn(c)
	}
}

// normalizeRoster fills in missing fields from a service response
func normalizeRoster(group model.GroupCode, roster *model.Roster) *model.Roster {
	if roster == nil {
		return model.NewRoster(group, "")
	}
	out := roster.Clone()
	if out.Group == "" {
		out.Group = group
	}
	if out.Members == nil {
		out.Members = model.NewSet[model.MemberID]()
	}
	if out.Dependents == nil {
		out.Dependents = model.NewSet[model.DependentID]()
	}
	return out
}
