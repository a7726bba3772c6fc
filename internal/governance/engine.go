/*

The governance Engine is the public surface of the fee-governance subsystem.
The collaborator swap engine drives it through three hooks (pool
initialization, pre-swap, post-swap); pool admins drive it through the
management API; everyone may read through the accessors.

Pools are fully independent: every pool record lives behind its own mutex,
the registry map behind a read-write mutex, and no operation on one pool
ever touches another pool's record. Each call applies its state changes
all-or-nothing with respect to its pool.

*/

package governance

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/openamm/poolgov/internal/logger"
	"github.com/openamm/poolgov/internal/strategy"
	"github.com/openamm/poolgov/internal/types"
)

// Clock supplies the engine's notion of time as monotonically increasing
// ticks. Timelock arithmetic is done in ticks, never wall-clock durations,
// so a block-driven host can advance the clock itself.
type Clock interface {
	Now() uint64
}

// Store persists governance state. SavePool writes the durable snapshot of
// one pool record; AppendEvent journals one audit transition. A nil Store
// runs the engine memory-only.
type Store interface {
	SavePool(rec types.PoolRecord) error
	AppendEvent(ev types.GovernanceEvent) error
}

// Engine owns the per-pool governance records. Construct it with NewEngine;
// the zero value is not usable.
type Engine struct {
	logger   zerolog.Logger
	clock    Clock
	invoker  *strategy.Invoker
	registry *strategy.Registry
	store    Store

	mu    sync.RWMutex
	pools map[types.PoolID]*poolState
}

// poolState pairs one pool's record with its resolved strategy instance and
// the mutex serializing all mutating access to it.
type poolState struct {
	mu   sync.Mutex
	rec  types.PoolRecord
	stra strategy.FeeStrategy
}

// Config carries the engine's dependencies.
type Config struct {
	Clock    Clock
	Invoker  *strategy.Invoker
	Registry *strategy.Registry
	Store    Store // optional
}

// NewEngine creates an engine. Clock is required; a nil Invoker or Registry
// is replaced with the defaults.
func NewEngine(cfg Config) *Engine {
	if cfg.Clock == nil {
		panic("governance: Clock is required")
	}
	if cfg.Invoker == nil {
		cfg.Invoker = strategy.NewInvoker(0)
	}
	if cfg.Registry == nil {
		cfg.Registry = strategy.NewRegistry()
	}

	return &Engine{
		logger:   logger.GetForComponent("governance_engine"),
		clock:    cfg.Clock,
		invoker:  cfg.Invoker,
		registry: cfg.Registry,
		store:    cfg.Store,
		pools:    make(map[types.PoolID]*poolState),
	}
}

// Restore seeds the engine from persisted pool records, resolving each
// stored strategy reference. Records whose strategy reference no longer
// resolves keep their reference but run without a strategy instance until an
// admin re-sets it. Restore must be called before the engine serves traffic.
func (e *Engine) Restore(records []types.PoolRecord) {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, rec := range records {
		p := &poolState{rec: rec}
		if rec.StrategyRef != "" {
			s, err := e.registry.Resolve(rec.StrategyRef)
			if err != nil {
				e.logger.Warn().
					Uint64("poolId", uint64(rec.ID)).
					Str("strategyRef", rec.StrategyRef).
					Err(err).
					Msg("Stored strategy reference no longer resolves; pool runs without strategy")
			} else {
				p.stra = s
			}
		}
		e.pools[rec.ID] = p
	}

	e.logger.Info().Int("pools", len(records)).Msg("Governance state restored")
}

// PoolCount returns the number of registered pools.
func (e *Engine) PoolCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.pools)
}

// getPool returns the live state for a pool, or ErrPoolNotFound.
func (e *Engine) getPool(id types.PoolID) (*poolState, error) {
	e.mu.RLock()
	p, exists := e.pools[id]
	e.mu.RUnlock()
	if !exists {
		return nil, types.ErrPoolNotFound
	}
	return p, nil
}

// persist writes the durable snapshot for a record. Callers on the
// management path propagate the error (the in-memory mutation is only
// committed afterwards); callers on the swap path log and continue.
func (e *Engine) persist(rec types.PoolRecord) error {
	if e.store == nil {
		return nil
	}
	return e.store.SavePool(rec)
}

// emit journals an audit event, best-effort. A journal failure never fails
// the governance call that produced the transition.
func (e *Engine) emit(poolID types.PoolID, evType types.EventType, caller, subject types.Principal, value uint64) {
	if e.store == nil {
		return
	}
	ev := types.GovernanceEvent{
		ID:      uuid.NewString(),
		PoolID:  poolID,
		Type:    evType,
		Caller:  caller,
		Subject: subject,
		Value:   value,
		Tick:    e.clock.Now(),
		At:      time.Now().UTC(),
	}
	if err := e.store.AppendEvent(ev); err != nil {
		e.logger.Warn().
			Uint64("poolId", uint64(poolID)).
			Str("event", string(evType)).
			Err(err).
			Msg("Failed to journal governance event")
	}
}
