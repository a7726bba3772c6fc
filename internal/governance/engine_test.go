package governance

import (
	"fmt"
	"sync"

	"github.com/openamm/poolgov/internal/logger"
	"github.com/openamm/poolgov/internal/strategy"
	"github.com/openamm/poolgov/internal/types"
)

func init() {
	logger.Initialize("error")
}

// manualClock is a tick source the tests advance by hand.
type manualClock struct {
	tick uint64
}

func (c *manualClock) Now() uint64 {
	return c.tick
}

// memStore records persisted snapshots and events, and can be told to fail.
type memStore struct {
	mu     sync.Mutex
	pools  map[types.PoolID]types.PoolRecord
	events []types.GovernanceEvent
	fail   bool
}

func newMemStore() *memStore {
	return &memStore{pools: make(map[types.PoolID]types.PoolRecord)}
}

func (s *memStore) SavePool(rec types.PoolRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return fmt.Errorf("store unavailable")
	}
	s.pools[rec.ID] = rec
	return nil
}

func (s *memStore) AppendEvent(ev types.GovernanceEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return fmt.Errorf("store unavailable")
	}
	s.events = append(s.events, ev)
	return nil
}

func (s *memStore) eventTypes() []types.EventType {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.EventType, 0, len(s.events))
	for _, ev := range s.events {
		out = append(out, ev.Type)
	}
	return out
}

// Test strategies covering the adversarial cases the resolver must absorb.

type erroringStrategy struct{}

func (erroringStrategy) ComputeFee(strategy.PoolContext, types.SwapParams, *strategy.Budget) (uint64, error) {
	return 0, fmt.Errorf("strategy backend unreachable")
}

type panickyStrategy struct{}

func (panickyStrategy) ComputeFee(strategy.PoolContext, types.SwapParams, *strategy.Budget) (uint64, error) {
	panic("deliberate strategy fault")
}

type greedyStrategy struct{}

func (greedyStrategy) ComputeFee(_ strategy.PoolContext, _ types.SwapParams, budget *strategy.Budget) (uint64, error) {
	for {
		budget.Consume(1 << 20)
	}
}

// testRegistry installs the adversarial strategies next to the built-ins.
func testRegistry() *strategy.Registry {
	reg := strategy.NewRegistry()
	reg.MustInstall("erroring", func(string) (strategy.FeeStrategy, error) {
		return erroringStrategy{}, nil
	})
	reg.MustInstall("panicky", func(string) (strategy.FeeStrategy, error) {
		return panickyStrategy{}, nil
	})
	reg.MustInstall("greedy", func(string) (strategy.FeeStrategy, error) {
		return greedyStrategy{}, nil
	})
	return reg
}

// newTestEngine wires an engine with a manual clock and in-memory store.
func newTestEngine() (*Engine, *manualClock, *memStore) {
	clock := &manualClock{}
	store := newMemStore()
	engine := NewEngine(Config{
		Clock:    clock,
		Registry: testRegistry(),
		Store:    store,
	})
	return engine, clock, store
}
