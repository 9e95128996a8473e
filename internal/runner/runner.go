// Package runner drives test specifications against a backend through the
// capability contract. It owns the tick-execution state machine: each test
// gets a fresh isolated world, its timeline is executed tick by tick in
// deterministic bucket order, and assertion outcomes accumulate into a
// result.
package runner

import (
	"log/slog"
	"sort"
	"time"

	"github.com/flintsteel/flintsteel/internal/backend"
	"github.com/flintsteel/flintsteel/internal/spec"
	"github.com/flintsteel/flintsteel/internal/timeline"
)

// Config holds execution knobs.
//
// Parallel and MaxParallelWorlds are carried for forward compatibility
// and are currently ignored: batches run strictly sequentially, which
// keeps summaries order-stable and reproducible. A parallel
// implementation must still give every test its own world and player and
// re-sort results to input order before reporting.
type Config struct {
	// DebugEnabled reserves breakpoint handling for interactive
	// debugging. No runtime effect yet.
	DebugEnabled bool

	// Parallel requests parallel batch execution (not implemented).
	Parallel bool

	// MaxParallelWorlds caps concurrent worlds under Parallel.
	MaxParallelWorlds int
}

// DefaultConfig returns the default execution configuration.
func DefaultConfig() Config {
	return Config{
		DebugEnabled:      false,
		Parallel:          false,
		MaxParallelWorlds: 4,
	}
}

// Runner executes specs against one backend adapter.
//
// A Runner is stateless across tests: every RunTest call asks the adapter
// for a fresh world and discards it afterwards, so no state leaks between
// tests and the same spec yields identical outcomes on every run against
// a deterministic backend.
type Runner struct {
	adapter backend.Adapter
	cfg     Config
	log     *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithConfig overrides the default configuration.
func WithConfig(cfg Config) Option {
	return func(r *Runner) {
		r.cfg = cfg
	}
}

// WithLogger overrides the default logger.
func WithLogger(log *slog.Logger) Option {
	return func(r *Runner) {
		r.log = log
	}
}

// New creates a runner for the given adapter.
func New(adapter backend.Adapter, opts ...Option) *Runner {
	r := &Runner{
		adapter: adapter,
		cfg:     DefaultConfig(),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RunTest executes a single spec and returns its result.
//
// Procedure: create an isolated world, aggregate the spec's timeline with
// zero offset, apply player setup if present, then execute ticks 0
// through MaxTick inclusive. Actions run in bucket order; the first
// failing assert stops the test immediately, recording the failing tick.
// After each tick's actions the world advances by exactly one tick.
func (r *Runner) RunTest(s *spec.TestSpec) TestResult {
	start := time.Now()
	result := TestResult{Name: s.Name}

	world, err := r.adapter.CreateWorld()
	if err != nil {
		// Fatal for this spec only; sibling tests are unaffected.
		r.log.Error("world creation failed", "test", s.Name, "error", err)
		result.Error = err.Error()
		result.Duration = time.Since(start)
		return result
	}

	agg := timeline.Single(s)

	ec := &execContext{
		world:  world,
		runner: r,
		test:   s.Name,
	}

	if s.Setup != nil && s.Setup.Player != nil {
		r.applySetup(ec, s.Setup.Player)
	}

	r.log.Debug("test starting",
		"test", s.Name,
		"max_tick", agg.MaxTick(),
		"entries", agg.Len(),
		"backend", r.adapter.Info().Version,
	)

	for tick := 0; tick <= agg.MaxTick(); tick++ {
		for _, entry := range agg.At(tick) {
			outcome := ec.executeAction(entry.Action, tick)
			if outcome == nil {
				continue
			}
			result.Assertions = append(result.Assertions, *outcome)
			if !outcome.Passed {
				// Short-circuit: skip the rest of this bucket and all
				// later ticks, but report the partial progress.
				result.Success = false
				result.TotalTicks = tick
				result.Duration = time.Since(start)
				r.log.Info("test failed",
					"test", s.Name,
					"tick", tick,
					"message", outcome.Message,
				)
				return result
			}
		}

		world.DoTick()
	}

	result.Success = true
	result.TotalTicks = agg.MaxTick()
	result.Duration = time.Since(start)
	r.log.Debug("test passed",
		"test", s.Name,
		"ticks", result.TotalTicks,
		"assertions", len(result.Assertions),
	)
	return result
}

// RunTests executes specs sequentially in input order and folds the
// results into a summary. Test N+1 does not start before test N's result
// is recorded.
func (r *Runner) RunTests(specs []*spec.TestSpec) Summary {
	results := make([]TestResult, 0, len(specs))
	for _, s := range specs {
		results = append(results, r.RunTest(s))
	}
	return Summarize(results)
}

// applySetup populates the player's initial inventory and hotbar
// selection before tick 0 executes. Slots apply in sorted name order so
// warning logs are deterministic; slots are disjoint, so order does not
// change the resulting state.
func (r *Runner) applySetup(ec *execContext, setup *spec.PlayerSetup) {
	ec.getPlayer()

	slots := make([]spec.PlayerSlot, 0, len(setup.Inventory))
	for slot := range setup.Inventory {
		slots = append(slots, slot)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i] < slots[j] })

	for _, slot := range slots {
		item := setup.Inventory[slot]
		ec.setSlot(slot, &item)
	}

	if setup.SelectedHotbar != 0 {
		ec.getPlayer().SelectHotbar(setup.SelectedHotbar)
	}
}
