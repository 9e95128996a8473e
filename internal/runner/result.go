package runner

import (
	"time"

	"github.com/flintsteel/flintsteel/internal/spec"
)

// AssertionResult is the outcome of one Assert action: either a pass at a
// tick, or a failure carrying the position and canonical expected/actual
// block renderings.
type AssertionResult struct {
	// Tick is the tick at which the assert executed.
	Tick int `json:"tick"`

	// Passed reports whether every check in the assert held.
	Passed bool `json:"passed"`

	// Position is the first failing position. Nil on success.
	Position *spec.BlockPos `json:"position,omitempty"`

	// Expected is the canonical rendering of the expected block,
	// "identifier[prop=value,...]" with properties sorted by name.
	Expected string `json:"expected,omitempty"`

	// Actual is the canonical rendering of the block actually read.
	Actual string `json:"actual,omitempty"`

	// Message is a human-readable description of the mismatch.
	Message string `json:"message,omitempty"`
}

// passed creates a passing outcome for a tick.
func passed(tick int) AssertionResult {
	return AssertionResult{Tick: tick, Passed: true}
}

// TestResult is the outcome of executing one spec.
type TestResult struct {
	// Name is the spec name.
	Name string `json:"name"`

	// Success is true when no assertion failed and the world was
	// created successfully.
	Success bool `json:"success"`

	// Assertions holds per-assert outcomes in execution order.
	Assertions []AssertionResult `json:"assertions,omitempty"`

	// TotalTicks is the number of ticks executed before stopping: the
	// timeline's max tick on success, or the failing tick.
	TotalTicks int `json:"total_ticks"`

	// Duration is the wall-clock time of the whole test procedure.
	Duration time.Duration `json:"duration_ns"`

	// Error describes an unrecoverable setup failure (world creation),
	// distinct from an assertion failure. Empty otherwise.
	Error string `json:"error,omitempty"`
}

// FirstFailure returns the first failed assertion outcome, or nil.
func (r *TestResult) FirstFailure() *AssertionResult {
	for i := range r.Assertions {
		if !r.Assertions[i].Passed {
			return &r.Assertions[i]
		}
	}
	return nil
}

// Summary accumulates a batch of test results. Derived once from the
// ordered results and never mutated afterwards.
type Summary struct {
	// Total is the number of tests executed.
	Total int `json:"total"`

	// Passed counts successful tests.
	Passed int `json:"passed"`

	// Failed counts unsuccessful tests.
	Failed int `json:"failed"`

	// Results holds per-test outcomes in input order.
	Results []TestResult `json:"results"`
}

// Summarize folds ordered results into a summary.
func Summarize(results []TestResult) Summary {
	s := Summary{
		Total:   len(results),
		Results: results,
	}
	for _, r := range results {
		if r.Success {
			s.Passed++
		} else {
			s.Failed++
		}
	}
	return s
}

// AllPassed reports whether every test in the batch succeeded.
func (s Summary) AllPassed() bool {
	return s.Failed == 0
}
