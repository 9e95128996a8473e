package cli

import (
	"fmt"
	"io"

	"github.com/flintsteel/flintsteel/internal/runner"
)

// RenderSummary writes the human-readable report for a batch of results.
//
// One line per test in execution order, failure details indented under
// the failing test, and a final pass count. The layout is stable and
// covered by golden files.
func RenderSummary(w io.Writer, sum runner.Summary) {
	for _, result := range sum.Results {
		renderResult(w, result)
	}
	fmt.Fprintf(w, "\nPassed: %d/%d\n", sum.Passed, sum.Total)
}

func renderResult(w io.Writer, result runner.TestResult) {
	if result.Success {
		fmt.Fprintf(w, "PASS %s (%d ticks, %s, %s)\n",
			result.Name,
			result.TotalTicks,
			plural(len(result.Assertions), "assertion"),
			result.Duration,
		)
		return
	}

	if result.Error != "" {
		fmt.Fprintf(w, "FAIL %s (world creation failed)\n", result.Name)
		fmt.Fprintf(w, "  %s\n", result.Error)
		return
	}

	fmt.Fprintf(w, "FAIL %s (tick %d, %s)\n",
		result.Name,
		result.TotalTicks,
		result.Duration,
	)
	if failure := result.FirstFailure(); failure != nil {
		fmt.Fprintf(w, "  at %s: expected %s, got %s\n",
			failure.Position,
			failure.Expected,
			failure.Actual,
		)
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
