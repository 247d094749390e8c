package optim

import (
	"github.com/san-kum/calculus/internal/dynamo"
)

// Scan runs FindMax from every start concurrently and returns the highest
// maximum found. Starts that fail are skipped; if all fail, the error from
// the first start is returned. f must be safe for concurrent use.
func Scan(f dynamo.Func1, starts []float64, opts Options) (*Result, error) {
	if len(starts) == 0 {
		return nil, &dynamo.ConfigError{Field: "starts", Reason: "need at least one starting point"}
	}

	results := make([]*Result, len(starts))
	errs := make([]error, len(starts))
	dynamo.ParallelFor(len(starts), 1, func(start, end int) {
		for i := start; i < end; i++ {
			results[i], errs[i] = FindMax(f, starts[i], opts)
		}
	})

	var best *Result
	for _, r := range results {
		if r != nil && (best == nil || r.F > best.F) {
			best = r
		}
	}
	if best == nil {
		return nil, errs[0]
	}
	return best, nil
}
