package analyzer

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"complexity/internal/parser"
)

// BatchInput is one already-parsed document queued for AnalyzeBatch.
type BatchInput struct {
	File     string
	Program  []parser.Stmt
	Comments map[string]string
}

// DefaultBatchConcurrency bounds AnalyzeBatch when callers pass
// maxConcurrency <= 0.
const DefaultBatchConcurrency = 4

// AnalyzeBatch runs AnalyzeDocument over every input concurrently, the
// "parallelism across documents" spec §5 permits at the driver level
// (within one document, analysis stays single-threaded). Concurrency is
// bounded by a weighted semaphore rather than left unbounded, since a
// batch of hundreds of files would otherwise spawn hundreds of goroutines
// each walking an independent call graph. Results are returned in input
// order regardless of completion order. The first per-document error
// (currently only possible via ctx cancellation, since AnalyzeDocument
// itself never returns an error) cancels the remaining goroutines.
func (s *Session) AnalyzeBatch(ctx context.Context, inputs []BatchInput, maxConcurrency int) ([]DocumentResult, error) {
	if maxConcurrency <= 0 {
		maxConcurrency = DefaultBatchConcurrency
	}

	results := make([]DocumentResult, len(inputs))
	sem := semaphore.NewWeighted(int64(maxConcurrency))
	g, gctx := errgroup.WithContext(ctx)

	for i, in := range inputs {
		i, in := i, in
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)
			results[i] = s.AnalyzeDocument(gctx, in.File, in.Program, in.Comments, nil)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
