package stafilter

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/nlstn/go-stafilter/internal/observability"
)

// Select compiles filter and returns the indices of the matching candidates.
// See (*Filter).Select.
func Select(ctx context.Context, filter string, candidates []Candidate, opts ...Option) ([]int, error) {
	f, err := CompileContext(ctx, filter, opts...)
	if err != nil {
		return nil, err
	}
	return f.Select(ctx, candidates)
}

// Select evaluates the filter over candidates on a bounded pool of workers
// and returns the indices of the matching ones in input order.
//
// A candidate whose evaluation fails is left out of the result; its error is
// reported, joined with the others, next to the matches. Failures never stop
// the evaluation of other candidates. Cancelling ctx stops dispatching new
// candidates and adds the context error.
func (f *Filter) Select(ctx context.Context, candidates []Candidate) ([]int, error) {
	ctx, span := f.tracer.StartSelect(ctx, f.program.Text, len(candidates))
	defer span.End()
	f.metrics.RecordSelect(ctx, len(candidates))

	matched := make([]bool, len(candidates))
	errs := make([]error, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.workers)
	for i, c := range candidates {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ok, err := f.evaluate(gctx, c)
			if err != nil {
				errs[i] = fmt.Errorf("candidate %d: %w", i, err)
				return nil
			}
			matched[i] = ok
			return nil
		})
	}
	waitErr := g.Wait()

	indices := make([]int, 0)
	for i, ok := range matched {
		if ok {
			indices = append(indices, i)
		}
	}
	if waitErr == nil {
		waitErr = ctx.Err()
	}
	err := errors.Join(append(errs, waitErr)...)

	span.SetAttributes(observability.MatchedAttr(len(indices)))
	f.tracer.RecordError(span, err)
	return indices, err
}
