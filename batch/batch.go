// Package batch evaluates many independent ALU operations in parallel.
package batch

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rs/xid"
	"golang.org/x/sync/errgroup"

	"github.com/sarchlab/lanealu/alu"
)

// Request is one ALU evaluation.
type Request struct {
	ID    xid.ID
	Op    alu.Operation
	Width alu.LaneWidth
	A, B  alu.Word
}

// NewRequest creates a request with a fresh ID.
func NewRequest(op alu.Operation, w alu.LaneWidth, a, b alu.Word) Request {
	return Request{ID: xid.New(), Op: op, Width: w, A: a, B: b}
}

// Result pairs a request ID with its outcome. Err is set when the request
// names an unknown operation or lane width.
type Result struct {
	ID    xid.ID
	Value alu.Word
	Err   error
}

// Evaluate runs every request and returns results in request order. At most
// workers requests run at once; workers <= 0 means GOMAXPROCS. A request
// failure is recorded in its Result. The returned error is non-nil only if
// ctx is done before all requests finish.
func Evaluate(ctx context.Context, reqs []Request, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(reqs))
	done := make([]bool, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range reqs {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			req := reqs[i]
			value, err := alu.Execute(req.Op, req.A, req.B, req.Width)
			if err != nil {
				err = fmt.Errorf("request %s: %w", req.ID, err)
			}
			results[i] = Result{ID: req.ID, Value: value, Err: err}
			done[i] = true
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	for _, ok := range done {
		if !ok {
			return results, ctx.Err()
		}
	}

	return results, nil
}
