package transform

import (
	"context"
	"fmt"
	"slices"

	"github.com/HairlessVillager/llama-index/internal/schema"
)

// Run applies components to nodes strictly in list order: each component's
// complete output becomes the next component's complete input.
//
// When inPlace is false the outer slice is cloned before the first step so the
// caller's slice is unaffected by reassignment. Nodes themselves are shared by
// pointer either way, so components that mutate node fields affect the
// caller's nodes regardless of inPlace.
//
// The first component error aborts the run; nodes already mutated in place
// stay mutated.
func Run(
	ctx context.Context,
	nodes []*schema.Node,
	components []Component,
	inPlace bool,
	opts ...Option,
) ([]*schema.Node, error) {
	if !inPlace {
		nodes = slices.Clone(nodes)
	}

	for _, c := range components {
		out, err := c.Transform(ctx, nodes, opts...)
		if err != nil {
			return nil, fmt.Errorf("transform %s: %w", c.Name(), err)
		}
		nodes = out
	}

	return nodes, nil
}

// Result carries the outcome of an asynchronous run.
type Result struct {
	Nodes []*schema.Node
	Err   error
}

// RunAsync is the non-blocking equivalent of Run. It yields exactly one Result
// on the returned channel and produces identical output for identical input.
// Between steps the runner checks for cancellation, so context cancellation
// takes effect at step boundaries.
func RunAsync(
	ctx context.Context,
	nodes []*schema.Node,
	components []Component,
	inPlace bool,
	opts ...Option,
) <-chan Result {
	out := make(chan Result, 1)

	if !inPlace {
		nodes = slices.Clone(nodes)
	}

	go func() {
		defer close(out)

		for _, c := range components {
			select {
			case <-ctx.Done():
				out <- Result{Err: ctx.Err()}
				return
			default:
			}

			next, err := c.Transform(ctx, nodes, opts...)
			if err != nil {
				out <- Result{Err: fmt.Errorf("transform %s: %w", c.Name(), err)}
				return
			}
			nodes = next
		}

		out <- Result{Nodes: nodes}
	}()

	return out
}
