// Package transform defines the pipeline stage contract and the runner that
// folds an ordered list of stages over a batch of nodes.
package transform

import (
	"context"

	"github.com/HairlessVillager/llama-index/internal/schema"
)

// Component is one stage of a pipeline. A component consumes a batch of nodes
// and produces a batch of nodes; it may change cardinality (a splitter) or
// enrich nodes in place (an embedder). Components must not depend on pipeline
// identity, though they may hold their own configuration.
type Component interface {
	// Transform applies the stage to the batch. Options are forwarded by the
	// runner verbatim; components ignore the ones they do not understand.
	Transform(ctx context.Context, nodes []*schema.Node, opts ...Option) ([]*schema.Node, error)

	// Name returns a human-readable name for this component.
	Name() string
}

// Options carries per-run flags forwarded to every component invocation.
type Options struct {
	ShowProgress bool
	Extra        map[string]any
}

type Option func(*Options)

func WithShowProgress(show bool) Option {
	return func(o *Options) {
		o.ShowProgress = show
	}
}

// WithExtra attaches an arbitrary keyword option. The runner does not
// interpret it; components pick out the keys they understand.
func WithExtra(key string, value any) Option {
	return func(o *Options) {
		if o.Extra == nil {
			o.Extra = make(map[string]any)
		}
		o.Extra[key] = value
	}
}

// BuildOptions folds option funcs into an Options value.
func BuildOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
