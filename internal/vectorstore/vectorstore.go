package vectorstore

import (
	"context"

	"github.com/HairlessVillager/llama-index/internal/schema"
)

// Store persists nodes carrying computed vectors. Callers only pass embedded
// nodes to Add; a store may be shared across pipelines, so implementations
// must tolerate concurrent Add calls.
type Store interface {
	Add(ctx context.Context, nodes []*schema.Node) error

	// Name returns a human-readable name for sink snapshots.
	Name() string

	// Type returns the sink type tag.
	Type() Type

	// Params returns the serializable sink configuration. Credentials are
	// never included.
	Params() map[string]any
}

type Type string

const (
	ES    Type = "es"
	PG         = "pg"
	InMem      = "in_mem"
)

type StoreError string

const (
	ErrUnsupportedStore StoreError = "unsupported vector store type: %s"
)

func (e StoreError) Error() string {
	return string(e)
}
