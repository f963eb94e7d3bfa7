// Package reader defines the input-source capability consumed by pipelines.
// A reader yields documents; remote readers can instead be registered with the
// platform, which performs the read out of process.
package reader

import (
	"context"

	"github.com/HairlessVillager/llama-index/internal/schema"
)

type Type string

const (
	TypeCSV Type = "csv"
	TypeURL Type = "url"
)

type Reader interface {
	// Read reads and returns the documents representing the source.
	Read(ctx context.Context) ([]*schema.Document, error)

	// Name returns a human-readable name for this reader.
	Name() string

	// Type returns the reader type tag used in configuration snapshots.
	Type() Type

	// IsRemote reports whether the platform can perform this read itself.
	// Non-remote readers are read locally at registration time.
	IsRemote() bool

	// Params returns the serializable reader configuration.
	Params() map[string]any
}
