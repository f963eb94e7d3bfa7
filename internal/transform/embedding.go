package transform

import (
	"context"
	"log/slog"

	"github.com/HairlessVillager/llama-index/internal/embedding"
	"github.com/HairlessVillager/llama-index/internal/schema"
)

// Embedding enriches every node in the batch with a vector computed by the
// backing embedder. Nodes are mutated in place; cardinality is preserved.
type Embedding struct {
	embedder *embedding.Embedder
}

func NewEmbedding(embedder *embedding.Embedder) *Embedding {
	return &Embedding{embedder: embedder}
}

func (e *Embedding) Name() string {
	return "Embedding"
}

// Embedder exposes the backing embedder for configuration snapshots.
func (e *Embedding) Embedder() *embedding.Embedder {
	return e.embedder
}

func (e *Embedding) Transform(ctx context.Context, nodes []*schema.Node, opts ...Option) ([]*schema.Node, error) {
	if len(nodes) == 0 {
		return nodes, nil
	}

	o := BuildOptions(opts...)

	texts := make([]string, len(nodes))
	for i, node := range nodes {
		texts[i] = node.Content
	}

	vecs, err := e.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, err
	}

	for i, node := range nodes {
		node.Embedding = vecs[i]
		if o.ShowProgress {
			slog.Info("Embedded node", "index", i+1, "total", len(nodes), "id", node.ID)
		}
	}

	return nodes, nil
}
