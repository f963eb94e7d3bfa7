package es

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HairlessVillager/llama-index/internal/schema"
	pkgtesting "github.com/HairlessVillager/llama-index/pkg/testing"
)

func TestStore_AddIndexesNodes(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()
	esc := pkgtesting.NewESContainer(ctx, t)

	store, err := NewStore(ctx, ClientConfig{
		Addresses: []string{esc.Address},
		IndexName: "nodes_it",
		Dims:      3,
	})
	require.NoError(t, err)

	first := schema.NewNode("first chunk")
	first.Embedding = []float32{0.1, 0.2, 0.3}
	second := schema.NewNode("second chunk")
	second.Embedding = []float32{0.4, 0.5, 0.6}

	require.NoError(t, store.Add(ctx, []*schema.Node{first, second}))

	_, err = store.client.Indices.Refresh().Index("nodes_it").Do(ctx)
	require.NoError(t, err)

	countRes, err := store.client.Count().Index("nodes_it").Do(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), countRes.Count)

	// Creating the index again is a no-op.
	require.NoError(t, store.EnsureIndex(ctx))
}
