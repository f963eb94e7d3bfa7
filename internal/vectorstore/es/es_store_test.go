package es

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HairlessVillager/llama-index/internal/schema"
)

func TestStore_NodeToESDocument(t *testing.T) {
	store := &Store{indexName: "nodes_test"}

	node := schema.NewNode("some content")
	node.Metadata["author"] = "Jane"
	node.Embedding = []float32{0.5, 0.6}

	doc := store.nodeToESDocument(node)

	assert.Equal(t, node.ID.String(), doc.ID)
	assert.Equal(t, "some content", doc.Content)
	assert.Equal(t, "Jane", doc.Metadata["author"])
	assert.Equal(t, []float32{0.5, 0.6}, doc.Embedding)
	assert.False(t, doc.IndexedAt.IsZero())
}

func TestStore_NodeToESDocument_AssignsMissingID(t *testing.T) {
	store := &Store{indexName: "nodes_test"}

	node := &schema.Node{Content: "no id"}
	doc := store.nodeToESDocument(node)

	id, err := uuid.Parse(doc.ID)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, id)
}

func TestStore_Params(t *testing.T) {
	store := &Store{
		indexName: "nodes_test",
		config: ClientConfig{
			Addresses: []string{"http://localhost:9200"},
			IndexName: "nodes_test",
			Dims:      1024,
		},
	}

	params := store.Params()
	assert.Equal(t, "nodes_test", params["index"])
	assert.Equal(t, 1024, params["dims"])
	assert.NotContains(t, params, "password")
}
