package transform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HairlessVillager/llama-index/internal/schema"
)

func TestSentenceSplitter_ExpandsCardinality(t *testing.T) {
	splitter := NewSentenceSplitter(WithChunkSize(40), WithChunkOverlap(0))

	node := schema.NewNode("First sentence here. Second sentence here. Third sentence here. Fourth sentence here.")
	node.Metadata["origin"] = "test"

	out, err := splitter.Transform(t.Context(), []*schema.Node{node})
	require.NoError(t, err)
	require.Greater(t, len(out), 1, "long content must split into multiple chunks")

	for _, chunk := range out {
		assert.LessOrEqual(t, len(chunk.Content), 40+1)
		assert.Equal(t, node.ID, chunk.Relationships[schema.RelationshipSource])
		assert.Equal(t, "test", chunk.Metadata["origin"], "metadata is inherited")
	}
}

func TestSentenceSplitter_ShortContentSingleChunk(t *testing.T) {
	splitter := NewSentenceSplitter()

	node := schema.NewNode("Short text.")

	out, err := splitter.Transform(t.Context(), []*schema.Node{node})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Short text.", out[0].Content)
	assert.NotEqual(t, node.ID, out[0].ID, "chunk is a new node")
}

func TestSentenceSplitter_SiblingRelationships(t *testing.T) {
	splitter := NewSentenceSplitter(WithChunkSize(20), WithChunkOverlap(0))

	node := schema.NewNode("One sentence here. Two sentence here. Three sentence here.")

	out, err := splitter.Transform(t.Context(), []*schema.Node{node})
	require.NoError(t, err)
	require.Greater(t, len(out), 1)

	assert.Equal(t, out[0].ID, out[1].Relationships[schema.RelationshipPrevious])
	assert.Equal(t, out[1].ID, out[0].Relationships[schema.RelationshipNext])
}

func TestSentenceSplitter_Overlap(t *testing.T) {
	splitter := NewSentenceSplitter(WithChunkSize(30), WithChunkOverlap(10))

	node := schema.NewNode("Alpha beta gamma delta. Epsilon zeta eta theta. Iota kappa lambda mu.")

	out, err := splitter.Transform(t.Context(), []*schema.Node{node})
	require.NoError(t, err)
	require.Greater(t, len(out), 1)

	first := []rune(out[0].Content)
	tail := string(first[len(first)-10:])
	assert.True(t, strings.HasPrefix(out[1].Content, tail), "next chunk starts with the previous chunk's tail")
}

func TestSentenceSplitter_SkipsNilAndEmptyNodes(t *testing.T) {
	splitter := NewSentenceSplitter()

	out, err := splitter.Transform(t.Context(), []*schema.Node{nil, schema.NewNode("")})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestNewSentenceSplitter_OverlapClampedBelowChunkSize(t *testing.T) {
	splitter := NewSentenceSplitter(WithChunkSize(100), WithChunkOverlap(200))

	assert.Less(t, splitter.ChunkOverlap(), splitter.ChunkSize())
}
