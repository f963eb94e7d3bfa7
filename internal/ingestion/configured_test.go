package ingestion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HairlessVillager/llama-index/internal/embedding"
	"github.com/HairlessVillager/llama-index/internal/schema"
	"github.com/HairlessVillager/llama-index/internal/transform"
)

type noopClient struct{}

func (noopClient) Generate(context.Context, embedding.Request) (*embedding.Response, error) {
	return &embedding.Response{}, nil
}

func (noopClient) GenerateBatch(context.Context, embedding.BatchRequest) (*embedding.BatchResponse, error) {
	return &embedding.BatchResponse{}, nil
}

func TestConfigureTransformation_SentenceSplitter(t *testing.T) {
	splitter := transform.NewSentenceSplitter(
		transform.WithChunkSize(512),
		transform.WithChunkOverlap(64),
	)

	ct := ConfigureTransformation(splitter)

	assert.Equal(t, TransformationSentenceSplitter, ct.Type)
	assert.Equal(t, "SentenceSplitter", ct.Name)

	component := ct.Params.Component()
	assert.Equal(t, 512, component["chunk_size"])
	assert.Equal(t, 64, component["chunk_overlap"])
}

func TestConfigureTransformation_Embedding(t *testing.T) {
	embedder := embedding.NewEmbedder(noopClient{},
		embedding.WithModel("custom-model"),
		embedding.WithMaxLength(256),
	)

	ct := ConfigureTransformation(transform.NewEmbedding(embedder))

	assert.Equal(t, TransformationEmbedding, ct.Type)
	component := ct.Params.Component()
	assert.Equal(t, "custom-model", component["model"])
	assert.Equal(t, 256, component["max_length"])
}

func TestConfigureTransformation_EmbeddingOmitsUnsetMaxLength(t *testing.T) {
	embedder := embedding.NewEmbedder(noopClient{})

	ct := ConfigureTransformation(transform.NewEmbedding(embedder))

	component := ct.Params.Component()
	assert.NotContains(t, component, "max_length")
}

func TestConfigureTransformation_UnknownComponent(t *testing.T) {
	ct := ConfigureTransformation(splitInTwo{})

	assert.Equal(t, TransformationUnknown, ct.Type)
	assert.Equal(t, "splitInTwo", ct.Name)
	assert.Equal(t, map[string]any{"name": "splitInTwo"}, ct.Params.Component())
}

func TestConfiguredTransformation_ItemUsesTypeAsWireName(t *testing.T) {
	item := ConfigureTransformation(transform.NewSentenceSplitter()).Item()

	assert.Equal(t, "sentence_splitter", item.TransformationName)
	assert.Contains(t, item.Component, "chunk_size")
}

func TestConfigureDocumentSource(t *testing.T) {
	doc := schema.NewDocument("report.txt", "quarterly numbers")
	doc.Metadata["source"] = "finance"

	ds := ConfigureDocumentSource(doc)

	assert.Equal(t, "report.txt", ds.Name)
	assert.Equal(t, SourceTypeDocument, ds.SourceType)
	assert.Equal(t, doc.ID.String(), ds.Params["id"])
	assert.Equal(t, "quarterly numbers", ds.Params["content"])
	assert.Equal(t, doc.Metadata, ds.Params["metadata"])
}

func TestConfigureReaderSource(t *testing.T) {
	r := &stubReader{remote: true, perRead: 1}

	ds := ConfigureReaderSource(r)

	assert.Equal(t, "stub", ds.Name)
	assert.Equal(t, "csv", ds.SourceType)
	assert.Equal(t, map[string]any{"stub": true}, ds.Params)
}

func TestConfigureDataSink(t *testing.T) {
	sink := ConfigureDataSink(&recordingStore{})

	assert.Equal(t, "recording", sink.Name)
	assert.Equal(t, "in_mem", sink.SinkType)

	item := sink.Item()
	assert.Equal(t, "recording", item.Name)
	assert.Equal(t, "in_mem", item.SinkType)
	require.NotNil(t, item.Component)
}
