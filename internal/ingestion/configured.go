// Package ingestion composes transformation steps into named pipelines that
// run locally or register with the platform for remote execution.
package ingestion

import (
	"github.com/HairlessVillager/llama-index/internal/platform"
	"github.com/HairlessVillager/llama-index/internal/reader"
	"github.com/HairlessVillager/llama-index/internal/schema"
	"github.com/HairlessVillager/llama-index/internal/transform"
	"github.com/HairlessVillager/llama-index/internal/vectorstore"
)

// TransformationType tags the wire form of a transformation step.
type TransformationType string

const (
	TransformationSentenceSplitter TransformationType = "sentence_splitter"
	TransformationEmbedding        TransformationType = "embedding"

	// TransformationUnknown covers steps this version cannot snapshot in a
	// typed form. The component map then carries only the step name.
	TransformationUnknown TransformationType = "unknown"
)

// TransformationParams is the wire-parameter record of one transformation
// variant. Records hold only serializable configuration; transient runtime
// fields (HTTP clients, progress callbacks) have no place in them.
type TransformationParams interface {
	Component() map[string]any
}

type SplitterParams struct {
	ChunkSize    int
	ChunkOverlap int
}

func (p SplitterParams) Component() map[string]any {
	return map[string]any{
		"chunk_size":    p.ChunkSize,
		"chunk_overlap": p.ChunkOverlap,
	}
}

type EmbeddingParams struct {
	Model     string
	MaxLength *int
}

func (p EmbeddingParams) Component() map[string]any {
	component := map[string]any{
		"model": p.Model,
	}
	if p.MaxLength != nil {
		component["max_length"] = *p.MaxLength
	}
	return component
}

type UnknownParams map[string]any

func (p UnknownParams) Component() map[string]any {
	return map[string]any(p)
}

// ConfiguredTransformation is an immutable snapshot of a live transformation
// step, created once at pipeline construction and used only for registration.
type ConfiguredTransformation struct {
	Type   TransformationType
	Name   string
	Params TransformationParams
}

// ConfigureTransformation snapshots a live component into its wire variant.
func ConfigureTransformation(c transform.Component) ConfiguredTransformation {
	switch t := c.(type) {
	case *transform.SentenceSplitter:
		return ConfiguredTransformation{
			Type: TransformationSentenceSplitter,
			Name: t.Name(),
			Params: SplitterParams{
				ChunkSize:    t.ChunkSize(),
				ChunkOverlap: t.ChunkOverlap(),
			},
		}
	case *transform.Embedding:
		return ConfiguredTransformation{
			Type: TransformationEmbedding,
			Name: t.Name(),
			Params: EmbeddingParams{
				Model:     t.Embedder().Model(),
				MaxLength: t.Embedder().MaxLength(),
			},
		}
	default:
		return ConfiguredTransformation{
			Type:   TransformationUnknown,
			Name:   c.Name(),
			Params: UnknownParams{"name": c.Name()},
		}
	}
}

func (ct ConfiguredTransformation) Item() platform.ConfiguredTransformationItem {
	return platform.ConfiguredTransformationItem{
		TransformationName: string(ct.Type),
		Component:          ct.Params.Component(),
	}
}

// SourceTypeDocument tags sources derived from a single in-memory document.
const SourceTypeDocument = "document"

// ConfiguredDataSource is a snapshot of an input source: either a
// remote-fetchable reader, or one document of the pipeline's collection.
type ConfiguredDataSource struct {
	Name       string
	SourceType string
	Params     map[string]any
}

func ConfigureReaderSource(r reader.Reader) ConfiguredDataSource {
	return ConfiguredDataSource{
		Name:       r.Name(),
		SourceType: string(r.Type()),
		Params:     r.Params(),
	}
}

func ConfigureDocumentSource(doc *schema.Document) ConfiguredDataSource {
	return ConfiguredDataSource{
		Name:       doc.Name,
		SourceType: SourceTypeDocument,
		Params: map[string]any{
			"id":       doc.ID.String(),
			"name":     doc.Name,
			"content":  doc.Content,
			"metadata": doc.Metadata,
		},
	}
}

func (ds ConfiguredDataSource) Item() platform.DataSourceCreate {
	return platform.DataSourceCreate{
		Name:       ds.Name,
		SourceType: ds.SourceType,
		Component:  ds.Params,
	}
}

// ConfiguredDataSink is a snapshot of a vector store sink.
type ConfiguredDataSink struct {
	Name     string
	SinkType string
	Params   map[string]any
}

func ConfigureDataSink(s vectorstore.Store) ConfiguredDataSink {
	return ConfiguredDataSink{
		Name:     s.Name(),
		SinkType: string(s.Type()),
		Params:   s.Params(),
	}
}

func (ds ConfiguredDataSink) Item() platform.DataSinkCreate {
	return platform.DataSinkCreate{
		Name:      ds.Name,
		SinkType:  ds.SinkType,
		Component: ds.Params,
	}
}
