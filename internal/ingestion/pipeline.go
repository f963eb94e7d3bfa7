package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/HairlessVillager/llama-index/internal/apperr"
	"github.com/HairlessVillager/llama-index/internal/embedding"
	"github.com/HairlessVillager/llama-index/internal/platform"
	"github.com/HairlessVillager/llama-index/internal/reader"
	"github.com/HairlessVillager/llama-index/internal/schema"
	"github.com/HairlessVillager/llama-index/internal/transform"
	"github.com/HairlessVillager/llama-index/internal/vectorstore"
)

const (
	DefaultPipelineName = "pipeline"
	DefaultProjectName  = "project"

	defaultEmbeddingBaseURL = "http://localhost:11434"
)

// Pipeline applies an ordered list of transformation steps to documents and
// optionally persists embedded nodes to a vector store. A pipeline runs
// locally in process, or registers itself with the platform and runs there.
//
// The configured transformation list is derived once at construction and
// stays index-aligned with the live list.
type Pipeline struct {
	name    string
	baseURL string

	transformations []transform.Component
	configured      []ConfiguredTransformation

	documents   []*schema.Document
	reader      reader.Reader
	vectorStore vectorstore.Store

	client platform.API
}

type Option func(*Pipeline)

func WithTransformations(components ...transform.Component) Option {
	return func(p *Pipeline) {
		p.transformations = components
	}
}

func WithDocuments(docs ...*schema.Document) Option {
	return func(p *Pipeline) {
		p.documents = docs
	}
}

func WithReader(r reader.Reader) Option {
	return func(p *Pipeline) {
		p.reader = r
	}
}

// WithVectorStore sets the sink. The store is referenced, not owned; it may
// be shared with other pipelines.
func WithVectorStore(s vectorstore.Store) Option {
	return func(p *Pipeline) {
		p.vectorStore = s
	}
}

func WithBaseURL(baseURL string) Option {
	return func(p *Pipeline) {
		p.baseURL = baseURL
	}
}

// WithClient overrides the platform client built from the base URL.
func WithClient(client platform.API) Option {
	return func(p *Pipeline) {
		p.client = client
	}
}

func New(name string, opts ...Option) (*Pipeline, error) {
	if name == "" {
		name = DefaultPipelineName
	}

	p := &Pipeline{
		name:    name,
		baseURL: platform.DefaultBaseURL,
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.documents == nil && p.reader == nil {
		return nil, apperr.NewConfig("must provide either documents or a reader")
	}

	if len(p.transformations) == 0 {
		defaults, err := defaultTransformations()
		if err != nil {
			return nil, err
		}
		p.transformations = defaults
	}

	p.configured = make([]ConfiguredTransformation, 0, len(p.transformations))
	for _, c := range p.transformations {
		p.configured = append(p.configured, ConfigureTransformation(c))
	}

	if p.client == nil {
		client, err := platform.NewClient(p.baseURL)
		if err != nil {
			return nil, err
		}
		p.client = client
	}

	return p, nil
}

func defaultTransformations() ([]transform.Component, error) {
	client, err := embedding.NewOllamaClient(defaultEmbeddingBaseURL)
	if err != nil {
		return nil, err
	}
	return []transform.Component{
		transform.NewSentenceSplitter(),
		transform.NewEmbedding(embedding.NewEmbedder(client)),
	}, nil
}

func (p *Pipeline) Name() string {
	return p.name
}

// Documents returns the pipeline's document collection. Registering a
// pipeline with a non-remote reader grows this collection.
func (p *Pipeline) Documents() []*schema.Document {
	return p.documents
}

func (p *Pipeline) Transformations() []transform.Component {
	return p.transformations
}

func (p *Pipeline) ConfiguredTransformations() []ConfiguredTransformation {
	return p.configured
}

// RunLocal assembles the input batch (documents first, then reader output,
// concatenated without deduplication), folds the transformation steps over
// it in place, and writes every embedded node to the vector store if one is
// configured. The full transformed batch is returned, including nodes that
// were skipped for the sink write.
func (p *Pipeline) RunLocal(ctx context.Context, opts ...transform.Option) ([]*schema.Node, error) {
	start := time.Now()
	slog.Info("Starting local pipeline run",
		"pipeline", p.name,
		"documents", len(p.documents),
		"transformations", len(p.transformations),
	)

	var input []*schema.Node
	for _, doc := range p.documents {
		input = append(input, doc.AsNode())
	}

	if p.reader != nil {
		docs, err := p.reader.Read(ctx)
		if err != nil {
			return nil, fmt.Errorf("read input: %w", err)
		}
		for _, doc := range docs {
			input = append(input, doc.AsNode())
		}
	}

	nodes, err := transform.Run(ctx, input, p.transformations, true, opts...)
	if err != nil {
		return nil, err
	}

	if p.vectorStore != nil {
		embedded := make([]*schema.Node, 0, len(nodes))
		for _, n := range nodes {
			if n.IsEmbedded() {
				embedded = append(embedded, n)
			}
		}
		if err := p.vectorStore.Add(ctx, embedded); err != nil {
			return nil, fmt.Errorf("write to vector store: %w", err)
		}
		slog.Info("Wrote embedded nodes to vector store",
			"pipeline", p.name,
			"written", len(embedded),
			"skipped", len(nodes)-len(embedded),
		)
	}

	slog.Info("Local pipeline run completed",
		"pipeline", p.name,
		"nodes", len(nodes),
		"duration", time.Since(start),
	)

	return nodes, nil
}

// Register serializes the pipeline and upserts it with the platform under the
// named project. It returns the remote pipeline ID.
//
// Source derivation order is deterministic: a remote-fetchable reader first,
// then one source per document in collection order. A non-remote reader is
// read locally here and its output merged into the document collection, so
// repeated Register calls re-read and re-append.
func (p *Pipeline) Register(ctx context.Context, projectName string, verbose bool) (string, error) {
	if projectName == "" {
		projectName = DefaultProjectName
	}

	items := make([]platform.ConfiguredTransformationItem, 0, len(p.configured))
	for _, ct := range p.configured {
		items = append(items, ct.Item())
	}

	var sinks []platform.DataSinkCreate
	if p.vectorStore != nil {
		sinks = append(sinks, ConfigureDataSink(p.vectorStore).Item())
	}

	var sources []platform.DataSourceCreate
	if p.reader != nil {
		if p.reader.IsRemote() {
			sources = append(sources, ConfigureReaderSource(p.reader).Item())
		} else if err := p.mergeReaderDocuments(ctx); err != nil {
			return "", err
		}
	}

	for _, doc := range p.documents {
		sources = append(sources, ConfigureDocumentSource(doc).Item())
	}

	project, err := p.client.CreateProject(ctx, projectName)
	if err != nil {
		return "", fmt.Errorf("create project: %w", err)
	}

	pipeline, err := p.client.UpsertPipeline(ctx, project.ID, platform.PipelineCreate{
		Name:                      p.name,
		ConfiguredTransformations: items,
		DataSinks:                 sinks,
		DataSources:               sources,
	})
	if err != nil {
		return "", fmt.Errorf("upsert pipeline: %w", err)
	}

	if verbose {
		slog.Info("Pipeline available", "url", platform.PlaygroundURL(pipeline.ID))
	}

	return pipeline.ID, nil
}

// mergeReaderDocuments reads the non-remote reader now and appends its output
// to the document collection. No deduplication is performed.
func (p *Pipeline) mergeReaderDocuments(ctx context.Context) error {
	docs, err := p.reader.Read(ctx)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}
	p.documents = append(p.documents, docs...)
	return nil
}

// RunRemote registers the pipeline and triggers a remote execution. It
// returns the execution ID, an opaque token.
func (p *Pipeline) RunRemote(ctx context.Context, projectName string) (string, error) {
	pipelineID, err := p.Register(ctx, projectName, false)
	if err != nil {
		return "", err
	}

	execution, err := p.client.CreateExecution(ctx, pipelineID)
	if err != nil {
		return "", fmt.Errorf("create execution: %w", err)
	}

	slog.Info("Find your remote results", "url", platform.ExecutionURL(execution.ID))

	return execution.ID, nil
}
