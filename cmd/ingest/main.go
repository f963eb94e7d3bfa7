package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/HairlessVillager/llama-index/internal/embedding"
	"github.com/HairlessVillager/llama-index/internal/ingestion"
	"github.com/HairlessVillager/llama-index/internal/reader"
	"github.com/HairlessVillager/llama-index/internal/transform"
	"github.com/HairlessVillager/llama-index/internal/vectorstore"
	"github.com/HairlessVillager/llama-index/internal/vectorstore/factory"
)

func main() {
	appSettings := NewAppConfig()

	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	file, err := os.Open(cfg.DataMappingPath)
	if err != nil {
		slog.Error("failed to read mapping file", "error", err)
		os.Exit(1)
	}
	defer file.Close()

	loader := reader.NewYAMLMappingLoader(file)
	mapping, err := loader.Load(true)
	if err != nil {
		slog.Error("failed to load document mapping", "error", err)
		os.Exit(1)
	}

	docReader := reader.NewCSVReader(cfg.DatasetPath, mapping)

	pipeline, err := newPipeline(ctx, cfg, docReader)
	if err != nil {
		slog.Error("failed to create pipeline", "error", err)
		os.Exit(1)
	}

	switch cfg.Mode {
	case RunModeLocal:
		nodes, err := pipeline.RunLocal(ctx)
		if err != nil {
			slog.Error("failed to run pipeline", "error", err)
			os.Exit(1)
		}
		slog.Info("Pipeline run finished", "nodes", len(nodes))

	case RunModeRegister:
		id, err := pipeline.Register(ctx, cfg.ProjectName, true)
		if err != nil {
			slog.Error("failed to register pipeline", "error", err)
			os.Exit(1)
		}
		slog.Info("Pipeline registered", "pipelineId", id)

	case RunModeRemote:
		id, err := pipeline.RunRemote(ctx, cfg.ProjectName)
		if err != nil {
			slog.Error("failed to run pipeline remotely", "error", err)
			os.Exit(1)
		}
		slog.Info("Remote execution started", "executionId", id)
	}
}

func newPipeline(ctx context.Context, cfg *IngestConfig, docReader reader.Reader) (*ingestion.Pipeline, error) {
	opts := []ingestion.Option{
		ingestion.WithReader(docReader),
	}

	if cfg.PlatformBaseURL != "" {
		opts = append(opts, ingestion.WithBaseURL(cfg.PlatformBaseURL))
	}

	if cfg.Mode == RunModeLocal {
		store, err := newStore(ctx, cfg.StoreConfig)
		if err != nil {
			return nil, err
		}
		opts = append(opts, ingestion.WithVectorStore(store))

		embedder, err := newEmbedder(cfg.EmbeddingConfig)
		if err != nil {
			return nil, err
		}
		opts = append(opts,
			ingestion.WithTransformations(
				transform.NewSentenceSplitter(),
				transform.NewEmbedding(embedder),
			),
		)
	}

	return ingestion.New(cfg.PipelineName, opts...)
}

func newStore(ctx context.Context, cfg *factory.StoreConfig) (vectorstore.Store, error) {
	slog.Info("Creating vector store", "storeType", cfg.Type)

	switch cfg.Type {
	case vectorstore.PG:
		return factory.NewStore(cfg.Type, ctx, *cfg.Pg)
	case vectorstore.ES:
		return factory.NewStore(cfg.Type, ctx, *cfg.Es)
	default:
		return factory.NewStore(cfg.Type, ctx, nil)
	}
}

func newEmbedder(cfg *embedding.Config) (*embedding.Embedder, error) {
	client, err := embedding.NewOllamaClient(cfg.BaseURL)
	if err != nil {
		return nil, err
	}

	var opts []embedding.EmbedderOption
	if cfg.Model != "" {
		opts = append(opts, embedding.WithModel(cfg.Model))
	}
	if cfg.MaxLength != nil {
		opts = append(opts, embedding.WithMaxLength(*cfg.MaxLength))
	}

	return embedding.NewEmbedder(client, opts...), nil
}
