package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/HairlessVillager/llama-index/internal/embedding"
	"github.com/HairlessVillager/llama-index/internal/vectorstore/factory"
	"github.com/HairlessVillager/llama-index/pkg/config/env"
)

// RunMode selects how the pipeline executes.
type RunMode string

const (
	RunModeLocal    RunMode = "local"
	RunModeRegister RunMode = "register"
	RunModeRemote   RunMode = "remote"
)

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type AppConfig struct {
	ENV string
}

type IngestConfig struct {
	DatasetPath     string
	DataMappingPath string
	PipelineName    string
	ProjectName     string
	PlatformBaseURL string
	Mode            RunMode

	StoreConfig     *factory.StoreConfig
	EmbeddingConfig *embedding.Config
}

func (as *AppConfig) Load() (*IngestConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/ingest/.env")
	if err != nil {
		slog.Info("Skipping .env environment variables...", "error", err)
	}

	mappingPath := os.Getenv("MAPPING_CONFIG_PATH")
	if mappingPath == "" {
		slog.Error("MAPPING_CONFIG_PATH environment variable is not set")
		return nil, fmt.Errorf("MAPPING_CONFIG_PATH environment variable is not set")
	}

	dsPath := os.Getenv("DATASET_PATH")
	if dsPath == "" {
		slog.Error("DATASET_PATH environment variable is not set")
		return nil, fmt.Errorf("DATASET_PATH environment variable is not set")
	}

	mode := RunMode(os.Getenv("RUN_MODE"))
	switch mode {
	case "":
		mode = RunModeLocal
	case RunModeLocal, RunModeRegister, RunModeRemote:
	default:
		return nil, fmt.Errorf("invalid RUN_MODE value: %s, expected one of [local register remote]", mode)
	}

	cfg := &IngestConfig{
		DatasetPath:     dsPath,
		DataMappingPath: mappingPath,
		PipelineName:    os.Getenv("PIPELINE_NAME"),
		ProjectName:     os.Getenv("PROJECT_NAME"),
		PlatformBaseURL: os.Getenv("PLATFORM_BASE_URL"),
		Mode:            mode,
	}

	// A vector store and embedder are only needed for local execution.
	if mode == RunModeLocal {
		storeCfg, err := factory.LoadEnv()
		if err != nil {
			slog.Error("Failed to load vector store configuration from environment", "error", err)
			return nil, err
		}
		cfg.StoreConfig = storeCfg

		embedCfg, err := embedding.LoadConfigFromEnv()
		if err != nil {
			slog.Error("Failed to load embedding configuration from environment", "error", err)
			return nil, err
		}
		cfg.EmbeddingConfig = embedCfg
	}

	return cfg, nil
}
