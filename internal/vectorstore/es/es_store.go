package es

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/google/uuid"

	"github.com/HairlessVillager/llama-index/internal/schema"
	"github.com/HairlessVillager/llama-index/internal/vectorstore"
)

type Store struct {
	client    *elasticsearch.TypedClient
	indexName string
	config    ClientConfig
}

// Document represents the node structure indexed in Elasticsearch.
type Document struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Embedding []float32      `json:"embedding"`
	IndexedAt time.Time      `json:"indexed_at"`
}

func NewStore(ctx context.Context, config ClientConfig) (*Store, error) {
	client, err := newClient(config)

	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}
	store := &Store{
		client:    client,
		indexName: config.IndexName,
		config:    config,
	}

	if err := store.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return store, nil
}

func (e *Store) Add(ctx context.Context, nodes []*schema.Node) error {
	if len(nodes) == 0 {
		return nil
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Index:         e.indexName,
		Client:        e.client,
		NumWorkers:    4,
		FlushBytes:    5e+6, // 5MB
		FlushInterval: 30 * time.Second,
	})

	if err != nil {
		return fmt.Errorf("failed to create bulk indexer: %w", err)
	}

	var successful, failed int64

	for _, node := range nodes {
		doc := e.nodeToESDocument(node)

		docBytes, err := json.Marshal(doc)
		if err != nil {
			slog.Error("failed to marshal document", "error", err, "id", doc.ID)
			failed++
			continue
		}

		err = bi.Add(
			ctx,
			esutil.BulkIndexerItem{
				Action:     "index",
				DocumentID: doc.ID,
				Body:       bytes.NewReader(docBytes),
				OnSuccess: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem) {
					successful++
				},
				OnFailure: func(ctx context.Context, item esutil.BulkIndexerItem, res esutil.BulkIndexerResponseItem, err error) {
					failed++
					if err != nil {
						slog.Error("bulk index error", "error", err, "id", item.DocumentID)
					} else {
						slog.Error("bulk index error", "status", res.Status, "error", res.Error.Type, "reason", res.Error.Reason, "id", item.DocumentID)
					}
				},
			},
		)
		if err != nil {
			failed++
			slog.Error("failed to add document to bulk indexer", "error", err, "id", doc.ID)
		}
	}

	if err := bi.Close(ctx); err != nil {
		return fmt.Errorf("failed to close bulk indexer: %w", err)
	}

	slog.Info("Bulk indexing completed",
		"successful", successful,
		"failed", failed,
		"total", len(nodes),
		"index", e.indexName)

	if failed > 0 {
		return fmt.Errorf("failed to index %d out of %d nodes", failed, len(nodes))
	}

	return nil
}

func (e *Store) nodeToESDocument(node *schema.Node) Document {
	id := node.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return Document{
		ID:        id.String(),
		Content:   node.Content,
		Metadata:  node.Metadata,
		Embedding: node.Embedding,
		IndexedAt: time.Now(),
	}
}

func (e *Store) EnsureIndex(ctx context.Context) error {
	existsRes, err := e.client.Indices.Exists(e.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}

	if existsRes {
		slog.Info("Index already exists", "index", e.indexName)
		return nil
	}

	embeddingProp := types.NewDenseVectorProperty()
	if e.config.Dims > 0 {
		dims := e.config.Dims
		embeddingProp.Dims = &dims
	}

	mappings := types.TypeMapping{
		Properties: map[string]types.Property{
			"id":         types.NewKeywordProperty(),
			"content":    types.NewTextProperty(),
			"embedding":  embeddingProp,
			"indexed_at": types.NewDateProperty(),
		},
	}

	createRes, err := e.client.Indices.Create(e.indexName).
		Mappings(&mappings).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	slog.Info("Index created", "index", e.indexName, "acknowledged", createRes.Acknowledged)
	return nil
}

func (e *Store) Name() string {
	return e.indexName
}

func (e *Store) Type() vectorstore.Type {
	return vectorstore.ES
}

func (e *Store) Params() map[string]any {
	return map[string]any{
		"addresses": e.config.Addresses,
		"index":     e.indexName,
		"dims":      e.config.Dims,
	}
}
