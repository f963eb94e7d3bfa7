package pg

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/HairlessVillager/llama-index/internal/schema"
	"github.com/HairlessVillager/llama-index/internal/vectorstore"
)

const nodesTable = "nodes"

// Store persists embedded nodes in Postgres with a pgvector column.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(pool *ConnectionPool) (*Store, error) {
	return &Store{db: pool.GetConn()}, nil
}

func (s *Store) Add(ctx context.Context, nodes []*schema.Node) error {
	if len(nodes) == 0 {
		return nil
	}

	batchCmd := `
		INSERT INTO nodes (id, content, metadata, embedding)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET content = EXCLUDED.content,
		    metadata = EXCLUDED.metadata,
		    embedding = EXCLUDED.embedding
	`

	for _, node := range nodes {
		if node.ID == uuid.Nil {
			node.ID = uuid.New()
		}

		metadataJSON, err := json.Marshal(node.Metadata)
		if err != nil {
			return fmt.Errorf("failed to marshal metadata for node %s: %w", node.ID, err)
		}

		vec := pgvector.NewVector(node.Embedding)
		if _, err := s.db.Exec(ctx, batchCmd, node.ID, node.Content, metadataJSON, vec); err != nil {
			return fmt.Errorf("failed to upsert node %s: %w", node.ID, err)
		}
	}

	return nil
}

func (s *Store) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM nodes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count nodes: %w", err)
	}
	return count, nil
}

func (s *Store) Name() string {
	return nodesTable
}

func (s *Store) Type() vectorstore.Type {
	return vectorstore.PG
}

func (s *Store) Params() map[string]any {
	return map[string]any{
		"table": nodesTable,
	}
}
