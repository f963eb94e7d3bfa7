package factory

import (
	"context"
	"fmt"

	"github.com/HairlessVillager/llama-index/internal/vectorstore"
	"github.com/HairlessVillager/llama-index/internal/vectorstore/es"
	"github.com/HairlessVillager/llama-index/internal/vectorstore/in_mem"
	"github.com/HairlessVillager/llama-index/internal/vectorstore/pg"
)

// NewStore creates a vectorstore.Store based on the store type.
func NewStore(storeType vectorstore.Type, ctx context.Context, cfg interface{}) (vectorstore.Store, error) {
	switch storeType {
	case vectorstore.PG:
		pgConfig, ok := cfg.(pg.PoolConfig)
		if !ok {
			return nil, fmt.Errorf("invalid config type for PostgreSQL store: expected pg.PoolConfig")
		}

		pool, err := pg.NewConnectionPool(ctx, pgConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}

		return pg.NewStore(pool)

	case vectorstore.ES:
		esConfig, ok := cfg.(es.ClientConfig)
		if !ok {
			return nil, fmt.Errorf("invalid config type for Elasticsearch store: expected es.ClientConfig")
		}

		return es.NewStore(ctx, esConfig)

	case vectorstore.InMem:
		return in_mem.NewInMemStore(), nil

	default:
		return nil, fmt.Errorf(string(vectorstore.ErrUnsupportedStore), storeType)
	}
}
