package factory

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/HairlessVillager/llama-index/internal/vectorstore"
	"github.com/HairlessVillager/llama-index/internal/vectorstore/es"
	"github.com/HairlessVillager/llama-index/internal/vectorstore/pg"
)

type StoreConfig struct {
	vectorstore.Type
	Pg *pg.PoolConfig
	Es *es.ClientConfig
}

func LoadEnv() (*StoreConfig, error) {
	storeType := (vectorstore.Type)(os.Getenv("VECTOR_STORE_TYPE"))
	if storeType == "" {
		slog.Error("VECTOR_STORE_TYPE environment variable is not set")
		return nil, fmt.Errorf("VECTOR_STORE_TYPE environment variable is not set")
	}
	if storeType != vectorstore.ES && storeType != vectorstore.PG && storeType != vectorstore.InMem {
		slog.Error("Invalid VECTOR_STORE_TYPE environment variable value", "value", storeType)
		return nil, fmt.Errorf(
			"invalid VECTOR_STORE_TYPE environment variable value: %s, expected one of %v",
			storeType,
			[]vectorstore.Type{vectorstore.ES, vectorstore.PG, vectorstore.InMem})
	}

	var esCfg *es.ClientConfig
	if storeType == vectorstore.ES {
		dims, _ := strconv.Atoi(os.Getenv("ES_VECTOR_DIMS"))
		esCfg = &es.ClientConfig{
			Addresses: strings.Split(os.Getenv("ES_ADDRESSES"), ","),
			IndexName: os.Getenv("ES_INDEX_NAME"),
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
			Dims:      dims,
		}
		if len(esCfg.Addresses) == 0 || esCfg.IndexName == "" {
			slog.Error("Elasticsearch configuration is incomplete", "addresses", esCfg.Addresses, "indexName", esCfg.IndexName)
			return nil, fmt.Errorf("elasticsearch configuration is incomplete: addresses or index name is missing")
		}
	}

	var pgCfg *pg.PoolConfig
	if storeType == vectorstore.PG {
		connStr := os.Getenv("PG_CONN_STR")
		if connStr == "" {
			slog.Error("PG_CONN_STR environment variable is not set")
			return nil, fmt.Errorf("PG_CONN_STR environment variable is not set")
		}
		pgCfg = &pg.PoolConfig{ConnStr: connStr}
	}

	return &StoreConfig{
		Type: storeType,
		Pg:   pgCfg,
		Es:   esCfg,
	}, nil
}
