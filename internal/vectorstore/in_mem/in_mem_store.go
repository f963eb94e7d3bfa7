package in_mem

import (
	"context"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/HairlessVillager/llama-index/internal/schema"
	"github.com/HairlessVillager/llama-index/internal/vectorstore"
)

type InMemStore struct {
	storageLock sync.RWMutex
	storage     map[uuid.UUID]*schema.Node
}

func NewInMemStore() *InMemStore {
	return &InMemStore{
		storage: make(map[uuid.UUID]*schema.Node),
	}
}

func (s *InMemStore) Add(ctx context.Context, nodes []*schema.Node) error {
	s.storageLock.Lock()
	defer s.storageLock.Unlock()

	for _, node := range nodes {
		if node.ID == uuid.Nil {
			node.ID = uuid.New()
		}
		s.storage[node.ID] = node
		slog.Debug("Saving node to in-memory storage", "id", node.ID, "dims", len(node.Embedding))
	}

	return nil
}

func (s *InMemStore) Get(id uuid.UUID) (*schema.Node, bool) {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	node, ok := s.storage[id]
	return node, ok
}

func (s *InMemStore) Len() int {
	s.storageLock.RLock()
	defer s.storageLock.RUnlock()

	return len(s.storage)
}

func (s *InMemStore) Name() string {
	return "in-memory"
}

func (s *InMemStore) Type() vectorstore.Type {
	return vectorstore.InMem
}

func (s *InMemStore) Params() map[string]any {
	return map[string]any{}
}
