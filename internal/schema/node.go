package schema

import (
	"time"

	"github.com/google/uuid"
)

// RelationshipType identifies how one node relates to another.
type RelationshipType string

const (
	RelationshipSource   RelationshipType = "source"
	RelationshipPrevious RelationshipType = "previous"
	RelationshipNext     RelationshipType = "next"
	RelationshipParent   RelationshipType = "parent"
	RelationshipChild    RelationshipType = "child"
)

// Node is the smallest granule of content flowing through a pipeline.
// Transformations may enrich it in place (embedding) or replace it with
// derived nodes (splitting).
type Node struct {
	ID            uuid.UUID                      `json:"id"`
	Content       string                         `json:"content"`
	Metadata      map[string]any                 `json:"metadata,omitempty"`
	Embedding     []float32                      `json:"embedding,omitempty"`
	Relationships map[RelationshipType]uuid.UUID `json:"relationships,omitempty"`
	CreatedAt     time.Time                      `json:"createdAt"`
	UpdatedAt     time.Time                      `json:"updatedAt"`
}

// NewNode creates a node with a fresh ID and initialized metadata.
func NewNode(content string) *Node {
	now := time.Now().UTC()
	return &Node{
		ID:            uuid.New(),
		Content:       content,
		Metadata:      make(map[string]any),
		Relationships: make(map[RelationshipType]uuid.UUID),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// IsEmbedded reports whether the node carries a computed vector.
// Nodes without a vector are excluded from sink writes.
func (n *Node) IsEmbedded() bool {
	return len(n.Embedding) > 0
}

// RelatedTo records a relationship to another node.
func (n *Node) RelatedTo(rel RelationshipType, id uuid.UUID) {
	if n.Relationships == nil {
		n.Relationships = make(map[RelationshipType]uuid.UUID)
	}
	n.Relationships[rel] = id
}

// Document is a raw input item prior to node-level splitting. A document is
// itself a node so it can flow through transformations unchanged.
type Document struct {
	Node

	Name string `json:"name"`
}

// NewDocument creates a document with a fresh ID.
func NewDocument(name, content string) *Document {
	doc := &Document{
		Node: *NewNode(content),
		Name: name,
	}
	return doc
}

// AsNode returns the node view of the document. The returned pointer aliases
// the document, so in-place transformations are visible to the caller.
func (d *Document) AsNode() *Node {
	return &d.Node
}
