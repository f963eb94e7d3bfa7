package embedding

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Embedder turns raw text into vectors using a backing embedding client.
type Embedder struct {
	maxLength *int
	model     string

	client Client
}

type EmbedderOption func(e *Embedder)

func NewEmbedder(client Client, opts ...EmbedderOption) *Embedder {
	base := &Embedder{
		model:  defaultModel,
		client: client,
	}

	for _, opt := range opts {
		opt(base)
	}

	return base
}

func WithModel(model string) EmbedderOption {
	return func(e *Embedder) {
		e.model = model
	}
}

func WithMaxLength(length int) EmbedderOption {
	return func(e *Embedder) {
		e.maxLength = &length
	}
}

// Model returns the model name this embedder generates vectors with.
func (e *Embedder) Model() string {
	return e.model
}

// MaxLength returns the vector truncation length, or nil when vectors are
// kept at the model's native dimensionality.
func (e *Embedder) MaxLength() *int {
	return e.maxLength
}

func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	embed, err := e.client.Generate(ctx, Request{
		Model:  e.model,
		Prompt: strings.TrimSpace(text),
	})
	if err != nil {
		return nil, err
	}

	return e.truncate(embed.Embedding), nil
}

func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	slog.Debug("Bulk embedding texts", "count", len(texts))

	resp, err := e.client.GenerateBatch(ctx, BatchRequest{
		Model:   e.model,
		Prompts: texts,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(resp.Embeddings))
	}

	vecs := make([][]float32, len(texts))
	for i, emb := range resp.Embeddings {
		vecs[i] = e.truncate(emb)
	}

	slog.Debug("Generated bulk embeddings", "count", len(vecs), "model", e.model)
	return vecs, nil
}

func (e *Embedder) truncate(vec []float32) []float32 {
	if e.maxLength != nil && len(vec) > *e.maxLength {
		return vec[:*e.maxLength]
	}
	return vec
}
