package transform

import (
	"context"
	"strings"

	"github.com/HairlessVillager/llama-index/internal/schema"
)

const (
	defaultChunkSize    = 1024
	defaultChunkOverlap = 200
)

// SentenceSplitter splits each node into chunk nodes along sentence
// boundaries. Chunks are packed up to the configured size with optional
// overlap, so one input node usually expands into several output nodes. Every
// chunk records a source relationship back to the node it was split from.
type SentenceSplitter struct {
	chunkSize    int
	chunkOverlap int
}

type SplitterOption func(*SentenceSplitter)

func WithChunkSize(size int) SplitterOption {
	return func(s *SentenceSplitter) {
		s.chunkSize = size
	}
}

func WithChunkOverlap(overlap int) SplitterOption {
	return func(s *SentenceSplitter) {
		s.chunkOverlap = overlap
	}
}

func NewSentenceSplitter(opts ...SplitterOption) *SentenceSplitter {
	s := &SentenceSplitter{
		chunkSize:    defaultChunkSize,
		chunkOverlap: defaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.chunkOverlap >= s.chunkSize {
		s.chunkOverlap = s.chunkSize / 4
	}

	return s
}

func (s *SentenceSplitter) ChunkSize() int {
	return s.chunkSize
}

func (s *SentenceSplitter) ChunkOverlap() int {
	return s.chunkOverlap
}

func (s *SentenceSplitter) Name() string {
	return "SentenceSplitter"
}

func (s *SentenceSplitter) Transform(ctx context.Context, nodes []*schema.Node, opts ...Option) ([]*schema.Node, error) {
	result := make([]*schema.Node, 0, len(nodes))
	for _, node := range nodes {
		if node == nil {
			continue
		}
		result = append(result, s.splitNode(node)...)
	}
	return result, nil
}

func (s *SentenceSplitter) splitNode(node *schema.Node) []*schema.Node {
	chunks := s.packSentences(splitSentences(node.Content))

	out := make([]*schema.Node, 0, len(chunks))
	var prev *schema.Node
	for _, chunk := range chunks {
		child := schema.NewNode(chunk)
		for k, v := range node.Metadata {
			child.Metadata[k] = v
		}
		child.RelatedTo(schema.RelationshipSource, node.ID)
		if prev != nil {
			child.RelatedTo(schema.RelationshipPrevious, prev.ID)
			prev.RelatedTo(schema.RelationshipNext, child.ID)
		}
		prev = child
		out = append(out, child)
	}
	return out
}

// packSentences greedily packs sentences into chunks of at most chunkSize
// runes, carrying chunkOverlap trailing runes into the next chunk.
func (s *SentenceSplitter) packSentences(sentences []string) []string {
	var chunks []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		chunk := current.String()
		chunks = append(chunks, chunk)
		current.Reset()
		if s.chunkOverlap > 0 {
			runes := []rune(chunk)
			if len(runes) > s.chunkOverlap {
				runes = runes[len(runes)-s.chunkOverlap:]
			}
			current.WriteString(string(runes))
		}
	}

	for _, sentence := range sentences {
		if current.Len() > 0 && current.Len()+len(sentence)+1 > s.chunkSize {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sentence)
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

var sentenceEnders = map[rune]bool{'.': true, '!': true, '?': true, '\n': true}

func splitSentences(content string) []string {
	var sentences []string
	var current strings.Builder

	for _, r := range content {
		current.WriteRune(r)
		if sentenceEnders[r] {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}

	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}
