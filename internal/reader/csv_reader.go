package reader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/HairlessVillager/llama-index/internal/schema"
)

// CSVReader reads a CSV dataset from disk and maps each row onto a document
// using a DocumentMapping. The read happens locally, so the reader is not
// remote-fetchable.
type CSVReader struct {
	path    string
	mapping *DocumentMapping
}

func NewCSVReader(path string, mapping *DocumentMapping) *CSVReader {
	return &CSVReader{
		path:    path,
		mapping: mapping,
	}
}

func (cr *CSVReader) Name() string {
	return filepath.Base(cr.path)
}

func (cr *CSVReader) Type() Type {
	return TypeCSV
}

func (cr *CSVReader) IsRemote() bool {
	return false
}

func (cr *CSVReader) Params() map[string]any {
	return map[string]any{
		"path":           cr.path,
		"nameField":      cr.mapping.NameField,
		"contentFields":  cr.mapping.ContentFields,
		"metadataFields": cr.mapping.MetadataFields,
	}
}

func (cr *CSVReader) Read(ctx context.Context) ([]*schema.Document, error) {
	file, err := os.Open(cr.path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer file.Close()

	return cr.readAll(ctx, file)
}

func (cr *CSVReader) readAll(ctx context.Context, r io.Reader) ([]*schema.Document, error) {
	csvReader := csv.NewReader(r)

	headers, err := csvReader.Read()
	if err != nil {
		return nil, err
	}

	var docs []*schema.Document
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		record := make(map[string]string, len(headers))
		for i, h := range headers {
			record[h] = row[i]
		}

		docs = append(docs, cr.mapRecord(record))
	}

	slog.Debug("Read CSV dataset", "path", cr.path, "documents", len(docs))
	return docs, nil
}

func (cr *CSVReader) mapRecord(record map[string]string) *schema.Document {
	var parts []string
	for _, field := range cr.mapping.ContentFields {
		if v := strings.TrimSpace(record[field]); v != "" {
			parts = append(parts, v)
		}
	}

	name := record[cr.mapping.NameField]
	if name == "" {
		name = cr.Name()
	}

	doc := schema.NewDocument(name, strings.Join(parts, "\n"))
	for _, field := range cr.mapping.MetadataFields {
		if v, ok := record[field]; ok {
			doc.Metadata[field] = v
		}
	}
	return doc
}
