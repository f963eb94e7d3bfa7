package reader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMapping() *DocumentMapping {
	return &DocumentMapping{
		Kind:           "DocumentMapping",
		Version:        "v1",
		Metadata:       Metadata{Name: "test mapping"},
		NameField:      "title",
		ContentFields:  []string{"title", "body"},
		MetadataFields: []string{"author"},
	}
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCSVReader_Read(t *testing.T) {
	path := writeCSV(t, `title,body,author
Go Concurrency,Channels and goroutines.,John Doe
Understanding Interfaces,Accept interfaces.,Jane Smith`)

	r := NewCSVReader(path, testMapping())

	docs, err := r.Read(t.Context())
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, "Go Concurrency", docs[0].Name)
	assert.Equal(t, "Go Concurrency\nChannels and goroutines.", docs[0].Content)
	assert.Equal(t, "John Doe", docs[0].Metadata["author"])

	assert.Equal(t, "Understanding Interfaces", docs[1].Name)
}

func TestCSVReader_Read_MissingFile(t *testing.T) {
	r := NewCSVReader("/does/not/exist.csv", testMapping())

	_, err := r.Read(t.Context())
	require.Error(t, err)
}

func TestCSVReader_IsNotRemote(t *testing.T) {
	r := NewCSVReader("dataset.csv", testMapping())

	assert.False(t, r.IsRemote())
	assert.Equal(t, TypeCSV, r.Type())
}

func TestCSVReader_Params(t *testing.T) {
	path := writeCSV(t, "title,body,author\n")
	r := NewCSVReader(path, testMapping())

	params := r.Params()
	assert.Equal(t, path, params["path"])
	assert.Equal(t, []string{"title", "body"}, params["contentFields"])
}
