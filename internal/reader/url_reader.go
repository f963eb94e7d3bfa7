package reader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/HairlessVillager/llama-index/internal/schema"
)

const defaultFetchTimeout = 30 * time.Second

// URLReader fetches a single URL and yields its body as one document. The
// platform can perform this fetch itself, so the reader is remote-fetchable
// and registration serializes the reader instead of its output.
type URLReader struct {
	url  *url.URL
	http *http.Client
}

type URLReaderOption func(*URLReader)

func WithURLHttpClient(client *http.Client) URLReaderOption {
	return func(ur *URLReader) {
		ur.http = client
	}
}

func NewURLReader(rawURL string, opts ...URLReaderOption) (*URLReader, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	ur := &URLReader{
		url: u,
		http: &http.Client{
			Timeout: defaultFetchTimeout,
		},
	}

	for _, opt := range opts {
		opt(ur)
	}

	return ur, nil
}

func (ur *URLReader) Name() string {
	return ur.url.String()
}

func (ur *URLReader) Type() Type {
	return TypeURL
}

func (ur *URLReader) IsRemote() bool {
	return true
}

func (ur *URLReader) Params() map[string]any {
	return map[string]any{
		"url":    ur.url.String(),
		"host":   ur.url.Host,
		"scheme": ur.url.Scheme,
	}
}

func (ur *URLReader) Read(ctx context.Context) ([]*schema.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ur.url.String(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := ur.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	doc := schema.NewDocument(ur.url.String(), string(body))
	doc.Metadata["url"] = ur.url.String()
	doc.Metadata["host"] = ur.url.Host
	return []*schema.Document{doc}, nil
}
