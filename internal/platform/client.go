package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/HairlessVillager/llama-index/internal/apperr"
)

// API is the registration surface consumed by pipelines: create or reuse a
// project, upsert a pipeline definition, trigger an execution.
type API interface {
	CreateProject(ctx context.Context, name string) (*Project, error)
	UpsertPipeline(ctx context.Context, projectID string, req PipelineCreate) (*PipelineResource, error)
	CreateExecution(ctx context.Context, pipelineID string) (*PipelineExecution, error)
}

type ClientConfig func(client *Client)

// Client is the HTTP implementation of the registration API.
type Client struct {
	base url.URL
	http *http.Client
}

const defaultTimeout = 60 * time.Second

func NewClient(baseUrl string, opts ...ClientConfig) (*Client, error) {
	base, err := url.Parse(baseUrl)
	if err != nil {
		return nil, err
	}

	client := &Client{
		base: *base,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
	}

	for _, cfg := range opts {
		cfg(client)
	}

	return client, nil
}

func WithHttpClient(httpClient *http.Client) ClientConfig {
	return func(client *Client) {
		client.http = httpClient
	}
}

func (c *Client) CreateProject(ctx context.Context, name string) (*Project, error) {
	if name == "" {
		return nil, apperr.NewValidation("missing project name")
	}

	var project Project
	if err := c.do(ctx, http.MethodPost, "/api/v1/projects", ProjectCreate{Name: name}, &project); err != nil {
		return nil, err
	}

	if project.ID == "" {
		return nil, apperr.NewProtocol("project response missing id")
	}

	return &project, nil
}

func (c *Client) UpsertPipeline(ctx context.Context, projectID string, req PipelineCreate) (*PipelineResource, error) {
	if projectID == "" {
		return nil, apperr.NewValidation("missing project id")
	}
	if req.Name == "" {
		return nil, apperr.NewValidation("missing pipeline name")
	}

	path := fmt.Sprintf("/api/v1/projects/%s/pipelines", projectID)

	var pipeline PipelineResource
	if err := c.do(ctx, http.MethodPut, path, req, &pipeline); err != nil {
		return nil, err
	}

	if pipeline.ID == "" {
		return nil, apperr.NewProtocol("pipeline response missing id")
	}

	return &pipeline, nil
}

func (c *Client) CreateExecution(ctx context.Context, pipelineID string) (*PipelineExecution, error) {
	if pipelineID == "" {
		return nil, apperr.NewValidation("missing pipeline id")
	}

	path := fmt.Sprintf("/api/v1/pipelines/%s/executions", pipelineID)

	var execution PipelineExecution
	if err := c.do(ctx, http.MethodPost, path, nil, &execution); err != nil {
		return nil, err
	}

	if execution.ID == "" {
		return nil, apperr.NewProtocol("execution response missing id")
	}

	return &execution, nil
}

func (c *Client) do(ctx context.Context, method, path string, reqData, respData any) error {
	var body io.Reader
	if reqData != nil {
		reqDataBytes, err := json.Marshal(reqData)
		if err != nil {
			return err
		}
		body = bytes.NewReader(reqDataBytes)
	}

	reqURL := c.base.JoinPath(path)
	request, err := http.NewRequestWithContext(ctx, method, reqURL.String(), body)
	if err != nil {
		return err
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, respData); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}
