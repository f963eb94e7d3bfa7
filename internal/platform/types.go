// Package platform defines the registration API surface: the request and
// response shapes used to register pipelines and trigger remote executions,
// and an HTTP client implementing them.
package platform

import (
	"fmt"
	"time"
)

const (
	// DefaultBaseURL is the platform endpoint used when a pipeline does not
	// override it.
	DefaultBaseURL = "http://localhost:8000"

	playgroundURLFormat = "https://llamalink.llamaindex.ai/playground?id=%s"
	executionURLFormat  = "https://llamalink.llamaindex.ai/pipelines/execution?id=%s"
)

// PlaygroundURL returns a human-readable URL for a registered pipeline.
func PlaygroundURL(pipelineID string) string {
	return fmt.Sprintf(playgroundURLFormat, pipelineID)
}

// ExecutionURL returns a human-readable URL for a pipeline execution.
func ExecutionURL(executionID string) string {
	return fmt.Sprintf(executionURLFormat, executionID)
}

type Project struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ProjectCreate struct {
	Name string `json:"name"`
}

// ConfiguredTransformationItem is the wire form of one transformation step.
// Component never carries transient runtime fields.
type ConfiguredTransformationItem struct {
	TransformationName string         `json:"transformation_name"`
	Component          map[string]any `json:"component"`
}

type DataSinkCreate struct {
	Name      string         `json:"name"`
	SinkType  string         `json:"sink_type"`
	Component map[string]any `json:"component"`
}

type DataSourceCreate struct {
	Name       string         `json:"name"`
	SourceType string         `json:"source_type"`
	Component  map[string]any `json:"component"`
}

type PipelineCreate struct {
	Name                      string                         `json:"name"`
	ConfiguredTransformations []ConfiguredTransformationItem `json:"configured_transformations"`
	DataSinks                 []DataSinkCreate               `json:"data_sinks"`
	DataSources               []DataSourceCreate             `json:"data_sources"`
}

type PipelineResource struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ProjectID string `json:"projectId"`
}

// PipelineExecution is an opaque handle for a remote run. The ID is not
// interpreted locally.
type PipelineExecution struct {
	ID         string    `json:"id"`
	PipelineID string    `json:"pipelineId"`
	Status     string    `json:"status,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
}
