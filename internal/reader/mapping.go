package reader

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// DocumentMapping declares how dataset columns map onto documents.
type DocumentMapping struct {
	Kind           string   `json:"kind" yaml:"kind"`
	Version        string   `json:"version" yaml:"version"`
	Metadata       Metadata `json:"metadata" yaml:"metadata"`
	NameField      string   `json:"nameField" yaml:"nameField"`
	ContentFields  []string `json:"contentFields" yaml:"contentFields"`
	MetadataFields []string `json:"metadataFields,omitempty" yaml:"metadataFields,omitempty"`
}

type Metadata struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

func (dm *DocumentMapping) Validate() error {
	if dm.Kind == "" {
		return fmt.Errorf("kind is required")
	}
	if dm.Version == "" {
		return fmt.Errorf("version is required")
	}
	if dm.Metadata.Name == "" {
		return fmt.Errorf("metadata.name is required")
	}
	if len(dm.ContentFields) == 0 {
		return fmt.Errorf("at least one content field is required")
	}
	return nil
}

type YAMLMappingLoader struct {
	reader io.Reader
}

func NewYAMLMappingLoader(reader io.Reader) *YAMLMappingLoader {
	return &YAMLMappingLoader{
		reader: reader,
	}
}

func (cl *YAMLMappingLoader) Load(validate bool) (*DocumentMapping, error) {
	decoder := yaml.NewDecoder(cl.reader)
	var mapping DocumentMapping
	if err := decoder.Decode(&mapping); err != nil {
		return nil, err
	}
	if validate {
		if err := mapping.Validate(); err != nil {
			return nil, err
		}
	}
	return &mapping, nil
}
