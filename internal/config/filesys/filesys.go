package filesys

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/config"
)

// ManifestProvider is a concrete implementation of config.ManifestProvider
// that reads YAML manifest files from disk.
type ManifestProvider struct{}

// New returns a new ManifestProvider.
func New() *ManifestProvider {
	return &ManifestProvider{}
}

// LoadManifest reads and unmarshals the YAML corpus manifest at path.
func (f *ManifestProvider) LoadManifest(path string) (*config.Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open manifest file: %w", err)
	}
	var m config.Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}
