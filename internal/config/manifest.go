package config

import (
	"fmt"

	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/corpus"
)

// CorpusSpec names one corpus, its source document and how to chunk it.
type CorpusSpec struct {
	Name     corpus.Name         `yaml:"name"`
	Path     string              `yaml:"path"`
	Splitter corpus.SplitterSpec `yaml:"splitter"`
}

// Manifest lists the corpora the index builder processes.
type Manifest struct {
	Corpora []CorpusSpec `yaml:"corpora"`
}

// ManifestProvider is an interface for loading a corpus manifest.
type ManifestProvider interface {
	LoadManifest(path string) (*Manifest, error)
}

// Validate checks the manifest for obviously broken entries.
func (m *Manifest) Validate() error {
	if len(m.Corpora) == 0 {
		return fmt.Errorf("manifest lists no corpora")
	}
	seen := make(map[corpus.Name]bool)
	for _, spec := range m.Corpora {
		if spec.Name == "" || spec.Path == "" {
			return fmt.Errorf("corpus entry missing name or path")
		}
		if seen[spec.Name] {
			return fmt.Errorf("duplicate corpus %q in manifest", spec.Name)
		}
		seen[spec.Name] = true
	}
	return nil
}
