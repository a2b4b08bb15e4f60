// Package builder implements the one-time batch job that turns raw text
// corpora into persisted similarity indexes. It is not part of the serving
// path; the bot only loads what the builder wrote.
package builder

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/config"
	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/corpus"
	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/embedding"
	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/similarity/hnsw"
)

// Builder loads, splits, embeds and persists corpora as similarity indexes.
type Builder struct {
	provider embedding.Provider
	log      *logrus.Logger
}

// New creates a Builder that embeds through the given provider.
func New(provider embedding.Provider, log *logrus.Logger) *Builder {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Builder{provider: provider, log: log}
}

// IndexPath returns where the index for a corpus is persisted below dir.
func IndexPath(dir string, name corpus.Name) string {
	return filepath.Join(dir, string(name)+".json")
}

// BuildAll processes every corpus in the manifest. A failure in one corpus is
// logged and skipped so the remaining corpora still get built. It returns an
// error only when not a single index could be produced.
func (b *Builder) BuildAll(ctx context.Context, manifest *config.Manifest, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create index directory: %w", err)
	}

	built := 0
	for _, spec := range manifest.Corpora {
		if err := b.Build(ctx, spec, outDir); err != nil {
			b.log.WithError(err).WithField("corpus", spec.Name).Error("skipping corpus")
			continue
		}
		built++
	}

	if built == 0 {
		return fmt.Errorf("no corpus could be indexed")
	}
	return nil
}

// Build processes a single corpus: load, split, embed, persist.
func (b *Builder) Build(ctx context.Context, spec config.CorpusSpec, outDir string) error {
	data, err := os.ReadFile(spec.Path)
	if err != nil {
		return fmt.Errorf("failed to load corpus file: %w", err)
	}

	text := strings.TrimSpace(string(data))
	if text == "" {
		return fmt.Errorf("no document content in %s", spec.Path)
	}

	splitter, err := corpus.NewSplitter(spec.Splitter)
	if err != nil {
		return err
	}

	chunks := splitter.Split(text)
	if len(chunks) == 0 {
		return fmt.Errorf("no chunks created for %s", spec.Path)
	}

	b.log.WithFields(logrus.Fields{"corpus": spec.Name, "chunks": len(chunks)}).Info("building index")

	index := hnsw.New(b.provider)
	for _, part := range chunks {
		chunk := corpus.Chunk{ID: uuid.New().String(), Text: part, Corpus: spec.Name}
		if err := index.Index(ctx, chunk); err != nil {
			return fmt.Errorf("failed to index chunk: %w", err)
		}
	}

	path := IndexPath(outDir, spec.Name)
	if err := index.Save(path); err != nil {
		return err
	}

	b.log.WithFields(logrus.Fields{"corpus": spec.Name, "path": path}).Info("index saved")
	return nil
}
