package builder

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/config"
	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/corpus"
	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/similarity/hnsw"
)

// hashEmbedder maps any text onto a small deterministic vector so builds are
// reproducible without a real embedding backend.
type hashEmbedder struct{}

func (hashEmbedder) ComputeEmbedding(_ context.Context, text string) ([]float32, error) {
	v := make([]float32, 4)
	for i, r := range text {
		v[i%4] += float32(r%97) / 97
	}
	return v, nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func writeCorpus(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func paragraphSpec(name corpus.Name, path string) config.CorpusSpec {
	return config.CorpusSpec{
		Name: name,
		Path: path,
		Splitter: corpus.SplitterSpec{
			Kind:      "paragraph",
			ChunkSize: 300,
		},
	}
}

func TestBuildPersistsLoadableIndex(t *testing.T) {
	dir := t.TempDir()
	path := writeCorpus(t, dir, "iroh.txt", "Tea is hot leaf juice.\n\nDestiny is a funny thing.")

	b := New(hashEmbedder{}, quietLogger())
	require.NoError(t, b.Build(context.Background(), paragraphSpec(corpus.Iroh, path), dir))

	index, err := hnsw.Load(IndexPath(dir, corpus.Iroh), hashEmbedder{})
	require.NoError(t, err)
	assert.Equal(t, 2, index.Len())

	got, err := index.Query(context.Background(), "Tea is hot leaf juice.", 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Tea is hot leaf juice.", got[0].Text)
	assert.Equal(t, corpus.Iroh, got[0].Corpus)
	assert.NotEmpty(t, got[0].ID)
}

func TestBuildRejectsEmptyCorpusFile(t *testing.T) {
	dir := t.TempDir()
	path := writeCorpus(t, dir, "empty.txt", "   \n\n  ")

	b := New(hashEmbedder{}, quietLogger())
	err := b.Build(context.Background(), paragraphSpec(corpus.Iroh, path), dir)
	assert.Error(t, err)
}

func TestBuildAllSkipsBrokenCorpus(t *testing.T) {
	dir := t.TempDir()
	good := writeCorpus(t, dir, "mental.txt", "Breathe slowly.\n\nName the feeling.")

	manifest := &config.Manifest{Corpora: []config.CorpusSpec{
		paragraphSpec(corpus.Iroh, filepath.Join(dir, "missing.txt")),
		paragraphSpec(corpus.Mental, good),
	}}

	out := filepath.Join(dir, "out")
	b := New(hashEmbedder{}, quietLogger())
	require.NoError(t, b.BuildAll(context.Background(), manifest, out))

	_, err := os.Stat(IndexPath(out, corpus.Mental))
	assert.NoError(t, err)
	_, err = os.Stat(IndexPath(out, corpus.Iroh))
	assert.True(t, os.IsNotExist(err))
}

func TestBuildAllFailsWhenNothingBuilds(t *testing.T) {
	dir := t.TempDir()
	manifest := &config.Manifest{Corpora: []config.CorpusSpec{
		paragraphSpec(corpus.Iroh, filepath.Join(dir, "missing.txt")),
	}}

	b := New(hashEmbedder{}, quietLogger())
	err := b.BuildAll(context.Background(), manifest, filepath.Join(dir, "out"))
	assert.Error(t, err)
}

func TestIndexPath(t *testing.T) {
	assert.Equal(t, filepath.Join("vdbs", "iroh.json"), IndexPath("vdbs", corpus.Iroh))
}
