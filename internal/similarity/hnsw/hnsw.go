package hnsw

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"sync"

	"github.com/coder/hnsw"

	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/corpus"
	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/embedding"
)

// record is one indexed chunk together with its embedding and insertion
// sequence number. The sequence number makes result ordering stable when
// similarities tie.
type record struct {
	Chunk     corpus.Chunk `json:"chunk"`
	Seq       int          `json:"seq"`
	Embedding []float32    `json:"embedding"`
}

// snapshot is the on-disk form of an index. Vectors are stored alongside the
// chunks so loading never re-embeds.
type snapshot struct {
	Dim     int      `json:"dim"`
	Records []record `json:"records"`
}

// Index implements a similarity searcher using the coder/hnsw generic graph.
type Index struct {
	mu       sync.Mutex
	graph    *hnsw.Graph[string]
	dim      int // Dimensionality of embeddings, fixed by the first vector.
	records  map[string]record
	nextSeq  int
	provider embedding.Provider
}

// New creates an empty Index that embeds through the given provider.
func New(provider embedding.Provider) *Index {
	return &Index{
		graph:    hnsw.NewGraph[string](),
		records:  make(map[string]record),
		provider: provider,
	}
}

// Index embeds the chunk and adds it to the graph. The first chunk fixes the
// embedding dimension; later chunks must match it.
func (x *Index) Index(ctx context.Context, chunk corpus.Chunk) error {
	if chunk.ID == "" {
		return errors.New("chunk has no ID")
	}

	vector, err := x.provider.ComputeEmbedding(ctx, chunk.Text)
	if err != nil {
		return fmt.Errorf("failed to compute embedding: %w", err)
	}

	x.mu.Lock()
	defer x.mu.Unlock()
	return x.add(chunk, vector)
}

// add inserts an embedded chunk. Caller holds x.mu.
func (x *Index) add(chunk corpus.Chunk, vector []float32) error {
	if x.dim == 0 {
		x.dim = len(vector)
	}
	if len(vector) != x.dim {
		return errors.New("embedding dimension mismatch")
	}
	if _, exists := x.records[chunk.ID]; exists {
		return fmt.Errorf("chunk %s already indexed", chunk.ID)
	}

	x.graph.Add(hnsw.MakeNode(chunk.ID, vector))
	x.records[chunk.ID] = record{Chunk: chunk, Seq: x.nextSeq, Embedding: vector}
	x.nextSeq++
	return nil
}

// Len returns the number of indexed chunks.
func (x *Index) Len() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return len(x.records)
}

// Query returns up to k chunks ranked by descending cosine similarity to the
// query text. Ties are broken by insertion order and a chunk appears at most
// once per query.
func (x *Index) Query(ctx context.Context, query string, k int) ([]corpus.Chunk, error) {
	if k <= 0 {
		return nil, nil
	}

	x.mu.Lock()
	empty := len(x.records) == 0
	x.mu.Unlock()
	if empty {
		return nil, nil
	}

	vector, err := x.provider.ComputeEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to compute query embedding: %w", err)
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	if len(vector) != x.dim {
		return nil, errors.New("query embedding dimension mismatch")
	}

	neighbors := x.graph.Search(vector, k)

	type scored struct {
		rec record
		sim float64
	}
	seen := make(map[string]bool, len(neighbors))
	matches := make([]scored, 0, len(neighbors))
	for _, node := range neighbors {
		if seen[node.Key] {
			continue
		}
		seen[node.Key] = true
		if rec, ok := x.records[node.Key]; ok {
			matches = append(matches, scored{rec: rec, sim: cosineSimilarity(vector, rec.Embedding)})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].sim != matches[j].sim {
			return matches[i].sim > matches[j].sim
		}
		return matches[i].rec.Seq < matches[j].rec.Seq
	})

	if len(matches) > k {
		matches = matches[:k]
	}
	chunks := make([]corpus.Chunk, len(matches))
	for i, m := range matches {
		chunks[i] = m.rec.Chunk
	}
	return chunks, nil
}

// Save writes the index to path as a JSON snapshot of chunk+vector records.
func (x *Index) Save(path string) error {
	x.mu.Lock()
	snap := snapshot{Dim: x.dim, Records: make([]record, 0, len(x.records))}
	for _, rec := range x.records {
		snap.Records = append(snap.Records, rec)
	}
	x.mu.Unlock()

	sort.Slice(snap.Records, func(i, j int) bool { return snap.Records[i].Seq < snap.Records[j].Seq })

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal index snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write index snapshot: %w", err)
	}
	return nil
}

// Load reads a JSON snapshot from path and rebuilds the in-memory graph from
// the stored vectors. No text is re-embedded; the provider is only used for
// future queries.
func Load(path string, provider embedding.Provider) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read index snapshot: %w", err)
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal index snapshot: %w", err)
	}

	x := New(provider)
	x.dim = snap.Dim
	for _, rec := range snap.Records {
		if err := x.add(rec.Chunk, rec.Embedding); err != nil {
			return nil, fmt.Errorf("failed to rebuild index from %s: %w", path, err)
		}
	}
	return x, nil
}

// cosineSimilarity computes the cosine similarity between two []float32 vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := 0; i < len(a); i++ {
		dot += float64(a[i] * b[i])
		normA += float64(a[i] * a[i])
		normB += float64(b[i] * b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
