package similarity

import (
	"context"

	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/corpus"
)

// Searcher defines an interface for indexing corpus chunks and searching them
// by embedding similarity.
type Searcher interface {
	// Index embeds a chunk once and adds it to the search index.
	Index(ctx context.Context, chunk corpus.Chunk) error
	// Query embeds the query text and returns up to k chunks ranked by
	// descending similarity. Fewer than k chunks are returned when the index
	// holds fewer; an empty index yields an empty result, not an error.
	Query(ctx context.Context, query string, k int) ([]corpus.Chunk, error)
}
