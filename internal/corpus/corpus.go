package corpus

// Name identifies one of the topic corpora the chatbot retrieves from.
type Name string

const (
	// Iroh holds the character's own quotes and teachings.
	Iroh Name = "iroh"
	// Mental holds emotional support and mental well-being notes.
	Mental Name = "mental"
	// Philosophy holds rational and scientific ideas.
	Philosophy Name = "philosophy"
)

// Chunk is an immutable piece of a corpus document. Chunks are created once
// by the index builder and never mutated afterwards.
type Chunk struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	Corpus Name   `json:"corpus"`
}
