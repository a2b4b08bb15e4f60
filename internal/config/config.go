package config

import (
	"errors"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Fixed model and retrieval parameters. These mirror the chatbot's published
// behavior and are deliberately not configurable.
const (
	// ChatModel is the Gemini completion model the bot speaks through.
	ChatModel = "gemini-1.5-flash"
	// EmbeddingModel is the Gemini model used for all embeddings.
	EmbeddingModel = "text-embedding-004"
	// Temperature is the sampling temperature for completions.
	Temperature float32 = 0.7
	// WindowSize is the number of recent conversation turns included in each prompt.
	WindowSize = 6
	// IrohTopK is the retrieval breadth for the character-quote corpus.
	IrohTopK = 1
	// MentalTopK is the retrieval breadth for the mental well-being corpus.
	MentalTopK = 3
	// PhilosophyTopK is the retrieval breadth for the philosophy corpus.
	PhilosophyTopK = 3
	// SessionTTL is how long an idle conversation is kept before eviction.
	SessionTTL = 30 * time.Minute
	// DefaultIndexDir is where the builder persists and the bot loads indexes.
	DefaultIndexDir = "vdbs"
)

// ErrMissingAPIKey reports an absent Gemini credential. No request can be
// served without it, so construction fails immediately.
var ErrMissingAPIKey = errors.New("missing GOOGLE_API_KEY in environment")

// Settings holds the process configuration read from the environment.
type Settings struct {
	APIKey string
}

// Load reads a .env file when one is present and resolves the required
// settings from the environment.
func Load() (*Settings, error) {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	key := os.Getenv("GOOGLE_API_KEY")
	if key == "" {
		return nil, ErrMissingAPIKey
	}
	return &Settings{APIKey: key}, nil
}
