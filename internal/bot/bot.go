// Package bot implements the retrieval-augmented Uncle Iroh orchestrator.
// One Bot answers the queries of one conversation: it retrieves topical
// context from three similarity indexes, folds in the recent conversation
// window, invokes the chat model once and records the exchange.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/config"
	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/corpus"
	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/memory"
	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/model"
	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/prompt"
)

// Retriever is the read side of a similarity index.
type Retriever interface {
	Query(ctx context.Context, query string, k int) ([]corpus.Chunk, error)
}

const (
	introTemplate    = "Your name is Iroh. You are speaking with your dear nephew %s. Talk like Uncle Iroh from Avatar the Last Airbender."
	greetingTemplate = "How are you, my dear nephew %s?"
)

// Farewell is spoken when a console session ends.
const Farewell = "Farewell, my dear nephew. May your path be peaceful."

// ErrEmptyQuery reports a blank query. Callers validate input first, so this
// is a defensive backstop.
var ErrEmptyQuery = errors.New("query must not be empty")

// Bot is the per-conversation orchestrator.
type Bot struct {
	name   string
	client model.Client
	memory *memory.Conversation

	iroh       Retriever
	mental     Retriever
	philosophy Retriever

	log *logrus.Logger

	// Serializes exchanges within one conversation; concurrent requests to
	// the same session have no defined interleaving otherwise.
	askMu sync.Mutex
}

// Option configures a Bot.
type Option func(*Bot)

// WithLogger sets the logger used for latency and degradation reports.
func WithLogger(log *logrus.Logger) Option {
	return func(b *Bot) {
		b.log = log
	}
}

// New creates a Bot for the named conversation partner. Memory is seeded with
// the persona system turn and the opening greeting, so both are present in
// the window before the first real exchange. A nil retriever is allowed and
// behaves like an index with no matches.
func New(name string, client model.Client, iroh, mental, philosophy Retriever, options ...Option) (*Bot, error) {
	if client == nil {
		return nil, errors.New("missing model client")
	}

	b := &Bot{
		name:       name,
		client:     client,
		memory:     memory.NewConversation(config.WindowSize),
		iroh:       iroh,
		mental:     mental,
		philosophy: philosophy,
		log:        logrus.StandardLogger(),
	}
	for _, option := range options {
		option(b)
	}

	b.memory.Append(memory.Turn{Role: memory.RoleSystem, Content: fmt.Sprintf(introTemplate, name)})
	b.memory.Append(memory.Turn{Role: memory.RoleAI, Content: b.Greeting()})
	return b, nil
}

// Name returns the conversation partner's name.
func (b *Bot) Name() string {
	return b.name
}

// Greeting returns the opening line spoken before the first exchange.
func (b *Bot) Greeting() string {
	return fmt.Sprintf(greetingTemplate, b.name)
}

// Memory exposes the conversation log, mainly for inspection.
func (b *Bot) Memory() *memory.Conversation {
	return b.memory
}

// Ask answers one query in persona.
//
// The three retrievals are independent and run concurrently; a failure in any
// one of them degrades to an empty context block instead of aborting the
// exchange. The chat model is invoked exactly once, and memory is updated
// only after that call succeeds.
func (b *Bot) Ask(ctx context.Context, query string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrEmptyQuery
	}

	b.askMu.Lock()
	defer b.askMu.Unlock()

	start := time.Now()

	var irohContext, mentalContext, philosophyContext string
	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		irohContext = b.retrieve(ctx, b.iroh, corpus.Iroh, query, config.IrohTopK)
	}()
	go func() {
		defer wg.Done()
		mentalContext = b.retrieve(ctx, b.mental, corpus.Mental, query, config.MentalTopK)
	}()
	go func() {
		defer wg.Done()
		philosophyContext = b.retrieve(ctx, b.philosophy, corpus.Philosophy, query, config.PhilosophyTopK)
	}()
	wg.Wait()

	messages := prompt.Build(b.memory.Window(), irohContext, mentalContext, philosophyContext, query)

	reply, err := b.client.Chat(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("failed to generate reply: %w", err)
	}

	b.memory.Append(memory.Turn{Role: memory.RoleHuman, Content: query})
	b.memory.Append(memory.Turn{Role: memory.RoleAI, Content: reply})

	b.log.WithFields(logrus.Fields{
		"nephew":     b.name,
		"latency_ms": time.Since(start).Milliseconds(),
	}).Info("exchange completed")

	return reply, nil
}

// retrieve queries one index and joins the chunk texts with newlines. Any
// failure is logged and yields an empty context block so the remaining
// corpora still contribute.
func (b *Bot) retrieve(ctx context.Context, r Retriever, name corpus.Name, query string, k int) string {
	if r == nil {
		return ""
	}

	chunks, err := r.Query(ctx, query, k)
	if err != nil {
		b.log.WithError(err).WithField("corpus", name).Warn("retrieval failed, continuing without context")
		return ""
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	return strings.Join(texts, "\n")
}
