package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/bot"
	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/builder"
	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/config"
	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/corpus"
	embgemini "github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/embedding/gemini"
	modelgemini "github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/model/gemini"
	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/server"
	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/session"
	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/similarity/hnsw"
)

func main() {
	addr := flag.String("addr", server.DefaultAddr, "listen address")
	indexDir := flag.String("indexes", config.DefaultIndexDir, "directory holding the persisted similarity indexes")
	flag.Parse()

	log := logrus.New()

	settings, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("configuration error")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	embedder, err := embgemini.New(ctx, settings.APIKey, config.EmbeddingModel)
	if err != nil {
		log.WithError(err).Fatal("failed to create embedding provider")
	}
	client, err := modelgemini.New(ctx, settings.APIKey, config.ChatModel, config.Temperature)
	if err != nil {
		log.WithError(err).Fatal("failed to create chat model client")
	}

	loadIndex := func(name corpus.Name) bot.Retriever {
		idx, err := hnsw.Load(builder.IndexPath(*indexDir, name), embedder)
		if err != nil {
			// The bot degrades to an empty context block for this topic.
			log.WithError(err).WithField("corpus", name).Warn("index unavailable, serving without it")
			return nil
		}
		return idx
	}
	irohIdx := loadIndex(corpus.Iroh)
	mentalIdx := loadIndex(corpus.Mental)
	philosophyIdx := loadIndex(corpus.Philosophy)

	sessions := session.NewStore(func(name string) (*bot.Bot, error) {
		return bot.New(name, client, irohIdx, mentalIdx, philosophyIdx, bot.WithLogger(log))
	}, config.SessionTTL)
	defer sessions.Close()

	if err := server.New(sessions, log).Run(ctx, *addr); err != nil {
		log.WithError(err).Fatal("server error")
	}
}
