package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/bot"
	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/builder"
	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/config"
	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/corpus"
	embgemini "github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/embedding/gemini"
	modelgemini "github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/model/gemini"
	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/similarity/hnsw"
)

const askTimeout = 60 * time.Second

func main() {
	indexDir := flag.String("indexes", config.DefaultIndexDir, "directory holding the persisted similarity indexes")
	flag.Parse()

	log := logrus.New()
	// Keep the console clean; warnings and errors still reach stderr.
	log.SetLevel(logrus.WarnLevel)

	settings, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("configuration error")
	}

	ctx := context.Background()

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
			log.WithError(err).WithField("corpus", name).Warn("index unavailable, chatting without it")
			return nil
		}
		return idx
	}

	scanner := bufio.NewScanner(os.Stdin)

	fmt.Print("Uncle Iroh: What is your name my dear nephew? ")
	if !scanner.Scan() {
		return
	}
	name := strings.TrimSpace(scanner.Text())
	if name == "" {
		name = "nephew"
	}

	iroh, err := bot.New(name, client,
		loadIndex(corpus.Iroh), loadIndex(corpus.Mental), loadIndex(corpus.Philosophy),
		bot.WithLogger(log))
	if err != nil {
		log.WithError(err).Fatal("failed to create chatbot")
	}

	fmt.Printf("Uncle Iroh: %s\n", iroh.Greeting())

	for {
		fmt.Printf("Nephew %s: ", name)
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		// The exit word ends the session without retrieval or a model call.
		if strings.EqualFold(query, "exit") {
			fmt.Printf("Uncle Iroh: %s\n", bot.Farewell)
			break
		}

		askCtx, cancel := context.WithTimeout(ctx, askTimeout)
		reply, err := iroh.Ask(askCtx, query)
		cancel()
		if err != nil {
			log.WithError(err).Warn("exchange failed")
			fmt.Println("Uncle Iroh: Hmm, the tea leaves are cloudy right now. Ask me again in a moment.")
			continue
		}

		fmt.Printf("Uncle Iroh: %s\n\n", reply)
	}
}
