package main

import (
	"context"
	"flag"

	"github.com/sirupsen/logrus"

	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/builder"
	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/config"
	"github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/config/filesys"
	embgemini "github.com/tharu280/Comic-Character-based-RAG-mental-healthcare-assistant-chatbot/internal/embedding/gemini"
)

func main() {
	manifestPath := flag.String("manifest", "corpora.yaml", "YAML manifest listing the corpora to index")
	outDir := flag.String("out", config.DefaultIndexDir, "directory to write the similarity indexes to")
	flag.Parse()

	log := logrus.New()

	settings, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("configuration error")
	}

	manifest, err := filesys.New().LoadManifest(*manifestPath)
	if err != nil {
		log.WithError(err).Fatal("failed to load corpus manifest")
	}

	ctx := context.Background()

	embedder, err := embgemini.New(ctx, settings.APIKey, config.EmbeddingModel)
	if err != nil {
		log.WithError(err).Fatal("failed to create embedding provider")
	}

	if err := builder.New(embedder, log).BuildAll(ctx, manifest, *outDir); err != nil {
		log.WithError(err).Fatal("index build failed")
	}
}
