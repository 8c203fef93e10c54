package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"taskmentor/internal/api"
	"taskmentor/internal/config"
	"taskmentor/internal/embedding"
	"taskmentor/internal/history"
	"taskmentor/internal/proposal"
	redisdb "taskmentor/internal/redis"
	"taskmentor/internal/similarity"
	"taskmentor/internal/store"
)

func main() {
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	source := buildSource(cfg)
	provider := buildProvider(cfg)

	index := similarity.NewIndex(provider, cfg.Retrieval.SimilarityThreshold)
	pipeline := proposal.NewPipeline(index, history.NewMiner())

	sessions := api.NewSessionManager(time.Duration(cfg.Dialogue.SessionTTLMinutes) * time.Minute)
	go sessions.Start()

	r := api.SetupRouter(cfg, pipeline, source, sessions)
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	fmt.Printf("Starting server on %s%s\n", addr, cfg.Server.Subpath)
	if err := r.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// buildSource connects the configured task store. A store that is
// configured but unreachable is fatal; no store at all just means an
// empty corpus.
func buildSource(cfg *config.Config) store.Source {
	switch cfg.TaskStore.Driver {
	case "sqlite", "postgres":
		db, err := store.Open(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Task store error: %v\n", err)
			os.Exit(1)
		}
		return store.NewGormSource(db)
	case "qdrant":
		source, err := store.NewQdrantSource(cfg.Qdrant.URL, cfg.Qdrant.Collection, cfg.Qdrant.APIKey)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Task store error: %v\n", err)
			os.Exit(1)
		}
		return source
	default:
		log.Printf("[Main] No task store configured, starting with an empty corpus")
		return store.NewStaticSource(nil)
	}
}

// buildProvider assembles the embedding chain: remote endpoint if
// configured, Redis cache in front of it when reachable, deterministic
// fallback always at the end.
func buildProvider(cfg *config.Config) embedding.Provider {
	fallback := embedding.NewFallbackProvider()

	if cfg.Embedding.URL == "" {
		log.Printf("[Main] No embedding endpoint configured, using deterministic fallback")
		return embedding.NewResilientProvider(nil, fallback)
	}

	var inner embedding.Provider = embedding.NewRemoteProvider(
		cfg.Embedding.URL,
		cfg.Embedding.Model,
		time.Duration(cfg.Embedding.TimeoutSeconds)*time.Second,
	)
	log.Printf("[Main] ✓ Remote embeddings configured (model: %s)", cfg.Embedding.Model)

	if cfg.Redis.Addr != "" {
		rdb := redisdb.NewClient(cfg)
		if err := redisdb.Ping(context.Background(), rdb); err != nil {
			log.Printf("[Main] WARNING: Redis unreachable, embedding cache disabled: %v", err)
		} else {
			inner = embedding.NewCachedProvider(
				inner,
				rdb,
				cfg.Embedding.Model,
				time.Duration(cfg.Embedding.CacheTTLMinutes)*time.Minute,
			)
			log.Printf("[Main] ✓ Embedding cache enabled (TTL: %d minutes)", cfg.Embedding.CacheTTLMinutes)
		}
	}

	return embedding.NewResilientProvider(inner, fallback)
}
