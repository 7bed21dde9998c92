// Command thunai runs a bilingual English/Tamil assistant for Tamil
// Nadu government scheme questions. It loads a question-answer
// knowledge base, indexes it for keyword and vector retrieval, and
// answers queries in a terminal loop until "quit".
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/thunai-ai/thunai/chains"
	"github.com/thunai-ai/thunai/config"
	"github.com/thunai-ai/thunai/embeddings"
	"github.com/thunai-ai/thunai/embeddings/hash"
	"github.com/thunai-ai/thunai/embeddings/ollama"
	"github.com/thunai-ai/thunai/knowledge"
	"github.com/thunai-ai/thunai/llms"
	"github.com/thunai-ai/thunai/llms/gemini"
	"github.com/thunai-ai/thunai/llms/openrouter"
	"github.com/thunai-ai/thunai/memory"
	"github.com/thunai-ai/thunai/retrieval"
	"github.com/thunai-ai/thunai/vectorstores"
	memstore "github.com/thunai-ai/thunai/vectorstores/memory"
	"github.com/thunai-ai/thunai/vectorstores/qdrant"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	var cfgPath string
	var verbose bool
	flag.StringVar(&cfgPath, "config", "config.yaml", "path to YAML config file")
	flag.BoolVar(&verbose, "verbose", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	knowledgeFiles := cfg.KnowledgeFiles
	if args := flag.Args(); len(args) > 0 {
		knowledgeFiles = args
	}
	if len(knowledgeFiles) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: thunai [--config=config.yaml] knowledge.json [more.json ...]")
		os.Exit(2)
	}

	ctx := context.Background()

	records, err := knowledge.Load(knowledgeFiles)
	if err != nil {
		return err
	}
	logger.Info("knowledge base loaded", "files", len(knowledgeFiles), "records", len(records))

	embedder, err := buildEmbedder(cfg, logger)
	if err != nil {
		return err
	}

	store, err := buildStore(cfg, embedder, logger)
	if err != nil {
		return err
	}
	if _, err := store.AddDocuments(ctx, knowledge.Documents(records)); err != nil {
		return fmt.Errorf("knowledge ingestion failed: %w", err)
	}

	model, err := buildModel(ctx, cfg, logger)
	if err != nil {
		return err
	}

	qa := chains.NewBilingualQA(
		retrieval.NewContextBuilder(
			retrieval.NewIndex(records),
			vectorstores.ToRetriever(store, cfg.Retrieval.TopK),
			retrieval.WithTopK(cfg.Retrieval.TopK),
			retrieval.WithLogger(logger),
		),
		model,
		memory.NewBuffer(memory.WithWindow(cfg.Memory.Window)),
		chains.WithTemperature(cfg.LLM.Temperature),
		chains.WithMaxTokens(cfg.LLM.MaxTokens),
		chains.WithLogger(logger),
	)

	repl(ctx, qa)
	return nil
}

func buildEmbedder(cfg *config.Config, logger *slog.Logger) (embeddings.Embedder, error) {
	switch cfg.Embedder.Type {
	case "ollama":
		opts := []ollama.Option{ollama.WithLogger(logger)}
		if cfg.Embedder.Model != "" {
			opts = append(opts, ollama.WithModel(cfg.Embedder.Model))
		}
		client, err := ollama.New(cfg.Embedder.ServerURL, opts...)
		if err != nil {
			return nil, fmt.Errorf("ollama embedder init failed: %w", err)
		}
		return embeddings.NewEmbedder(client)
	default:
		opts := []hash.Option{}
		if cfg.Embedder.Dimension > 0 {
			opts = append(opts, hash.WithDimension(cfg.Embedder.Dimension))
		}
		return embeddings.NewEmbedder(hash.New(opts...))
	}
}

func buildStore(cfg *config.Config, embedder embeddings.Embedder, logger *slog.Logger) (vectorstores.VectorStore, error) {
	switch cfg.VectorStore.Type {
	case "qdrant":
		qc := cfg.VectorStore.Qdrant
		return qdrant.New(
			qdrant.WithHostAndPort(qc.Host, qc.Port),
			qdrant.WithCollectionName(qc.Collection),
			qdrant.WithAPIKey(os.Getenv(qc.APIKeyEnv)),
			qdrant.WithEmbedder(embedder),
			qdrant.WithLogger(logger),
		)
	default:
		return memstore.New(embedder)
	}
}

func buildModel(ctx context.Context, cfg *config.Config, logger *slog.Logger) (llms.Model, error) {
	switch cfg.LLM.Provider {
	case "gemini":
		opts := []gemini.Option{gemini.WithAPIKey(cfg.APIKey()), gemini.WithLogger(logger)}
		if cfg.LLM.Model != "" {
			opts = append(opts, gemini.WithModel(cfg.LLM.Model))
		}
		return gemini.New(ctx, opts...)
	default:
		opts := []openrouter.Option{
			openrouter.WithLogger(logger),
			openrouter.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.LLM.TimeoutSecs) * time.Second}),
		}
		if cfg.LLM.BaseURL != "" {
			opts = append(opts, openrouter.WithBaseURL(cfg.LLM.BaseURL))
		}
		if cfg.LLM.Model != "" {
			opts = append(opts, openrouter.WithModel(cfg.LLM.Model))
		}
		if cfg.LLM.Referer != "" || cfg.LLM.Title != "" {
			opts = append(opts, openrouter.WithAttribution(cfg.LLM.Referer, cfg.LLM.Title))
		}
		return openrouter.New(cfg.APIKey(), opts...)
	}
}

// repl reads queries until EOF or "quit". A failed query is reported
// and the session continues.
func repl(ctx context.Context, qa *chains.BilingualQA) {
	fmt.Println("Tamil Nadu Government Schemes Assistant")
	fmt.Println("Ask in English or Tamil. Type 'quit' to exit.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nYou: ")
		if !scanner.Scan() {
			break
		}
		query := strings.TrimSpace(scanner.Text())
		if query == "" {
			continue
		}
		if strings.EqualFold(query, "quit") {
			fmt.Println("Goodbye!")
			break
		}

		answer, err := qa.Ask(ctx, query)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		fmt.Printf("Assistant: %s\n", answer)
	}
}
