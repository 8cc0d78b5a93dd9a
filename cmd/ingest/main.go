// Command ingest loads the medical corpus: it chunks every text file in a
// directory, embeds each chunk, and stores the chunks in the documents table.
// Re-running it on the same file replaces that file's chunks.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/healthassistant/hub/internal/config"
	"github.com/healthassistant/hub/internal/openai"
	"github.com/healthassistant/hub/internal/repository"
	"github.com/healthassistant/hub/pkg/database"
)

const (
	chunkSize    = 500
	chunkOverlap = 50
)

func main() {
	dir := flag.String("dir", "corpus", "directory of .txt files to ingest")
	flag.Parse()

	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Initialize database connection with pgvector types registered
	db, err := database.NewPostgresPool(ctx, cfg.DatabaseURL, database.WithVectorTypes())
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	aiClient := openai.NewClient(cfg.OpenAIAPIKey,
		openai.WithEmbeddingModel(cfg.EmbeddingModel),
		openai.WithDimensions(cfg.EmbeddingDimensions),
		openai.WithRateLimit(float64(cfg.OpenAIRateLimit)),
	)
	documentsRepo := repository.NewDocumentsRepository(db)

	entries, err := os.ReadDir(*dir)
	if err != nil {
		slog.Error("Failed to read corpus directory", "error", err, "dir", *dir)
		os.Exit(1)
	}

	var files, chunks int

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}

		path := filepath.Join(*dir, entry.Name())

		content, err := os.ReadFile(path)
		if err != nil {
			slog.Error("Failed to read corpus file", "error", err, "file", path)
			os.Exit(1)
		}

		n, err := ingestFile(ctx, aiClient, documentsRepo, entry.Name(), string(content))
		if err != nil {
			slog.Error("Failed to ingest corpus file", "error", err, "file", path)
			os.Exit(1)
		}

		slog.Info("Ingested corpus file", "file", entry.Name(), "chunks", n)

		files++
		chunks += n
	}

	slog.Info("Ingest complete", "files", files, "chunks", chunks)
}

// ingestFile replaces the stored chunks for one source file.
func ingestFile(
	ctx context.Context,
	aiClient *openai.Client,
	documents *repository.DocumentsRepository,
	sourceID, content string,
) (int, error) {
	if err := documents.DeleteBySourceID(ctx, sourceID); err != nil {
		return 0, err
	}

	pieces := chunkText(content, chunkSize, chunkOverlap)

	for i, piece := range pieces {
		embedding, err := aiClient.CreateEmbedding(ctx, piece)
		if err != nil {
			return i, err
		}

		if err := documents.Insert(ctx, sourceID, i, piece, embedding); err != nil {
			return i, err
		}
	}

	return len(pieces), nil
}

// chunkText splits text into overlapping rune windows. The overlap keeps
// sentences split at a boundary retrievable from either side.
func chunkText(text string, size, overlap int) []string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}

	step := size - overlap

	var chunks []string

	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}

		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}

		if end == len(runes) {
			break
		}
	}

	return chunks
}
