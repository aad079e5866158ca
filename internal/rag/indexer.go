package rag

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/CharukaVithana/ServeXa/internal/knowledge"
	"github.com/CharukaVithana/ServeXa/internal/log"
)

// Chunking parameters for corpus documents.
const (
	ChunkSize    = 400
	ChunkOverlap = 50
)

// IndexerStore is the slice of the knowledge store the indexer consumes.
type IndexerStore interface {
	Add(ctx context.Context, doc knowledge.Document) error
	Count(ctx context.Context, source string) (int, error)
	DeleteBySource(ctx context.Context, source string) (int, error)
}

// IndexResult summarizes one indexing run.
type IndexResult struct {
	Source        string
	ChunksAdded   int
	ChunksRemoved int
	Duration      time.Duration
}

type Indexer struct {
	store  IndexerStore
	logger log.Logger
}

func NewIndexer(store IndexerStore, logger log.Logger) *Indexer {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Indexer{
		store:  store,
		logger: logger.With("component", "indexer"),
	}
}

// IndexFile chunks a text file and stores each chunk with its embedding.
// Chunks from a previous run of the same file are dropped first, so
// reindexing never leaves stale content behind.
func (ix *Indexer) IndexFile(ctx context.Context, path string) (IndexResult, error) {
	start := time.Now()
	source := filepath.Base(path)

	content, err := os.ReadFile(path)
	if err != nil {
		return IndexResult{}, fmt.Errorf("read corpus file: %w", err)
	}

	removed, err := ix.store.DeleteBySource(ctx, source)
	if err != nil {
		return IndexResult{}, fmt.Errorf("drop stale chunks for %q: %w", source, err)
	}

	chunks := SplitText(string(content), ChunkSize, ChunkOverlap)
	for i, chunk := range chunks {
		doc := knowledge.Document{
			ID:      chunkID(source, i),
			Content: chunk,
			Metadata: map[string]string{
				"source": source,
				"chunk":  fmt.Sprintf("%d", i),
			},
		}
		if err := ix.store.Add(ctx, doc); err != nil {
			return IndexResult{}, fmt.Errorf("index chunk %d of %q: %w", i, source, err)
		}
	}

	result := IndexResult{
		Source:        source,
		ChunksAdded:   len(chunks),
		ChunksRemoved: removed,
		Duration:      time.Since(start),
	}
	ix.logger.Info("indexed corpus file",
		"source", source,
		"chunks", result.ChunksAdded,
		"removed", result.ChunksRemoved,
		"duration", result.Duration,
	)
	return result, nil
}

// Bootstrap indexes the corpus file only when the store is empty, so a
// fresh deployment has context without clobbering an existing index.
func (ix *Indexer) Bootstrap(ctx context.Context, path string) error {
	count, err := ix.store.Count(ctx, "")
	if err != nil {
		return fmt.Errorf("count documents: %w", err)
	}
	if count > 0 {
		ix.logger.Debug("corpus already indexed", "documents", count)
		return nil
	}
	if _, err := ix.IndexFile(ctx, path); err != nil {
		return err
	}
	return nil
}

// chunkID derives a stable ID from the source name and chunk position,
// keeping reindex runs idempotent.
func chunkID(source string, index int) string {
	sum := sha256.Sum256(fmt.Appendf(nil, "%s:%d", source, index))
	return hex.EncodeToString(sum[:16])
}

// SplitText breaks text into chunks of at most size runes with the given
// overlap between consecutive chunks. Whitespace-only chunks are dropped.
func SplitText(text string, size, overlap int) []string {
	if size <= 0 {
		return nil
	}
	if overlap < 0 || overlap >= size {
		overlap = 0
	}

	runes := []rune(text)
	step := size - overlap

	var chunks []string
	for start := 0; start < len(runes); start += step {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunk := string(runes[start:end])
		if strings.TrimSpace(chunk) != "" {
			chunks = append(chunks, chunk)
		}
		if end == len(runes) {
			break
		}
	}
	return chunks
}
