// Package knowledge stores and searches the ServeXa document corpus using
// PostgreSQL with pgvector for similarity search.
package knowledge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pgvector/pgvector-go"
	"google.golang.org/genai"

	"github.com/CharukaVithana/ServeXa/internal/log"
)

// VectorDimension is the embedding width stored in the documents table.
// gemini-embedding-001 outputs 3072 dimensions by default; we request
// truncation to 768 to match the pgvector schema and index limits.
const VectorDimension int32 = 768

// Querier is the slice of pgxpool.Pool the store needs. Defined here so
// tests can substitute a fake without a live database.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store manages knowledge documents with vector search.
// It is safe for concurrent use.
type Store struct {
	db       Querier
	embedder ai.Embedder
	logger   log.Logger
}

func New(db Querier, embedder ai.Embedder, logger log.Logger) *Store {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Store{
		db:       db,
		embedder: embedder,
		logger:   logger.With("component", "knowledge"),
	}
}

const upsertDocumentSQL = `
INSERT INTO documents (id, content, embedding, metadata, created_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (id) DO UPDATE SET
	content = EXCLUDED.content,
	embedding = EXCLUDED.embedding,
	metadata = EXCLUDED.metadata`

// Add embeds a document's content and upserts it.
func (s *Store) Add(ctx context.Context, doc Document) error {
	embedding, err := s.embed(ctx, doc.Content)
	if err != nil {
		return fmt.Errorf("embed document %q: %w", doc.ID, err)
	}

	metadataJSON, err := json.Marshal(doc.Metadata)
	if err != nil {
		return fmt.Errorf("marshal metadata for %q: %w", doc.ID, err)
	}

	createdAt := doc.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	if _, err := s.db.Exec(ctx, upsertDocumentSQL,
		doc.ID, doc.Content, embedding, metadataJSON, createdAt); err != nil {
		return fmt.Errorf("upsert document %q: %w", doc.ID, err)
	}

	s.logger.Debug("added document", "id", doc.ID, "content_length", len(doc.Content))
	return nil
}

const searchSQL = `
SELECT id, content, metadata, created_at, 1 - (embedding <=> $1) AS similarity
FROM documents
WHERE ($2 = '' OR metadata->>'source' = $2)
ORDER BY embedding <=> $1
LIMIT $3`

// Search returns the documents most similar to the query, best first.
// A per-search timeout keeps slow vector scans from blocking the caller.
func (s *Store) Search(ctx context.Context, query string, opts ...SearchOption) ([]Result, error) {
	cfg := buildSearchConfig(opts)

	queryCtx, cancel := context.WithTimeout(ctx, cfg.timeout)
	defer cancel()

	embedding, err := s.embed(queryCtx, query)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("query embedding timeout: %w", err)
		}
		return nil, fmt.Errorf("embed query: %w", err)
	}

	rows, err := s.db.Query(queryCtx, searchSQL, embedding, cfg.source, cfg.topK)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("search query timeout: %w", err)
		}
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	results := make([]Result, 0, cfg.topK)
	for rows.Next() {
		var (
			doc          Document
			metadataJSON []byte
			similarity   float32
		)
		if err := rows.Scan(&doc.ID, &doc.Content, &metadataJSON, &doc.CreatedAt, &similarity); err != nil {
			return nil, fmt.Errorf("scan search row: %w", err)
		}
		if len(metadataJSON) > 0 {
			if err := json.Unmarshal(metadataJSON, &doc.Metadata); err != nil {
				s.logger.Warn("unparseable document metadata", "id", doc.ID, "error", err)
			}
		}
		results = append(results, Result{Document: doc, Similarity: similarity})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate search rows: %w", err)
	}
	return results, nil
}

// Count returns the number of indexed documents, optionally for one source.
func (s *Store) Count(ctx context.Context, source string) (int, error) {
	var count int64
	err := s.db.QueryRow(ctx,
		`SELECT count(*) FROM documents WHERE ($1 = '' OR metadata->>'source' = $1)`,
		source).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return int(count), nil
}

// Delete removes one document.
func (s *Store) Delete(ctx context.Context, id string) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete document %q: %w", id, err)
	}
	s.logger.Debug("deleted document", "id", id)
	return nil
}

// DeleteBySource removes every document indexed from the given source.
// Reindexing a corpus file starts with this to drop stale chunks.
func (s *Store) DeleteBySource(ctx context.Context, source string) (int, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM documents WHERE metadata->>'source' = $1`, source)
	if err != nil {
		return 0, fmt.Errorf("delete documents for source %q: %w", source, err)
	}
	return int(tag.RowsAffected()), nil
}

func (s *Store) embed(ctx context.Context, text string) (pgvector.Vector, error) {
	dim := VectorDimension
	resp, err := s.embedder.Embed(ctx, &ai.EmbedRequest{
		Input:   []*ai.Document{ai.DocumentFromText(text, nil)},
		Options: &genai.EmbedContentConfig{OutputDimensionality: &dim},
	})
	if err != nil {
		return pgvector.Vector{}, err
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Embedding) == 0 {
		return pgvector.Vector{}, errors.New("empty embedding returned")
	}
	return pgvector.NewVector(resp.Embeddings[0].Embedding), nil
}
