// Package rag answers questions from the indexed ServeXa document corpus:
// a Genkit retriever bridged to the knowledge store, a chunking indexer,
// and a generation step that grounds the model in retrieved context.
package rag

import (
	"context"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"

	"github.com/CharukaVithana/ServeXa/internal/knowledge"
)

// SearchStore is the slice of the knowledge store the retriever consumes.
type SearchStore interface {
	Search(ctx context.Context, query string, opts ...knowledge.SearchOption) ([]knowledge.Result, error)
}

// DefineRetriever bridges the knowledge store to a Genkit ai.Retriever.
func DefineRetriever(g *genkit.Genkit, name string, store SearchStore) ai.Retriever {
	return genkit.DefineRetriever(
		g, name, nil,
		func(ctx context.Context, req *ai.RetrieverRequest) (*ai.RetrieverResponse, error) {
			results, err := store.Search(ctx, queryText(req), knowledge.WithTopK(topK(req, 5)))
			if err != nil {
				return nil, err
			}
			return &ai.RetrieverResponse{Documents: toGenkitDocuments(results)}, nil
		},
	)
}

func queryText(req *ai.RetrieverRequest) string {
	if req.Query != nil && len(req.Query.Content) > 0 {
		return req.Query.Content[0].Text
	}
	return ""
}

// topK reads the result cap from request options, clamped to [1, 10].
func topK(req *ai.RetrieverRequest, fallback int) int {
	opts, ok := req.Options.(map[string]any)
	if !ok {
		return fallback
	}
	var k int
	switch v := opts["k"].(type) {
	case int:
		k = v
	case int64:
		k = int(v)
	case float64:
		k = int(v)
	default:
		return fallback
	}
	if k < 1 || k > 10 {
		return fallback
	}
	return k
}

func toGenkitDocuments(results []knowledge.Result) []*ai.Document {
	docs := make([]*ai.Document, len(results))
	for i, result := range results {
		metadata := make(map[string]any, len(result.Document.Metadata)+1)
		for k, v := range result.Document.Metadata {
			metadata[k] = v
		}
		metadata["similarity"] = result.Similarity
		docs[i] = ai.DocumentFromText(result.Document.Content, metadata)
	}
	return docs
}
