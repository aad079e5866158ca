package rag

import (
	"testing"

	"github.com/firebase/genkit/go/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CharukaVithana/ServeXa/internal/knowledge"
)

func TestQueryText(t *testing.T) {
	req := &ai.RetrieverRequest{Query: ai.DocumentFromText("opening hours", nil)}
	assert.Equal(t, "opening hours", queryText(req))

	assert.Empty(t, queryText(&ai.RetrieverRequest{}))
}

func TestTopK(t *testing.T) {
	tests := []struct {
		name    string
		options any
		want    int
	}{
		{name: "no options", options: nil, want: 5},
		{name: "int", options: map[string]any{"k": 3}, want: 3},
		{name: "float64 from JSON", options: map[string]any{"k": float64(7)}, want: 7},
		{name: "out of range high", options: map[string]any{"k": 50}, want: 5},
		{name: "out of range low", options: map[string]any{"k": 0}, want: 5},
		{name: "mistyped", options: map[string]any{"k": "three"}, want: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &ai.RetrieverRequest{Options: tt.options}
			assert.Equal(t, tt.want, topK(req, 5))
		})
	}
}

func TestToGenkitDocuments(t *testing.T) {
	docs := toGenkitDocuments([]knowledge.Result{
		{
			Document: knowledge.Document{
				Content:  "We are open 8am to 6pm.",
				Metadata: map[string]string{"source": "faq.txt"},
			},
			Similarity: 0.9,
		},
	})

	require.Len(t, docs, 1)
	assert.Equal(t, "We are open 8am to 6pm.", docs[0].Content[0].Text)
	assert.Equal(t, "faq.txt", docs[0].Metadata["source"])
	assert.Equal(t, float32(0.9), docs[0].Metadata["similarity"])
}
