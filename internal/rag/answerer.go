package rag

import (
	"context"
	"fmt"
	"time"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"golang.org/x/time/rate"

	"github.com/CharukaVithana/ServeXa/internal/log"
)

const answerSystemPrompt = "You are an intelligent chatbot. " +
	"Use the following context to answer the question. " +
	"If you don't know, say you don't know."

// retrievalTimeout bounds document retrieval so a slow vector search
// cannot stall the whole chat request.
const retrievalTimeout = 5 * time.Second

type AnswererConfig struct {
	Genkit    *genkit.Genkit
	Retriever ai.Retriever
	ModelName string
	TopK      int

	// Limiter throttles model calls. Optional; defaults to 10 rps, burst 30.
	Limiter *rate.Limiter
	Logger  log.Logger
}

// Answerer generates corpus-grounded answers.
type Answerer struct {
	g         *genkit.Genkit
	retriever ai.Retriever
	model     string
	topK      int
	limiter   *rate.Limiter
	logger    log.Logger
}

func NewAnswerer(cfg AnswererConfig) (*Answerer, error) {
	if cfg.Genkit == nil {
		return nil, fmt.Errorf("rag: genkit instance is required")
	}
	if cfg.Retriever == nil {
		return nil, fmt.Errorf("rag: retriever is required")
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("rag: model name is required")
	}
	topK := cfg.TopK
	if topK <= 0 {
		topK = 5
	}
	limiter := cfg.Limiter
	if limiter == nil {
		limiter = rate.NewLimiter(10, 30)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}
	return &Answerer{
		g:         cfg.Genkit,
		retriever: cfg.Retriever,
		model:     cfg.ModelName,
		topK:      topK,
		limiter:   limiter,
		logger:    logger.With("component", "rag"),
	}, nil
}

// Answer retrieves context for the question and generates a grounded
// response. Failures come back as chat text rather than errors, so a
// broken model call still produces something to show the user.
func (a *Answerer) Answer(ctx context.Context, question string) (string, error) {
	docs := a.retrieve(ctx, question)

	if err := a.limiter.Wait(ctx); err != nil {
		return fmt.Sprintf("Error processing RAG query: %v", err), nil
	}

	opts := []ai.GenerateOption{
		ai.WithModelName(a.model),
		ai.WithSystem(answerSystemPrompt),
		ai.WithPrompt(question),
	}
	if len(docs) > 0 {
		opts = append(opts, ai.WithDocs(docs...))
	}

	resp, err := genkit.Generate(ctx, a.g, opts...)
	if err != nil {
		a.logger.Error("answer generation failed", "error", err)
		return fmt.Sprintf("Error processing RAG query: %v", err), nil
	}
	return resp.Text(), nil
}

// retrieve fetches corpus context, degrading to no context on failure.
func (a *Answerer) retrieve(ctx context.Context, question string) []*ai.Document {
	retrievalCtx, cancel := context.WithTimeout(ctx, retrievalTimeout)
	defer cancel()

	resp, err := a.retriever.Retrieve(retrievalCtx, &ai.RetrieverRequest{
		Query:   ai.DocumentFromText(question, nil),
		Options: map[string]any{"k": a.topK},
	})
	if err != nil {
		a.logger.Warn("retrieval failed, answering without context", "error", err)
		return nil
	}
	a.logger.Debug("retrieved context", "documents", len(resp.Documents))
	return resp.Documents
}
