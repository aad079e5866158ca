// Package dispatch asks the model which capability should answer a chat
// question. The model sees two tools and is told to call exactly one; the
// tool request is returned to the caller instead of being executed, so the
// router keeps control of what actually runs.
package dispatch

import (
	"context"
	"fmt"

	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	"golang.org/x/time/rate"

	"github.com/CharukaVithana/ServeXa/internal/log"
)

// Tool names the model may request.
const (
	ToolKnowledge = "query_rag_system"
	ToolServices  = "query_service_system"
)

const routingSystemPrompt = "You are a routing assistant. Call *one* of these:\n" +
	"- `query_rag_system` for ServeXa/general knowledge/policies\n" +
	"- `query_service_system` for garage/customer/vehicle/appointment/notification info\n"

// Decision is the model's routing verdict. An empty Tool means the model
// answered without requesting a tool; Question carries the sub-question the
// model extracted, falling back to the original when it supplied none.
type Decision struct {
	Tool     string
	Question string
}

type toolInput struct {
	Question string `json:"question"`
}

type Config struct {
	Genkit    *genkit.Genkit
	ModelName string

	// Limiter throttles model calls. Optional; defaults to 10 rps, burst 30.
	Limiter *rate.Limiter
	Logger  log.Logger
}

type Dispatcher struct {
	g       *genkit.Genkit
	model   string
	limiter *rate.Limiter
	logger  log.Logger
	tools   []ai.ToolRef
}

// New registers the routing tools and returns a dispatcher.
func New(cfg Config) (*Dispatcher, error) {
	if cfg.Genkit == nil {
		return nil, fmt.Errorf("dispatch: genkit instance is required")
	}
	if cfg.ModelName == "" {
		return nil, fmt.Errorf("dispatch: model name is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}
	limiter := cfg.Limiter
	if limiter == nil {
		limiter = rate.NewLimiter(10, 30)
	}

	// The handlers never run: generation returns tool requests to the
	// caller. They exist so the model sees the tool schemas.
	knowledgeTool := genkit.DefineTool(
		cfg.Genkit,
		ToolKnowledge,
		"Answers questions about ServeXa services, policies, and general information",
		func(_ *ai.ToolContext, input toolInput) (string, error) {
			return input.Question, nil
		},
	)
	servicesTool := genkit.DefineTool(
		cfg.Genkit,
		ToolServices,
		"Answers questions about garage operations, appointments, vehicles, and user-specific data",
		func(_ *ai.ToolContext, input toolInput) (string, error) {
			return input.Question, nil
		},
	)

	return &Dispatcher{
		g:       cfg.Genkit,
		model:   cfg.ModelName,
		limiter: limiter,
		logger:  logger.With("component", "dispatch"),
		tools:   []ai.ToolRef{knowledgeTool, servicesTool},
	}, nil
}

// Dispatch asks the model to pick a capability for the question.
func (d *Dispatcher) Dispatch(ctx context.Context, question string) (Decision, error) {
	if err := d.limiter.Wait(ctx); err != nil {
		return Decision{}, fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := genkit.Generate(ctx, d.g,
		ai.WithModelName(d.model),
		ai.WithSystem(routingSystemPrompt),
		ai.WithPrompt(question),
		ai.WithTools(d.tools...),
		ai.WithReturnToolRequests(true),
	)
	if err != nil {
		return Decision{}, fmt.Errorf("routing generation: %w", err)
	}

	requests := resp.ToolRequests()
	if len(requests) == 0 {
		d.logger.Debug("model answered without a tool request", "question_length", len(question))
		return Decision{Question: question}, nil
	}

	req := requests[0]
	d.logger.Debug("model requested tool", "tool", req.Name)
	return Decision{
		Tool:     req.Name,
		Question: extractQuestion(req.Input, question),
	}, nil
}

// extractQuestion pulls the sub-question out of a tool request's input,
// which arrives as decoded JSON. A missing or mistyped field falls back to
// the original question.
func extractQuestion(input any, fallback string) string {
	m, ok := input.(map[string]any)
	if !ok {
		return fallback
	}
	q, ok := m["question"].(string)
	if !ok || q == "" {
		return fallback
	}
	return q
}
