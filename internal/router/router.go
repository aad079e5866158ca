// Package router decides how each chat question gets answered: a profile
// fast path, an anonymous personal-data guard, and a model-driven dispatch
// between the knowledge corpus and the business services.
package router

import (
	"context"
	"fmt"

	"github.com/CharukaVithana/ServeXa/internal/classify"
	"github.com/CharukaVithana/ServeXa/internal/dispatch"
	"github.com/CharukaVithana/ServeXa/internal/gateway"
	"github.com/CharukaVithana/ServeXa/internal/log"
)

// Services is the slice of the downstream gateway the router consumes.
type Services interface {
	Profile(ctx context.Context, token string) (gateway.Profile, error)
	Appointments(ctx context.Context, customerID, token string, opts ...gateway.AppointmentOption) ([]gateway.Appointment, error)
	AppointmentStatistics(ctx context.Context, token string) (gateway.Statistics, error)
	Vehicles(ctx context.Context, customerID, token string) ([]gateway.Vehicle, error)
	Notifications(ctx context.Context, userID, token string, opts ...gateway.NotificationOption) ([]gateway.Notification, error)
	UnreadCount(ctx context.Context, userID, token string) (int, error)
}

// Knowledge answers a question from the document corpus.
type Knowledge interface {
	Answer(ctx context.Context, question string) (string, error)
}

// Dispatcher asks the model which capability should handle a question.
type Dispatcher interface {
	Dispatch(ctx context.Context, question string) (dispatch.Decision, error)
}

type Router struct {
	services   Services
	knowledge  Knowledge
	dispatcher Dispatcher
	logger     log.Logger
}

func New(services Services, knowledge Knowledge, dispatcher Dispatcher, logger log.Logger) *Router {
	if logger == nil {
		logger = log.NewNop()
	}
	return &Router{
		services:   services,
		knowledge:  knowledge,
		dispatcher: dispatcher,
		logger:     logger.With("component", "router"),
	}
}

// Answer routes a question to the right capability and always returns a
// user-facing string. Routing failures surface as chat text, never as
// errors: the caller has nothing better to do with them.
func (r *Router) Answer(ctx context.Context, question, customerID, token string) string {
	if customerID != "" {
		if field, ok := classify.PersonalField(question); ok {
			return r.profileAnswer(ctx, field, token)
		}
	}

	if customerID == "" && classify.IsPersonalData(question) {
		return "Please log in to view your personal appointments, vehicles, or service status."
	}

	decision, err := r.dispatcher.Dispatch(ctx, question)
	if err != nil {
		r.logger.Error("dispatch failed", "error", err)
		return fmt.Sprintf("Routing error: %v", err)
	}

	switch decision.Tool {
	case "":
		// The model declined to pick a tool; the corpus gets the raw question.
		return r.corpusAnswer(ctx, question)
	case dispatch.ToolKnowledge:
		return r.corpusAnswer(ctx, decision.Question)
	case dispatch.ToolServices:
		return r.resolveServiceQuery(ctx, decision.Question, customerID, token)
	default:
		r.logger.Warn("model requested an unknown tool", "tool", decision.Tool)
		return "Error: Unknown function call."
	}
}

func (r *Router) corpusAnswer(ctx context.Context, question string) string {
	answer, err := r.knowledge.Answer(ctx, question)
	if err != nil {
		r.logger.Error("knowledge answer failed", "error", err)
		return fmt.Sprintf("Routing error: %v", err)
	}
	return answer
}

// profileAnswer serves the identity fast path. Any trouble reaching the
// auth service or a missing field both read as not knowing the value.
func (r *Router) profileAnswer(ctx context.Context, field classify.Field, token string) string {
	profile, err := r.services.Profile(ctx, token)
	if err != nil {
		r.logger.Error("profile fetch failed", "field", field, "error", err)
		return fmt.Sprintf("I don't know your %s.", field.Label())
	}
	value, ok := profile.Field(string(field))
	if !ok {
		return fmt.Sprintf("I don't know your %s.", field.Label())
	}
	return fmt.Sprintf("Your %s is %s.", field.Label(), value)
}
