// Package events routes inbound messages to the workflow that handles them.
// The category-to-handler table is fixed when the router is built.
package events

import (
	"context"
	"errors"
	"fmt"
)

// Category names a conversation workflow.
type Category string

const (
	// CategoryMeal is the meal ordering conversation.
	CategoryMeal Category = "MEAL"
)

// ErrNoHandler is returned for events whose category has no handler.
var ErrNoHandler = errors.New("no handler registered for event category")

// Event is one inbound text message.
type Event struct {
	Category    Category
	PhoneNumber string
	SessionID   string
	Text        string
}

// Handler answers an event with the reply text.
type Handler interface {
	HandleEvent(ctx context.Context, event Event) (string, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, event Event) (string, error)

func (f HandlerFunc) HandleEvent(ctx context.Context, event Event) (string, error) {
	return f(ctx, event)
}

// Router dispatches events by category. Events without a category go to the
// fallback category.
type Router struct {
	fallback Category
	handlers map[Category]Handler
}

// NewRouter copies handlers; later changes to the map do not affect the router.
func NewRouter(fallback Category, handlers map[Category]Handler) (*Router, error) {
	copied := make(map[Category]Handler, len(handlers))
	for category, h := range handlers {
		if h == nil {
			return nil, fmt.Errorf("nil handler for category %q", category)
		}
		copied[category] = h
	}
	if _, ok := copied[fallback]; !ok {
		return nil, fmt.Errorf("%w: fallback %q", ErrNoHandler, fallback)
	}

	return &Router{fallback: fallback, handlers: copied}, nil
}

// Route hands the event to its category's handler.
func (r *Router) Route(ctx context.Context, event Event) (string, error) {
	if event.Category == "" {
		event.Category = r.fallback
	}

	h, ok := r.handlers[event.Category]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNoHandler, event.Category)
	}

	return h.HandleEvent(ctx, event)
}
