// Package http is the inbound HTTP surface: the SMS gateway webhook, the
// provider fulfillment API, health and metrics.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/u44592/hni/internal/core/application/events"
	"github.com/u44592/hni/internal/core/application/usecases/commands"
	"github.com/u44592/hni/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
)

// MessageRouter hands an inbound SMS to the handler of its category.
type MessageRouter interface {
	Route(ctx context.Context, event events.Event) (string, error)
}

// OpenOrdersLister lists the orders the provider still has to handle.
type OpenOrdersLister interface {
	Handle(ctx context.Context, query queries.GetOpenOrdersQuery) ([]queries.GetOpenOrdersQueryResponse, error)
}

// OrderStatusUpdater applies a provider's status change to an order.
type OrderStatusUpdater interface {
	Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) error
}

// InboundRecorder counts webhook responses by status code.
type InboundRecorder interface {
	RecordInbound(code int)
}

type nopInboundRecorder struct{}

func (nopInboundRecorder) RecordInbound(int) {}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	router        MessageRouter
	throttle      *PhoneThrottle
	openOrders    OpenOrdersLister
	statusUpdater OrderStatusUpdater
	recorder      InboundRecorder
	metrics       http.Handler
	logger        *slog.Logger
}

// ServerOptions holds the optional collaborators of a Server.
type ServerOptions struct {
	Throttle *PhoneThrottle
	Recorder InboundRecorder
	// Metrics is served on GET /metrics when set.
	Metrics http.Handler
	Logger  *slog.Logger
}

// NewServer creates a Server. Without a throttle every message is accepted;
// without a recorder nothing is counted.
func NewServer(
	router MessageRouter,
	openOrders OpenOrdersLister,
	statusUpdater OrderStatusUpdater,
	opts ServerOptions,
) *Server {
	if opts.Throttle == nil {
		opts.Throttle = NewPhoneThrottle(0, 1)
	}
	if opts.Recorder == nil {
		opts.Recorder = nopInboundRecorder{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Server{
		router:        router,
		throttle:      opts.Throttle,
		openOrders:    openOrders,
		statusUpdater: statusUpdater,
		recorder:      opts.Recorder,
		metrics:       opts.Metrics,
		logger:        opts.Logger.With("component", "http"),
	}
}

// RegisterHandlers mounts every route on e.
func (s *Server) RegisterHandlers(e *echo.Echo) {
	e.GET("/health", s.Health)
	if s.metrics != nil {
		e.GET("/metrics", echo.WrapHandler(s.metrics))
	}

	e.POST("/usermessage", s.PostUserMessage)

	api := e.Group("/api/v1")
	api.GET("/orders/open", s.GetOpenOrders)
	api.POST("/orders/:id/status", s.UpdateOrderStatus)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}
