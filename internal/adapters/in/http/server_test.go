package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	httpin "github.com/u44592/hni/internal/adapters/in/http"
	"github.com/u44592/hni/internal/core/application/events"
	"github.com/u44592/hni/internal/core/application/usecases/commands"
	"github.com/u44592/hni/internal/core/application/usecases/queries"
	"github.com/u44592/hni/internal/core/domain/model/kernel"
	"github.com/u44592/hni/internal/core/domain/model/order"
	"github.com/u44592/hni/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRouter struct {
	mock.Mock
}

func (m *MockRouter) Route(ctx context.Context, event events.Event) (string, error) {
	args := m.Called(ctx, event)
	return args.String(0), args.Error(1)
}

type MockOpenOrders struct {
	mock.Mock
}

func (m *MockOpenOrders) Handle(ctx context.Context, q queries.GetOpenOrdersQuery) ([]queries.GetOpenOrdersQueryResponse, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]queries.GetOpenOrdersQueryResponse), args.Error(1)
}

type MockStatusUpdater struct {
	mock.Mock
}

func (m *MockStatusUpdater) Handle(ctx context.Context, cmd commands.UpdateOrderStatusCommand) error {
	return m.Called(ctx, cmd).Error(0)
}

type MockInboundRecorder struct {
	mock.Mock
}

func (m *MockInboundRecorder) RecordInbound(code int) {
	m.Called(code)
}

type fixture struct {
	router   *MockRouter
	orders   *MockOpenOrders
	updater  *MockStatusUpdater
	recorder *MockInboundRecorder
	echo     *echo.Echo
}

func newFixture(t *testing.T, throttle *httpin.PhoneThrottle) *fixture {
	t.Helper()
	f := &fixture{
		router:   new(MockRouter),
		orders:   new(MockOpenOrders),
		updater:  new(MockStatusUpdater),
		recorder: new(MockInboundRecorder),
		echo:     echo.New(),
	}
	f.recorder.On("RecordInbound", mock.Anything).Return()

	server := httpin.NewServer(f.router, f.orders, f.updater, httpin.ServerOptions{
		Throttle: throttle,
		Recorder: f.recorder,
		Metrics: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("metrics"))
		}),
	})
	server.RegisterHandlers(f.echo)
	return f
}

func (f *fixture) postMessage(accept, phone, text string) *httptest.ResponseRecorder {
	return f.postForm(accept, url.Values{
		"authKey":     {"key"},
		"phoneNumber": {phone},
		"sessionId":   {"s-1"},
		"userMessage": {text},
		"testMode":    {"false"},
	})
}

func (f *fixture) postForm(accept string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/usermessage", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	if accept != "" {
		req.Header.Set(echo.HeaderAccept, accept)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func TestPostUserMessage_ReplyFormats(t *testing.T) {
	tests := []struct {
		name   string
		accept string
		want   string
	}{
		{"plain by default", "", "Please provide your address or ENDMEAL to quit"},
		{"plain", "text/plain", "Please provide your address or ENDMEAL to quit"},
		{"html", "text/html", "<html><body>Please provide your address or ENDMEAL to quit</body></html>"},
		{"json", "application/json", `{"message":["Please provide your address or ENDMEAL to quit"],"status":200}`},
		{"first supported wins", "image/png, application/json;q=0.9, text/html", `{"message":["Please provide your address or ENDMEAL to quit"],"status":200}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.router.On("Route", mock.Anything, events.Event{
				Category:    events.CategoryMeal,
				PhoneNumber: "5550102000",
				SessionID:   "s-1",
				Text:        "MEAL",
			}).Return("Please provide your address or ENDMEAL to quit", nil)

			rec := f.postMessage(tt.accept, "5550102000", "MEAL")

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.want, strings.TrimSpace(rec.Body.String()))
			f.recorder.AssertCalled(t, "RecordInbound", http.StatusOK)
		})
	}
}

func TestPostUserMessage_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantBody string
	}{
		{"not registered", commands.ErrUserNotRegistered, http.StatusForbidden, "Please sign up first by saying REGISTER"},
		{"concurrent turn", fmt.Errorf("%w: stale", commands.ErrConcurrentTurn), http.StatusConflict, httpin.ReplySomethingWentWrong},
		{"invalid input", errs.NewValueIsInvalidError("mobile phone"), http.StatusBadRequest, httpin.ReplySomethingWentWrong},
		{"anything else", errors.New("db down"), http.StatusInternalServerError, httpin.ReplySomethingWentWrong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.router.On("Route", mock.Anything, mock.Anything).Return("", tt.err)

			rec := f.postMessage("text/plain", "5550102000", "MEAL")

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantBody, rec.Body.String())
			f.recorder.AssertCalled(t, "RecordInbound", tt.wantCode)
		})
	}
}

func TestPostUserMessage_JSONError(t *testing.T) {
	f := newFixture(t, nil)
	f.router.On("Route", mock.Anything, mock.Anything).Return("", errors.New("db down"))

	rec := f.postMessage("application/json", "5550102000", "MEAL")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	var body httpin.SMSError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, httpin.ReplySomethingWentWrong, body.Error)
	assert.Equal(t, http.StatusInternalServerError, body.Status)
}

func TestPostUserMessage_MissingPhone(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.postMessage("", "", "MEAL")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.router.AssertNotCalled(t, "Route", mock.Anything, mock.Anything)
}

func TestPostUserMessage_MalformedPhone(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.postMessage("", "12", "MEAL")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.router.AssertNotCalled(t, "Route", mock.Anything, mock.Anything)
}

func TestPostUserMessage_MissingUserMessage(t *testing.T) {
	f := newFixture(t, nil)

	rec := f.postForm("", url.Values{"phoneNumber": {"5550102000"}})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, httpin.ReplySomethingWentWrong, rec.Body.String())
	f.router.AssertNotCalled(t, "Route", mock.Anything, mock.Anything)
	f.recorder.AssertCalled(t, "RecordInbound", http.StatusBadRequest)
}

func TestPostUserMessage_EmptyUserMessageIsRouted(t *testing.T) {
	f := newFixture(t, nil)
	f.router.On("Route", mock.Anything, events.Event{
		Category:    events.CategoryMeal,
		PhoneNumber: "5550102000",
		SessionID:   "s-1",
	}).Return("I don't understand that, please say MEAL to request a meal.", nil)

	rec := f.postMessage("", "5550102000", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	f.router.AssertExpectations(t)
}

func TestPostUserMessage_RoutesNormalizedPhone(t *testing.T) {
	f := newFixture(t, nil)
	f.router.On("Route", mock.Anything, mock.MatchedBy(func(ev events.Event) bool {
		return ev.PhoneNumber == "5550102000"
	})).Return("ok", nil)

	rec := f.postMessage("", "+1 (555) 010-2000", "MEAL")

	assert.Equal(t, http.StatusOK, rec.Code)
	f.router.AssertExpectations(t)
}

func TestPostUserMessage_ThrottleSharedAcrossPhoneFormats(t *testing.T) {
	f := newFixture(t, httpin.NewPhoneThrottle(0.001, 1))
	f.router.On("Route", mock.Anything, mock.Anything).Return("ok", nil)

	assert.Equal(t, http.StatusOK, f.postMessage("", "5550102000", "MEAL").Code)
	rec := f.postMessage("", "+1 (555) 010-2000", "1")

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	f.router.AssertNumberOfCalls(t, "Route", 1)
}

func TestPostUserMessage_Throttled(t *testing.T) {
	f := newFixture(t, httpin.NewPhoneThrottle(0.001, 2))
	f.router.On("Route", mock.Anything, mock.Anything).Return("ok", nil)

	assert.Equal(t, http.StatusOK, f.postMessage("", "5550102000", "MEAL").Code)
	assert.Equal(t, http.StatusOK, f.postMessage("", "5550102000", "1").Code)
	rec := f.postMessage("", "5550102000", "CONFIRM")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, httpin.ReplyTooManyMessages, rec.Body.String())

	assert.Equal(t, http.StatusOK, f.postMessage("", "5550109999", "MEAL").Code, "other phones are not affected")
	f.router.AssertNumberOfCalls(t, "Route", 3)
}

func TestHealthAndMetrics(t *testing.T) {
	f := newFixture(t, nil)

	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())

	rec = httptest.NewRecorder()
	f.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "metrics", rec.Body.String())
}

func TestGetOpenOrders(t *testing.T) {
	f := newFixture(t, nil)
	id := kernel.NewUUID()
	userID := kernel.NewUUID()
	createdAt := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	f.orders.On("Handle", mock.Anything, mock.Anything).Return([]queries.GetOpenOrdersQueryResponse{{
		ID:               id,
		UserID:           userID,
		CreatedAt:        createdAt,
		LocationName:     "Soup Kitchen",
		LocationAddress1: "12 Elm St",
		Items:            "Chili",
		Subtotal:         kernel.Money(650),
		Status:           order.Open,
	}}, nil)

	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders/open", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body []httpin.Order
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	assert.Equal(t, id.String(), body[0].ID.String())
	assert.Equal(t, userID.String(), body[0].UserID.String())
	assert.Equal(t, "Chili", body[0].Items)
	assert.Equal(t, int64(650), body[0].SubtotalCents)
	assert.Equal(t, "Open", body[0].Status)
	assert.True(t, createdAt.Equal(body[0].CreatedAt))
}

func TestGetOpenOrders_Failure(t *testing.T) {
	f := newFixture(t, nil)
	f.orders.On("Handle", mock.Anything, mock.Anything).Return(nil, errors.New("db down"))

	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders/open", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func postStatus(f *fixture, id, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/"+id+"/status", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func TestUpdateOrderStatus(t *testing.T) {
	f := newFixture(t, nil)
	id := kernel.NewUUID()
	f.updater.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.UpdateOrderStatusCommand) bool {
		return cmd.OrderID().IsEqual(id) && cmd.Status() == order.Ordered
	})).Return(nil)

	rec := postStatus(f, id.String(), `{"status":"Ordered"}`)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	f.updater.AssertExpectations(t)
}

func TestUpdateOrderStatus_Errors(t *testing.T) {
	id := kernel.NewUUID().String()
	tests := []struct {
		name      string
		id        string
		body      string
		handleErr error
		wantCode  int
	}{
		{"bad id", "not-a-uuid", `{"status":"Ordered"}`, nil, http.StatusBadRequest},
		{"bad body", id, `{`, nil, http.StatusBadRequest},
		{"unknown status", id, `{"status":"Lost"}`, nil, http.StatusBadRequest},
		{"not found", id, `{"status":"Closed"}`, errs.NewObjectNotFoundError("order", id), http.StatusNotFound},
		{"invalid transition", id, `{"status":"Ordered"}`, errs.NewValueIsInvalidError("status is invalid"), http.StatusConflict},
		{"failure", id, `{"status":"Closed"}`, errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.updater.On("Handle", mock.Anything, mock.Anything).Return(tt.handleErr)

			rec := postStatus(f, tt.id, tt.body)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
