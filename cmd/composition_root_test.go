package cmd

import (
	"context"
	"testing"

	"github.com/u44592/hni/internal/core/application/events"
	"github.com/u44592/hni/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockReceiver struct {
	mock.Mock
}

func (m *mockReceiver) Handle(ctx context.Context, cmd commands.ReceiveMessageCommand) (string, error) {
	args := m.Called(ctx, cmd)
	return args.String(0), args.Error(1)
}

func TestNewEventRouter_RoutesMealToReceiver(t *testing.T) {
	receiver := new(mockReceiver)
	receiver.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ReceiveMessageCommand) bool {
		return cmd.Phone() == "5550102000" && cmd.Text() == "MEAL"
	})).Return("Please provide your address or ENDMEAL to quit", nil)

	router, err := NewEventRouter(receiver)
	require.NoError(t, err)

	reply, err := router.Route(context.Background(), events.Event{
		Category:    events.CategoryMeal,
		PhoneNumber: "+1 (555) 010-2000",
		Text:        "MEAL",
	})

	require.NoError(t, err)
	assert.Equal(t, "Please provide your address or ENDMEAL to quit", reply)
	receiver.AssertExpectations(t)
}

func TestNewEventRouter_UnknownCategory(t *testing.T) {
	router, err := NewEventRouter(new(mockReceiver))
	require.NoError(t, err)

	_, err = router.Route(context.Background(), events.Event{Category: "REGISTER", PhoneNumber: "5550102000"})

	require.ErrorIs(t, err, events.ErrNoHandler)
}

func TestNewEventRouter_InvalidPhoneNeverReachesReceiver(t *testing.T) {
	receiver := new(mockReceiver)
	router, err := NewEventRouter(receiver)
	require.NoError(t, err)

	_, err = router.Route(context.Background(), events.Event{PhoneNumber: "12", Text: "MEAL"})

	require.Error(t, err)
	receiver.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}
