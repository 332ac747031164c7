package commands_test

import (
	"context"
	"time"

	"github.com/u44592/hni/internal/core/application/usecases/commands"
	"github.com/u44592/hni/internal/core/domain/model/catalog"
	"github.com/u44592/hni/internal/core/domain/model/draft"
	"github.com/u44592/hni/internal/core/domain/model/kernel"
	"github.com/u44592/hni/internal/core/domain/model/order"
	"github.com/u44592/hni/internal/core/domain/model/user"
	"github.com/u44592/hni/internal/core/domain/services"
	"github.com/u44592/hni/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockDraftRepository struct{ mock.Mock }

func (m *MockDraftRepository) GetByUser(ctx context.Context, userID kernel.UUID) (*draft.Draft, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.(*draft.Draft), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDraftRepository) Save(ctx context.Context, d *draft.Draft) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDraftRepository) Delete(ctx context.Context, d *draft.Draft) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDraftRepository) DeleteIdleSince(ctx context.Context, cutoff time.Time) (int64, error) {
	args := m.Called(ctx, cutoff)
	return args.Get(0).(int64), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) RecentForUser(ctx context.Context, userID kernel.UUID, since time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, userID, since)
	if v := args.Get(0); v != nil {
		return v.([]*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) DraftRepository() ports.DraftRepository {
	args := m.Called()
	return args.Get(0).(ports.DraftRepository)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockDraftUoWFactory struct{ mock.Mock }

func (m *MockDraftUoWFactory) Create() commands.DraftUoW {
	args := m.Called()
	return args.Get(0).(commands.DraftUoW)
}

type MockCatalogGateway struct{ mock.Mock }

func (m *MockCatalogGateway) FindNearby(
	ctx context.Context,
	address string,
	radiusMiles float64,
) ([]*catalog.ProviderLocation, error) {
	args := m.Called(ctx, address, radiusMiles)
	if v := args.Get(0); v != nil {
		return v.([]*catalog.ProviderLocation), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockTurnLocker struct {
	mock.Mock
	released int
}

func (m *MockTurnLocker) Lock(ctx context.Context, userID kernel.UUID) (func(), error) {
	args := m.Called(ctx, userID)
	if err := args.Error(0); err != nil {
		return nil, err
	}
	return func() { m.released++ }, nil
}

type MockTurnRecorder struct{ mock.Mock }

func (m *MockTurnRecorder) RecordTurn(phase string, outcome services.Outcome) {
	m.Called(phase, outcome)
}

func (m *MockTurnRecorder) RecordOrderFinalized() {
	m.Called()
}

type MockUserDirectory struct{ mock.Mock }

func (m *MockUserDirectory) GetByMobilePhone(ctx context.Context, phone string) (*user.User, error) {
	args := m.Called(ctx, phone)
	if v := args.Get(0); v != nil {
		return v.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserDirectory) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*user.User), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockMessageProcessor struct{ mock.Mock }

func (m *MockMessageProcessor) Handle(ctx context.Context, cmd commands.ProcessMessageCommand) (string, error) {
	args := m.Called(ctx, cmd)
	return args.String(0), args.Error(1)
}
