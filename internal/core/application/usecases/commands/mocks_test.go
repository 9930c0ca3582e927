package commands_test

import (
	"context"
	"time"

	"basket/internal/core/application/usecases/commands"
	"basket/internal/core/domain/model/catalog"
	"basket/internal/core/domain/model/client"
	"basket/internal/core/domain/model/kernel"
	"basket/internal/core/domain/model/order"
	"basket/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*order.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepository) GetAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepository) GetAllInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, status)
	orders, _ := args.Get(0).([]*order.Order)
	return orders, args.Error(1)
}

type MockOrderLineRepository struct{ mock.Mock }

func (m *MockOrderLineRepository) Add(ctx context.Context, orderID int64, line *order.OrderLine) error {
	args := m.Called(ctx, orderID, line)
	return args.Error(0)
}

func (m *MockOrderLineRepository) Update(ctx context.Context, line *order.OrderLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockOrderLineRepository) Delete(ctx context.Context, line *order.OrderLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

type MockClientRepository struct{ mock.Mock }

func (m *MockClientRepository) Add(ctx context.Context, c *client.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClientRepository) GetByCode(ctx context.Context, code string) (*client.Client, error) {
	args := m.Called(ctx, code)
	c, _ := args.Get(0).(*client.Client)
	return c, args.Error(1)
}

type MockCurrencyRepository struct{ mock.Mock }

func (m *MockCurrencyRepository) GetByCode(ctx context.Context, code string) (catalog.Currency, error) {
	args := m.Called(ctx, code)
	c, _ := args.Get(0).(catalog.Currency)
	return c, args.Error(1)
}

type MockProductRepository struct{ mock.Mock }

func (m *MockProductRepository) GetByCode(ctx context.Context, code string) (catalog.Product, error) {
	args := m.Called(ctx, code)
	p, _ := args.Get(0).(catalog.Product)
	return p, args.Error(1)
}

type MockConfigurationProvider struct{ mock.Mock }

func (m *MockConfigurationProvider) VatRate(ctx context.Context) (kernel.Rate, error) {
	args := m.Called(ctx)
	r, _ := args.Get(0).(kernel.Rate)
	return r, args.Error(1)
}

type MockCompletionWorkflow struct{ mock.Mock }

func (m *MockCompletionWorkflow) Complete(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

// MockUoW satisfies both commands.UoW and commands.OrderUoW.
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

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) OrderLineRepository() ports.OrderLineRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderLineRepository)
}

func (m *MockUoW) ClientRepository() ports.ClientRepository {
	args := m.Called()
	return args.Get(0).(ports.ClientRepository)
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

type MockOutbox struct{ mock.Mock }

func (m *MockOutbox) GetUnsent(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	args := m.Called(ctx, limit)
	messages, _ := args.Get(0).([]ports.OutboxMessage)
	return messages, args.Error(1)
}

func (m *MockOutbox) MarkSent(ctx context.Context, ids []kernel.UUID, sentAt time.Time) error {
	args := m.Called(ctx, ids, sentAt)
	return args.Error(0)
}

type MockMessagePublisher struct{ mock.Mock }

func (m *MockMessagePublisher) Publish(ctx context.Context, messages ...ports.OutboxMessage) error {
	args := m.Called(ctx, messages)
	return args.Error(0)
}
