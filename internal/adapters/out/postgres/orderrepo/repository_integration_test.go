package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"basket/internal/adapters/out/postgres/orderrepo"
	"basket/internal/adapters/out/postgres/pgtest"
	"basket/internal/core/domain/model/catalog"
	"basket/internal/core/domain/model/client"
	"basket/internal/core/domain/model/order"
	"basket/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(aggregate *order.Order) {
	m.Called(aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for the order
// and order line repositories using PostgreSQL containers.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *orderrepo.GormOrderRepository
	lines      *orderrepo.GormOrderLineRepository
	tracker    *MockAggregateTracker

	owner    *client.Client
	eur      catalog.Currency
	product1 catalog.Product
	product2 catalog.Product
	now      time.Time
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	ctx := context.Background()
	suite.Require().NoError(suite.database.Truncate())

	var err error
	suite.eur, err = suite.database.StoreEUR(ctx)
	suite.Require().NoError(err)
	suite.owner, err = suite.database.StoreClient(ctx, "4829")
	suite.Require().NoError(err)
	suite.product1, err = suite.database.StoreProduct(ctx, "PRODUCT-1", 100)
	suite.Require().NoError(err)
	suite.product2, err = suite.database.StoreProduct(ctx, "PRODUCT-2", 200)
	suite.Require().NoError(err)

	suite.now = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.database.DB, suite.tracker)
	suite.lines = orderrepo.NewGormOrderLineRepository(suite.database.DB)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_AssignsIDs() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	line, err := testOrder.AddLine(suite.product1, 2, suite.now)
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", testOrder).Once()

	err = suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.Positive(testOrder.ID())
	suite.Positive(line.ID())
	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_UnstoredClient_ReturnsError() {
	ctx := context.Background()

	stranger, err := client.NewClient("9999", "John", "Doe", nil, client.Unspecified, nil)
	suite.Require().NoError(err)
	testOrder, err := pgtest.NewOrder(stranger, suite.eur, suite.now)
	suite.Require().NoError(err)

	err = suite.repository.Add(ctx, testOrder)

	suite.Require().ErrorIs(err, errs.ErrValueIsRequired)
	suite.assertOrderCount(0)
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", mock.Anything)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_ReturnsCompleteAggregate() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	_, err := testOrder.AddLine(suite.product1, 2, suite.now)
	suite.Require().NoError(err)
	_, err = testOrder.AddLine(suite.product2, 3, suite.now)
	suite.Require().NoError(err)
	suite.addOrder(testOrder)

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Equal(testOrder.ID(), retrieved.ID())
	suite.Equal(order.Initialized, retrieved.Status())
	suite.Equal(0, retrieved.Version())
	suite.Equal("4829", retrieved.Client().Code())
	suite.Len(retrieved.Client().Contacts(), 1)
	suite.Equal("EUR", retrieved.Currency().Code())
	suite.Equal("€", retrieved.Currency().ShortSign())
	suite.Equal("0.1", retrieved.DiscountRate().String())
	suite.Equal("0.2", retrieved.VatRate().String())
	suite.Equal(order.WireTransfer, retrieved.BillingInfo().PaymentMethod())
	suite.True(retrieved.BillingInfo().Address().IsEqual(testOrder.ShippingInfo().Address()))
	suite.WithinDuration(suite.now, retrieved.Timestamp(), time.Millisecond)

	lines := retrieved.Lines()
	suite.Require().Len(lines, 2)
	suite.Equal("PRODUCT-1", lines[0].ProductCode())
	suite.Equal(uint(2), lines[0].Quantity())
	suite.Equal("100", lines[0].UnitCost().String())
	suite.Equal("EUR", lines[0].CurrencyCode())
	suite.Equal("PRODUCT-2", lines[1].ProductCode())
	suite.Equal("800", retrieved.Total().String())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_OrderWithoutLines_HasEmptyCollection() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.addOrder(testOrder)

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.True(retrieved.HasLineCollection())
	suite.Empty(retrieved.Lines())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, 404)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Nil(retrieved)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_CurrentVersion_BumpsVersion() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.addOrder(testOrder)

	_, err := testOrder.AddLine(suite.product1, 1, suite.now.Add(time.Minute))
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", testOrder).Once()

	err = suite.repository.Update(ctx, testOrder)
	suite.Require().NoError(err)
	suite.Equal(1, testOrder.Version())

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(1, retrieved.Version())
	suite.WithinDuration(suite.now.Add(time.Minute), retrieved.Timestamp(), time.Millisecond)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StatusTransition_IsPersisted() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.addOrder(testOrder)

	suite.Require().NoError(testOrder.TransitionTo(order.Submitted, suite.now.Add(time.Hour)))
	suite.tracker.On("TrackAggregate", testOrder).Once()
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Submitted, retrieved.Status())
	suite.WithinDuration(suite.now.Add(time.Hour), retrieved.Timestamp(), time.Millisecond)

	submitted, err := suite.repository.GetAllInStatus(ctx, order.Submitted)
	suite.Require().NoError(err)
	suite.Len(submitted, 1)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsVersionIsInvalid() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.addOrder(testOrder)

	first, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", first).Once()
	suite.Require().NoError(suite.repository.Update(ctx, first))

	err = suite.repository.Update(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
	suite.Equal(0, second.Version())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.Require().NoError(testOrder.AssignID(404))

	err := suite.repository.Update(ctx, testOrder)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAll_ReturnsOrdersByID() {
	ctx := context.Background()

	first := suite.createTestOrder()
	second := suite.createTestOrder()
	suite.addOrder(first)
	suite.addOrder(second)

	orders, err := suite.repository.GetAll(ctx)
	suite.Require().NoError(err)

	suite.Require().Len(orders, 2)
	suite.Equal(first.ID(), orders[0].ID())
	suite.Equal(second.ID(), orders[1].ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAll_NoOrders_ReturnsEmptySlice() {
	orders, err := suite.repository.GetAll(context.Background())

	suite.Require().NoError(err)
	suite.NotNil(orders)
	suite.Empty(orders)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInStatus() {
	ctx := context.Background()

	initialized := suite.createTestOrder()
	suite.addOrder(initialized)

	submitted, err := order.RestoreOrder(0, suite.owner, suite.eur, initialized.DiscountRate(), initialized.VatRate(),
		order.Submitted, initialized.BillingInfo(), initialized.ShippingInfo(), []*order.OrderLine{}, suite.now, 0)
	suite.Require().NoError(err)
	suite.addOrder(submitted)

	testCases := []struct {
		name     string
		status   order.Status
		expected []int64
	}{
		{"initialized", order.Initialized, []int64{initialized.ID()}},
		{"submitted", order.Submitted, []int64{submitted.ID()}},
		{"fulfilled", order.Fulfilled, []int64{}},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			orders, getErr := suite.repository.GetAllInStatus(ctx, tc.status)
			suite.Require().NoError(getErr)

			ids := make([]int64, 0, len(orders))
			for _, o := range orders {
				ids = append(ids, o.ID())
			}
			suite.Equal(tc.expected, ids)
		})
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInStatus_UnknownStatus_ReturnsError() {
	_, err := suite.repository.GetAllInStatus(context.Background(), order.Unknown)

	suite.Require().Error(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestLines_AddUpdateDelete() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.addOrder(testOrder)

	line, err := testOrder.AddLine(suite.product2, 3, suite.now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.lines.Add(ctx, testOrder.ID(), line))
	suite.Positive(line.ID())

	line, err = testOrder.SetLineQuantity("PRODUCT-2", 2, suite.now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.lines.Update(ctx, line))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().Len(retrieved.Lines(), 1)
	suite.Equal(uint(2), retrieved.Lines()[0].Quantity())

	removed, err := testOrder.RemoveLine("PRODUCT-2", suite.now)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.lines.Delete(ctx, removed))

	retrieved, err = suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Empty(retrieved.Lines())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestLines_ConcurrentChanges_ReturnVersionIsInvalid() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	_, err := testOrder.AddLine(suite.product1, 1, suite.now)
	suite.Require().NoError(err)
	suite.addOrder(testOrder)

	stale, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.Run("duplicate product", func() {
		duplicate, lineErr := order.NewOrderLine("PRODUCT-1", 1, suite.product1.Price(), "EUR", suite.now)
		suite.Require().NoError(lineErr)

		suite.Require().ErrorIs(suite.lines.Add(ctx, testOrder.ID(), duplicate), errs.ErrVersionIsInvalid)
	})

	suite.Run("line already deleted", func() {
		removed, removeErr := testOrder.RemoveLine("PRODUCT-1", suite.now)
		suite.Require().NoError(removeErr)
		suite.Require().NoError(suite.lines.Delete(ctx, removed))

		staleLine := stale.Line("PRODUCT-1")
		suite.Require().NotNil(staleLine)
		suite.Require().ErrorIs(suite.lines.Delete(ctx, staleLine), errs.ErrVersionIsInvalid)
		suite.Require().ErrorIs(suite.lines.Update(ctx, staleLine), errs.ErrVersionIsInvalid)
	})
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	testOrder, err := pgtest.NewOrder(suite.owner, suite.eur, suite.now)
	suite.Require().NoError(err)
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) addOrder(o *order.Order) {
	suite.tracker.On("TrackAggregate", o).Once()
	suite.Require().NoError(suite.repository.Add(context.Background(), o))
}

// assertOrderCount verifies the number of orders in the database.
func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.database.DB.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
