package queries_test

import (
	"context"
	"testing"
	"time"

	"basket/internal/adapters/out/postgres/orderrepo"
	"basket/internal/adapters/out/postgres/pgtest"
	"basket/internal/core/application/usecases/queries"
	"basket/internal/core/domain/model/catalog"
	"basket/internal/core/domain/model/client"
	"basket/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type GetOpenOrdersQueryHandlerTestSuite struct {
	suite.Suite
	database *pgtest.Database
	handler  queries.GetOpenOrdersQueryHandler
	orders   *orderrepo.GormOrderRepository

	owner    *client.Client
	eur      catalog.Currency
	product1 catalog.Product
	product2 catalog.Product
	now      time.Time
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.handler = queries.NewGetOpenOrdersQueryHandler(database.DB)
	suite.orders = orderrepo.NewGormOrderRepository(database.DB, nil)
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) TearDownSuite() {
	if suite.database != nil {
		suite.Require().NoError(suite.database.Terminate(context.Background()))
	}
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) SetupTest() {
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
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) storeOrder(lines map[catalog.Product]uint) *order.Order {
	o, err := pgtest.NewOrder(suite.owner, suite.eur, suite.now)
	suite.Require().NoError(err)
	for product, quantity := range lines {
		_, err = o.AddLine(product, quantity, suite.now)
		suite.Require().NoError(err)
	}
	suite.Require().NoError(suite.orders.Add(context.Background(), o))
	return o
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) TestHandle_EmptyDatabase_ReturnsEmptySlice() {
	result, err := suite.handler.Handle(context.Background(), queries.NewGetOpenOrdersQuery())

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) TestHandle_SummarizesLines() {
	withLines := suite.storeOrder(map[catalog.Product]uint{suite.product1: 2, suite.product2: 3})
	empty := suite.storeOrder(nil)

	result, err := suite.handler.Handle(context.Background(), queries.NewGetOpenOrdersQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)

	suite.Equal(withLines.ID(), result[0].ID)
	suite.Equal("4829", result[0].ClientCode)
	suite.Equal(order.Initialized, result[0].Status)
	suite.Equal(2, result[0].Lines)
	suite.True(decimal.NewFromInt(800).Equal(result[0].Total), "got %s", result[0].Total)
	suite.Equal("EUR", result[0].CurrencyCode)

	suite.Equal(empty.ID(), result[1].ID)
	suite.Equal(0, result[1].Lines)
	suite.True(result[1].Total.IsZero())
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) TestHandle_SkipsFulfilledOrders() {
	open := suite.storeOrder(map[catalog.Product]uint{suite.product1: 1})
	fulfilled := suite.storeOrder(map[catalog.Product]uint{suite.product2: 1})
	suite.Require().NoError(suite.database.DB.
		Exec("UPDATE orders SET status = ? WHERE id = ?", int(order.Fulfilled), fulfilled.ID()).Error)

	result, err := suite.handler.Handle(context.Background(), queries.NewGetOpenOrdersQuery())

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.Equal(open.ID(), result[0].ID)
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	result, err := suite.handler.Handle(context.Background(), queries.GetOpenOrdersQuery{})

	suite.Require().ErrorIs(err, queries.ErrGetOpenOrdersQueryIsNotConstructed)
	suite.Nil(result)
}

func (suite *GetOpenOrdersQueryHandlerTestSuite) TestHandle_CancelledContext_ReturnsError() {
	suite.storeOrder(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := suite.handler.Handle(ctx, queries.NewGetOpenOrdersQuery())

	suite.Require().Error(err)
	suite.Nil(result)
}

func TestGetOpenOrdersQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOpenOrdersQueryHandlerTestSuite))
}
