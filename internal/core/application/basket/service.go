package basket

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"basket/internal/core/application/usecases/commands"
	"basket/internal/core/application/usecases/queries"
	"basket/internal/core/domain/model/client"
	"basket/internal/core/domain/model/kernel"
	"basket/internal/core/domain/model/order"
	"basket/internal/core/ports"

	"github.com/shopspring/decimal"
)

// DefaultTimeout applies when Config.Timeout is not positive.
const DefaultTimeout = 5 * time.Second

// Config tunes the service. A zero Timeout falls back to DefaultTimeout.
type Config struct {
	Timeout time.Duration
}

// Handlers bundles the use cases the service dispatches to.
type Handlers struct {
	Initialize  commands.InitializeOrderCommandHandler
	AddProduct  commands.AddProductCommandHandler
	Remove      commands.RemoveProductCommandHandler
	SetQuantity commands.SetQuantityCommandHandler
	ClearOut    commands.ClearOutCommandHandler
	Complete    commands.CompleteOrderCommandHandler
	GetOrder    queries.GetOrderQueryHandler
	GetOrders   queries.GetOrdersQueryHandler
	OpenOrders  queries.GetOpenOrdersQueryHandler
}

// Service orchestrates basket operations. It is safe for concurrent use;
// every mutating call opens its own unit of work.
type Service struct {
	handlers Handlers
	timeout  time.Duration
	logger   *slog.Logger
	metrics  Recorder
}

// NewService wires the handlers behind the service.
// A nil metrics recorder is replaced with NopRecorder.
func NewService(handlers Handlers, cfg Config, logger *slog.Logger, metrics Recorder) *Service {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if metrics == nil {
		metrics = NopRecorder{}
	}

	return &Service{
		handlers: handlers,
		timeout:  timeout,
		logger:   logger.With("component", "basket"),
		metrics:  metrics,
	}
}

// Initialize opens a basket and returns its id. A stored client with the same
// code is reused; otherwise buyer is registered.
func (s *Service) Initialize(
	ctx context.Context,
	buyer *client.Client,
	shipping kernel.Address,
	billing kernel.Address,
	paymentMethod order.PaymentMethod,
	currencyCode string,
	discountRate decimal.Decimal,
) (int64, error) {
	var orderID int64
	err := s.run(ctx, "initialize", []any{"currency", currencyCode}, func(ctx context.Context) error {
		cmd, err := commands.NewInitializeOrderCommand(buyer, shipping, billing, paymentMethod, currencyCode, discountRate)
		if err != nil {
			return invalidArgument(err)
		}

		orderID, err = s.handlers.Initialize.Handle(ctx, cmd)
		return err
	})
	return orderID, err
}

// InitializeSameAddress is Initialize with one address used for shipping and billing.
func (s *Service) InitializeSameAddress(
	ctx context.Context,
	buyer *client.Client,
	address kernel.Address,
	paymentMethod order.PaymentMethod,
	currencyCode string,
	discountRate decimal.Decimal,
) (int64, error) {
	return s.Initialize(ctx, buyer, address, address, paymentMethod, currencyCode, discountRate)
}

// Add puts a product on the order. It is not an upsert.
func (s *Service) Add(ctx context.Context, orderID int64, productCode string, quantity uint) error {
	attrs := []any{"order_id", orderID, "product_code", productCode, "quantity", quantity}
	return s.run(ctx, "add", attrs, func(ctx context.Context) error {
		cmd, err := commands.NewAddProductCommand(orderID, productCode, quantity)
		if err != nil {
			return invalidArgument(err)
		}
		return s.handlers.AddProduct.Handle(ctx, cmd)
	})
}

// Remove deletes the line for productCode. It fails with ports.ErrProductNotFound
// when the order carries no such line.
func (s *Service) Remove(ctx context.Context, orderID int64, productCode string) error {
	attrs := []any{"order_id", orderID, "product_code", productCode}
	return s.run(ctx, "remove", attrs, func(ctx context.Context) error {
		cmd, err := commands.NewRemoveProductCommand(orderID, productCode)
		if err != nil {
			return invalidArgument(err)
		}
		return s.handlers.Remove.Handle(ctx, cmd)
	})
}

// SetQuantity overwrites a line's quantity. A quantity of zero or less fails
// with ports.ErrInvalidQuantity before the order is looked up.
func (s *Service) SetQuantity(ctx context.Context, orderID int64, productCode string, quantity int) error {
	attrs := []any{"order_id", orderID, "product_code", productCode, "quantity", quantity}
	return s.run(ctx, "set_quantity", attrs, func(ctx context.Context) error {
		cmd, err := commands.NewSetQuantityCommand(orderID, productCode, quantity)
		if err != nil {
			return invalidArgument(err)
		}
		return s.handlers.SetQuantity.Handle(ctx, cmd)
	})
}

// ClearOut removes every line and keeps the order itself.
func (s *Service) ClearOut(ctx context.Context, orderID int64) error {
	return s.run(ctx, "clear_out", []any{"order_id", orderID}, func(ctx context.Context) error {
		cmd, err := commands.NewClearOutCommand(orderID)
		if err != nil {
			return invalidArgument(err)
		}
		return s.handlers.ClearOut.Handle(ctx, cmd)
	})
}

// Complete hands the order to the completion workflow. Without a registered
// strategy the call fails with ports.ErrNotImplemented and nothing is written.
func (s *Service) Complete(ctx context.Context, orderID int64) error {
	return s.run(ctx, "complete", []any{"order_id", orderID}, func(ctx context.Context) error {
		cmd, err := commands.NewCompleteOrderCommand(orderID)
		if err != nil {
			return invalidArgument(err)
		}
		return s.handlers.Complete.Handle(ctx, cmd)
	})
}

// GetOrder loads the complete order. An id no order can have, such as 0, is
// reported as ports.ErrOrderNotFound like any other missing order.
func (s *Service) GetOrder(ctx context.Context, orderID int64) (*order.Order, error) {
	var result *order.Order
	err := s.run(ctx, "get_order", []any{"order_id", orderID}, func(ctx context.Context) error {
		query, err := queries.NewGetOrderQuery(orderID)
		if errors.Is(err, queries.ErrOrderIDIsInvalid) {
			return ports.Fail(ports.ErrOrderNotFound, err)
		}
		if err != nil {
			return invalidArgument(err)
		}

		result, err = s.handlers.GetOrder.Handle(ctx, query)
		return err
	})
	return result, err
}

// GetOrders returns every order sorted by id.
func (s *Service) GetOrders(ctx context.Context) ([]*order.Order, error) {
	var result []*order.Order
	err := s.run(ctx, "get_orders", nil, func(ctx context.Context) error {
		var err error
		result, err = s.handlers.GetOrders.Handle(ctx, queries.NewGetOrdersQuery())
		return err
	})
	return result, err
}

// GetOrdersInStatus returns the orders currently in status.
func (s *Service) GetOrdersInStatus(ctx context.Context, status order.Status) ([]*order.Order, error) {
	var result []*order.Order
	err := s.run(ctx, "get_orders", []any{"status", status.String()}, func(ctx context.Context) error {
		query, err := queries.NewGetOrdersInStatusQuery(status)
		if err != nil {
			return invalidArgument(err)
		}

		result, err = s.handlers.GetOrders.Handle(ctx, query)
		return err
	})
	return result, err
}

// GetOpenOrders summarizes orders that are not fulfilled yet.
func (s *Service) GetOpenOrders(ctx context.Context) ([]queries.OrderSummary, error) {
	var result []queries.OrderSummary
	err := s.run(ctx, "get_open_orders", nil, func(ctx context.Context) error {
		var err error
		result, err = s.handlers.OpenOrders.Handle(ctx, queries.NewGetOpenOrdersQuery())
		return err
	})
	return result, err
}

func (s *Service) run(ctx context.Context, operation string, attrs []any, fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	err := classify(ctx, fn(ctx))
	elapsed := time.Since(started)

	outcome := outcomeOf(err)
	s.metrics.Observe(operation, outcome, elapsed)

	attrs = append(attrs, "operation", operation, "elapsed", elapsed)
	switch outcome {
	case OutcomeOK:
		s.logger.DebugContext(ctx, "Basket operation completed", attrs...)
	case OutcomeBusinessError:
		s.logger.WarnContext(ctx, "Basket operation rejected", append(attrs, "error", err)...)
	default:
		s.logger.ErrorContext(ctx, "Basket operation failed", append(attrs, "error", err)...)
	}

	return err
}

// classify turns deadline expiry into ports.ErrTimeout.
func classify(ctx context.Context, err error) error {
	switch {
	case err == nil || errors.Is(err, ports.ErrTimeout):
		return err
	case errors.Is(err, context.DeadlineExceeded):
		return ports.Fail(ports.ErrTimeout, err)
	case ports.IsBusinessError(err):
		return err
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		// drivers report a cancelled statement without wrapping the context error
		return ports.Fail(ports.ErrTimeout, err)
	default:
		return err
	}
}

func invalidArgument(err error) error {
	if ports.IsBusinessError(err) {
		return err
	}
	return ports.Fail(ports.ErrInvalidArgument, err)
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ports.ErrTimeout):
		return OutcomeTimeout
	case ports.IsBusinessError(err):
		return OutcomeBusinessError
	default:
		return OutcomeError
	}
}
