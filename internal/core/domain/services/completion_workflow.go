package services

import (
	"context"
	"errors"
	"fmt"

	"basket/internal/core/domain/model/order"
)

// ErrNoCompletionStrategy is returned when no strategy handles the order's status.
var ErrNoCompletionStrategy = errors.New("no completion strategy for order status")

// CompletionStrategy moves an order in one particular status to its next status,
// usually through Order.TransitionTo.
type CompletionStrategy interface {
	Complete(ctx context.Context, aggregate *order.Order) error
}

// CompletionStrategyFunc adapts a function to CompletionStrategy.
type CompletionStrategyFunc func(ctx context.Context, aggregate *order.Order) error

func (f CompletionStrategyFunc) Complete(ctx context.Context, aggregate *order.Order) error {
	return f(ctx, aggregate)
}

// CompletionWorkflow is a status-keyed strategy registry.
//
// Example:
//
//	workflow := services.NewCompletionWorkflow()
//	workflow.Register(order.Initialized, submitStrategy)
//	if err := workflow.Complete(ctx, o); errors.Is(err, services.ErrNoCompletionStrategy) {
//	    // nothing handles this status yet
//	}
type CompletionWorkflow struct {
	strategies map[order.Status]CompletionStrategy
}

// NewCompletionWorkflow creates a workflow with no strategies.
func NewCompletionWorkflow() *CompletionWorkflow {
	return &CompletionWorkflow{
		strategies: make(map[order.Status]CompletionStrategy),
	}
}

// Register sets the strategy for status, replacing any previous one.
func (w *CompletionWorkflow) Register(status order.Status, strategy CompletionStrategy) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if strategy == nil {
		return fmt.Errorf("completion strategy for %s is nil", status)
	}

	w.strategies[status] = strategy
	return nil
}

// Complete runs the strategy registered for the order's current status.
func (w *CompletionWorkflow) Complete(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	strategy, ok := w.strategies[aggregate.Status()]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoCompletionStrategy, aggregate.Status())
	}

	return strategy.Complete(ctx, aggregate)
}
