// Package services provides domain services for behavior that does not belong
// to a single aggregate.
//
// The package includes:
//   - CompletionWorkflow: selects a completion strategy by the order's current status
//
// No strategies are registered by default, so completing an order reports
// ErrNoCompletionStrategy until fulfillment is modelled.
package services
