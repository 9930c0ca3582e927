// Package basket is the entry point to basket operations.
//
// Service wraps the command and query handlers with the behavior every caller
// gets regardless of transport:
//   - each call runs under a deadline; expiry is reported as ports.ErrTimeout
//   - malformed input is reported as ports.ErrInvalidArgument
//   - business failures are logged at warn level, system faults at error level
//   - every call is counted and timed through a Recorder
//
// Example:
//
//	svc := basket.NewService(handlers, basket.Config{Timeout: 5 * time.Second}, logger, recorder)
//	orderID, err := svc.InitializeSameAddress(ctx, buyer, address, order.WireTransfer, "EUR", decimal.Zero)
//	if err != nil {
//	    return err
//	}
//	err = svc.Add(ctx, orderID, "PRODUCT-1", 2)
//	switch {
//	case errors.Is(err, ports.ErrProductAlreadyExists):
//	    // use SetQuantity instead
//	case errors.Is(err, ports.ErrConflict):
//	    // reload and retry
//	}
package basket
