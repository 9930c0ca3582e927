// Package order provides the basket aggregate: an order in progress owned by a client.
//
// The package includes:
//   - Order: the aggregate root holding client, currency, rates, billing/shipping and lines
//   - OrderLine: one product and its quantity, priced at the moment it was added
//   - Status: the order lifecycle (Initialized, Submitted, Processing, Fulfilled)
//   - PaymentMethod, BillingInfo, ShippingInfo: owned value objects
//
// Key business rules:
//   - An order holds at most one line per product code
//   - Every line is priced in the order's currency, which is fixed at creation
//   - Line quantities must be positive when changed through SetLineQuantity
//   - The order id is assigned once by storage and never changes
//   - The total is derived from the lines; discount and VAT rates are recorded, not applied
package order
