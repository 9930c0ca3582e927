// Package kernel provides the value objects shared by the basket aggregates.
//
// The package includes:
//   - UUID: identifier for integration events leaving the service
//   - Address: postal address attached to billing and shipping information
//   - Rate: a decimal fraction in [0, 1] used for discount and VAT rates
//
// Value objects are immutable and must be created through their constructors;
// their zero values fail Validate.
package kernel
