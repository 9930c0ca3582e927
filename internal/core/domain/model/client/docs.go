// Package client models the buyer owning a basket.
//
// A client is identified by its storage id and, for lookups, by its client code.
// Initializing an order reuses the stored client with the same code when one exists,
// so the code acts as the natural key and deduplicates clients across orders.
package client
