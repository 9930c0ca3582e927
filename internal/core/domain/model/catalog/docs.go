// Package catalog holds the read-mostly reference data consulted while building a basket:
// currencies with their rounding rules and products with their current price.
//
// Catalog entries are never mutated by basket operations. Orders copy what they need
// (currency, unit cost) at the moment a line is added, so later catalog changes do not
// alter existing orders.
package catalog
