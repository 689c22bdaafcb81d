// Package kernel holds the value objects shared by every aggregate of the
// fulfillment domain: UUID identifiers for orders, attempts, requests, customers
// and staff, and Money for declared, collected and transferred amounts.
//
// Both types are immutable and safe for concurrent use. Their zero values are
// either invalid (UUID) or the empty amount (Money).
package kernel
