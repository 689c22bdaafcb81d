// Package order holds the Order aggregate: one customer purchase with its line
// items, total and coarse status. The status is never authored directly after
// registration; it is derived from the order's shipping attempts by the
// OrderLedger domain service and stored with SyncStatus.
package order
