// Package returns implements the return request workflow opened by a customer
// after a delivery:
//
//	Pending ──review──> Approved ──assign──> InProgress ──complete──> Completed
//	   │                   │                     │
//	   ├──review──> Rejected                     │
//	   └───────────────────┴──── cancel ─────────┴──> Cancelled
//
// At most one non-terminal request may exist per order.
package returns
