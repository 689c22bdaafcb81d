// Package cod models cash-on-delivery reconciliation. A Record belongs to one
// reference, either a single shipping attempt or a whole batch, and holds the
// amount the courier collected at the door plus every transfer of that money
// to the business.
//
// Invariants:
//   - the collected amount is written once and never edited
//   - the cumulative transferred amount never exceeds the collected amount
//
// Corrections are made by opening a new shipping attempt, never by editing a record.
package cod
