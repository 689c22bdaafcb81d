// Package services provides domain services that coordinate several aggregates
// of the fulfillment domain and do not belong to any single one of them.
//
// The package includes:
//   - OrderLedger: derives the order status from its shipping attempts
//   - StaffAssignmentRegistry: at-most-one holder per attempt, batch or return request
//   - BatchPlanner: batch suggestion, member eligibility and COD aggregation
//   - ReturnPolicy: eligibility of a new return request
//   - AttemptDispatcher: picks a staff member for an unclaimed attempt
package services
