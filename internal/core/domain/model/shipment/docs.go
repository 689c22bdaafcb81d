// Package shipment implements the shipping attempt state machine: one courier
// delivery try for one order, claimed by exactly one staff member and driven
// through PENDING, ASSIGNED, PICKED_UP, IN_TRANSIT and OUT_FOR_DELIVERY to one
// of the terminal outcomes DELIVERED, FAILED, RETURNED or CANCELLED.
//
// An order may accumulate several attempts over time; a new one may be opened
// only after the previous one ended without delivery.
package shipment
