// Package batch groups shipping attempts of one customer into a single
// courier run owned by one staff member.
//
// A batch is created all-or-nothing, picked up all-or-nothing, resolved member
// by member and completed once every member has reached a terminal state,
// whichever one. Its status is derived from the least advanced member.
package batch
