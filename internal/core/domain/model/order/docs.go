// Package order contains the Order aggregate and its lifecycle state machine.
//
// An order travels Pending -> {Notified, Assigned} -> EnRoute -> Delivered,
// with Cancelled reachable from any non-terminal state. The aggregate owns the
// transition rules, the one-time commission computation at delivery, and the
// courier-attachment invariants; coordinating the paired courier availability
// flip is the job of the application layer, which must persist both within a
// single unit of work.
package order
