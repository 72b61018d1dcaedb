// Package engine implements the order/stock reconciliation core.
//
// Every operation is a discrete, synchronous request: reload the stock
// table and the relevant activity log from durable storage, validate the
// whole submission, mutate an in-memory snapshot, then persist in two
// phases.
//
// Two-phase persist discipline:
//  1. The activity log is written first. If that fails, nothing else has
//     been touched on disk and the operation simply aborts.
//  2. The stock table is written second. If that fails, a best-effort
//     compensating write restores the log to its pre-operation state. If
//     the compensation itself also fails, the stores are left
//     inconsistent and a CompensationError carrying both underlying
//     errors is surfaced - never silently swallowed.
//
// Validation is fail-fast: the first offending line aborts the whole
// submission, and no partial application is ever durable.
package engine
