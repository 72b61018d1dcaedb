package engine

import (
	"errors"
	"fmt"

	"stockctl/internal/inventory"
)

// ValidationError reports the first line of a submission that failed
// validation. Line is 1-based and counts every submitted line, including
// empty ones, so the operator can find it on the form.
type ValidationError struct {
	Line   int
	Result inventory.LineResult
}

func (e *ValidationError) Error() string {
	switch r := e.Result.(type) {
	case inventory.NotFound:
		return fmt.Sprintf("line %d: item %s not found in the stock database", e.Line, r.ID)
	case inventory.InsufficientStock:
		return fmt.Sprintf("line %d: item %s: requested %d but only %d in stock", e.Line, r.Row.ID, r.Requested, r.Available)
	case inventory.ZeroQuantity:
		return fmt.Sprintf("line %d: quantity must be greater than zero", e.Line)
	default:
		return fmt.Sprintf("line %d: invalid item line", e.Line)
	}
}

// NoItemsError means a submission contained no non-empty lines.
type NoItemsError struct{}

func (NoItemsError) Error() string { return "no item lines to commit" }

// DuplicateLineError means the same identifier appeared on two lines of
// one submission. Allowing it would let each line validate against the
// same snapshot and jointly overdraw the row.
type DuplicateLineError struct {
	Line int
	ID   string
}

func (e *DuplicateLineError) Error() string {
	return fmt.Sprintf("line %d: item %s appears more than once in this submission", e.Line, e.ID)
}

// IncompleteNewItemError means a stock addition referenced an unknown
// identifier without supplying both manufacturer and category.
type IncompleteNewItemError struct {
	Line int
	ID   string
}

func (e *IncompleteNewItemError) Error() string {
	return fmt.Sprintf("line %d: item %s is new, manufacturer and category are required", e.Line, e.ID)
}

// MissingItemError means an undo found a logged identifier that no longer
// resolves in the stock table.
type MissingItemError struct {
	ID string
}

func (e *MissingItemError) Error() string {
	return fmt.Sprintf("item %s from the last record is no longer in the stock database", e.ID)
}

// EmptyLogError means there was no record to undo.
type EmptyLogError struct {
	Log string // "orders" or "additions"
}

func (e *EmptyLogError) Error() string {
	return fmt.Sprintf("the %s log has no record to undo", e.Log)
}

// NegativeStockError means undoing a stock addition would push a row
// below zero because stock has been sold since.
type NegativeStockError struct {
	ID     string
	Have   int
	Remove int
}

func (e *NegativeStockError) Error() string {
	return fmt.Sprintf("item %s: cannot remove %d, only %d in stock", e.ID, e.Remove, e.Have)
}

// CompensationError means the second persist of a two-phase commit failed
// AND the compensating write that should have restored the first store
// also failed. The stores are inconsistent.
type CompensationError struct {
	Op      string // e.g. "order commit", "addition undo"
	SaveErr error  // the stock table persist failure
	CompErr error  // the compensating log persist failure
}

func (e *CompensationError) Error() string {
	return fmt.Sprintf("%s: stock table save failed (%v) and the log could not be restored (%v); stores are inconsistent", e.Op, e.SaveErr, e.CompErr)
}

func (e *CompensationError) Unwrap() error { return e.SaveErr }

// IsRejection reports whether err is a validation-class rejection (bad
// submission) rather than a storage failure. Uses errors.As to handle
// wrapped errors.
func IsRejection(err error) bool {
	var (
		ve  *ValidationError
		ni  NoItemsError
		dl  *DuplicateLineError
		in  *IncompleteNewItemError
		mi  *MissingItemError
		el  *EmptyLogError
		ns  *NegativeStockError
	)
	return errors.As(err, &ve) || errors.As(err, &ni) || errors.As(err, &dl) ||
		errors.As(err, &in) || errors.As(err, &mi) || errors.As(err, &el) ||
		errors.As(err, &ns)
}
