package bench

import (
	"errors"
	"fmt"
)

// Error is a recoverable failure reported by a collection operation.
// The operation that returned it made no change to the collection.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description, including guidance when the
	// caller can fix the condition.
	Message string

	// Details contains additional context.
	Details map[string]string
}

// ErrorCode categorizes collection errors.
type ErrorCode string

const (
	// ErrCodeCapacityExceeded indicates an insert into a full collection.
	ErrCodeCapacityExceeded ErrorCode = "CAPACITY_EXCEEDED"

	// ErrCodePreconditionFailed indicates binary search on a collection not
	// sorted by name.
	ErrCodePreconditionFailed ErrorCode = "PRECONDITION_FAILED"

	// ErrCodeEmpty indicates an operation that needs at least one record.
	ErrCodeEmpty ErrorCode = "EMPTY_COLLECTION"
)

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsCapacityError reports whether err is a capacity exceeded error.
func IsCapacityError(err error) bool {
	return hasCode(err, ErrCodeCapacityExceeded)
}

// IsPreconditionError reports whether err is a failed binary search precondition.
func IsPreconditionError(err error) bool {
	return hasCode(err, ErrCodePreconditionFailed)
}

// IsEmptyError reports whether err is an empty collection error.
func IsEmptyError(err error) bool {
	return hasCode(err, ErrCodeEmpty)
}

func hasCode(err error, code ErrorCode) bool {
	var be *Error
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// NewCapacityError creates an Error for an insert into a full collection.
func NewCapacityError(capacity int) *Error {
	return &Error{
		Code:    ErrCodeCapacityExceeded,
		Message: fmt.Sprintf("collection is full (%d records)", capacity),
		Details: map[string]string{
			"capacity": fmt.Sprintf("%d", capacity),
		},
	}
}

// NewPreconditionError creates an Error for binary search from a state other
// than SortedByName.
func NewPreconditionError(state State) *Error {
	return &Error{
		Code:    ErrCodePreconditionFailed,
		Message: "binary search requires the collection to be sorted by name; sort by name first",
		Details: map[string]string{
			"state": state.String(),
		},
	}
}

// NewEmptyError creates an Error for an operation that needs records.
func NewEmptyError(op string) *Error {
	return &Error{
		Code:    ErrCodeEmpty,
		Message: fmt.Sprintf("%s needs at least one record", op),
		Details: map[string]string{
			"op": op,
		},
	}
}
