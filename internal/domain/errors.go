package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Error taxonomy shared by every layer. Package-level sentinels wrap one of these
// so transports can map them without knowing the package.
var (
	// ErrInvalidRequest malformed input, never retried
	ErrInvalidRequest = errors.New("invalid request")

	// ErrNotFound referenced service, resource or order does not exist
	ErrNotFound = errors.New("not found")

	// ErrResourceUnavailable requested resources are not free for the window
	ErrResourceUnavailable = errors.New("resource unavailable")

	// ErrInvalidTransition status or reschedule operation not allowed from the current state
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrAccessDenied caller does not own the order
	ErrAccessDenied = errors.New("access denied")

	// ErrPersistence storage failure, the transaction was rolled back
	ErrPersistence = errors.New("persistence failure")
)

// ResourceUnavailableError names the resources that are busy or unknown for the window
type ResourceUnavailableError struct {
	ResourceIDs []int64
}

// NewResourceUnavailableError builds the error with sorted ids
func NewResourceUnavailableError(ids ...int64) *ResourceUnavailableError {
	sorted := append([]int64(nil), ids...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	return &ResourceUnavailableError{ResourceIDs: sorted}
}

func (e *ResourceUnavailableError) Error() string {
	if len(e.ResourceIDs) == 0 {
		return ErrResourceUnavailable.Error()
	}
	ids := make([]string, len(e.ResourceIDs))
	for i, id := range e.ResourceIDs {
		ids[i] = fmt.Sprintf("%d", id)
	}
	return fmt.Sprintf("%s: %s", ErrResourceUnavailable.Error(), strings.Join(ids, ","))
}

// Is makes errors.Is(err, ErrResourceUnavailable) succeed
func (e *ResourceUnavailableError) Is(target error) bool {
	return target == ErrResourceUnavailable
}

// UnavailableResourceIDs extracts conflicting ids from err, if any
func UnavailableResourceIDs(err error) []int64 {
	var rue *ResourceUnavailableError
	if errors.As(err, &rue) {
		return rue.ResourceIDs
	}
	return nil
}
