package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidTransition = errors.New("invalid step transition")
	ErrIncompleteQuery   = errors.New("availability query is incomplete")
	ErrWizardNotFound    = errors.New("wizard not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrDiscountNotFound  = errors.New("discount not found")
	ErrHallNotFound      = errors.New("hall not found")
	ErrNotReady          = errors.New("wizard has not reached the summary step")
	ErrUnknownSection    = errors.New("unknown section")
	ErrSubmitInProgress  = errors.New("wizard is already being submitted")
)

// ValidationError lists field failures of one section, keyed by field name.
type ValidationError struct {
	Section Section
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return fmt.Sprintf("invalid %s: %s", e.Section, strings.Join(parts, ", "))
}

// FieldNames returns the failing field names in sorted order.
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

type OverlapError struct {
	Conflict *BookingRef
}

func (e *OverlapError) Error() string {
	if e.Conflict == nil {
		return "selected slot overlaps an existing booking"
	}
	return fmt.Sprintf("selected slot overlaps booking %s", e.Conflict.ID)
}

// NetworkError wraps a failed collaborator call. It is never retried.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
