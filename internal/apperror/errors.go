package apperror

import (
	"errors"
	"fmt"
	"strings"
)

// NotFoundError signals an absent record. For books it is recovered
// locally by attempting creation; it is never a system failure.
type NotFoundError struct {
	Resource string
	Id       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Id)
}

// FetchError wraps a read that failed for any reason other than absence.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch failed during %s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// SaveError wraps a failed write. The triggering transition must not
// proceed and the caller's unsaved edits are preserved for retry.
type SaveError struct {
	Op  string
	Err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("save failed during %s: %v", e.Op, e.Err)
}

func (e *SaveError) Unwrap() error { return e.Err }

// ValidationError blocks a wizard transition when required fields of the
// current section are empty. It is user-facing, not a system error.
type ValidationError struct {
	SectionId string
	Missing   []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("section %s is missing required fields: %s", e.SectionId, strings.Join(e.Missing, ", "))
}

// UnknownSectionError indicates a UI id or canonical type outside the
// closed catalog. Fatal to the current operation.
type UnknownSectionError struct {
	Value string
}

func (e *UnknownSectionError) Error() string {
	return fmt.Sprintf("unknown section identifier: %q", e.Value)
}

// ConflictError signals a data-integrity violation, e.g. a book carrying
// two sections of the same canonical type.
type ConflictError struct {
	Resource string
	Detail   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict on %s: %s", e.Resource, e.Detail)
}

// UnavailableError is the terminal wizard state after an unrecoverable
// initialization failure. No editing is possible; the only recovery is
// returning to the building hub and re-initializing.
type UnavailableError struct {
	BuildingId string
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("digital book session unavailable for building %s", e.BuildingId)
}

// BadRequestError carries request-shape validation failures from the
// transport layer.
type BadRequestError struct {
	Detail string
}

func (e *BadRequestError) Error() string {
	return "bad request: " + e.Detail
}

func IsNotFound(err error) bool {
	var t *NotFoundError
	return errors.As(err, &t)
}

func IsValidation(err error) bool {
	var t *ValidationError
	return errors.As(err, &t)
}

func IsConflict(err error) bool {
	var t *ConflictError
	return errors.As(err, &t)
}

func IsUnavailable(err error) bool {
	var t *UnavailableError
	return errors.As(err, &t)
}
