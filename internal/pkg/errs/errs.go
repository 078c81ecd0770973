package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound      = errors.New("object not found")
	ErrObjectAlreadyExists = errors.New("object already exists")
	ErrValueIsInvalid      = errors.New("value is invalid")
	ErrValueIsOutOfRange   = errors.New("value is out of range")
	ErrValueIsRequired     = errors.New("value is required")
	ErrVersionIsInvalid    = errors.New("version is invalid")
	ErrInvalidTransition   = errors.New("invalid transition")
	ErrCodeMismatch        = errors.New("code mismatch")
	ErrPartiallyApplied    = errors.New("partially applied")
	ErrForbidden           = errors.New("action is forbidden")
)

func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}

func withCause(msg string, cause error) string {
	if cause == nil {
		return msg
	}
	return fmt.Sprintf("%s (cause: %v)", msg, cause)
}

// ObjectNotFoundError reports a lookup that found nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)",
			ErrObjectNotFound, e.ParamName, sanitize(e.ID), e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, fmt.Sprintf("%s", e.ID))
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ObjectAlreadyExistsError reports a duplicate identity.
type ObjectAlreadyExistsError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectAlreadyExistsError(paramName string, id any) *ObjectAlreadyExistsError {
	return &ObjectAlreadyExistsError{ParamName: paramName, ID: id}
}

func NewObjectAlreadyExistsErrorWithCause(paramName string, id any, cause error) *ObjectAlreadyExistsError {
	return &ObjectAlreadyExistsError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectAlreadyExistsError) Error() string {
	return withCause(fmt.Sprintf("%s: %s %s", ErrObjectAlreadyExists, e.ParamName, sanitize(e.ID)), e.Cause)
}

func (e *ObjectAlreadyExistsError) Unwrap() error {
	return ErrObjectAlreadyExists
}

type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName), e.Cause)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %s is %s, min value is %s, max value is %s",
		ErrValueIsInvalid, sanitize(e.Value), sanitize(e.ParamName), sanitize(e.Min), sanitize(e.Max))
	return withCause(msg, e.Cause)
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName), e.Cause)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

type VersionIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewVersionIsInvalidError(paramName string, cause error) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName, Cause: cause}
}

func NewVersionIsInvalidErrorWithCause(paramName string) *VersionIsInvalidError {
	return &VersionIsInvalidError{ParamName: paramName}
}

func (e *VersionIsInvalidError) Error() string {
	return withCause(fmt.Sprintf("%s: %s", ErrVersionIsInvalid, e.ParamName), e.Cause)
}

func (e *VersionIsInvalidError) Unwrap() error {
	return ErrVersionIsInvalid
}

// InvalidTransitionError reports a lifecycle event that is not legal from the current state.
// AlreadyApplied is set when the order already sits in the event's target state.
type InvalidTransitionError struct {
	From           string
	Event          string
	AlreadyApplied bool
	Cause          error
}

func NewInvalidTransitionError(from, event string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, Event: event}
}

func NewAlreadyAppliedError(from, event string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, Event: event, AlreadyApplied: true}
}

func NewInvalidTransitionErrorWithCause(from, event string, cause error) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, Event: event, Cause: cause}
}

func (e *InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("%s: %s does not allow %s", ErrInvalidTransition, e.From, e.Event)
	if e.AlreadyApplied {
		msg += " (already applied)"
	}
	return withCause(msg, e.Cause)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// CodeMismatchError reports a verification code that differs from the live one.
type CodeMismatchError struct {
	ParamName string
	ID        any
}

func NewCodeMismatchError(paramName string, id any) *CodeMismatchError {
	return &CodeMismatchError{ParamName: paramName, ID: id}
}

func (e *CodeMismatchError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrCodeMismatch, e.ParamName, sanitize(e.ID))
}

func (e *CodeMismatchError) Unwrap() error {
	return ErrCodeMismatch
}

// PartiallyAppliedError reports a multi-step operation whose first step is durable
// while a later step failed. The reconciliation sweep is expected to finish it.
type PartiallyAppliedError struct {
	Operation string
	ID        any
	Cause     error
}

func NewPartiallyAppliedError(operation string, id any, cause error) *PartiallyAppliedError {
	return &PartiallyAppliedError{Operation: operation, ID: id, Cause: cause}
}

func (e *PartiallyAppliedError) Error() string {
	return withCause(fmt.Sprintf("%s: %s on %s", ErrPartiallyApplied, e.Operation, sanitize(e.ID)), e.Cause)
}

func (e *PartiallyAppliedError) Unwrap() error {
	return ErrPartiallyApplied
}

type ForbiddenError struct {
	Actor  string
	Action string
}

func NewForbiddenError(actor, action string) *ForbiddenError {
	return &ForbiddenError{Actor: actor, Action: action}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: %s may not %s", ErrForbidden, sanitize(e.Actor), e.Action)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// IsValidation reports whether err is caused by malformed or missing input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValueIsRequired) ||
		errors.Is(err, ErrValueIsInvalid) ||
		errors.Is(err, ErrValueIsOutOfRange)
}

// Kind names the taxonomy bucket of err, "" for nil and "internal" for anything untyped.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case IsValidation(err):
		return "validation"
	case errors.Is(err, ErrObjectAlreadyExists):
		return "conflict"
	case errors.Is(err, ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, ErrObjectNotFound):
		return "not_found"
	case errors.Is(err, ErrCodeMismatch):
		return "mismatch"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrPartiallyApplied):
		return "partially_applied"
	default:
		return "internal"
	}
}
