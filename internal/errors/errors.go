package errors

import (
	"errors"
	"fmt"
)

// Meta keys attached by the domain constructors
const (
	MetaTargetValues       = "target_values"
	MetaReasons            = "reasons"
	MetaReportedAttributes = "reported_attribute_cost"
	MetaReportedSkills     = "reported_skill_cost"
	MetaReportedObjective  = "reported_objective"
	MetaComputedAttributes = "computed_attribute_cost"
	MetaComputedSkills     = "computed_skill_cost"
)

// Error represents a structured error with code, message, and metadata
type Error struct {
	Code    Code                   `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Meta    map[string]interface{} `json:"meta,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target carries the same code
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// WithMeta adds metadata to the error
func (e *Error) WithMeta(key string, value interface{}) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]interface{})
	}
	e.Meta[key] = value
	return e
}

// New creates a new error with the given code and message
func New(code Code, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error, preserving its code and metadata if it's an Error
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var existingErr *Error
	if errors.As(err, &existingErr) {
		return &Error{
			Code:    existingErr.Code,
			Message: message,
			Cause:   err,
			Meta:    existingErr.Meta,
		}
	}

	return &Error{
		Code:    CodeInternal,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with a formatted message
func Wrapf(err error, format string, args ...interface{}) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps an error with a specific code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	meta := make(map[string]interface{})
	var existingErr *Error
	if errors.As(err, &existingErr) {
		for k, v := range existingErr.Meta {
			meta[k] = v
		}
	}

	return &Error{
		Code:    code,
		Message: message,
		Cause:   err,
		Meta:    meta,
	}
}

// NotFound creates a not found error
func NotFound(message string) *Error {
	return New(CodeNotFound, message)
}

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error {
	return New(CodeInvalidArgument, message)
}

// InvalidArgumentf creates an invalid argument error with formatted message
func InvalidArgumentf(format string, args ...interface{}) *Error {
	return New(CodeInvalidArgument, fmt.Sprintf(format, args...))
}

// Internal creates an internal error
func Internal(message string) *Error {
	return New(CodeInternal, message)
}

// Internalf creates an internal error with formatted message
func Internalf(format string, args ...interface{}) *Error {
	return New(CodeInternal, fmt.Sprintf(format, args...))
}

// FailedPrecondition creates a failed precondition error
func FailedPrecondition(message string) *Error {
	return New(CodeFailedPrecondition, message)
}

// Aborted creates an aborted error
func Aborted(message string) *Error {
	return New(CodeAborted, message)
}

// Unavailable creates an unavailable error
func Unavailable(message string) *Error {
	return New(CodeUnavailable, message)
}

// InvalidTargetValues reports a rejected target-values map. The whole map is
// attached so callers can render a diagnostic.
func InvalidTargetValues(targetValues map[string]interface{}, reasons []string) *Error {
	return InvalidArgument("invalid target values").
		WithMeta(MetaTargetValues, targetValues).
		WithMeta(MetaReasons, reasons)
}

// CostConsistency reports a cost breakdown that does not add up to the
// objective value the solver returned.
func CostConsistency(computedAttributes, computedSkills int, reportedAttributes, reportedSkills, reportedObjective float64) *Error {
	return Internalf(
		"xp cost breakdown %d + %d does not match solver objective %g (reported components %g + %g)",
		computedAttributes, computedSkills, reportedObjective, reportedAttributes, reportedSkills,
	).
		WithMeta(MetaComputedAttributes, computedAttributes).
		WithMeta(MetaComputedSkills, computedSkills).
		WithMeta(MetaReportedAttributes, reportedAttributes).
		WithMeta(MetaReportedSkills, reportedSkills).
		WithMeta(MetaReportedObjective, reportedObjective)
}
