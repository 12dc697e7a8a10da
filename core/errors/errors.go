// Package errors provides the error kinds surfaced by the ReqIF codec and its loader.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrNotFound indicates a resource was not found
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput indicates malformed input: bad markup or a value that
	// does not parse against its declared kind
	ErrInvalidInput = errors.New("invalid input")
	// ErrSerialization indicates a structural violation detected before writing
	ErrSerialization = errors.New("serialization failed")
	// ErrTypeMismatch indicates an entity of the wrong kind was assigned to a slot
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrUnsupported indicates an unsupported operation or container format
	ErrUnsupported = errors.New("unsupported")
)

// NotFoundError represents a resource not found error with context
type NotFoundError struct {
	Resource string // Type of resource (e.g., "attribute definition", "archive entry")
	ID       string // Identifier of the resource
	Err      error  // Underlying error, if any
}

func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e *NotFoundError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrNotFound
}

// IOError represents an I/O operation error with context
type IOError struct {
	Operation string // Operation being performed (e.g., "read", "write", "open")
	Path      string // File/resource path involved
	Err       error  // Underlying error
}

func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Path, e.Err)
	}
	return fmt.Sprintf("failed to %s: %v", e.Operation, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError represents malformed input: markup that is not well formed, or a
// value that fails to parse against its declared kind.
type ParseError struct {
	Format  string // Format being parsed (e.g., "ReqIF", "xsd:dateTime")
	Element string // Element local name being read, if known
	Line    int    // 1-based line of the offending token, 0 if unknown
	Message string // Error details
	Err     error  // Underlying error, if any
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
	if e.Element != "" {
		msg = fmt.Sprintf("failed to parse %s in %s: %s", e.Format, e.Element, e.Message)
	}
	if e.Line > 0 {
		msg = fmt.Sprintf("%s (line %d)", msg, e.Line)
	}
	return msg
}

func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidInput, e.Err}
	}
	return []error{ErrInvalidInput}
}

// SerializationError reports the first missing prerequisite of an entity that
// was about to be written. Nothing is emitted for that entity.
type SerializationError struct {
	Entity     string // Entity kind, e.g. "RelationGroup"
	Identifier string
	LongName   string
	Missing    string // Missing slot, e.g. "SourceSpecification"
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("the %s of %s %s:%s may not be null", e.Missing, e.Entity, e.Identifier, e.LongName)
}

func (e *SerializationError) Unwrap() error {
	return ErrSerialization
}

// TypeMismatchError is returned when an entity of one kind is assigned to a
// slot that requires another. The slot keeps its previous value.
type TypeMismatchError struct {
	Slot     string // Slot being assigned, e.g. "SpecObject.Type"
	Expected string
	Actual   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s requires %s, got %s", e.Slot, e.Expected, e.Actual)
}

func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}

// UnsupportedError represents an unsupported feature or format
type UnsupportedError struct {
	Feature string // Feature or format that is unsupported
	Reason  string // Why it's not supported
	Err     error  // Underlying error, if any
}

func (e *UnsupportedError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("unsupported %s: %s", e.Feature, e.Reason)
	}
	return fmt.Sprintf("unsupported %s", e.Feature)
}

func (e *UnsupportedError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUnsupported
}

// Helper functions for creating common errors

// NewNotFound creates a NotFoundError
func NewNotFound(resource, id string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		ID:       id,
	}
}

// NewIO creates an IOError
func NewIO(operation, path string, err error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Err:       err,
	}
}

// NewParse creates a ParseError
func NewParse(format, element, message string) *ParseError {
	return &ParseError{
		Format:  format,
		Element: element,
		Message: message,
	}
}

// NewSerialization creates a SerializationError
func NewSerialization(entity, identifier, longName, missing string) *SerializationError {
	return &SerializationError{
		Entity:     entity,
		Identifier: identifier,
		LongName:   longName,
		Missing:    missing,
	}
}

// NewTypeMismatch creates a TypeMismatchError
func NewTypeMismatch(slot, expected, actual string) *TypeMismatchError {
	return &TypeMismatchError{
		Slot:     slot,
		Expected: expected,
		Actual:   actual,
	}
}

// NewUnsupported creates an UnsupportedError
func NewUnsupported(feature, reason string) *UnsupportedError {
	return &UnsupportedError{
		Feature: feature,
		Reason:  reason,
	}
}

// Wrap adds context to an error. If err is nil, returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf adds formatted context to an error. If err is nil, returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// Is wraps errors.Is for convenience
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
