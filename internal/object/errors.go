package object

import (
	"errors"
	"fmt"
)

const (
	ActionChange = "change"
	ActionDelete = "delete"
)

// ImmutabilityViolation is returned for attribute writes and deletes on a
// frozen instance or through a proxy.
type ImmutabilityViolation struct {
	TypeName string
	Attr     string
	Action   string
}

func NewImmutabilityViolation(typeName, attr, action string) *ImmutabilityViolation {
	return &ImmutabilityViolation{TypeName: typeName, Attr: attr, Action: action}
}

func (e *ImmutabilityViolation) Error() string {
	return fmt.Sprintf("'%s' object is immutable. Cannot %s attribute '%s' after initialization.", e.TypeName, e.Action, e.Attr)
}

// AttributeNotFound is returned for a missing attribute. For ancestor
// dispatch misses TypeName is the class the search started from.
type AttributeNotFound struct {
	TypeName string
	Attr     string
}

func NewAttributeNotFound(typeName, attr string) *AttributeNotFound {
	return &AttributeNotFound{TypeName: typeName, Attr: attr}
}

func (e *AttributeNotFound) Error() string {
	return fmt.Sprintf("'%s' object has no attribute '%s'", e.TypeName, e.Attr)
}

// UnsupportedOperation is returned when a read-only adapter is asked for an
// operation its container family supports only mutably.
type UnsupportedOperation struct {
	TypeName string
	Op       string
}

func NewUnsupportedOperation(typeName, op string) *UnsupportedOperation {
	return &UnsupportedOperation{TypeName: typeName, Op: op}
}

func (e *UnsupportedOperation) Error() string {
	return fmt.Sprintf("'%s' object does not support '%s'", e.TypeName, e.Op)
}

// ResolverUnavailable is the fatal condition of ancestor dispatch: the
// (class, receiver) pair cannot be recovered at all. It is distinct from a
// normal lookup miss, which is AttributeNotFound.
type ResolverUnavailable struct {
	Reason string
}

func NewResolverUnavailable(format string, args ...interface{}) *ResolverUnavailable {
	return &ResolverUnavailable{Reason: fmt.Sprintf(format, args...)}
}

func (e *ResolverUnavailable) Error() string {
	return "ancestor dispatch unavailable: " + e.Reason
}

// UsageError reports a malformed call into the dispatch API itself, such
// as the explicit form given a class but no receiver.
type UsageError struct {
	Message string
}

func NewUsageError(format string, args ...interface{}) *UsageError {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

func (e *UsageError) Error() string {
	return e.Message
}

func IsImmutabilityViolation(err error) bool {
	var v *ImmutabilityViolation
	return errors.As(err, &v)
}

func IsAttributeNotFound(err error) bool {
	var v *AttributeNotFound
	return errors.As(err, &v)
}

func IsUnsupportedOperation(err error) bool {
	var v *UnsupportedOperation
	return errors.As(err, &v)
}

func IsResolverUnavailable(err error) bool {
	var v *ResolverUnavailable
	return errors.As(err, &v)
}

func IsUsageError(err error) bool {
	var v *UsageError
	return errors.As(err, &v)
}
