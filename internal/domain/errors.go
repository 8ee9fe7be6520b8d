package domain

import "fmt"

// Error types for consistent error handling across the admin API.

// ErrNotFound indicates a resource was not found.
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrValidation indicates a required or malformed field (bad input).
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error on '%s': %s", e.Field, e.Message)
}

// ErrInvalidTransition indicates a status change that the workflow
// table does not allow from the record's current status.
type ErrInvalidTransition struct {
	Entity string
	ID     string
	From   string
	To     string
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("%s %s: transition %q -> %q not allowed", e.Entity, e.ID, e.From, e.To)
}

// ErrConflict indicates a resource already exists (e.g. duplicate email
// or a user already enrolled in a workshop).
type ErrConflict struct {
	Message string
}

func (e *ErrConflict) Error() string {
	return e.Message
}

// ErrCapacityFull indicates a workshop has no free seats left.
type ErrCapacityFull struct {
	WorkshopID int
	Capacity   int
}

func (e *ErrCapacityFull) Error() string {
	return fmt.Sprintf("workshop %d is full (capacity %d)", e.WorkshopID, e.Capacity)
}

// ErrReturnWindowClosed indicates the originating order is past the
// allowed return window.
type ErrReturnWindowClosed struct {
	OrderNumber string
	Days        int
}

func (e *ErrReturnWindowClosed) Error() string {
	return fmt.Sprintf("order %s is outside the %d-day return window", e.OrderNumber, e.Days)
}

// ErrUnauthorized indicates invalid credentials or token.
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

// ErrForbidden indicates the user lacks permission for the operation.
type ErrForbidden struct {
	Action string
}

func (e *ErrForbidden) Error() string {
	return fmt.Sprintf("forbidden: %s", e.Action)
}

// ErrExternalService indicates a failure in an external service call
// (currently only the transition webhook sink).
type ErrExternalService struct {
	Service string
	Err     error
}

func (e *ErrExternalService) Error() string {
	return fmt.Sprintf("external service error [%s]: %v", e.Service, e.Err)
}

func (e *ErrExternalService) Unwrap() error {
	return e.Err
}

// ErrCircuitOpen indicates the circuit breaker is open.
type ErrCircuitOpen struct {
	Service string
}

func (e *ErrCircuitOpen) Error() string {
	return fmt.Sprintf("circuit breaker open for service: %s", e.Service)
}
