package entity

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation error")
	ErrAuthorization     = errors.New("authorization error")
	ErrNotFound          = errors.New("not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrPersistence       = errors.New("persistence error")
	ErrNotification      = errors.New("notification error")
	ErrConflict          = errors.New("conflict")
)

// ValidationError carries a user-facing message about bad input.
type ValidationError struct {
	Msg string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{Msg: msg}
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// InsufficientStockError names the line item that could not be covered.
type InsufficientStockError struct {
	Item OrderItem
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("not enough stock for %s", e.Item.ProductName)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}

func AuthorizationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrAuthorization, msg)
}

func NotFoundError(what string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, what)
}

func PersistenceError(err error) error {
	return fmt.Errorf("%w: %w", ErrPersistence, err)
}

func NotificationError(err error) error {
	return fmt.Errorf("%w: %w", ErrNotification, err)
}

// TransitionError rejects a status edge that is not in the order workflow.
type TransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move order from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrValidation
}
