package domain

import (
	"errors"
	"fmt"
)

var (
	ErrItemNotFound           = errors.New("item not found")
	ErrOutOfStock             = errors.New("insufficient stock")
	ErrItemNotInCart          = errors.New("item not in cart")
	ErrDuplicateSku           = errors.New("sku already exists")
	ErrNotFound               = errors.New("record not found")
	ErrLockContention         = errors.New("could not acquire lock on resource")
	ErrInvalidPromotionConfig = errors.New("invalid promotion config")

	// ErrRuleExecutionFailed wraps failures of a promotion condition evaluator.
	ErrRuleExecutionFailed = errors.New("rule execution failed")
)

// Error carries one of the sentinel kinds above together with the SKU or
// resource involved. Match with errors.Is against the sentinel.
type Error struct {
	Kind error
	SKU  string
	Msg  string
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.SKU != "" && e.Msg != "":
		return fmt.Sprintf("%s [%s]: %s", e.Kind.Error(), e.SKU, e.Msg)
	case e.SKU != "":
		return fmt.Sprintf("%s [%s]", e.Kind.Error(), e.SKU)
	case e.Msg != "":
		return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
	}
	return e.Kind.Error()
}

func (e *Error) Unwrap() error { return e.Kind }

func ItemNotFound(sku string) error  { return &Error{Kind: ErrItemNotFound, SKU: sku} }
func OutOfStock(sku string) error    { return &Error{Kind: ErrOutOfStock, SKU: sku} }
func ItemNotInCart(sku string) error { return &Error{Kind: ErrItemNotInCart, SKU: sku} }
func DuplicateSku(sku string) error  { return &Error{Kind: ErrDuplicateSku, SKU: sku} }
func NotFound(sku string) error      { return &Error{Kind: ErrNotFound, SKU: sku} }

// LockContention reports that the named resource guard was already held.
func LockContention(resource string) error {
	return &Error{Kind: ErrLockContention, Msg: resource}
}

func invalidPromotionf(sku, format string, args ...any) error {
	return &Error{Kind: ErrInvalidPromotionConfig, SKU: sku, Msg: fmt.Sprintf(format, args...)}
}

// InvalidPromotionf builds an ErrInvalidPromotionConfig error for the given trigger SKU.
func InvalidPromotionf(sku, format string, args ...any) error {
	return invalidPromotionf(sku, format, args...)
}
