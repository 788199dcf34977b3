package domain

import "errors"

// Purchase workflow error kinds. Callers match them with errors.Is.
var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrCourseNotFound   = errors.New("course not found")
	ErrAlreadyPurchased = errors.New("course already purchased")
	ErrStorageFailure   = errors.New("storage failure")
)

var (
	ErrAlreadyInCart    = errors.New("course already in cart")
	ErrCartLineNotFound = errors.New("course is not in cart")
	ErrNotFound         = errors.New("not found")
	ErrInvalidInput     = errors.New("invalid input")
)
