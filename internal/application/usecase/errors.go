package usecase

import (
	"errors"
	"fmt"

	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/domain"
)

var domainKinds = []error{
	domain.ErrEmptyCart,
	domain.ErrCourseNotFound,
	domain.ErrAlreadyPurchased,
	domain.ErrStorageFailure,
	domain.ErrAlreadyInCart,
	domain.ErrCartLineNotFound,
	domain.ErrNotFound,
	domain.ErrInvalidInput,
}

// storageErr passes domain kinds through and folds everything else into
// ErrStorageFailure, keeping the cause in the chain.
func storageErr(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range domainKinds {
		if errors.Is(err, kind) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", domain.ErrStorageFailure, err)
}
