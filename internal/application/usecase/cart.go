package usecase

import (
	"context"
	"fmt"

	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/domain"

	"github.com/shopspring/decimal"
)

type CartUseCase struct {
	carts   CartRepo
	catalog CatalogLookup
	ledger  PurchaseReader
	pricer  *domain.Pricer
}

func NewCartUseCase(carts CartRepo, catalog CatalogLookup, ledger PurchaseReader, pricer *domain.Pricer) *CartUseCase {
	return &CartUseCase{carts: carts, catalog: catalog, ledger: ledger, pricer: pricer}
}

func (uc *CartUseCase) AddToCart(ctx context.Context, userID, courseID uint) (*domain.CartLine, error) {
	courses, err := uc.catalog.FindCourses(ctx, []uint{courseID})
	if err != nil {
		return nil, storageErr(err)
	}
	if len(courses) == 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrCourseNotFound, courseID)
	}

	owned, err := uc.ledger.ExistingPurchaseCourseIDs(ctx, userID, []uint{courseID})
	if err != nil {
		return nil, storageErr(err)
	}
	if len(owned) > 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrAlreadyPurchased, courseID)
	}

	line := &domain.CartLine{UserID: userID, CourseID: courseID}
	if err := uc.carts.AddLine(ctx, line); err != nil {
		return nil, storageErr(err)
	}
	line.Course = &courses[0]
	return line, nil
}

func (uc *CartUseCase) RemoveFromCart(ctx context.Context, userID, courseID uint) error {
	removed, err := uc.carts.RemoveLine(ctx, userID, courseID)
	if err != nil {
		return storageErr(err)
	}
	if !removed {
		return fmt.Errorf("%w: %d", domain.ErrCartLineNotFound, courseID)
	}
	return nil
}

func (uc *CartUseCase) ClearCart(ctx context.Context, userID uint) error {
	ids, err := uc.carts.CartCourseIDs(ctx, userID)
	if err != nil {
		return storageErr(err)
	}
	if len(ids) == 0 {
		return nil
	}
	return storageErr(uc.carts.DeleteCartLines(ctx, userID, ids))
}

// GetCart prices the cart the same way checkout would with no discount.
func (uc *CartUseCase) GetCart(ctx context.Context, userID uint) (*domain.CartView, error) {
	lines, err := uc.carts.ListLines(ctx, userID)
	if err != nil {
		return nil, storageErr(err)
	}

	courses := make([]domain.Course, 0, len(lines))
	for _, l := range lines {
		if l.Course != nil {
			courses = append(courses, *l.Course)
		}
	}
	q := uc.pricer.Quote(courses, decimal.Zero)

	if lines == nil {
		lines = []domain.CartLine{}
	}
	return &domain.CartView{
		Lines:    lines,
		Subtotal: q.Subtotal,
		Tax:      q.Tax,
		Total:    q.Total,
	}, nil
}
