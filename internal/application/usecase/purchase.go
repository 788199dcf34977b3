package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/domain"
	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/logging"
	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/metrics"
)

type PurchaseUseCase struct {
	tx     PurchaseTx
	reader PurchaseReader
	pricer *domain.Pricer
	now    func() time.Time
}

func NewPurchaseUseCase(tx PurchaseTx, reader PurchaseReader, pricer *domain.Pricer) *PurchaseUseCase {
	return &PurchaseUseCase{
		tx:     tx,
		reader: reader,
		pricer: pricer,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// ProcessPurchase turns the requested courses (or the whole cart when none are
// given) into ledger rows and removes them from the cart, all in one transaction.
// userID must come from the authenticated caller.
func (uc *PurchaseUseCase) ProcessPurchase(ctx context.Context, userID uint, req domain.PurchaseRequest) (domain.PurchaseResult, error) {
	log := logging.FromCtx(ctx).With("user_id", userID)

	if userID == 0 {
		return domain.PurchaseResult{}, fmt.Errorf("%w: user id is required", domain.ErrInvalidInput)
	}
	if req.Discount.IsNegative() {
		return domain.PurchaseResult{}, fmt.Errorf("%w: discount must not be negative", domain.ErrInvalidInput)
	}

	var result domain.PurchaseResult
	err := uc.tx.WithinPurchaseTx(ctx, func(ctx context.Context, s PurchaseStores) error {
		ids := uniqueIDs(req.CourseIDs)
		if len(ids) == 0 {
			cartIDs, err := s.Cart.CartCourseIDs(ctx, userID)
			if err != nil {
				return err
			}
			ids = uniqueIDs(cartIDs)
		}
		if len(ids) == 0 {
			return domain.ErrEmptyCart
		}

		courses, err := s.Catalog.FindCourses(ctx, ids)
		if err != nil {
			return err
		}
		if len(courses) < len(ids) {
			return fmt.Errorf("%w: %v", domain.ErrCourseNotFound, missingIDs(ids, courses))
		}
		courses = orderByIDs(courses, ids)

		owned, err := s.Ledger.ExistingPurchaseCourseIDs(ctx, userID, ids)
		if err != nil {
			return err
		}
		if len(owned) > 0 {
			return fmt.Errorf("%w: %v", domain.ErrAlreadyPurchased, owned)
		}

		quote := uc.pricer.Quote(courses, req.Discount)
		purchasedAt := uc.now()
		rows := make([]domain.Purchase, 0, len(quote.Lines))
		for _, line := range quote.Lines {
			rows = append(rows, domain.Purchase{
				UserID:       userID,
				CourseID:     line.CourseID,
				PurchaseDate: purchasedAt,
				Amount:       line.Amount,
				Tax:          line.Tax,
				Discount:     line.Discount,
			})
		}
		if err := s.Ledger.InsertPurchases(ctx, rows); err != nil {
			return err
		}
		if err := s.Cart.DeleteCartLines(ctx, userID, ids); err != nil {
			return err
		}

		result = domain.PurchaseResult{TotalAmount: quote.Total, CoursesCount: len(rows)}
		return nil
	})
	if err != nil {
		err = storageErr(err)
		metrics.Purchases.WithLabelValues(resultLabel(err)).Inc()
		if errors.Is(err, domain.ErrStorageFailure) {
			log.Error("purchase failed", "error", err)
		} else {
			log.Warn("purchase rejected", "error", err)
		}
		return domain.PurchaseResult{}, err
	}

	metrics.Purchases.WithLabelValues("ok").Inc()
	metrics.PurchasedCourses.Add(float64(result.CoursesCount))
	log.Info("purchase completed",
		"courses", result.CoursesCount,
		"total", result.TotalAmount.StringFixed(2))
	return result, nil
}

func (uc *PurchaseUseCase) ListPurchases(ctx context.Context, userID uint) ([]domain.Purchase, error) {
	rows, err := uc.reader.ListByUser(ctx, userID)
	if err != nil {
		return nil, storageErr(err)
	}
	return rows, nil
}

func resultLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, domain.ErrCourseNotFound):
		return "course_not_found"
	case errors.Is(err, domain.ErrAlreadyPurchased):
		return "already_purchased"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid_input"
	default:
		return "storage_failure"
	}
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func missingIDs(ids []uint, found []domain.Course) []uint {
	have := make(map[uint]struct{}, len(found))
	for _, c := range found {
		have[c.ID] = struct{}{}
	}
	var missing []uint
	for _, id := range ids {
		if _, ok := have[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing
}

func orderByIDs(courses []domain.Course, ids []uint) []domain.Course {
	byID := make(map[uint]domain.Course, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}
	out := make([]domain.Course, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			out = append(out, c)
		}
	}
	return out
}
