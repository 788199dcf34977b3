package repository

import (
	"context"

	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/domain"

	"gorm.io/gorm"
)

// purchaseLockSpace namespaces the per-user advisory locks taken during checkout.
const purchaseLockSpace = 7301

type PurchaseRepository struct {
	db       *gorm.DB
	lockUser bool
}

func NewPurchaseRepository(db *gorm.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

// ExistingPurchaseCourseIDs lists which of courseIDs the user already owns.
// Inside a checkout transaction it first takes a per-user advisory lock, so two
// checkouts for the same user see each other's committed rows.
func (r *PurchaseRepository) ExistingPurchaseCourseIDs(ctx context.Context, userID uint, courseIDs []uint) ([]uint, error) {
	if r.lockUser {
		if err := r.db.WithContext(ctx).Exec("SELECT pg_advisory_xact_lock(?, ?)", purchaseLockSpace, int32(userID)).Error; err != nil {
			return nil, err
		}
	}
	if len(courseIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := r.db.WithContext(ctx).Model(&domain.Purchase{}).
		Where("user_id = ? AND course_id IN ?", userID, courseIDs).
		Pluck("course_id", &ids).Error
	return ids, err
}

func (r *PurchaseRepository) InsertPurchases(ctx context.Context, rows []domain.Purchase) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit("Course").Create(&rows).Error
}

func (r *PurchaseRepository) ListByUser(ctx context.Context, userID uint) ([]domain.Purchase, error) {
	var rows []domain.Purchase
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("user_id = ?", userID).
		Order("purchase_date desc, id desc").
		Find(&rows).Error
	return rows, err
}

func (r *PurchaseRepository) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var s domain.DashboardStats
	db := r.db.WithContext(ctx)

	counts := []struct {
		model any
		dst   *int64
	}{
		{&domain.Course{}, &s.Courses},
		{&domain.Instructor{}, &s.Instructors},
		{&domain.Category{}, &s.Categories},
		{&domain.Purchase{}, &s.Purchases},
	}
	for _, c := range counts {
		if err := db.Model(c.model).Count(c.dst).Error; err != nil {
			return nil, err
		}
	}

	if err := db.Model(&domain.Purchase{}).Distinct("user_id").Count(&s.Buyers).Error; err != nil {
		return nil, err
	}

	err := db.Model(&domain.Purchase{}).
		Select("COALESCE(SUM(amount - discount + tax), 0)").
		Row().
		Scan(&s.Revenue)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
