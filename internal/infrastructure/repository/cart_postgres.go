package repository

import (
	"context"
	"errors"

	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/domain"

	"gorm.io/gorm"
)

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) CartCourseIDs(ctx context.Context, userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&domain.CartLine{}).
		Where("user_id = ?", userID).
		Order("added_at asc, id asc").
		Pluck("course_id", &ids).Error
	return ids, err
}

// DeleteCartLines removes whatever lines exist; absent ones are ignored.
func (r *CartRepository) DeleteCartLines(ctx context.Context, userID uint, courseIDs []uint) error {
	if len(courseIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("user_id = ? AND course_id IN ?", userID, courseIDs).
		Delete(&domain.CartLine{}).Error
}

func (r *CartRepository) AddLine(ctx context.Context, line *domain.CartLine) error {
	err := r.db.WithContext(ctx).Omit("Course").Create(line).Error
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrAlreadyInCart
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return domain.ErrCourseNotFound
	}
	return err
}

func (r *CartRepository) RemoveLine(ctx context.Context, userID, courseID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Delete(&domain.CartLine{})
	return result.RowsAffected > 0, result.Error
}

func (r *CartRepository) ListLines(ctx context.Context, userID uint) ([]domain.CartLine, error) {
	var lines []domain.CartLine
	err := r.db.WithContext(ctx).
		Preload("Course").
		Where("user_id = ?", userID).
		Order("added_at desc, id desc").
		Find(&lines).Error
	return lines, err
}
