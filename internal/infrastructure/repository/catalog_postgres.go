package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/domain"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	err := r.db.WithContext(ctx).Create(c).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: category %q already exists", domain.ErrInvalidInput, c.Name)
	}
	return err
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	err := r.db.WithContext(ctx).Order("name asc").Find(&categories).Error
	return categories, err
}

func (r *CategoryRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Category{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

type InstructorRepository struct {
	db *gorm.DB
}

func NewInstructorRepository(db *gorm.DB) *InstructorRepository {
	return &InstructorRepository{db: db}
}

func (r *InstructorRepository) Create(ctx context.Context, i *domain.Instructor) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *InstructorRepository) List(ctx context.Context) ([]domain.Instructor, error) {
	var instructors []domain.Instructor
	err := r.db.WithContext(ctx).Order("name asc").Find(&instructors).Error
	return instructors, err
}

func (r *InstructorRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Instructor{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *InstructorRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Instructor{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *InstructorRepository) CountCourses(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Course{}).Where("instructor_id = ?", id).Count(&count).Error
	return count, err
}
