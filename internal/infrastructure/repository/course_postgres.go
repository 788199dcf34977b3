package repository

import (
	"context"
	"errors"

	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/domain"

	"gorm.io/gorm"
)

type CourseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// FindCourses returns the courses that exist among ids, in no particular order.
func (r *CourseRepository) FindCourses(ctx context.Context, ids []uint) ([]domain.Course, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var courses []domain.Course
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&courses).Error
	return courses, err
}

func (r *CourseRepository) List(ctx context.Context, f domain.CourseFilter) ([]domain.Course, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.Course{})
	if f.Search != "" {
		query = query.Where("title ILIKE ?", "%"+f.Search+"%")
	}
	if f.CategoryID != 0 {
		query = query.Where("category_id = ?", f.CategoryID)
	}
	if f.Level != "" {
		query = query.Where("level = ?", f.Level)
	}
	if f.MinPrice != nil {
		query = query.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		query = query.Where("price <= ?", *f.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []domain.Course
	err := query.
		Preload("Category").
		Preload("Instructor").
		Order(sortClause(f.Sort)).
		Limit(f.PageSize).
		Offset(f.Offset()).
		Find(&courses).Error
	if err != nil {
		return nil, 0, err
	}
	return courses, total, nil
}

func sortClause(s domain.CourseSort) string {
	switch s {
	case domain.SortPriceAsc:
		return "price asc, id asc"
	case domain.SortPriceDesc:
		return "price desc, id asc"
	default:
		return "created_at desc, id desc"
	}
}

func (r *CourseRepository) GetByID(ctx context.Context, id uint) (*domain.Course, error) {
	var course domain.Course
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Instructor").
		First(&course, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) Create(ctx context.Context, c *domain.Course) error {
	return r.db.WithContext(ctx).Omit("Category", "Instructor").Create(c).Error
}

func (r *CourseRepository) Update(ctx context.Context, c *domain.Course) error {
	result := r.db.WithContext(ctx).Model(&domain.Course{ID: c.ID}).
		Select("title", "description", "price", "level", "total_hours", "cover_url", "category_id", "instructor_id").
		Updates(c)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CourseRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Course{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CourseRepository) HasPurchases(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Purchase{}).
		Where("course_id = ?", id).
		Count(&count).Error
	return count > 0, err
}
