package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/domain"
)

type AdminUseCase struct {
	courses     CourseRepo
	categories  CategoryRepo
	instructors InstructorRepo
	stats       StatsRepo
	cache       CourseCache
}

func NewAdminUseCase(
	courses CourseRepo,
	categories CategoryRepo,
	instructors InstructorRepo,
	stats StatsRepo,
	cache CourseCache,
) *AdminUseCase {
	return &AdminUseCase{
		courses:     courses,
		categories:  categories,
		instructors: instructors,
		stats:       stats,
		cache:       cache,
	}
}

func (uc *AdminUseCase) CreateCategory(ctx context.Context, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name is required", domain.ErrInvalidInput)
	}
	c := &domain.Category{Name: name}
	if err := uc.categories.Create(ctx, c); err != nil {
		return nil, storageErr(err)
	}
	return c, nil
}

func (uc *AdminUseCase) CreateInstructor(ctx context.Context, in *domain.Instructor) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return fmt.Errorf("%w: instructor name is required", domain.ErrInvalidInput)
	}
	return storageErr(uc.instructors.Create(ctx, in))
}

func (uc *AdminUseCase) ListInstructors(ctx context.Context) ([]domain.Instructor, error) {
	list, err := uc.instructors.List(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	return list, nil
}

// DeleteInstructor refuses while any course still references the instructor.
func (uc *AdminUseCase) DeleteInstructor(ctx context.Context, id uint) error {
	n, err := uc.instructors.CountCourses(ctx, id)
	if err != nil {
		return storageErr(err)
	}
	if n > 0 {
		return fmt.Errorf("%w: instructor has %d course(s)", domain.ErrInvalidInput, n)
	}
	return storageErr(uc.instructors.Delete(ctx, id))
}

func (uc *AdminUseCase) CreateCourse(ctx context.Context, c *domain.Course) error {
	if err := uc.validateCourse(ctx, c); err != nil {
		return storageErr(err)
	}
	if err := uc.courses.Create(ctx, c); err != nil {
		return storageErr(err)
	}
	uc.invalidate(ctx, c.ID)
	return nil
}

func (uc *AdminUseCase) UpdateCourse(ctx context.Context, c *domain.Course) error {
	if _, err := uc.courses.GetByID(ctx, c.ID); err != nil {
		return storageErr(err)
	}
	if err := uc.validateCourse(ctx, c); err != nil {
		return storageErr(err)
	}
	if err := uc.courses.Update(ctx, c); err != nil {
		return storageErr(err)
	}
	uc.invalidate(ctx, c.ID)
	return nil
}

// DeleteCourse keeps the ledger intact: purchased courses cannot be removed.
func (uc *AdminUseCase) DeleteCourse(ctx context.Context, id uint) error {
	bought, err := uc.courses.HasPurchases(ctx, id)
	if err != nil {
		return storageErr(err)
	}
	if bought {
		return fmt.Errorf("%w: course %d has purchases", domain.ErrInvalidInput, id)
	}
	if err := uc.courses.Delete(ctx, id); err != nil {
		return storageErr(err)
	}
	uc.invalidate(ctx, id)
	return nil
}

func (uc *AdminUseCase) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	stats, err := uc.stats.DashboardStats(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	return stats, nil
}

func (uc *AdminUseCase) validateCourse(ctx context.Context, c *domain.Course) error {
	c.Title = strings.TrimSpace(c.Title)
	if c.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if c.Price.IsNegative() {
		return fmt.Errorf("%w: price must not be negative", domain.ErrInvalidInput)
	}
	c.Price = c.Price.Round(2)
	c.Level = strings.ToLower(strings.TrimSpace(c.Level))
	if !domain.ValidLevel(c.Level) {
		return fmt.Errorf("%w: unknown level %q", domain.ErrInvalidInput, c.Level)
	}

	ok, err := uc.categories.Exists(ctx, c.CategoryID)
	if err != nil {
		return storageErr(err)
	}
	if !ok {
		return fmt.Errorf("%w: unknown category %d", domain.ErrInvalidInput, c.CategoryID)
	}
	ok, err = uc.instructors.Exists(ctx, c.InstructorID)
	if err != nil {
		return storageErr(err)
	}
	if !ok {
		return fmt.Errorf("%w: unknown instructor %d", domain.ErrInvalidInput, c.InstructorID)
	}
	return nil
}

func (uc *AdminUseCase) invalidate(ctx context.Context, courseID uint) {
	if uc.cache != nil {
		uc.cache.Invalidate(ctx, courseID)
	}
}
