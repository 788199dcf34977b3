package usecase

import (
	"context"
	"fmt"

	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/domain"
)

type CatalogUseCase struct {
	courses    CourseRepo
	categories CategoryRepo
	cache      CourseCache
}

// NewCatalogUseCase wires the storefront read side. cache may be nil.
func NewCatalogUseCase(courses CourseRepo, categories CategoryRepo, cache CourseCache) *CatalogUseCase {
	return &CatalogUseCase{courses: courses, categories: categories, cache: cache}
}

func (uc *CatalogUseCase) ListCourses(ctx context.Context, f domain.CourseFilter) (*domain.CoursePage, error) {
	f.Normalize()
	if !domain.ValidLevel(f.Level) {
		return nil, fmt.Errorf("%w: unknown level %q", domain.ErrInvalidInput, f.Level)
	}

	if uc.cache != nil {
		if page, ok := uc.cache.GetList(ctx, f); ok {
			return page, nil
		}
	}

	items, total, err := uc.courses.List(ctx, f)
	if err != nil {
		return nil, storageErr(err)
	}
	if items == nil {
		items = []domain.Course{}
	}
	page := &domain.CoursePage{Items: items, Total: total, Page: f.Page, PageSize: f.PageSize}

	if uc.cache != nil {
		uc.cache.SetList(ctx, f, page)
	}
	return page, nil
}

func (uc *CatalogUseCase) GetCourse(ctx context.Context, id uint) (*domain.Course, error) {
	if uc.cache != nil {
		if c, ok := uc.cache.GetCourse(ctx, id); ok {
			return c, nil
		}
	}

	c, err := uc.courses.GetByID(ctx, id)
	if err != nil {
		return nil, storageErr(err)
	}

	if uc.cache != nil {
		uc.cache.SetCourse(ctx, c)
	}
	return c, nil
}

func (uc *CatalogUseCase) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := uc.categories.List(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	return categories, nil
}
