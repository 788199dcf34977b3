package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/domain"
	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/logging"

	"github.com/gin-gonic/gin"
)

type PurchaseService interface {
	ProcessPurchase(ctx context.Context, userID uint, req domain.PurchaseRequest) (domain.PurchaseResult, error)
	ListPurchases(ctx context.Context, userID uint) ([]domain.Purchase, error)
}

type CartService interface {
	AddToCart(ctx context.Context, userID, courseID uint) (*domain.CartLine, error)
	RemoveFromCart(ctx context.Context, userID, courseID uint) error
	ClearCart(ctx context.Context, userID uint) error
	GetCart(ctx context.Context, userID uint) (*domain.CartView, error)
}

type CatalogService interface {
	ListCourses(ctx context.Context, f domain.CourseFilter) (*domain.CoursePage, error)
	GetCourse(ctx context.Context, id uint) (*domain.Course, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

type AdminService interface {
	CreateCategory(ctx context.Context, name string) (*domain.Category, error)
	CreateInstructor(ctx context.Context, in *domain.Instructor) error
	ListInstructors(ctx context.Context) ([]domain.Instructor, error)
	DeleteInstructor(ctx context.Context, id uint) error
	CreateCourse(ctx context.Context, c *domain.Course) error
	UpdateCourse(ctx context.Context, c *domain.Course) error
	DeleteCourse(ctx context.Context, id uint) error
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}

// writeError maps domain error kinds onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrEmptyCart),
		errors.Is(err, domain.ErrInvalidInput):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrCourseNotFound),
		errors.Is(err, domain.ErrCartLineNotFound),
		errors.Is(err, domain.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrAlreadyPurchased),
		errors.Is(err, domain.ErrAlreadyInCart):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		_ = c.Error(err)
		logging.From(c).Error("request failed", "error", err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		badRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}
