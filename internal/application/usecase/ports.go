package usecase

import (
	"context"

	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/domain"
)

// CatalogLookup returns the subset of ids that exist. Missing ids are simply absent.
type CatalogLookup interface {
	FindCourses(ctx context.Context, ids []uint) ([]domain.Course, error)
}

type CartStore interface {
	CartCourseIDs(ctx context.Context, userID uint) ([]uint, error)
	// DeleteCartLines is a no-op for lines that do not exist.
	DeleteCartLines(ctx context.Context, userID uint, courseIDs []uint) error
}

type PurchaseLedger interface {
	ExistingPurchaseCourseIDs(ctx context.Context, userID uint, courseIDs []uint) ([]uint, error)
	InsertPurchases(ctx context.Context, rows []domain.Purchase) error
}

// PurchaseStores are the stores bound to one open transaction.
type PurchaseStores struct {
	Catalog CatalogLookup
	Cart    CartStore
	Ledger  PurchaseLedger
}

// PurchaseTx runs fn inside a single transaction. A non-nil error from fn, or a
// failed commit, leaves no writes behind.
type PurchaseTx interface {
	WithinPurchaseTx(ctx context.Context, fn func(ctx context.Context, s PurchaseStores) error) error
}

type CartRepo interface {
	CartStore
	AddLine(ctx context.Context, line *domain.CartLine) error
	RemoveLine(ctx context.Context, userID, courseID uint) (bool, error)
	ListLines(ctx context.Context, userID uint) ([]domain.CartLine, error)
}

type PurchaseReader interface {
	ExistingPurchaseCourseIDs(ctx context.Context, userID uint, courseIDs []uint) ([]uint, error)
	ListByUser(ctx context.Context, userID uint) ([]domain.Purchase, error)
}

type CourseRepo interface {
	CatalogLookup
	List(ctx context.Context, f domain.CourseFilter) ([]domain.Course, int64, error)
	GetByID(ctx context.Context, id uint) (*domain.Course, error)
	Create(ctx context.Context, c *domain.Course) error
	Update(ctx context.Context, c *domain.Course) error
	Delete(ctx context.Context, id uint) error
	HasPurchases(ctx context.Context, id uint) (bool, error)
}

type CourseCache interface {
	GetList(ctx context.Context, f domain.CourseFilter) (*domain.CoursePage, bool)
	SetList(ctx context.Context, f domain.CourseFilter, page *domain.CoursePage)
	GetCourse(ctx context.Context, id uint) (*domain.Course, bool)
	SetCourse(ctx context.Context, c *domain.Course)
	Invalidate(ctx context.Context, courseID uint)
}

type CategoryRepo interface {
	Create(ctx context.Context, c *domain.Category) error
	List(ctx context.Context) ([]domain.Category, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

type InstructorRepo interface {
	Create(ctx context.Context, i *domain.Instructor) error
	List(ctx context.Context) ([]domain.Instructor, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Delete(ctx context.Context, id uint) error
	CountCourses(ctx context.Context, id uint) (int64, error)
}

type StatsRepo interface {
	DashboardStats(ctx context.Context) (*domain.DashboardStats, error)
}
