package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null;size:100" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type Instructor struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null;size:100" json:"name"`
	JobTitle  string    `gorm:"size:100" json:"job_title"`
	Bio       string    `json:"bio"`
	CreatedAt time.Time `json:"created_at"`
}

type Course struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Title       string          `gorm:"index;not null" json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(18,2);not null;check:price >= 0" json:"price"`
	Level       string          `gorm:"index;size:20" json:"level"`
	TotalHours  int             `json:"total_hours"`
	CoverURL    string          `json:"cover_url"`

	CategoryID   uint        `gorm:"index" json:"category_id"`
	Category     *Category   `gorm:"constraint:OnDelete:RESTRICT;" json:"category,omitempty"`
	InstructorID uint        `gorm:"index" json:"instructor_id"`
	Instructor   *Instructor `gorm:"constraint:OnDelete:RESTRICT;" json:"instructor,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	LevelBeginner     = "beginner"
	LevelIntermediate = "intermediate"
	LevelExpert       = "expert"
)

// ValidLevel reports whether level is a known course level. Empty means unset.
func ValidLevel(level string) bool {
	switch level {
	case "", LevelBeginner, LevelIntermediate, LevelExpert:
		return true
	}
	return false
}

type CourseSort string

const (
	SortNewest    CourseSort = "newest"
	SortPriceAsc  CourseSort = "price_asc"
	SortPriceDesc CourseSort = "price_desc"
)

const (
	DefaultPageSize = 12
	MaxPageSize     = 100
)

type CourseFilter struct {
	Search     string
	CategoryID uint
	Level      string
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
	Sort       CourseSort
	Page       int
	PageSize   int
}

// Normalize clamps paging to sane bounds and fills defaults. Level is only
// canonicalised here; callers reject it with ValidLevel.
func (f *CourseFilter) Normalize() {
	f.Search = strings.TrimSpace(f.Search)
	f.Level = strings.ToLower(strings.TrimSpace(f.Level))
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
	switch f.Sort {
	case SortPriceAsc, SortPriceDesc:
	default:
		f.Sort = SortNewest
	}
}

func (f CourseFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

type CoursePage struct {
	Items    []Course `json:"items"`
	Total    int64    `json:"total"`
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
}
