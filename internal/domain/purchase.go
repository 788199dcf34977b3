package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Purchase is a ledger row. A user can own a course through at most one row, ever.
type Purchase struct {
	ID           uint            `gorm:"primaryKey" json:"id"`
	UserID       uint            `gorm:"not null;uniqueIndex:ux_purchase_user_course" json:"user_id"`
	CourseID     uint            `gorm:"not null;uniqueIndex:ux_purchase_user_course" json:"course_id"`
	Course       *Course         `gorm:"constraint:OnDelete:RESTRICT;" json:"course,omitempty"`
	PurchaseDate time.Time       `gorm:"not null" json:"purchase_date"`
	Amount       decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"amount"`
	Tax          decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"tax"`
	Discount     decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"discount"`
}

type PurchaseRequest struct {
	CourseIDs []uint
	Discount  decimal.Decimal
}

type PurchaseResult struct {
	TotalAmount  decimal.Decimal `json:"total_amount"`
	CoursesCount int             `json:"courses_count"`
}

type DashboardStats struct {
	Courses     int64           `json:"courses"`
	Instructors int64           `json:"instructors"`
	Categories  int64           `json:"categories"`
	Purchases   int64           `json:"purchases"`
	Buyers      int64           `json:"buyers"`
	Revenue     decimal.Decimal `json:"revenue"`
}
