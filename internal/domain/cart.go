package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is a pending selection. One row per (user, course).
type CartLine struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   uint      `gorm:"not null;uniqueIndex:ux_cart_user_course" json:"user_id"`
	CourseID uint      `gorm:"not null;uniqueIndex:ux_cart_user_course" json:"course_id"`
	Course   *Course   `gorm:"constraint:OnDelete:CASCADE;" json:"course,omitempty"`
	AddedAt  time.Time `gorm:"autoCreateTime" json:"added_at"`
}

type CartView struct {
	Lines    []CartLine      `json:"lines"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}
