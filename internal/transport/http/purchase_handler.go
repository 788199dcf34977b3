package handlers

import (
	"net/http"

	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/domain"
	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type PurchaseHandler struct {
	purchases PurchaseService
}

func NewPurchaseHandler(purchases PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchases: purchases}
}

type checkoutReq struct {
	CourseIDs []uint          `json:"course_ids"`
	Discount  decimal.Decimal `json:"discount"`
}

// POST /api/v1/checkout
// The buyer is always the token subject; a user id in the body is ignored.
func (h *PurchaseHandler) Checkout(c *gin.Context) {
	var req checkoutReq
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}
	}

	res, err := h.purchases.ProcessPurchase(c.Request.Context(), middleware.UserID(c), domain.PurchaseRequest{
		CourseIDs: req.CourseIDs,
		Discount:  req.Discount,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"total_amount":  res.TotalAmount.StringFixed(2),
		"courses_count": res.CoursesCount,
	})
}

// GET /api/v1/purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	rows, err := h.purchases.ListPurchases(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if rows == nil {
		rows = []domain.Purchase{}
	}
	c.JSON(http.StatusOK, rows)
}
