package handlers

import (
	"net/http"

	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/middleware"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cart CartService
}

func NewCartHandler(cart CartService) *CartHandler {
	return &CartHandler{cart: cart}
}

// GET /api/v1/cart
func (h *CartHandler) Get(c *gin.Context) {
	view, err := h.cart.GetCart(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"lines":    view.Lines,
		"subtotal": view.Subtotal.StringFixed(2),
		"tax":      view.Tax.StringFixed(2),
		"total":    view.Total.StringFixed(2),
	})
}

// POST /api/v1/cart
func (h *CartHandler) Add(c *gin.Context) {
	var req struct {
		CourseID uint `json:"course_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	line, err := h.cart.AddToCart(c.Request.Context(), middleware.UserID(c), req.CourseID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, line)
}

// DELETE /api/v1/cart/:courseId
func (h *CartHandler) Remove(c *gin.Context) {
	courseID, ok := paramID(c, "courseId")
	if !ok {
		return
	}
	if err := h.cart.RemoveFromCart(c.Request.Context(), middleware.UserID(c), courseID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DELETE /api/v1/cart
func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.cart.ClearCart(c.Request.Context(), middleware.UserID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
