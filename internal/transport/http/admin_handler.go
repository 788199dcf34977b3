package handlers

import (
	"net/http"

	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type AdminHandler struct {
	admin AdminService
}

func NewAdminHandler(admin AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

type courseReq struct {
	Title        string          `json:"title" binding:"required"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Level        string          `json:"level" binding:"omitempty,oneof=beginner intermediate expert"`
	TotalHours   int             `json:"total_hours" binding:"gte=0"`
	CoverURL     string          `json:"cover_url"`
	CategoryID   uint            `json:"category_id" binding:"required"`
	InstructorID uint            `json:"instructor_id" binding:"required"`
}

func (r courseReq) toDomain() *domain.Course {
	return &domain.Course{
		Title:        r.Title,
		Description:  r.Description,
		Price:        r.Price,
		Level:        r.Level,
		TotalHours:   r.TotalHours,
		CoverURL:     r.CoverURL,
		CategoryID:   r.CategoryID,
		InstructorID: r.InstructorID,
	}
}

// GET /api/v1/admin/stats
func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.admin.DashboardStats(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"courses":     stats.Courses,
		"instructors": stats.Instructors,
		"categories":  stats.Categories,
		"purchases":   stats.Purchases,
		"buyers":      stats.Buyers,
		"revenue":     stats.Revenue.StringFixed(2),
	})
}

// POST /api/v1/admin/categories
func (h *AdminHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	cat, err := h.admin.CreateCategory(c.Request.Context(), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

// GET /api/v1/admin/instructors
func (h *AdminHandler) ListInstructors(c *gin.Context) {
	list, err := h.admin.ListInstructors(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if list == nil {
		list = []domain.Instructor{}
	}
	c.JSON(http.StatusOK, list)
}

// POST /api/v1/admin/instructors
func (h *AdminHandler) CreateInstructor(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		JobTitle string `json:"job_title"`
		Bio      string `json:"bio"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	in := &domain.Instructor{Name: req.Name, JobTitle: req.JobTitle, Bio: req.Bio}
	if err := h.admin.CreateInstructor(c.Request.Context(), in); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, in)
}

// DELETE /api/v1/admin/instructors/:id
func (h *AdminHandler) DeleteInstructor(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.admin.DeleteInstructor(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// POST /api/v1/admin/courses
func (h *AdminHandler) CreateCourse(c *gin.Context) {
	var req courseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	course := req.toDomain()
	if err := h.admin.CreateCourse(c.Request.Context(), course); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, course)
}

// PUT /api/v1/admin/courses/:id
func (h *AdminHandler) UpdateCourse(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req courseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	course := req.toDomain()
	course.ID = id
	if err := h.admin.UpdateCourse(c.Request.Context(), course); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// DELETE /api/v1/admin/courses/:id
func (h *AdminHandler) DeleteCourse(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.admin.DeleteCourse(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
