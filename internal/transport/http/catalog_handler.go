package handlers

import (
	"net/http"
	"strconv"

	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type CatalogHandler struct {
	catalog CatalogService
}

func NewCatalogHandler(catalog CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// GET /api/v1/courses
func (h *CatalogHandler) List(c *gin.Context) {
	f := domain.CourseFilter{
		Search: c.Query("search"),
		Level:  c.Query("level"),
		Sort:   domain.CourseSort(c.Query("sort")),
	}

	var err error
	if f.Page, err = strconv.Atoi(c.DefaultQuery("page", "1")); err != nil {
		badRequest(c, "invalid page")
		return
	}
	if f.PageSize, err = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(domain.DefaultPageSize))); err != nil {
		badRequest(c, "invalid page_size")
		return
	}
	if v := c.Query("category_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			badRequest(c, "invalid category_id")
			return
		}
		f.CategoryID = uint(id)
	}
	if f.MinPrice, err = queryDecimal(c, "min_price"); err != nil {
		badRequest(c, "invalid min_price")
		return
	}
	if f.MaxPrice, err = queryDecimal(c, "max_price"); err != nil {
		badRequest(c, "invalid max_price")
		return
	}

	page, err := h.catalog.ListCourses(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GET /api/v1/courses/:id
func (h *CatalogHandler) GetOne(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	course, err := h.catalog.GetCourse(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, course)
}

// GET /api/v1/categories
func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.catalog.ListCategories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if categories == nil {
		categories = []domain.Category{}
	}
	c.JSON(http.StatusOK, categories)
}

func queryDecimal(c *gin.Context, key string) (*decimal.Decimal, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
