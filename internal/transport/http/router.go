package handlers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/infrastructure/security"
	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterDeps struct {
	Catalog        *CatalogHandler
	Cart           *CartHandler
	Purchase       *PurchaseHandler
	Admin          *AdminHandler
	Tokens         *security.TokenManager
	Limiter        *middleware.RateLimiter // nil disables rate limiting
	Logger         *slog.Logger
	AllowedOrigins string
	Health         func() error
}

func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())
	if d.Logger != nil {
		r.Use(middleware.Logging(d.Logger))
	}

	config := cors.DefaultConfig()
	config.AllowOrigins = splitOrigins(d.AllowedOrigins)
	if len(config.AllowOrigins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowCredentials = true
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.RequestIDHeader}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	r.Use(cors.New(config))

	r.GET("/healthz", func(c *gin.Context) {
		if d.Health != nil {
			if err := d.Health(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"ok": false})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limit := func(key string, n int, window time.Duration) gin.HandlerFunc {
		if d.Limiter == nil {
			return func(c *gin.Context) { c.Next() }
		}
		return d.Limiter.Limit(key, n, window)
	}

	api := r.Group("/api/v1")
	{
		api.GET("/courses", d.Catalog.List)
		api.GET("/courses/:id", d.Catalog.GetOne)
		api.GET("/categories", d.Catalog.Categories)

		authed := api.Group("")
		authed.Use(middleware.AuthMiddleware(d.Tokens))
		{
			authed.GET("/cart", d.Cart.Get)
			authed.POST("/cart", limit("cart", 60, time.Minute), d.Cart.Add)
			authed.DELETE("/cart", d.Cart.Clear)
			authed.DELETE("/cart/:courseId", limit("cart", 60, time.Minute), d.Cart.Remove)
			authed.POST("/checkout", limit("checkout", 5, time.Minute), d.Purchase.Checkout)
			authed.GET("/purchases", d.Purchase.List)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(d.Tokens), middleware.RequireAdmin())
		{
			admin.GET("/stats", d.Admin.Stats)
			admin.POST("/categories", d.Admin.CreateCategory)
			admin.GET("/instructors", d.Admin.ListInstructors)
			admin.POST("/instructors", d.Admin.CreateInstructor)
			admin.DELETE("/instructors/:id", d.Admin.DeleteInstructor)
			admin.POST("/courses", d.Admin.CreateCourse)
			admin.PUT("/courses/:id", d.Admin.UpdateCourse)
			admin.DELETE("/courses/:id", d.Admin.DeleteCourse)
		}
	}

	return r
}

func splitOrigins(s string) []string {
	var out []string
	for _, o := range strings.Split(s, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
