package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/domain"
	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/logging"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const (
	listGenKey   = "courses:list:gen"
	detailPrefix = "course:detail:"
)

// CourseCache keeps storefront reads in redis. Lists are keyed by a generation
// number that every catalog write bumps, so stale pages are never served.
// Redis errors are logged and treated as a miss.
type CourseCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCourseCache(client *redis.Client, ttl time.Duration) *CourseCache {
	return &CourseCache{client: client, ttl: ttl}
}

func (c *CourseCache) GetList(ctx context.Context, f domain.CourseFilter) (*domain.CoursePage, bool) {
	var page domain.CoursePage
	if !c.get(ctx, c.listKey(ctx, f), &page) {
		return nil, false
	}
	return &page, true
}

func (c *CourseCache) SetList(ctx context.Context, f domain.CourseFilter, page *domain.CoursePage) {
	c.set(ctx, c.listKey(ctx, f), page)
}

func (c *CourseCache) GetCourse(ctx context.Context, id uint) (*domain.Course, bool) {
	var course domain.Course
	if !c.get(ctx, detailKey(id), &course) {
		return nil, false
	}
	return &course, true
}

func (c *CourseCache) SetCourse(ctx context.Context, course *domain.Course) {
	c.set(ctx, detailKey(course.ID), course)
}

func (c *CourseCache) Invalidate(ctx context.Context, courseID uint) {
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, detailKey(courseID))
	pipe.Incr(ctx, listGenKey)
	if _, err := pipe.Exec(ctx); err != nil {
		logging.FromCtx(ctx).Warn("course cache invalidation failed", "course_id", courseID, "error", err)
	}
}

func (c *CourseCache) get(ctx context.Context, key string, dst any) bool {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logging.FromCtx(ctx).Warn("course cache read failed", "key", key, "error", err)
		}
		return false
	}
	return json.Unmarshal(val, dst) == nil
}

func (c *CourseCache) set(ctx context.Context, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logging.FromCtx(ctx).Warn("course cache write failed", "key", key, "error", err)
	}
}

func (c *CourseCache) listKey(ctx context.Context, f domain.CourseFilter) string {
	gen, err := c.client.Get(ctx, listGenKey).Int64()
	if err != nil {
		gen = 0
	}
	// free text is quoted so no two filters share a key
	return fmt.Sprintf("courses:list:%d:%q:%d:%q:%s:%s:%q:%d:%d",
		gen, f.Search, f.CategoryID, f.Level, price(f.MinPrice), price(f.MaxPrice), f.Sort, f.Page, f.PageSize)
}

func detailKey(id uint) string {
	return detailPrefix + strconv.FormatUint(uint64(id), 10)
}

func price(p *decimal.Decimal) string {
	if p == nil {
		return "-"
	}
	return p.String()
}
