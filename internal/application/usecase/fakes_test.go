package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/domain"

	"github.com/shopspring/decimal"
)

var errDuplicateKey = errors.New("duplicated key not allowed")

// memStore is an in-memory stand-in for the database. Transactions are
// serialized and restore a snapshot when fn fails.
type memStore struct {
	txMu sync.Mutex

	courses   map[uint]domain.Course
	cart      map[uint]map[uint]time.Time
	purchases []domain.Purchase
	nextID    uint

	// staleReads makes ExistingPurchaseCourseIDs miss committed rows,
	// as a concurrent transaction would before the other one commits.
	staleReads bool
	failDelete error
	commitErr  error
}

func newMemStore(courses ...domain.Course) *memStore {
	s := &memStore{
		courses: map[uint]domain.Course{},
		cart:    map[uint]map[uint]time.Time{},
	}
	for _, c := range courses {
		s.courses[c.ID] = c
	}
	return s
}

func course(id uint, price string) domain.Course {
	return domain.Course{ID: id, Title: "course", Price: decimal.RequireFromString(price)}
}

func (s *memStore) addToCart(userID uint, ids ...uint) {
	if s.cart[userID] == nil {
		s.cart[userID] = map[uint]time.Time{}
	}
	for _, id := range ids {
		s.cart[userID][id] = time.Now()
	}
}

func (s *memStore) cartIDs(userID uint) []uint {
	var ids []uint
	for id := range s.cart[userID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *memStore) purchasesOf(userID uint) []domain.Purchase {
	var out []domain.Purchase
	for _, p := range s.purchases {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out
}

func (s *memStore) WithinPurchaseTx(ctx context.Context, fn func(ctx context.Context, st PurchaseStores) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	cartSnap := map[uint]map[uint]time.Time{}
	for u, lines := range s.cart {
		cartSnap[u] = map[uint]time.Time{}
		for c, at := range lines {
			cartSnap[u][c] = at
		}
	}
	purchSnap := append([]domain.Purchase(nil), s.purchases...)
	idSnap := s.nextID

	err := fn(ctx, PurchaseStores{Catalog: s, Cart: s, Ledger: s})
	if err == nil && s.commitErr != nil {
		err = s.commitErr
	}
	if err != nil {
		s.cart = cartSnap
		s.purchases = purchSnap
		s.nextID = idSnap
		return err
	}
	return nil
}

func (s *memStore) FindCourses(_ context.Context, ids []uint) ([]domain.Course, error) {
	var out []domain.Course
	// reverse order on purpose, the store gives no ordering guarantee
	for i := len(ids) - 1; i >= 0; i-- {
		if c, ok := s.courses[ids[i]]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *memStore) CartCourseIDs(_ context.Context, userID uint) ([]uint, error) {
	return s.cartIDs(userID), nil
}

func (s *memStore) DeleteCartLines(_ context.Context, userID uint, courseIDs []uint) error {
	if s.failDelete != nil {
		return s.failDelete
	}
	for _, id := range courseIDs {
		delete(s.cart[userID], id)
	}
	return nil
}

func (s *memStore) ExistingPurchaseCourseIDs(_ context.Context, userID uint, courseIDs []uint) ([]uint, error) {
	if s.staleReads {
		return nil, nil
	}
	want := map[uint]bool{}
	for _, id := range courseIDs {
		want[id] = true
	}
	var out []uint
	for _, p := range s.purchases {
		if p.UserID == userID && want[p.CourseID] {
			out = append(out, p.CourseID)
		}
	}
	return out, nil
}

func (s *memStore) InsertPurchases(_ context.Context, rows []domain.Purchase) error {
	for _, r := range rows {
		for _, p := range s.purchases {
			if p.UserID == r.UserID && p.CourseID == r.CourseID {
				return errDuplicateKey
			}
		}
		s.nextID++
		r.ID = s.nextID
		s.purchases = append(s.purchases, r)
	}
	return nil
}

func (s *memStore) ListByUser(_ context.Context, userID uint) ([]domain.Purchase, error) {
	return s.purchasesOf(userID), nil
}

func (s *memStore) AddLine(_ context.Context, line *domain.CartLine) error {
	if _, ok := s.cart[line.UserID][line.CourseID]; ok {
		return domain.ErrAlreadyInCart
	}
	s.addToCart(line.UserID, line.CourseID)
	line.AddedAt = s.cart[line.UserID][line.CourseID]
	return nil
}

func (s *memStore) RemoveLine(_ context.Context, userID, courseID uint) (bool, error) {
	if _, ok := s.cart[userID][courseID]; !ok {
		return false, nil
	}
	delete(s.cart[userID], courseID)
	return true, nil
}

func (s *memStore) ListLines(_ context.Context, userID uint) ([]domain.CartLine, error) {
	var out []domain.CartLine
	for _, id := range s.cartIDs(userID) {
		c := s.courses[id]
		out = append(out, domain.CartLine{UserID: userID, CourseID: id, Course: &c})
	}
	return out, nil
}

// memCatalog backs the catalog and admin use cases.
type memCatalog struct {
	courses     map[uint]domain.Course
	categories  map[uint]domain.Category
	instructors map[uint]domain.Instructor
	purchased   map[uint]bool
	listCalls   int
	getCalls    int
	nextID      uint
}

func newMemCatalog() *memCatalog {
	return &memCatalog{
		courses:     map[uint]domain.Course{},
		categories:  map[uint]domain.Category{},
		instructors: map[uint]domain.Instructor{},
		purchased:   map[uint]bool{},
	}
}

func (m *memCatalog) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memCatalog) FindCourses(_ context.Context, ids []uint) ([]domain.Course, error) {
	var out []domain.Course
	for _, id := range ids {
		if c, ok := m.courses[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCatalog) List(_ context.Context, f domain.CourseFilter) ([]domain.Course, int64, error) {
	m.listCalls++
	var all []domain.Course
	for _, c := range m.courses {
		if f.Search != "" && !strings.Contains(strings.ToLower(c.Title), strings.ToLower(f.Search)) {
			continue
		}
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	start := f.Offset()
	if start > len(all) {
		start = len(all)
	}
	end := start + f.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (m *memCatalog) GetByID(_ context.Context, id uint) (*domain.Course, error) {
	m.getCalls++
	c, ok := m.courses[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (m *memCatalog) Create(_ context.Context, c *domain.Course) error {
	c.ID = m.id()
	m.courses[c.ID] = *c
	return nil
}

func (m *memCatalog) Update(_ context.Context, c *domain.Course) error {
	m.courses[c.ID] = *c
	return nil
}

func (m *memCatalog) Delete(_ context.Context, id uint) error {
	if _, ok := m.courses[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.courses, id)
	return nil
}

func (m *memCatalog) HasPurchases(_ context.Context, id uint) (bool, error) {
	return m.purchased[id], nil
}

type memCategories struct{ m *memCatalog }

func (c memCategories) Create(_ context.Context, cat *domain.Category) error {
	for _, existing := range c.m.categories {
		if existing.Name == cat.Name {
			return domain.ErrInvalidInput
		}
	}
	cat.ID = c.m.id()
	c.m.categories[cat.ID] = *cat
	return nil
}

func (c memCategories) List(_ context.Context) ([]domain.Category, error) {
	var out []domain.Category
	for _, cat := range c.m.categories {
		out = append(out, cat)
	}
	return out, nil
}

func (c memCategories) Exists(_ context.Context, id uint) (bool, error) {
	_, ok := c.m.categories[id]
	return ok, nil
}

type memInstructors struct{ m *memCatalog }

func (i memInstructors) Create(_ context.Context, in *domain.Instructor) error {
	in.ID = i.m.id()
	i.m.instructors[in.ID] = *in
	return nil
}

func (i memInstructors) List(_ context.Context) ([]domain.Instructor, error) {
	var out []domain.Instructor
	for _, in := range i.m.instructors {
		out = append(out, in)
	}
	return out, nil
}

func (i memInstructors) Exists(_ context.Context, id uint) (bool, error) {
	_, ok := i.m.instructors[id]
	return ok, nil
}

func (i memInstructors) Delete(_ context.Context, id uint) error {
	delete(i.m.instructors, id)
	return nil
}

func (i memInstructors) CountCourses(_ context.Context, id uint) (int64, error) {
	var n int64
	for _, c := range i.m.courses {
		if c.InstructorID == id {
			n++
		}
	}
	return n, nil
}

type memStats struct{ stats domain.DashboardStats }

func (s memStats) DashboardStats(context.Context) (*domain.DashboardStats, error) {
	out := s.stats
	return &out, nil
}

// memCache records invalidations and serves whatever was stored.
type memCache struct {
	lists       map[domain.CourseFilter]*domain.CoursePage
	courses     map[uint]*domain.Course
	invalidated []uint
}

func newMemCache() *memCache {
	return &memCache{
		lists:   map[domain.CourseFilter]*domain.CoursePage{},
		courses: map[uint]*domain.Course{},
	}
}

func (c *memCache) GetList(_ context.Context, f domain.CourseFilter) (*domain.CoursePage, bool) {
	p, ok := c.lists[f]
	return p, ok
}

func (c *memCache) SetList(_ context.Context, f domain.CourseFilter, page *domain.CoursePage) {
	c.lists[f] = page
}

func (c *memCache) GetCourse(_ context.Context, id uint) (*domain.Course, bool) {
	v, ok := c.courses[id]
	return v, ok
}

func (c *memCache) SetCourse(_ context.Context, course *domain.Course) {
	c.courses[course.ID] = course
}

func (c *memCache) Invalidate(_ context.Context, id uint) {
	c.invalidated = append(c.invalidated, id)
	delete(c.courses, id)
	c.lists = map[domain.CourseFilter]*domain.CoursePage{}
}
