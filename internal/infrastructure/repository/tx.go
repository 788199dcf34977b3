package repository

import (
	"context"

	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/application/usecase"
	"github.com/MenaSafwat7/algoriza-internship2025-FS99-BE-byway-sub000/internal/domain"

	"gorm.io/gorm"
)

type TxManager struct {
	db *gorm.DB
}

func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// WithinPurchaseTx commits when fn returns nil and rolls back otherwise.
func (m *TxManager) WithinPurchaseTx(ctx context.Context, fn func(ctx context.Context, s usecase.PurchaseStores) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, usecase.PurchaseStores{
			Catalog: NewCourseRepository(tx),
			Cart:    NewCartRepository(tx),
			Ledger:  &PurchaseRepository{db: tx, lockUser: true},
		})
	})
}

// Models lists every table the service owns, in migration order.
func Models() []any {
	return []any{
		&domain.Category{},
		&domain.Instructor{},
		&domain.Course{},
		&domain.CartLine{},
		&domain.Purchase{},
	}
}

var _ usecase.PurchaseTx = (*TxManager)(nil)
