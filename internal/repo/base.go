package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base is the shared foundation of the catalog repositories (products,
// media). It holds the GORM handle and binds it to request contexts.
type Base struct {
	db *gorm.DB
}

// NewBase wraps a GORM connection, which may be a transaction handle.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}
