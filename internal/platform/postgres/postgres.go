package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Apurer/go-gin-shop-server/internal/shared/tx"
)

// Connect opens a PostgreSQL connection via GORM and verifies connectivity.
func Connect(ctx context.Context, dsn string) (*gorm.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

type txContextKey struct{}

// ContextWithDB stores a transactional handle in the context for repositories
// participating in the same unit of work.
func ContextWithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, txContextKey{}, db)
}

// DBFromContext returns the transactional handle when one is in flight,
// otherwise the fallback connection.
func DBFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if db, ok := ctx.Value(txContextKey{}).(*gorm.DB); ok && db != nil {
		return db
	}
	return fallback
}

var _ tx.Manager = (*TxManager)(nil)

// TxManager runs units of work inside a database transaction. Repositories
// pick the transaction up through the context, so every read and write of a
// workflow call commits or rolls back together.
type TxManager struct {
	db *gorm.DB
}

// NewTxManager wires a transaction manager over the shared connection.
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Execute wraps fn in a transaction; fn's error aborts it.
func (m *TxManager) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if m == nil || m.db == nil {
		return fmt.Errorf("postgres tx manager not configured")
	}
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ContextWithDB(ctx, tx))
	})
}
