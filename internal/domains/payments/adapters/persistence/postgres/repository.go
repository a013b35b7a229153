package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-shop-server/internal/domains/payments/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/payments/ports"
	platformpostgres "github.com/Apurer/go-gin-shop-server/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists payments in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&paymentRecord{})
	}
	return repo
}

// paymentRecord maps the payment aggregate to a relational table. The unique
// index on order_id enforces one payment per order at the storage level.
type paymentRecord struct {
	ID             uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	OrderID        uuid.UUID `gorm:"column:order_id;type:uuid;uniqueIndex"`
	UserID         uuid.UUID `gorm:"column:user_id;type:uuid;index"`
	Status         string    `gorm:"column:status"`
	Method         string    `gorm:"column:method"`
	Amount         int64     `gorm:"column:amount"`
	TransactionKey string    `gorm:"column:transaction_key"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	UpdatedAt      time.Time `gorm:"column:updated_at"`
}

func (paymentRecord) TableName() string { return "payments" }

// Save inserts or updates a payment.
func (r *Repository) Save(ctx context.Context, payment *domain.Payment) (*domain.Payment, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if payment == nil {
		return nil, errors.New("payment is nil")
	}
	clone := payment.Clone()
	if clone.ID == uuid.Nil {
		clone.ID = uuid.New()
	}
	record := toRecord(clone)
	if err := r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"status":     record.Status,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByID fetches a payment by identifier.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payment, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record paymentRecord
	if err := r.conn(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// FindByOrderID fetches the payment attached to an order.
func (r *Repository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*domain.Payment, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record paymentRecord
	if err := r.conn(ctx).First(&record, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) conn(ctx context.Context) *gorm.DB {
	return platformpostgres.DBFromContext(ctx, r.db).WithContext(ctx)
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres payment repository not configured")
	}
	return nil
}

func toRecord(payment *domain.Payment) paymentRecord {
	return paymentRecord{
		ID:             payment.ID,
		OrderID:        payment.OrderID,
		UserID:         payment.UserID,
		Status:         string(payment.Status),
		Method:         string(payment.Method),
		Amount:         payment.Amount,
		TransactionKey: payment.TransactionKey,
	}
}

func (r paymentRecord) toDomain() *domain.Payment {
	return &domain.Payment{
		ID:             r.ID,
		OrderID:        r.OrderID,
		UserID:         r.UserID,
		Status:         domain.Status(r.Status),
		Method:         domain.Method(r.Method),
		Amount:         r.Amount,
		TransactionKey: r.TransactionKey,
	}
}
