package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/orders/ports"
	platformpostgres "github.com/Apurer/go-gin-shop-server/internal/platform/postgres"
	"github.com/Apurer/go-gin-shop-server/internal/shared/pagination"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists order aggregates in PostgreSQL using GORM. Items live
// in their own table and are loaded alongside the order.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{}, &orderItemRecord{})
	}
	return repo
}

type orderRecord struct {
	ID          uuid.UUID  `gorm:"primaryKey;column:id;type:uuid"`
	UserID      uuid.UUID  `gorm:"column:user_id;type:uuid;index"`
	Status      string     `gorm:"column:status"`
	TotalAmount int64      `gorm:"column:total_amount"`
	PaymentID   *uuid.UUID `gorm:"column:payment_id;type:uuid"`
	CreatedAt   time.Time  `gorm:"column:created_at;index"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }

type orderItemRecord struct {
	ID          uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	OrderID     uuid.UUID `gorm:"column:order_id;type:uuid;index"`
	ProductID   uuid.UUID `gorm:"column:product_id;type:uuid;index"`
	ProductName string    `gorm:"column:product_name"`
	UnitPrice   int64     `gorm:"column:unit_price"`
	Quantity    int64     `gorm:"column:quantity"`
	LineTotal   int64     `gorm:"column:line_total"`
	CreatedAt   time.Time `gorm:"column:created_at"`
}

func (orderItemRecord) TableName() string { return "order_items" }

// Save inserts or updates an order and inserts any items not yet stored.
// Items never change after creation so existing rows are left untouched.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	clone := order.Clone()
	if err := clone.Validate(); err != nil {
		return nil, err
	}
	if clone.ID == uuid.Nil {
		clone.ID = uuid.New()
	}
	record := toOrderRecord(clone)
	conn := r.conn(ctx)
	if err := conn.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"status":       record.Status,
				"total_amount": record.TotalAmount,
				"payment_id":   record.PaymentID,
				"updated_at":   gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	items := toItemRecords(clone)
	if len(items) > 0 {
		if err := conn.
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&items).Error; err != nil {
			return nil, err
		}
	}
	return clone, nil
}

// GetByID fetches an order and its items.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.conn(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	orders, err := r.attachItems(ctx, []orderRecord{record})
	if err != nil {
		return nil, err
	}
	return orders[0], nil
}

// FindByUserID pages through one user's orders, newest first.
func (r *Repository) FindByUserID(ctx context.Context, userID uuid.UUID, page pagination.Request) (pagination.Page[*domain.Order], error) {
	return r.findPaged(ctx, page, "user_id = ?", userID)
}

// FindAll pages through every order, newest first.
func (r *Repository) FindAll(ctx context.Context, page pagination.Request) (pagination.Page[*domain.Order], error) {
	return r.findPaged(ctx, page)
}

func (r *Repository) findPaged(ctx context.Context, page pagination.Request, conds ...any) (pagination.Page[*domain.Order], error) {
	empty := pagination.Page[*domain.Order]{}
	if err := r.ensureDB(); err != nil {
		return empty, err
	}
	page = page.Normalize()
	query := r.conn(ctx).Model(&orderRecord{})
	if len(conds) > 0 {
		query = query.Where(conds[0], conds[1:]...)
	}
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return empty, err
	}
	var records []orderRecord
	if err := query.
		Order("created_at DESC").
		Offset(page.Offset()).
		Limit(page.Size).
		Find(&records).Error; err != nil {
		return empty, err
	}
	orders, err := r.attachItems(ctx, records)
	if err != nil {
		return empty, err
	}
	return pagination.NewPage(orders, page, total), nil
}

func (r *Repository) attachItems(ctx context.Context, records []orderRecord) ([]*domain.Order, error) {
	ids := make([]uuid.UUID, 0, len(records))
	for i := range records {
		ids = append(ids, records[i].ID)
	}
	itemsByOrder := map[uuid.UUID][]domain.OrderItem{}
	if len(ids) > 0 {
		var itemRecords []orderItemRecord
		if err := r.conn(ctx).
			Where("order_id IN ?", ids).
			Order("created_at").
			Find(&itemRecords).Error; err != nil {
			return nil, err
		}
		for i := range itemRecords {
			item := itemRecords[i].toDomain()
			itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
		}
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		order := records[i].toDomain()
		order.Items = itemsByOrder[order.ID]
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *Repository) conn(ctx context.Context) *gorm.DB {
	return platformpostgres.DBFromContext(ctx, r.db).WithContext(ctx)
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toOrderRecord(order *domain.Order) orderRecord {
	return orderRecord{
		ID:          order.ID,
		UserID:      order.UserID,
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
		PaymentID:   order.PaymentID,
	}
}

func toItemRecords(order *domain.Order) []orderItemRecord {
	records := make([]orderItemRecord, 0, len(order.Items))
	for _, item := range order.Items {
		records = append(records, orderItemRecord{
			ID:          item.ID,
			OrderID:     order.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			LineTotal:   item.LineTotal,
		})
	}
	return records
}

func (r orderRecord) toDomain() *domain.Order {
	return &domain.Order{
		ID:          r.ID,
		UserID:      r.UserID,
		Status:      domain.Status(r.Status),
		TotalAmount: r.TotalAmount,
		PaymentID:   r.PaymentID,
	}
}

func (r orderItemRecord) toDomain() domain.OrderItem {
	return domain.OrderItem{
		ID:          r.ID,
		OrderID:     r.OrderID,
		ProductID:   r.ProductID,
		ProductName: r.ProductName,
		UnitPrice:   r.UnitPrice,
		Quantity:    r.Quantity,
		LineTotal:   r.LineTotal,
	}
}
