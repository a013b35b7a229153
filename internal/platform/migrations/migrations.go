package migrations

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&productRecord{},
		&userRecord{},
		&orderRecord{},
		&orderItemRecord{},
		&paymentRecord{},
	)
}

// Product schema mirrors the catalog Postgres adapter.
type productRecord struct {
	ID        uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	Name      string    `gorm:"column:name;uniqueIndex"`
	Price     int64     `gorm:"column:price"`
	Stock     int64     `gorm:"column:stock"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at;index"`
}

func (productRecord) TableName() string { return "products" }

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID        uuid.UUID      `gorm:"primaryKey;column:id;type:uuid"`
	Username  string         `gorm:"column:username;uniqueIndex"`
	Email     string         `gorm:"column:email"`
	Roles     pq.StringArray `gorm:"column:roles;type:text[]"`
	Status    int32          `gorm:"column:status"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Order schema mirrors the orders Postgres adapter.
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

// Payment schema mirrors the payments Postgres adapter.
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
