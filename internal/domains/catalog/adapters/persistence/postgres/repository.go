package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-shop-server/internal/domains/catalog/domain"
	"github.com/Apurer/go-gin-shop-server/internal/domains/catalog/ports"
	platformpostgres "github.com/Apurer/go-gin-shop-server/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists products in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&productRecord{})
	}
	return repo
}

// productRecord maps the product aggregate to a relational table.
type productRecord struct {
	ID        uuid.UUID `gorm:"primaryKey;column:id;type:uuid"`
	Name      string    `gorm:"column:name;uniqueIndex"`
	Price     int64     `gorm:"column:price"`
	Stock     int64     `gorm:"column:stock"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at;index"`
}

func (productRecord) TableName() string { return "products" }

// Save inserts or updates a product.
func (r *Repository) Save(ctx context.Context, product domain.Product) (domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return domain.Product{}, err
	}
	if err := product.Validate(); err != nil {
		return domain.Product{}, err
	}
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	record := toRecord(product)
	if err := r.conn(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":       record.Name,
				"price":      record.Price,
				"stock":      record.Stock,
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return domain.Product{}, err
	}
	return record.toDomain(), nil
}

// GetByID fetches a product by identifier.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return domain.Product{}, err
	}
	var record productRecord
	if err := r.conn(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Product{}, ports.ErrNotFound
		}
		return domain.Product{}, err
	}
	return record.toDomain(), nil
}

// FindByIDs fetches the products matching ids in one query.
func (r *Repository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error) {
	return r.findByIDs(ctx, ids, false)
}

// FindByIDsForUpdate fetches products with FOR UPDATE row locks so concurrent
// stock mutations within overlapping transactions serialize.
func (r *Repository) FindByIDsForUpdate(ctx context.Context, ids []uuid.UUID) ([]domain.Product, error) {
	return r.findByIDs(ctx, ids, true)
}

func (r *Repository) findByIDs(ctx context.Context, ids []uuid.UUID, forUpdate bool) ([]domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}
	query := r.conn(ctx)
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var records []productRecord
	if err := query.Where("id IN ?", ids).Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

// List returns all products.
func (r *Repository) List(ctx context.Context) ([]domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []productRecord
	if err := r.conn(ctx).Order("name").Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

func (r *Repository) conn(ctx context.Context) *gorm.DB {
	return platformpostgres.DBFromContext(ctx, r.db).WithContext(ctx)
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func toRecord(product domain.Product) productRecord {
	return productRecord{
		ID:    product.ID,
		Name:  product.Name,
		Price: product.Price,
		Stock: product.Stock,
	}
}

func (r productRecord) toDomain() domain.Product {
	return domain.Product{
		ID:    r.ID,
		Name:  r.Name,
		Price: r.Price,
		Stock: r.Stock,
	}
}
