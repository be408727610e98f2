package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sportsstore/go-gin-store-server/internal/domains/catalog/domain"
	"github.com/sportsstore/go-gin-store-server/internal/domains/catalog/ports"
	platformpostgres "github.com/sportsstore/go-gin-store-server/internal/platform/postgres"
)

var (
	_ ports.Repository = (*Repository)(nil)
	_ ports.Ledger     = (*Repository)(nil)
)

// Repository persists catalog products in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// productRecord maps the product aggregate to a relational table.
type productRecord struct {
	ID            int64           `gorm:"primaryKey;column:id;autoIncrement"`
	Name          string          `gorm:"column:name;index"`
	Description   string          `gorm:"column:description"`
	Price         decimal.Decimal `gorm:"column:price;type:numeric(12,2)"`
	StockQuantity int             `gorm:"column:stock_quantity"`
	CategoryID    int64           `gorm:"column:category_id;index"`
	ImageURLs     pq.StringArray  `gorm:"column:image_urls;type:text[]"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
	UpdatedAt     time.Time       `gorm:"column:updated_at"`
}

func (productRecord) TableName() string { return "products" }

type categoryRecord struct {
	ID   int64  `gorm:"primaryKey;column:id;autoIncrement"`
	Name string `gorm:"column:name;uniqueIndex"`
}

func (categoryRecord) TableName() string { return "categories" }

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.conn(ctx).WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) List(ctx context.Context) ([]*domain.Product, error) {
	return r.listWhere(ctx)
}

func (r *Repository) ListByCategory(ctx context.Context, categoryID int64) ([]*domain.Product, error) {
	return r.listWhere(ctx, "category_id = ?", categoryID)
}

func (r *Repository) Search(ctx context.Context, term string) ([]*domain.Product, error) {
	pattern := "%" + term + "%"
	return r.listWhere(ctx, "name ILIKE ? OR description ILIKE ?", pattern, pattern)
}

func (r *Repository) ListInStock(ctx context.Context) ([]*domain.Product, error) {
	return r.listWhere(ctx, "stock_quantity > 0")
}

// Save inserts or updates a product.
func (r *Repository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toRecord(product)
	if err := r.conn(ctx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"name":           record.Name,
				"description":    record.Description,
				"price":          record.Price,
				"stock_quantity": record.StockQuantity,
				"category_id":    record.CategoryID,
				"image_urls":     record.ImageURLs,
				"updated_at":     gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.conn(ctx).WithContext(ctx).Delete(&productRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []categoryRecord
	if err := r.conn(ctx).WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	categories := make([]*domain.Category, 0, len(records))
	for i := range records {
		categories = append(categories, &domain.Category{ID: records[i].ID, Name: records[i].Name})
	}
	return categories, nil
}

// Reserve performs the conditional decrement in a single statement; the
// affected-row count tells whether the stock guard held.
func (r *Repository) Reserve(ctx context.Context, productID int64, quantity int) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.conn(ctx).WithContext(ctx).Model(&productRecord{}).
		Where("id = ? AND stock_quantity >= ?", productID, quantity).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := r.GetByID(ctx, productID); err != nil {
			return err
		}
		return ports.ErrInsufficientStock
	}
	return nil
}

// Release restores stock taken by a reservation from the same checkout attempt.
func (r *Repository) Release(ctx context.Context, productID int64, quantity int) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.conn(ctx).WithContext(ctx).Model(&productRecord{}).
		Where("id = ?", productID).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

func (r *Repository) Available(ctx context.Context, productID int64) (int, error) {
	product, err := r.GetByID(ctx, productID)
	if err != nil {
		return 0, err
	}
	return product.StockQuantity, nil
}

func (r *Repository) listWhere(ctx context.Context, conds ...any) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []productRecord
	query := r.conn(ctx).WithContext(ctx).Order("id")
	if len(conds) > 0 {
		query = query.Where(conds[0], conds[1:]...)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres catalog repository not configured")
	}
	return nil
}

// conn joins a transaction carried by the context, so ledger writes commit
// together with the order persisted in the same checkout.
func (r *Repository) conn(ctx context.Context) *gorm.DB {
	if tx := platformpostgres.TxFrom(ctx); tx != nil {
		return tx
	}
	return r.db
}

func toRecord(product *domain.Product) productRecord {
	return productRecord{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price,
		StockQuantity: product.StockQuantity,
		CategoryID:    product.CategoryID,
		ImageURLs:     pq.StringArray(product.ImageURLs),
	}
}

func (r productRecord) toDomain() *domain.Product {
	return &domain.Product{
		ID:            r.ID,
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		StockQuantity: r.StockQuantity,
		CategoryID:    r.CategoryID,
		ImageURLs:     []string(r.ImageURLs),
	}
}
