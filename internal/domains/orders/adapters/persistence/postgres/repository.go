package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/sportsstore/go-gin-store-server/internal/domains/orders/domain"
	"github.com/sportsstore/go-gin-store-server/internal/domains/orders/ports"
	platformpostgres "github.com/sportsstore/go-gin-store-server/internal/platform/postgres"
)

var _ ports.Repository = (*Repository)(nil)

// createAttempts bounds retries on transaction serialization failures.
const createAttempts = 3

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed order repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

type orderRecord struct {
	ID              int64           `gorm:"primaryKey;column:id;autoIncrement"`
	Customer        string          `gorm:"column:customer;size:256;index"`
	Status          string          `gorm:"column:status;size:32;index"`
	ShippingAddress string          `gorm:"column:shipping_address"`
	ShippingCity    string          `gorm:"column:shipping_city"`
	ShippingZip     string          `gorm:"column:shipping_zip"`
	Total           decimal.Decimal `gorm:"column:total;type:numeric(12,2)"`
	CreatedAt       time.Time       `gorm:"column:created_at"`

	Lines []orderLineRecord `gorm:"foreignKey:OrderID;references:ID"`
}

func (orderRecord) TableName() string { return "orders" }

// orderLineRecord freezes a line's name and unit price; Position preserves
// the original cart order on reads.
type orderLineRecord struct {
	ID          int64           `gorm:"primaryKey;column:id;autoIncrement"`
	OrderID     int64           `gorm:"column:order_id;index"`
	Position    int             `gorm:"column:position"`
	ProductID   int64           `gorm:"column:product_id"`
	ProductName string          `gorm:"column:product_name"`
	UnitPrice   decimal.Decimal `gorm:"column:unit_price;type:numeric(12,2)"`
	Quantity    int             `gorm:"column:quantity"`
}

func (orderLineRecord) TableName() string { return "order_lines" }

// Create writes the order and its lines in one transaction, retrying a
// bounded number of times when the database reports a serialization failure.
// When the context carries a checkout transaction, the write joins it and the
// caller owns retry and rollback.
func (r *Repository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := toRecord(order)
	if tx := platformpostgres.TxFrom(ctx); tx != nil {
		if err := tx.Create(&record).Error; err != nil {
			return nil, err
		}
		return record.toDomain(), nil
	}
	var lastErr error
	for attempt := 0; attempt < createAttempts; attempt++ {
		record.ID = 0
		for i := range record.Lines {
			record.Lines[i].ID = 0
			record.Lines[i].OrderID = 0
		}
		err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return tx.Create(&record).Error
		})
		if err == nil {
			return record.toDomain(), nil
		}
		if !isSerializationFailure(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, errors.Join(ports.ErrConflict, lastErr)
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

func (r *Repository) ListByCustomer(ctx context.Context, customer string) ([]*domain.Order, error) {
	return r.listWhere(ctx, "customer = ?", customer)
}

func (r *Repository) ListByStatus(ctx context.Context, status domain.Status) ([]*domain.Order, error) {
	return r.listWhere(ctx, "status = ?", string(status))
}

func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	return r.listWhere(ctx, "")
}

func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.Status) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).Model(&orderRecord{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) listWhere(ctx context.Context, query string, args ...any) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	db := r.db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Order("id")
	if query != "" {
		db = db.Where(query, args...)
	}
	var records []orderRecord
	if err := db.Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

// isSerializationFailure matches SQLSTATE 40001 (serialization failure) and
// 40P01 (deadlock detected), both safe to retry.
func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "40001" || pgErr.Code == "40P01"
}

func toRecord(order *domain.Order) orderRecord {
	record := orderRecord{
		ID:              order.ID,
		Customer:        order.Customer,
		Status:          string(order.Status),
		ShippingAddress: order.Shipping.Address,
		ShippingCity:    order.Shipping.City,
		ShippingZip:     order.Shipping.Zip,
		Total:           order.Total,
		CreatedAt:       order.CreatedAt,
	}
	record.Lines = make([]orderLineRecord, 0, len(order.Lines))
	for i, line := range order.Lines {
		record.Lines = append(record.Lines, orderLineRecord{
			Position:    i,
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
		})
	}
	return record
}

func (r orderRecord) toDomain() *domain.Order {
	order := &domain.Order{
		ID:       r.ID,
		Customer: r.Customer,
		Status:   domain.Status(r.Status),
		Shipping: domain.ShippingInfo{
			Address: r.ShippingAddress,
			City:    r.ShippingCity,
			Zip:     r.ShippingZip,
		},
		Total:     r.Total,
		CreatedAt: r.CreatedAt,
	}
	order.Lines = make([]domain.Line, 0, len(r.Lines))
	for _, line := range r.Lines {
		order.Lines = append(order.Lines, domain.Line{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			UnitPrice:   line.UnitPrice,
			Quantity:    line.Quantity,
		})
	}
	return order
}
