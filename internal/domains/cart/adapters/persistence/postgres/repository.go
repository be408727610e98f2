package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sportsstore/go-gin-store-server/internal/domains/cart/domain"
	"github.com/sportsstore/go-gin-store-server/internal/domains/cart/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists cart lines in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed cart repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// cartLineRecord maps a cart line to a relational table. The owner column
// carries the tagged identity key ("session:<token>" / "user:<id>"); the
// unique (owner, product_id) index backs the one-line-per-product invariant.
type cartLineRecord struct {
	ID        int64     `gorm:"primaryKey;column:id;autoIncrement"`
	Owner     string    `gorm:"column:owner;size:256;uniqueIndex:idx_cart_owner_product,priority:1;index"`
	ProductID int64     `gorm:"column:product_id;uniqueIndex:idx_cart_owner_product,priority:2"`
	Quantity  int       `gorm:"column:quantity"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (cartLineRecord) TableName() string { return "cart_lines" }

func (r *Repository) LinesFor(ctx context.Context, owner domain.Identity) ([]*domain.Line, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []cartLineRecord
	if err := r.db.WithContext(ctx).
		Where("owner = ?", owner.Key()).
		Order("id").
		Find(&records).Error; err != nil {
		return nil, err
	}
	lines := make([]*domain.Line, 0, len(records))
	for i := range records {
		line, err := records[i].toDomain()
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (r *Repository) FindLine(ctx context.Context, owner domain.Identity, productID int64) (*domain.Line, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record cartLineRecord
	if err := r.db.WithContext(ctx).
		First(&record, "owner = ? AND product_id = ?", owner.Key(), productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrLineNotFound
		}
		return nil, err
	}
	return record.toDomain()
}

func (r *Repository) GetLine(ctx context.Context, lineID int64) (*domain.Line, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record cartLineRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", lineID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrLineNotFound
		}
		return nil, err
	}
	return record.toDomain()
}

// AddLine upserts against the (owner, product_id) unique index in one
// statement, so concurrent adds for the same pair serialize in the database
// and never produce duplicate lines.
func (r *Repository) AddLine(ctx context.Context, owner domain.Identity, productID int64, quantity int) (*domain.Line, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	record := cartLineRecord{Owner: owner.Key(), ProductID: productID, Quantity: quantity}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "owner"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"quantity":   gorm.Expr("cart_lines.quantity + excluded.quantity"),
				"updated_at": gorm.Expr("NOW()"),
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.FindLine(ctx, owner, productID)
}

func (r *Repository) SetQuantity(ctx context.Context, lineID int64, quantity int) (*domain.Line, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	result := r.db.WithContext(ctx).Model(&cartLineRecord{}).
		Where("id = ?", lineID).
		Update("quantity", quantity)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrLineNotFound
	}
	return r.GetLine(ctx, lineID)
}

func (r *Repository) Delete(ctx context.Context, lineID int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&cartLineRecord{}, lineID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrLineNotFound
	}
	return nil
}

func (r *Repository) DeleteByOwner(ctx context.Context, owner domain.Identity) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Where("owner = ?", owner.Key()).Delete(&cartLineRecord{}).Error
}

func (r *Repository) Reassign(ctx context.Context, lineID int64, owner domain.Identity) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&cartLineRecord{}).
		Where("id = ?", lineID).
		Update("owner", owner.Key())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrLineNotFound
	}
	return nil
}

// PurgeStaleSessions removes anonymous cart lines older than the given age.
// Housekeeping for abandoned guest carts; user carts are never touched.
func (r *Repository) PurgeStaleSessions(ctx context.Context, olderThan time.Duration) (int64, error) {
	if err := r.ensureDB(); err != nil {
		return 0, err
	}
	cutoff := time.Now().Add(-olderThan)
	result := r.db.WithContext(ctx).
		Where("owner LIKE ? AND created_at < ?", string(domain.IdentitySession)+":%", cutoff).
		Delete(&cartLineRecord{})
	return result.RowsAffected, result.Error
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres cart repository not configured")
	}
	return nil
}

func (r cartLineRecord) toDomain() (*domain.Line, error) {
	owner, err := domain.ParseKey(r.Owner)
	if err != nil {
		return nil, err
	}
	return &domain.Line{ID: r.ID, Owner: owner, ProductID: r.ProductID, Quantity: r.Quantity}, nil
}
