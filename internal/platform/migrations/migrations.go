package migrations

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&categoryRecord{},
		&productRecord{},
		&cartLineRecord{},
		&orderRecord{},
		&orderLineRecord{},
		&userRecord{},
		&sessionRecord{},
	)
}

// Category schema mirrors the catalog Postgres adapter.
type categoryRecord struct {
	ID        int64     `gorm:"primaryKey;column:id;autoIncrement"`
	Name      string    `gorm:"column:name;uniqueIndex"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (categoryRecord) TableName() string { return "categories" }

// Product schema mirrors the catalog Postgres adapter.
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

// Cart line schema mirrors the cart Postgres adapter.
type cartLineRecord struct {
	ID        int64     `gorm:"primaryKey;column:id;autoIncrement"`
	Owner     string    `gorm:"column:owner;size:256;uniqueIndex:idx_cart_owner_product,priority:1;index"`
	ProductID int64     `gorm:"column:product_id;uniqueIndex:idx_cart_owner_product,priority:2"`
	Quantity  int       `gorm:"column:quantity"`
	CreatedAt time.Time `gorm:"column:created_at;index"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (cartLineRecord) TableName() string { return "cart_lines" }

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID              int64           `gorm:"primaryKey;column:id;autoIncrement"`
	Customer        string          `gorm:"column:customer;size:256;index"`
	Status          string          `gorm:"column:status;size:32;index"`
	ShippingAddress string          `gorm:"column:shipping_address"`
	ShippingCity    string          `gorm:"column:shipping_city"`
	ShippingZip     string          `gorm:"column:shipping_zip"`
	Total           decimal.Decimal `gorm:"column:total;type:numeric(12,2)"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
}

func (orderRecord) TableName() string { return "orders" }

// Order line schema mirrors the orders Postgres adapter.
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

// User schema mirrors the users Postgres adapter.
type userRecord struct {
	ID        int64     `gorm:"primaryKey;column:id;autoIncrement"`
	Username  string    `gorm:"column:username;uniqueIndex"`
	FirstName string    `gorm:"column:first_name"`
	LastName  string    `gorm:"column:last_name"`
	Email     string    `gorm:"column:email"`
	Password  string    `gorm:"column:password_hash"`
	Phone     string    `gorm:"column:phone"`
	Admin     bool      `gorm:"column:admin"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (userRecord) TableName() string { return "users" }

// Session schema mirrors the session store.
type sessionRecord struct {
	Token     string     `gorm:"primaryKey;column:token;size:512"`
	Username  string     `gorm:"column:username;index"`
	ExpiresAt *time.Time `gorm:"column:expires_at;index"`
	CreatedAt time.Time  `gorm:"column:created_at"`
	UpdatedAt time.Time  `gorm:"column:updated_at"`
}

func (sessionRecord) TableName() string { return "user_sessions" }
