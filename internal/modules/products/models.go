package products

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry as the admin editor sees it. Category holds
// the section slug the product is listed under.
type Product struct {
	ID          string          `gorm:"primaryKey;type:char(36)" json:"id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Category    string          `gorm:"size:64;not null;index:ix_products_category" json:"category"`
	ImageURL    string          `gorm:"size:1024;not null;default:''" json:"image_url"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (Product) TableName() string { return "products" }

// ProductUpdate carries the editable columns written back on submit.
// An empty ImageURL keeps the stored one.
type ProductUpdate struct {
	Name        string
	Price       decimal.Decimal
	Description string
	Category    string
	ImageURL    string
}
