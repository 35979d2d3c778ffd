package products

import (
	"context"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

var _ Catalog = (*Repo)(nil)

func (r *Repo) ListByCategory(ctx context.Context, category string) ([]Product, error) {
	var items []Product
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("name ASC, id ASC").
		Find(&items).Error
	return items, err
}

func (r *Repo) Get(ctx context.Context, id string) (Product, error) {
	var p Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return p, err
}

func (r *Repo) CreateProduct(ctx context.Context, name string, price decimal.Decimal, desc, category, imageURL string) (Product, error) {
	now := time.Now()
	p := Product{
		ID:          uuid.NewString(),
		Name:        name,
		Price:       price,
		Description: desc,
		Category:    category,
		ImageURL:    imageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *Repo) Update(ctx context.Context, id string, in ProductUpdate) error {
	updates := map[string]any{
		"name":        in.Name,
		"price":       in.Price,
		"description": in.Description,
		"category":    in.Category,
		"updated_at":  time.Now(),
	}
	if in.ImageURL != "" {
		updates["image_url"] = in.ImageURL
	}

	res := r.db.WithContext(ctx).Model(&Product{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repo) DeleteProduct(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&Product{}, "id = ?", id).Error
}

func IsDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == 1062
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
