package gormrepo

import (
	"time"

	"gorm.io/gorm"

	"crm/internal/domain"
)

type OrderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo { return &OrderRepo{db: db} }

// Create links existing products only; Omit keeps gorm from upserting them.
func (r *OrderRepo) Create(o domain.Order) error {
	row := Order{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		OrderDate:   o.OrderDate.UTC(),
		TotalAmount: o.TotalAmount,
	}
	for _, pid := range o.ProductIDs {
		row.Products = append(row.Products, Product{ID: pid})
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Products.*").Create(&row).Error
	})
}

func (r *OrderRepo) withProducts() *gorm.DB {
	return r.db.Preload("Products", func(db *gorm.DB) *gorm.DB {
		return db.Order("products.id")
	})
}

func (r *OrderRepo) Get(id string) (domain.Order, error) {
	var row Order
	if err := r.withProducts().First(&row, "id = ?", id).Error; err != nil {
		return domain.Order{}, translate(err)
	}
	return row.toDomain(), nil
}

func (r *OrderRepo) List() ([]domain.Order, error) {
	return r.find(r.withProducts().Order("order_date DESC"))
}

func (r *OrderRepo) ListSince(since time.Time) ([]domain.Order, error) {
	return r.find(r.withProducts().Where("order_date >= ?", since.UTC()).Order("order_date DESC"))
}

func (r *OrderRepo) find(q *gorm.DB) ([]domain.Order, error) {
	var rows []Order
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
