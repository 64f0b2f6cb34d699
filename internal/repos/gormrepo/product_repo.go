package gormrepo

import (
	"fmt"

	"gorm.io/gorm"

	"crm/internal/domain"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Create(p domain.Product) error {
	row := Product{ID: p.ID, Name: p.Name, Price: p.Price, Stock: p.Stock}
	return r.db.Create(&row).Error
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var row Product
	if err := r.db.First(&row, "id = ?", id).Error; err != nil {
		return domain.Product{}, translate(err)
	}
	return row.toDomain(), nil
}

func (r *ProductRepo) GetMany(ids []string) ([]domain.Product, error) {
	return r.find(r.db.Where("id IN ?", ids))
}

func (r *ProductRepo) List() ([]domain.Product, error) {
	return r.find(r.db.Order("created_at, name"))
}

func (r *ProductRepo) ListLowStock(threshold int) ([]domain.Product, error) {
	return r.find(r.db.Where("stock < ?", threshold).Order("name, id"))
}

func (r *ProductRepo) SetStock(id string, stock int) error {
	res := r.db.Model(&Product{}).Where("id = ?", id).Update("stock", stock)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("set stock for %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *ProductRepo) find(q *gorm.DB) ([]domain.Product, error) {
	var rows []Product
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}
