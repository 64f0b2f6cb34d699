package repos

import (
	"database/sql"
	"errors"

	"crm/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`INSERT INTO products(id,name,price,stock) VALUES(?,?,?,?)`,
		p.ID, p.Name, p.Price.StringFixed(2), p.Stock)
	return err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `SELECT id, name, price, stock FROM products WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, domain.ErrNotFound
	}
	return p, err
}

// GetMany returns the products that exist among ids; missing ids are simply absent.
func (r *ProductRepo) GetMany(ids []string) ([]domain.Product, error) {
	out := []domain.Product{}
	if len(ids) == 0 {
		return out, nil
	}
	query, args, err := sqlx.In(`SELECT id, name, price, stock FROM products WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	err = r.db.Select(&out, r.db.Rebind(query), args...)
	return out, err
}

func (r *ProductRepo) List() ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `
	  SELECT id, name, price, stock
	  FROM products
	  ORDER BY datetime(created_at), name
	`)
	return out, err
}
