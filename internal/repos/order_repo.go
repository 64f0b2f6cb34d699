package repos

import (
	"database/sql"
	"errors"
	"time"

	"crm/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// Fixed width UTC so that text comparison matches time order.
const orderDateLayout = "2006-01-02 15:04:05.000000"

type orderRow struct {
	ID          string          `db:"id"`
	CustomerID  string          `db:"customer_id"`
	OrderDate   string          `db:"order_date"`
	TotalAmount decimal.Decimal `db:"total_amount"`
}

type orderProductRow struct {
	OrderID   string `db:"order_id"`
	ProductID string `db:"product_id"`
}

func (row orderRow) toDomain() domain.Order {
	t, _ := time.ParseInLocation(orderDateLayout, row.OrderDate, time.UTC)
	return domain.Order{
		ID:          row.ID,
		CustomerID:  row.CustomerID,
		OrderDate:   t,
		TotalAmount: row.TotalAmount,
		ProductIDs:  []string{},
	}
}

// Create inserts the order header and its product links in one transaction.
func (r *OrderRepo) Create(o domain.Order) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO orders(id, customer_id, order_date, total_amount)
	  VALUES(?, ?, ?, ?)
	`, o.ID, o.CustomerID, o.OrderDate.UTC().Format(orderDateLayout), o.TotalAmount.StringFixed(2)); err != nil {
		return err
	}
	for _, pid := range o.ProductIDs {
		if _, err := tx.Exec(`INSERT INTO order_products(order_id, product_id) VALUES(?, ?)`, o.ID, pid); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *OrderRepo) Get(id string) (domain.Order, error) {
	var row orderRow
	err := r.db.Get(&row, `SELECT id, customer_id, order_date, total_amount FROM orders WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Order{}, err
	}
	out, err := r.withProducts([]orderRow{row})
	if err != nil {
		return domain.Order{}, err
	}
	return out[0], nil
}

func (r *OrderRepo) List() ([]domain.Order, error) {
	var rows []orderRow
	if err := r.db.Select(&rows, `
		SELECT id, customer_id, order_date, total_amount
		FROM orders
		ORDER BY order_date DESC
	`); err != nil {
		return nil, err
	}
	return r.withProducts(rows)
}

// ListSince returns orders with order_date >= since, newest first.
func (r *OrderRepo) ListSince(since time.Time) ([]domain.Order, error) {
	var rows []orderRow
	if err := r.db.Select(&rows, `
		SELECT id, customer_id, order_date, total_amount
		FROM orders
		WHERE order_date >= ?
		ORDER BY order_date DESC
	`, since.UTC().Format(orderDateLayout)); err != nil {
		return nil, err
	}
	return r.withProducts(rows)
}

func (r *OrderRepo) withProducts(rows []orderRow) ([]domain.Order, error) {
	out := make([]domain.Order, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	query, args, err := sqlx.In(`
		SELECT order_id, product_id FROM order_products
		WHERE order_id IN (?)
		ORDER BY order_id, product_id
	`, ids)
	if err != nil {
		return nil, err
	}
	var links []orderProductRow
	if err := r.db.Select(&links, r.db.Rebind(query), args...); err != nil {
		return nil, err
	}
	byOrder := make(map[string][]string, len(rows))
	for _, l := range links {
		byOrder[l.OrderID] = append(byOrder[l.OrderID], l.ProductID)
	}
	for _, row := range rows {
		o := row.toDomain()
		if pids, ok := byOrder[row.ID]; ok {
			o.ProductIDs = pids
		}
		out = append(out, o)
	}
	return out, nil
}
