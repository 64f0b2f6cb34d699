package repos

import (
	"database/sql"
	"errors"

	"crm/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CustomerRepo struct{ db *sqlx.DB }

func NewCustomerRepo(db *sqlx.DB) *CustomerRepo { return &CustomerRepo{db: db} }

const customerCols = `id, name, email, COALESCE(phone,'') AS phone`

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

func insertCustomer(x execer, c domain.Customer) error {
	_, err := x.Exec(`INSERT INTO customers(id,name,email,phone) VALUES(?,?,?,?)`,
		c.ID, c.Name, c.Email, nullIfEmpty(c.Phone))
	if isUniqueViolation(err) {
		return domain.ErrDuplicateEmail
	}
	return err
}

func (r *CustomerRepo) Create(c domain.Customer) error {
	return insertCustomer(r.db, c)
}

// CreateMany inserts every customer in one transaction; nothing is kept on error.
func (r *CustomerRepo) CreateMany(cs []domain.Customer) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, c := range cs {
		if err := insertCustomer(tx, c); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *CustomerRepo) EmailExists(email string) (bool, error) {
	var ok bool
	err := r.db.Get(&ok, `SELECT EXISTS(SELECT 1 FROM customers WHERE LOWER(email)=LOWER(?))`, email)
	return ok, err
}

func (r *CustomerRepo) Get(id string) (domain.Customer, error) {
	var c domain.Customer
	err := r.db.Get(&c, `SELECT `+customerCols+` FROM customers WHERE id=?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Customer{}, domain.ErrNotFound
	}
	return c, err
}

func (r *CustomerRepo) List() ([]domain.Customer, error) {
	out := []domain.Customer{}
	err := r.db.Select(&out, `SELECT `+customerCols+` FROM customers ORDER BY datetime(created_at), name`)
	return out, err
}

// Delete removes a customer; their orders go with them (ON DELETE CASCADE).
func (r *CustomerRepo) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM customers WHERE id=?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
