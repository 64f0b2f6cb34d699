package repos

import (
	"fmt"

	"crm/internal/domain"
)

// ListLowStock returns products whose stock is strictly below threshold.
func (r *ProductRepo) ListLowStock(threshold int) ([]domain.Product, error) {
	out := []domain.Product{}
	err := r.db.Select(&out, `
		SELECT id, name, price, stock
		FROM products
		WHERE stock < ?
		ORDER BY name, id
	`, threshold)
	return out, err
}

// SetStock writes a single product's stock level.
func (r *ProductRepo) SetStock(id string, stock int) error {
	res, err := r.db.Exec(`
		UPDATE products
		SET stock = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, stock, id)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return fmt.Errorf("set stock for %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
