package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockThreshold is the stock level below which a product gets restocked.
const LowStockThreshold = 10

// RestockAmount is added to every low-stock product on each restock run.
const RestockAmount = 10

type Customer struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Email string `db:"email" json:"email"`
	Phone string `db:"phone" json:"phone,omitempty"` // empty when absent
}

type Product struct {
	ID    string          `db:"id" json:"id"`
	Name  string          `db:"name" json:"name"`
	Price decimal.Decimal `db:"price" json:"price"`
	Stock int             `db:"stock" json:"stock"`
}

type Order struct {
	ID          string          `json:"id"`
	CustomerID  string          `json:"customer_id"`
	ProductIDs  []string        `json:"product_ids"`
	OrderDate   time.Time       `json:"order_date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// CustomerInput is the unvalidated shape accepted by the create mutations.
type CustomerInput struct {
	Name  string
	Email string
	Phone string
}

// StockUpdate is one row touched by a restock run.
type StockUpdate struct {
	Name  string `json:"name"`
	Stock int    `json:"stock"`
}
