package services

import (
	"time"

	"crm/internal/domain"
)

// Stores return domain.ErrNotFound for missing rows and
// domain.ErrDuplicateEmail when the unique email index rejects a customer.

type CustomerRepository interface {
	Create(c domain.Customer) error
	// CreateMany commits all customers together or none of them.
	CreateMany(cs []domain.Customer) error
	EmailExists(email string) (bool, error)
	Get(id string) (domain.Customer, error)
	List() ([]domain.Customer, error)
}

type ProductRepository interface {
	Create(p domain.Product) error
	Get(id string) (domain.Product, error)
	GetMany(ids []string) ([]domain.Product, error)
	List() ([]domain.Product, error)
	ListLowStock(threshold int) ([]domain.Product, error)
	SetStock(id string, stock int) error
}

type OrderRepository interface {
	Create(o domain.Order) error
	Get(id string) (domain.Order, error)
	List() ([]domain.Order, error)
	ListSince(since time.Time) ([]domain.Order, error)
}
