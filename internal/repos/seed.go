package repos

import (
	"log"

	"github.com/shopspring/decimal"

	"crm/internal/domain"
	"crm/internal/services"
)

// SeedDemo inserts a few customers and products when the store has no products.
// Two of the products start below the restock threshold. Customers whose email is
// already taken are skipped. Safe to run on every start.
func SeedDemo(st services.Stores) error {
	existing, err := st.Products.List()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	log.Println("[seed] inserting demo customers/products")

	customers := []domain.Customer{
		{ID: "c-alice", Name: "Alice", Email: "alice@example.com", Phone: "+1234567890"},
		{ID: "c-bob", Name: "Bob", Email: "bob@example.com", Phone: "123-456-7890"},
		{ID: "c-carol", Name: "Carol", Email: "carol@example.com"},
	}
	fresh := customers[:0]
	for _, c := range customers {
		exists, err := st.Customers.EmailExists(c.Email)
		if err != nil {
			return err
		}
		if !exists {
			fresh = append(fresh, c)
		}
	}
	if len(fresh) > 0 {
		if err := st.Customers.CreateMany(fresh); err != nil {
			return err
		}
	}

	products := []domain.Product{
		{ID: "p-laptop", Name: "Laptop", Price: decimal.RequireFromString("999.99"), Stock: 3},
		{ID: "p-phone", Name: "Phone", Price: decimal.RequireFromString("499.50"), Stock: 25},
		{ID: "p-cable", Name: "USB-C Cable", Price: decimal.RequireFromString("9.99"), Stock: 0},
	}
	for _, p := range products {
		if err := st.Products.Create(p); err != nil {
			return err
		}
	}
	return nil
}
