package services

import (
	"errors"
	"strings"
	"time"

	"crm/internal/domain"
	"crm/internal/validate"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderService struct {
	Customers CustomerRepository
	Products  ProductRepository
	Orders    OrderRepository
	NewID     func() string
	Now       func() time.Time
}

func NewOrderService(customers CustomerRepository, products ProductRepository, orders OrderRepository) *OrderService {
	return &OrderService{
		Customers: customers,
		Products:  products,
		Orders:    orders,
		NewID:     uuid.NewString,
		Now:       func() time.Time { return time.Now().UTC() },
	}
}

// dedupe keeps first occurrences; an order links each product at most once.
func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// Create places an order for an existing customer and existing products.
// orderDate is optional ISO-8601; bad or empty values fall back to now.
func (s *OrderService) Create(customerID string, productIDs []string, orderDate string) (domain.Order, error) {
	ids := dedupe(productIDs)
	if len(ids) == 0 {
		return domain.Order{}, domain.Invalid("productIds", "at least one product must be selected")
	}

	if _, err := s.Customers.Get(customerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Order{}, &domain.LookupError{Entity: "customer", ID: customerID}
		}
		return domain.Order{}, err
	}

	found, err := s.Products.GetMany(ids)
	if err != nil {
		return domain.Order{}, err
	}
	price := make(map[string]decimal.Decimal, len(found))
	for _, p := range found {
		price[p.ID] = p.Price
	}

	total := decimal.Zero
	for _, id := range ids {
		pr, ok := price[id]
		if !ok {
			return domain.Order{}, &domain.LookupError{Entity: "product", ID: id}
		}
		total = total.Add(pr)
	}

	o := domain.Order{
		ID:          s.NewID(),
		CustomerID:  customerID,
		ProductIDs:  ids,
		OrderDate:   validate.OrderDate(orderDate, s.Now()),
		TotalAmount: total,
	}
	if err := s.Orders.Create(o); err != nil {
		return domain.Order{}, err
	}
	return o, nil
}

func (s *OrderService) Get(id string) (domain.Order, error) {
	return s.Orders.Get(id)
}

func (s *OrderService) List() ([]domain.Order, error) {
	return s.Orders.List()
}

func (s *OrderService) ListSince(since time.Time) ([]domain.Order, error) {
	return s.Orders.ListSince(since)
}
