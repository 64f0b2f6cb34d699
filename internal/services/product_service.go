package services

import (
	"crm/internal/domain"
	"crm/internal/validate"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ProductService struct {
	Products ProductRepository
	NewID    func() string
}

func NewProductService(products ProductRepository) *ProductService {
	return &ProductService{Products: products, NewID: uuid.NewString}
}

// Create persists a product. A nil stock means 0.
func (s *ProductService) Create(name string, price decimal.Decimal, stock *int) (domain.Product, error) {
	name, ok := validate.Name(name)
	if !ok {
		return domain.Product{}, domain.Invalid("name", "name is required (max 100 characters)")
	}
	price, ok = validate.Price(price)
	if !ok {
		return domain.Product{}, domain.Invalid("price", "price must be positive")
	}
	qty := 0
	if stock != nil {
		qty = *stock
	}
	if !validate.Stock(qty) {
		return domain.Product{}, domain.Invalid("stock", "stock cannot be negative")
	}

	p := domain.Product{ID: s.NewID(), Name: name, Price: price, Stock: qty}
	if err := s.Products.Create(p); err != nil {
		return domain.Product{}, err
	}
	return p, nil
}

func (s *ProductService) Get(id string) (domain.Product, error) {
	return s.Products.Get(id)
}

func (s *ProductService) List() ([]domain.Product, error) {
	return s.Products.List()
}

func (s *ProductService) GetMany(ids []string) ([]domain.Product, error) {
	return s.Products.GetMany(ids)
}
