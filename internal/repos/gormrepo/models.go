package gormrepo

import (
	"time"

	"github.com/shopspring/decimal"

	"crm/internal/domain"
)

type Customer struct {
	ID        string  `gorm:"primaryKey;size:36"`
	Name      string  `gorm:"size:100;not null"`
	Email     string  `gorm:"size:254;not null;uniqueIndex"`
	Phone     *string `gorm:"size:20"`
	CreatedAt time.Time
	Orders    []Order `gorm:"constraint:OnDelete:CASCADE;"`
}

type Product struct {
	ID        string          `gorm:"primaryKey;size:36"`
	Name      string          `gorm:"size:100;not null"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Stock     int             `gorm:"not null;default:0;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Order struct {
	ID          string          `gorm:"primaryKey;size:36"`
	CustomerID  string          `gorm:"size:36;not null;index"`
	OrderDate   time.Time       `gorm:"not null;index"`
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	Products    []Product       `gorm:"many2many:order_products;"`
}

func fromCustomer(c domain.Customer) Customer {
	row := Customer{ID: c.ID, Name: c.Name, Email: c.Email}
	if c.Phone != "" {
		phone := c.Phone
		row.Phone = &phone
	}
	return row
}

func (c Customer) toDomain() domain.Customer {
	out := domain.Customer{ID: c.ID, Name: c.Name, Email: c.Email}
	if c.Phone != nil {
		out.Phone = *c.Phone
	}
	return out
}

func (p Product) toDomain() domain.Product {
	return domain.Product{ID: p.ID, Name: p.Name, Price: p.Price, Stock: p.Stock}
}

func (o Order) toDomain() domain.Order {
	ids := make([]string, 0, len(o.Products))
	for _, p := range o.Products {
		ids = append(ids, p.ID)
	}
	return domain.Order{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		ProductIDs:  ids,
		OrderDate:   o.OrderDate.UTC(),
		TotalAmount: o.TotalAmount,
	}
}
