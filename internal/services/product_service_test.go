package services_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm/internal/domain"
	"crm/internal/services"
)

func TestProductService_CreateValidation(t *testing.T) {
	f := newFixture(t)

	_, err := f.productSvc.Create("Free", decimal.Zero, nil)
	assert.True(t, domain.IsValidation(err), "zero price: got %v", err)
	_, err = f.productSvc.Create("Refund", decimal.NewFromInt(-1), nil)
	assert.True(t, domain.IsValidation(err), "negative price: got %v", err)
	neg := -1
	_, err = f.productSvc.Create("Ghost", decimal.NewFromInt(1), &neg)
	assert.True(t, domain.IsValidation(err), "negative stock: got %v", err)

	p, err := f.productSvc.Create("Cable", decimal.RequireFromString("9.999"), nil)
	require.NoError(t, err)
	assert.Zero(t, p.Stock)

	stored, err := f.products.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "10.00", stored.Price.StringFixed(2))
}

func TestProductService_UpdateLowStockTwice(t *testing.T) {
	f := newFixture(t)
	five, twenty := 5, 20
	low, err := f.productSvc.Create("Low", decimal.NewFromInt(3), &five)
	require.NoError(t, err)
	_, err = f.productSvc.Create("Plenty", decimal.NewFromInt(3), &twenty)
	require.NoError(t, err)

	res := f.productSvc.UpdateLowStock()
	require.True(t, res.Success, res.Message)
	assert.Equal(t, []domain.StockUpdate{{Name: "Low", Stock: 15}}, res.Updated)
	p, err := f.products.Get(low.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, p.Stock)

	res = f.productSvc.UpdateLowStock()
	assert.True(t, res.Success)
	assert.Empty(t, res.Updated)
	p, err = f.products.Get(low.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, p.Stock)
}

type brokenProducts struct{ services.ProductRepository }

func (brokenProducts) ListLowStock(int) ([]domain.Product, error) {
	return nil, errors.New("no such table: products")
}

func TestProductService_UpdateLowStockReportsFailure(t *testing.T) {
	svc := services.NewProductService(brokenProducts{})

	res := svc.UpdateLowStock()
	assert.False(t, res.Success)
	assert.Equal(t, "no such table: products", res.Message)
	assert.Empty(t, res.Updated)
}
