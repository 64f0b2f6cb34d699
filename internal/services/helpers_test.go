package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"crm/internal/repos"
	"crm/internal/services"
)

type fixture struct {
	db        *sqlx.DB
	customers *repos.CustomerRepo
	products  *repos.ProductRepo
	orders    *repos.OrderRepo

	customerSvc *services.CustomerService
	productSvc  *services.ProductService
	orderSvc    *services.OrderService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	f := &fixture{
		db:        db,
		customers: repos.NewCustomerRepo(db),
		products:  repos.NewProductRepo(db),
		orders:    repos.NewOrderRepo(db),
	}
	f.customerSvc = services.NewCustomerService(f.customers)
	f.productSvc = services.NewProductService(f.products)
	f.orderSvc = services.NewOrderService(f.customers, f.products, f.orders)
	return f
}
