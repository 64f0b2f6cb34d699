package services

// Stores bundles the three repositories a deployment is backed by.
type Stores struct {
	Customers CustomerRepository
	Products  ProductRepository
	Orders    OrderRepository
}

type Services struct {
	Customers *CustomerService
	Products  *ProductService
	Orders    *OrderService
}

func New(st Stores) *Services {
	return &Services{
		Customers: NewCustomerService(st.Customers),
		Products:  NewProductService(st.Products),
		Orders:    NewOrderService(st.Customers, st.Products, st.Orders),
	}
}
