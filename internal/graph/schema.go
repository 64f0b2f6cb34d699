// Package graph exposes the CRM services as a GraphQL schema.
package graph

import (
	"errors"
	"fmt"

	"github.com/graphql-go/graphql"
	"github.com/shopspring/decimal"

	"crm/internal/domain"
	applog "crm/internal/log"
	"crm/internal/services"
	"crm/internal/validate"
)

const helloMessage = "Hello, GraphQL!"

type Resolver struct {
	Svc *services.Services
}

func NewSchema(svc *services.Services) (graphql.Schema, error) {
	r := &Resolver{Svc: svc}
	orderType := r.orderType()

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"hello": &graphql.Field{
				Type:        graphql.String,
				Description: "A simple hello world field",
				Resolve:     func(graphql.ResolveParams) (interface{}, error) { return helloMessage, nil },
			},
			"customers": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(customerType))),
				Resolve: func(graphql.ResolveParams) (interface{}, error) { return svc.Customers.List() },
			},
			"customer": &graphql.Field{
				Type: customerType,
				Args: graphql.FieldConfigArgument{"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return orNil(svc.Customers.Get(p.Args["id"].(string)))
				},
			},
			"products": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(productType))),
				Resolve: func(graphql.ResolveParams) (interface{}, error) { return svc.Products.List() },
			},
			"product": &graphql.Field{
				Type: productType,
				Args: graphql.FieldConfigArgument{"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return orNil(svc.Products.Get(p.Args["id"].(string)))
				},
			},
			"orders": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(orderType))),
				Args: graphql.FieldConfigArgument{
					"orderDateGte": &graphql.ArgumentConfig{Type: graphql.String, Description: "ISO-8601 lower bound on order_date"},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					raw, _ := p.Args["orderDateGte"].(string)
					if raw == "" {
						return svc.Orders.List()
					}
					since, ok := validate.Timestamp(raw)
					if !ok {
						return nil, fmt.Errorf("orderDateGte: cannot parse %q as ISO-8601", raw)
					}
					return svc.Orders.ListSince(since)
				},
			},
			"order": &graphql.Field{
				Type: orderType,
				Args: graphql.FieldConfigArgument{"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)}},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return orNil(svc.Orders.Get(p.Args["id"].(string)))
				},
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createCustomer": &graphql.Field{
				Type:    payloadType("CreateCustomerPayload", "customer", customerType),
				Args:    graphql.FieldConfigArgument{"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(customerInput)}},
				Resolve: r.createCustomer,
			},
			"bulkCreateCustomers": &graphql.Field{
				Type: payloadType("BulkCreateCustomersPayload", "customers",
					graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(customerType)))),
				Args: graphql.FieldConfigArgument{
					"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(customerInput)))},
				},
				Resolve: r.bulkCreateCustomers,
			},
			"createProduct": &graphql.Field{
				Type:    payloadType("CreateProductPayload", "product", productType),
				Args:    graphql.FieldConfigArgument{"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(productInput)}},
				Resolve: r.createProduct,
			},
			"createOrder": &graphql.Field{
				Type:    payloadType("CreateOrderPayload", "order", orderType),
				Args:    graphql.FieldConfigArgument{"input": &graphql.ArgumentConfig{Type: graphql.NewNonNull(orderInput)}},
				Resolve: r.createOrder,
			},
			"updateLowStockProducts": &graphql.Field{
				Type: graphql.NewObject(graphql.ObjectConfig{
					Name: "UpdateLowStockProductsPayload",
					Fields: graphql.Fields{
						"success":         &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
						"message":         &graphql.Field{Type: graphql.String},
						"updatedProducts": &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(stockType)))},
					},
				}),
				Resolve: r.updateLowStockProducts,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{Query: query, Mutation: mutation})
}

// orNil maps a missing row to a null field instead of an error.
func orNil(v interface{}, err error) (interface{}, error) {
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return v, nil
}

// result builds a mutation payload. Business-rule failures become
// success=false; anything else is returned as a GraphQL error.
func result(field string, v interface{}, message string, err error) (interface{}, error) {
	if err != nil {
		if !domain.IsValidation(err) && !domain.IsLookup(err) {
			return nil, err
		}
		return map[string]interface{}{
			field:     nil,
			"success": false,
			"message": err.Error(),
			"errors":  []string{err.Error()},
		}, nil
	}
	return map[string]interface{}{
		field:     v,
		"success": true,
		"message": message,
		"errors":  []string{},
	}, nil
}

func customerArgs(m map[string]interface{}) domain.CustomerInput {
	in := domain.CustomerInput{}
	in.Name, _ = m["name"].(string)
	in.Email, _ = m["email"].(string)
	in.Phone, _ = m["phone"].(string)
	return in
}

func (r *Resolver) createCustomer(p graphql.ResolveParams) (interface{}, error) {
	in := customerArgs(p.Args["input"].(map[string]interface{}))
	c, err := r.Svc.Customers.Create(in)
	if err == nil {
		applog.Audit(nil, "customer.create", map[string]any{"customer_id": c.ID})
	}
	return result("customer", c, "Customer created successfully", err)
}

func (r *Resolver) bulkCreateCustomers(p graphql.ResolveParams) (interface{}, error) {
	raw, _ := p.Args["input"].([]interface{})
	ins := make([]domain.CustomerInput, 0, len(raw))
	for _, item := range raw {
		m, _ := item.(map[string]interface{})
		ins = append(ins, customerArgs(m))
	}
	res, err := r.Svc.Customers.BulkCreate(ins)
	if err != nil {
		return nil, err
	}
	applog.Audit(nil, "customer.bulk_create", map[string]any{"created": len(res.Created), "rejected": len(res.Errors)})

	message := fmt.Sprintf("Created %d customer(s)", len(res.Created))
	if !res.Success {
		message = fmt.Sprintf("Created %d customer(s), %d rejected", len(res.Created), len(res.Errors))
	}
	return map[string]interface{}{
		"customers": res.Created,
		"success":   res.Success,
		"message":   message,
		"errors":    res.Errors,
	}, nil
}

func (r *Resolver) createProduct(p graphql.ResolveParams) (interface{}, error) {
	m := p.Args["input"].(map[string]interface{})
	name, _ := m["name"].(string)
	price, ok := m["price"].(decimal.Decimal)
	if !ok {
		return result("product", nil, "", domain.Invalid("price", "price must be a decimal number"))
	}
	var stock *int
	if s, ok := m["stock"].(int); ok {
		stock = &s
	}
	prod, err := r.Svc.Products.Create(name, price, stock)
	if err == nil {
		applog.Audit(nil, "product.create", map[string]any{"product_id": prod.ID})
	}
	return result("product", prod, "Product created successfully", err)
}

func (r *Resolver) createOrder(p graphql.ResolveParams) (interface{}, error) {
	m := p.Args["input"].(map[string]interface{})
	customerID, _ := m["customerId"].(string)
	orderDate, _ := m["orderDate"].(string)
	rawIDs, _ := m["productIds"].([]interface{})
	ids := make([]string, 0, len(rawIDs))
	for _, id := range rawIDs {
		if s, ok := id.(string); ok {
			ids = append(ids, s)
		}
	}
	o, err := r.Svc.Orders.Create(customerID, ids, orderDate)
	if err == nil {
		applog.Audit(nil, "order.create", map[string]any{"order_id": o.ID, "total": o.TotalAmount.StringFixed(2)})
	}
	return result("order", o, "Order created successfully", err)
}

func (r *Resolver) updateLowStockProducts(graphql.ResolveParams) (interface{}, error) {
	res := r.Svc.Products.UpdateLowStock()
	if res.Success {
		applog.Audit(nil, "product.restock", map[string]any{"updated": len(res.Updated)})
	} else {
		applog.Error(nil, "product.restock.fail", errors.New(res.Message), nil)
	}
	return map[string]interface{}{
		"success":         res.Success,
		"message":         res.Message,
		"updatedProducts": res.Updated,
	}, nil
}
