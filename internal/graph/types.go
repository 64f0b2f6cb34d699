package graph

import (
	"time"

	"github.com/graphql-go/graphql"

	"crm/internal/domain"
)

var customerType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Customer",
	Fields: graphql.Fields{
		"id": &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(domain.Customer).ID, nil
		}},
		"name": &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(domain.Customer).Name, nil
		}},
		"email": &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(domain.Customer).Email, nil
		}},
		"phone": &graphql.Field{Type: graphql.String, Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			if phone := p.Source.(domain.Customer).Phone; phone != "" {
				return phone, nil
			}
			return nil, nil
		}},
	},
})

var productType = graphql.NewObject(graphql.ObjectConfig{
	Name: "Product",
	Fields: graphql.Fields{
		"id": &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(domain.Product).ID, nil
		}},
		"name": &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(domain.Product).Name, nil
		}},
		"price": &graphql.Field{Type: graphql.NewNonNull(Decimal), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(domain.Product).Price, nil
		}},
		"stock": &graphql.Field{Type: graphql.NewNonNull(graphql.Int), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(domain.Product).Stock, nil
		}},
	},
})

// stockType is the trimmed product view returned by the restock mutation.
var stockType = graphql.NewObject(graphql.ObjectConfig{
	Name: "ProductStock",
	Fields: graphql.Fields{
		"name": &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(domain.StockUpdate).Name, nil
		}},
		"stock": &graphql.Field{Type: graphql.NewNonNull(graphql.Int), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
			return p.Source.(domain.StockUpdate).Stock, nil
		}},
	},
})

func (r *Resolver) orderType() *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Order",
		Fields: graphql.Fields{
			"id": &graphql.Field{Type: graphql.NewNonNull(graphql.ID), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(domain.Order).ID, nil
			}},
			"customer": &graphql.Field{Type: graphql.NewNonNull(customerType), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return r.Svc.Customers.Get(p.Source.(domain.Order).CustomerID)
			}},
			"products": &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(productType))), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return r.Svc.Products.GetMany(p.Source.(domain.Order).ProductIDs)
			}},
			"orderDate": &graphql.Field{Type: graphql.NewNonNull(graphql.String), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(domain.Order).OrderDate.UTC().Format(time.RFC3339), nil
			}},
			"totalAmount": &graphql.Field{Type: graphql.NewNonNull(Decimal), Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return p.Source.(domain.Order).TotalAmount, nil
			}},
		},
	})
}

func payloadType(name, field string, of graphql.Output) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{
		Name: name,
		Fields: graphql.Fields{
			field:     &graphql.Field{Type: of},
			"success": &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"message": &graphql.Field{Type: graphql.String},
			"errors":  &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.String)))},
		},
	})
}

var customerInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "CustomerInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"email": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"phone": &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})

var productInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "ProductInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"name":  &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.String)},
		"price": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(Decimal)},
		"stock": &graphql.InputObjectFieldConfig{Type: graphql.Int},
	},
})

var orderInput = graphql.NewInputObject(graphql.InputObjectConfig{
	Name: "OrderInput",
	Fields: graphql.InputObjectConfigFieldMap{
		"customerId": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.ID)},
		"productIds": &graphql.InputObjectFieldConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(graphql.ID)))},
		"orderDate":  &graphql.InputObjectFieldConfig{Type: graphql.String},
	},
})
