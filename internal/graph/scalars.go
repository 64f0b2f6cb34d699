package graph

import (
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/shopspring/decimal"
)

// Decimal carries money as a string ("25.50") so no precision is lost on the wire.
// Inputs accept strings, floats and ints.
var Decimal = graphql.NewScalar(graphql.ScalarConfig{
	Name:        "Decimal",
	Description: "Fixed-point decimal serialized as a string with two fraction digits.",
	Serialize: func(value interface{}) interface{} {
		switch v := value.(type) {
		case decimal.Decimal:
			return v.StringFixed(2)
		case *decimal.Decimal:
			if v == nil {
				return nil
			}
			return v.StringFixed(2)
		}
		return nil
	},
	ParseValue: func(value interface{}) interface{} {
		switch v := value.(type) {
		case string:
			if d, err := decimal.NewFromString(v); err == nil {
				return d
			}
		case float64:
			return decimal.NewFromFloat(v)
		case int:
			return decimal.NewFromInt(int64(v))
		}
		return nil
	},
	ParseLiteral: func(valueAST ast.Value) interface{} {
		switch v := valueAST.(type) {
		case *ast.StringValue:
			if d, err := decimal.NewFromString(v.Value); err == nil {
				return d
			}
		case *ast.FloatValue:
			if d, err := decimal.NewFromString(v.Value); err == nil {
				return d
			}
		case *ast.IntValue:
			if d, err := decimal.NewFromString(v.Value); err == nil {
				return d
			}
		}
		return nil
	},
})
