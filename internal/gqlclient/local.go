package gqlclient

import (
	"context"
	"encoding/json"

	"github.com/graphql-go/graphql"
)

// Local executes operations directly against a schema, without HTTP.
type Local struct {
	Schema graphql.Schema
}

func (l *Local) Execute(ctx context.Context, query string, vars map[string]any, out any) error {
	res := graphql.Do(graphql.Params{
		Schema:         l.Schema,
		RequestString:  query,
		VariableValues: vars,
		Context:        ctx,
	})
	body, err := json.Marshal(res)
	if err != nil {
		return err
	}
	return decode(body, out)
}
