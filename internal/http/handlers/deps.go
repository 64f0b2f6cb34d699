package handlers

import (
	"github.com/graphql-go/graphql"

	"crm/internal/graph"
	"crm/internal/services"
)

type Deps struct {
	Services       *services.Services
	Schema         graphql.Schema
	GraphQLHandler *GraphQLHandler
}

func NewDeps(st services.Stores) (*Deps, error) {
	svc := services.New(st)
	schema, err := graph.NewSchema(svc)
	if err != nil {
		return nil, err
	}
	return &Deps{
		Services:       svc,
		Schema:         schema,
		GraphQLHandler: &GraphQLHandler{Schema: schema},
	}, nil
}
