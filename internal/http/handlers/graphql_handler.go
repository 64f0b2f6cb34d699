package handlers

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
	"github.com/graphql-go/graphql/language/ast"
	"github.com/graphql-go/graphql/language/parser"

	applog "crm/internal/log"
)

type GraphQLHandler struct {
	Schema graphql.Schema
}

type gqlRequest struct {
	Query         string         `json:"query"`
	Variables     map[string]any `json:"variables"`
	OperationName string         `json:"operationName"`
}

func gqlError(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{
		"errors": []fiber.Map{{"message": msg}},
	})
}

// Post handles application/json GraphQL requests.
func (h *GraphQLHandler) Post(c *fiber.Ctx) error {
	var req gqlRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		applog.Security(c, "graphql.bad_body", map[string]any{"len": len(c.Body())})
		return gqlError(c, fiber.StatusBadRequest, "request body must be a JSON object")
	}
	return h.exec(c, req)
}

// Get serves read-only operations from the query string.
func (h *GraphQLHandler) Get(c *fiber.Ctx) error {
	req := gqlRequest{
		Query:         c.Query("query"),
		OperationName: c.Query("operationName"),
	}
	if raw := c.Query("variables"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Variables); err != nil {
			return gqlError(c, fiber.StatusBadRequest, "variables must be a JSON object")
		}
	}
	if isMutation(req.Query, req.OperationName) {
		applog.Security(c, "graphql.get_mutation", nil)
		return gqlError(c, fiber.StatusMethodNotAllowed, "mutations must be sent with POST")
	}
	return h.exec(c, req)
}

func (h *GraphQLHandler) exec(c *fiber.Ctx, req gqlRequest) error {
	if strings.TrimSpace(req.Query) == "" {
		return gqlError(c, fiber.StatusBadRequest, "must provide query string")
	}
	res := graphql.Do(graphql.Params{
		Schema:         h.Schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        c.UserContext(),
	})
	if res.HasErrors() {
		msgs := make([]string, 0, len(res.Errors))
		for _, e := range res.Errors {
			msgs = append(msgs, e.Message)
		}
		applog.Info(c, "graphql.errors", map[string]any{"errors": msgs})
	}
	return c.JSON(res)
}

// isMutation reports whether the selected operation is a mutation. A query
// that does not parse is left for the executor to reject.
func isMutation(query, operation string) bool {
	doc, err := parser.Parse(parser.ParseParams{Source: query})
	if err != nil {
		return false
	}
	for _, def := range doc.Definitions {
		op, ok := def.(*ast.OperationDefinition)
		if !ok {
			continue
		}
		if operation != "" && (op.Name == nil || op.Name.Value != operation) {
			continue
		}
		if op.Operation == ast.OperationTypeMutation {
			return true
		}
	}
	return false
}
