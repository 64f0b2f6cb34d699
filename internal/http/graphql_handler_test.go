package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type gqlResponse struct {
	Data   map[string]any `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func TestGraphQLPostMutationAndQuery(t *testing.T) {
	app := newApp(t, 100)

	resp := postGraphQL(t, app, `{
		"query": "mutation($in: CustomerInput!) { createCustomer(input: $in) { success customer { email } } }",
		"variables": {"in": {"name": "Alice", "email": "alice@example.com", "phone": "123-456-7890"}}
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var created gqlResponse
	decodeBody(t, resp, &created)
	payload, _ := created.Data["createCustomer"].(map[string]any)
	assert.Equal(t, true, payload["success"], "create failed: %+v", created)

	resp = postGraphQL(t, app, `{"query": "{ customers { email } }"}`)
	var list gqlResponse
	decodeBody(t, resp, &list)
	customers, _ := list.Data["customers"].([]any)
	assert.Len(t, customers, 1)
}

func TestGraphQLValidationStaysInPayload(t *testing.T) {
	app := newApp(t, 100)
	resp := postGraphQL(t, app, `{
		"query": "mutation { createCustomer(input: {name: \"Bob\", email: \"bob@example.com\", phone: \"12\"}) { success message errors } }"
	}`)
	var out gqlResponse
	decodeBody(t, resp, &out)
	assert.Empty(t, out.Errors, "validation surfaced as graphql error")
	payload, _ := out.Data["createCustomer"].(map[string]any)
	assert.Equal(t, false, payload["success"])
	assert.NotEmpty(t, payload["message"])
}

func TestGraphQLBadRequests(t *testing.T) {
	app := newApp(t, 100)

	entries := captureLogs(t, func() {
		resp := postGraphQL(t, app, `not json`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
	assert.True(t, hasAction(entries, "graphql.bad_body"), "expected graphql.bad_body log")

	resp := postGraphQL(t, app, `{"query": "   "}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = postGraphQL(t, app, `{"query": "{ nope }"}`)
	var out gqlResponse
	decodeBody(t, resp, &out)
	assert.NotEmpty(t, out.Errors, "expected graphql error for unknown field")
}

func TestGraphQLGet(t *testing.T) {
	app := newApp(t, 100)

	resp, err := app.Test(httptest.NewRequest("GET", "/graphql?query="+url.QueryEscape("{ hello }"), nil))
	require.NoError(t, err)
	var out gqlResponse
	decodeBody(t, resp, &out)
	assert.Equal(t, "Hello, GraphQL!", out.Data["hello"])

	q := url.QueryEscape("mutation { updateLowStockProducts { success } }")
	resp, err = app.Test(httptest.NewRequest("GET", "/graphql?query="+q, nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/graphql?query=%7Bhello%7D&variables=nope", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealthAndNotFound(t *testing.T) {
	app := newApp(t, 100)

	resp, err := app.Test(httptest.NewRequest("GET", "/healthz", nil))
	require.NoError(t, err)
	var health map[string]any
	decodeBody(t, resp, &health)
	assert.Equal(t, true, health["ok"])

	resp, err = app.Test(httptest.NewRequest("GET", "/nowhere", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestMutationsAreAudited(t *testing.T) {
	app := newApp(t, 100)
	entries := captureLogs(t, func() {
		postGraphQL(t, app, `{"query": "mutation { createProduct(input: {name: \"Cable\", price: \"9.99\", stock: 2}) { success } }"}`)
		postGraphQL(t, app, `{"query": "mutation { updateLowStockProducts { success } }"}`)
	})
	for _, action := range []string{"product.create", "product.restock"} {
		assert.True(t, hasAction(entries, action), "expected %s audit log, got %+v", action, entries)
	}
}
