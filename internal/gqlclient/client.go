// Package gqlclient runs GraphQL operations against the CRM endpoint, either
// over HTTP or in-process against a schema.
package gqlclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// ResponseError carries the messages of a GraphQL "errors" array.
type ResponseError struct {
	Messages []string
}

func (e *ResponseError) Error() string {
	return "graphql: " + strings.Join(e.Messages, "; ")
}

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// decode unpacks a GraphQL response body into out.
func decode(body []byte, out any) error {
	var resp response
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("decode graphql response: %w", err)
	}
	if len(resp.Errors) > 0 {
		re := &ResponseError{}
		for _, e := range resp.Errors {
			re.Messages = append(re.Messages, e.Message)
		}
		return re
	}
	if resp.Data == nil && resp.Errors == nil {
		return errNotGraphQL
	}
	if out == nil || string(resp.Data) == "null" {
		return nil
	}
	return json.Unmarshal(resp.Data, out)
}

// Client posts operations to a GraphQL URL. Transport failures and 5xx
// answers are retried Retries more times; other non-2xx answers and GraphQL
// errors fail at once.
type Client struct {
	URL     string
	Retries int
	Timeout time.Duration
}

func New(url string, retries int) *Client {
	return &Client{URL: url, Retries: retries, Timeout: 10 * time.Second}
}

var (
	errServer     = errors.New("server error")
	errNotGraphQL = errors.New("response has neither data nor errors")
)

// StatusError is a non-2xx answer that is not worth retrying.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("unexpected status %d", e.Code)
	}
	return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
}

func (c *Client) Execute(ctx context.Context, query string, vars map[string]any, out any) error {
	var lastErr error
	attempts := c.Retries + 1
	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		body, err := c.post(request{Query: query, Variables: vars})
		var se *StatusError
		if errors.As(err, &se) {
			return fmt.Errorf("post %s: %w", c.URL, err)
		}
		if err != nil {
			lastErr = err
			continue
		}
		return decode(body, out)
	}
	return fmt.Errorf("post %s (%d attempts): %w", c.URL, attempts, lastErr)
}

func (c *Client) post(req request) ([]byte, error) {
	a := fiber.Post(c.URL).JSON(req)
	if c.Timeout > 0 {
		a = a.Timeout(c.Timeout)
	}
	code, body, errs := a.Bytes()
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	if code >= fiber.StatusInternalServerError {
		return nil, fmt.Errorf("%w: status %d", errServer, code)
	}
	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return nil, &StatusError{Code: code, Body: snippet(body)}
	}
	return body, nil
}

// snippet trims a response body for error messages.
func snippet(b []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(b))
	if len(s) > limit {
		s = s[:limit] + "..."
	}
	return s
}
