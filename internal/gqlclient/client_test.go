package gqlclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crm/internal/gqlclient"
)

func TestClient_DecodesData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		assert.Equal(t, "{ hello }", body["query"])
		_, _ = w.Write([]byte(`{"data":{"hello":"Hello, GraphQL!"}}`))
	}))
	defer srv.Close()

	var out struct {
		Hello string `json:"hello"`
	}
	err := gqlclient.New(srv.URL, 0).Execute(context.Background(), "{ hello }", nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "Hello, GraphQL!", out.Hello)
}

func TestClient_GraphQLErrorsAreNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{"data":null,"errors":[{"message":"Cannot query field \"nope\""}]}`))
	}))
	defer srv.Close()

	err := gqlclient.New(srv.URL, 3).Execute(context.Background(), "{ nope }", nil, nil)
	var re *gqlclient.ResponseError
	require.ErrorAs(t, err, &re)
	assert.Len(t, re.Messages, 1)
	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestClient_RetriesServerErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"data":{"hello":"ok"}}`))
	}))
	defer srv.Close()

	var out map[string]string
	err := gqlclient.New(srv.URL, 3).Execute(context.Background(), "{ hello }", nil, &out)
	require.NoError(t, err)
	assert.Equal(t, "ok", out["hello"])
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestClient_GivesUpAfterRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	err := gqlclient.New(srv.URL, 1).Execute(context.Background(), "{ hello }", nil, nil)
	require.Error(t, err)
	assert.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestClient_ClientErrorsFailWithoutRetry(t *testing.T) {
	for _, code := range []int{http.StatusTooManyRequests, http.StatusNotFound, http.StatusBadRequest} {
		t.Run(http.StatusText(code), func(t *testing.T) {
			var calls int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(code)
				_, _ = w.Write([]byte(`{"error":"rate limit exceeded, retry soon"}`))
			}))
			defer srv.Close()

			var out map[string]any
			err := gqlclient.New(srv.URL, 3).Execute(context.Background(), "{ hello }", nil, &out)
			var se *gqlclient.StatusError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, code, se.Code)
			assert.Contains(t, se.Body, "rate limit exceeded")
			assert.Empty(t, out)
			assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
		})
	}
}

func TestClient_RejectsBodyWithoutDataOrErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	err := gqlclient.New(srv.URL, 0).Execute(context.Background(), "{ hello }", nil, nil)
	require.Error(t, err)
	var re *gqlclient.ResponseError
	assert.False(t, errors.As(err, &re))
}
