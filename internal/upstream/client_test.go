package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locvowork/employee_api_gateway/internal/domain"
)

func newTestClient(t *testing.T, h http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	client := NewClient(Config{
		BaseURL:      srv.URL,
		MaxAttempts:  3,
		InitialDelay: 5 * time.Millisecond,
		HTTPClient:   srv.Client(),
	})
	return client, srv
}

func writeEnvelope(t *testing.T, w http.ResponseWriter, data interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(map[string]interface{}{
		"data":   data,
		"status": "Successfully processed request.",
	})
	require.NoError(t, err)
}

func sampleEmployees() []domain.Employee {
	return []domain.Employee{
		{ID: "1", Name: "Nikhil", Salary: 50000, Age: 30, Title: "Developer"},
		{ID: "2", Name: "Rajat", Salary: 60000, Age: 35, Title: "Manager"},
	}
}

func TestFetchAll(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			writeEnvelope(t, w, sampleEmployees())
		})

		employees, err := client.FetchAll(context.Background())
		require.NoError(t, err)
		require.Len(t, employees, 2)
		assert.Equal(t, "Nikhil", employees[0].Name)
		assert.Equal(t, 60000, employees[1].Salary)
	})

	t.Run("missing payload is a protocol violation", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"status":"ok"}`))
		})

		_, err := client.FetchAll(context.Background())
		require.Error(t, err)
		var upErr *domain.UpstreamError
		require.ErrorAs(t, err, &upErr)
		assert.False(t, domain.IsNotFound(err))
	})

	t.Run("malformed envelope", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		})

		_, err := client.FetchAll(context.Background())
		var upErr *domain.UpstreamError
		require.ErrorAs(t, err, &upErr)
	})
}

func TestRetryOnRateLimit(t *testing.T) {
	t.Run("succeeds on third attempt", func(t *testing.T) {
		var calls int32
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if atomic.AddInt32(&calls, 1) <= 2 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			writeEnvelope(t, w, sampleEmployees())
		})

		start := time.Now()
		employees, err := client.FetchAll(context.Background())
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Len(t, employees, 2)
		assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
		// Two backoff sleeps: initial delay then double it.
		assert.GreaterOrEqual(t, elapsed, 15*time.Millisecond)
	})

	t.Run("exhausts retry budget", func(t *testing.T) {
		var calls int32
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := client.FetchAll(context.Background())
		require.Error(t, err)

		var rlErr *domain.RateLimitError
		require.ErrorAs(t, err, &rlErr)
		assert.Equal(t, 3, rlErr.Attempts)
		assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
	})

	t.Run("context cancels the backoff wait", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
		defer cancel()

		_, err := client.FetchAll(ctx)
		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})
}

func TestFetchByID(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/1", r.URL.Path)
			writeEnvelope(t, w, sampleEmployees()[0])
		})

		emp, err := client.FetchByID(context.Background(), "1")
		require.NoError(t, err)
		assert.Equal(t, "Nikhil", emp.Name)
	})

	t.Run("not found is immediate, no retry", func(t *testing.T) {
		var calls int32
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			w.WriteHeader(http.StatusNotFound)
		})

		_, err := client.FetchByID(context.Background(), "99")
		require.Error(t, err)

		var nfErr *domain.NotFoundError
		require.ErrorAs(t, err, &nfErr)
		assert.Equal(t, "99", nfErr.Resource)
		assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	})

	t.Run("server error is immediate, no retry", func(t *testing.T) {
		var calls int32
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			atomic.AddInt32(&calls, 1)
			http.Error(w, "boom", http.StatusInternalServerError)
		})

		_, err := client.FetchByID(context.Background(), "1")
		require.Error(t, err)

		var upErr *domain.UpstreamError
		require.ErrorAs(t, err, &upErr)
		assert.Equal(t, http.StatusInternalServerError, upErr.StatusCode)
		assert.Equal(t, "boom", upErr.Message)
		assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	})
}

func TestCreate(t *testing.T) {
	req := domain.EmployeeCreateRequest{Name: "Nikhil", Salary: 50000, Age: 30, Title: "Developer"}

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var got domain.EmployeeCreateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, req, got)

		writeEnvelope(t, w, domain.Employee{ID: "1", Name: got.Name, Salary: got.Salary, Age: got.Age, Title: got.Title})
	})

	emp, err := client.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "1", emp.ID)
	assert.Equal(t, "Nikhil", emp.Name)
}

func TestDeleteByName(t *testing.T) {
	t.Run("delete carries the name in the body", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

			var got domain.DeleteEmployeeRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			assert.Equal(t, "Nikhil", got.Name)

			writeEnvelope(t, w, true)
		})

		deleted, err := client.DeleteByName(context.Background(), "Nikhil")
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("upstream false is not an error", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeEnvelope(t, w, false)
		})

		deleted, err := client.DeleteByName(context.Background(), "Nikhil")
		require.NoError(t, err)
		assert.False(t, deleted)
	})
}
