package turbodocx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testAPIKey      = "test-api-key"
	testOrgID       = "test-org-id"
	testSenderEmail = "sender@company.com"
)

// newTestClient builds a client pointed at the given mock server.
func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	client, err := NewClient(ClientConfig{
		APIKey:      testAPIKey,
		OrgID:       testOrgID,
		SenderEmail: testSenderEmail,
		BaseURL:     baseURL,
		Timeout:     5 * time.Second,
	})
	require.NoError(t, err)
	return client
}

// jsonServer returns a test server answering every request with the
// given status and raw body.
func jsonServer(status int, body string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
}

func TestTransport_SmartUnwrap(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{
			name: "single-key data envelope is unwrapped",
			body: `{"data":{"status":"completed"}}`,
			want: "completed",
		},
		{
			name: "bare object passes through unchanged",
			body: `{"status":"completed"}`,
			want: "completed",
		},
		{
			name: "data key with siblings is not unwrapped",
			body: `{"data":{"ignored":true},"status":"completed"}`,
			want: "completed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := jsonServer(http.StatusOK, tt.body)
			defer server.Close()

			client := newTestClient(t, server.URL)
			var result StatusResult
			err := client.transport.get(context.Background(), "/probe", &result)

			require.NoError(t, err)
			assert.Equal(t, tt.want, result.Status)
		})
	}

	t.Run("unwrap fires only once on nested data envelopes", func(t *testing.T) {
		server := jsonServer(http.StatusOK, `{"data":{"data":{"status":"completed"}}}`)
		defer server.Close()

		client := newTestClient(t, server.URL)
		var result map[string]interface{}
		err := client.transport.get(context.Background(), "/probe", &result)

		require.NoError(t, err)
		// The inner {"data": ...} survives: the rule is not recursive.
		inner, ok := result["data"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "completed", inner["status"])
	})

	t.Run("array bodies pass through unchanged", func(t *testing.T) {
		server := jsonServer(http.StatusOK, `[{"status":"a"},{"status":"b"}]`)
		defer server.Close()

		client := newTestClient(t, server.URL)
		var result []StatusResult
		err := client.transport.get(context.Background(), "/probe", &result)

		require.NoError(t, err)
		require.Len(t, result, 2)
		assert.Equal(t, "a", result[0].Status)
	})
}

func TestTransport_ErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantType interface{}
		wantMsg  string
		wantCode string
	}{
		{"400 maps to ValidationError", 400, `{"message":"bad field"}`, &ValidationError{}, "bad field", ""},
		{"401 maps to AuthenticationError", 401, `{"message":"bad key"}`, &AuthenticationError{}, "bad key", ""},
		{"404 maps to NotFoundError with code", 404, `{"message":"Document not found","code":"DOC_404"}`, &NotFoundError{}, "Document not found", "DOC_404"},
		{"429 maps to RateLimitError", 429, `{"message":"slow down"}`, &RateLimitError{}, "slow down", ""},
		{"500 maps to generic APIError", 500, `{"message":"boom"}`, &APIError{}, "boom", ""},
		{"error field is the message fallback", 400, `{"error":"alt message"}`, &ValidationError{}, "alt message", ""},
		{"non-JSON body falls back to status text", 404, `<html>not here</html>`, &NotFoundError{}, "Not Found", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := jsonServer(tt.status, tt.body)
			defer server.Close()

			client := newTestClient(t, server.URL)
			err := client.transport.get(context.Background(), "/probe", &StatusResult{})
			require.Error(t, err)

			var base *APIError
			switch want := tt.wantType.(type) {
			case *ValidationError:
				var e *ValidationError
				require.ErrorAs(t, err, &e)
				base = &e.APIError
			case *AuthenticationError:
				var e *AuthenticationError
				require.ErrorAs(t, err, &e)
				base = &e.APIError
			case *NotFoundError:
				var e *NotFoundError
				require.ErrorAs(t, err, &e)
				base = &e.APIError
			case *RateLimitError:
				var e *RateLimitError
				require.ErrorAs(t, err, &e)
				base = &e.APIError
			case *APIError:
				require.ErrorAs(t, err, &base)
			default:
				t.Fatalf("unhandled want type %T", want)
			}

			assert.Equal(t, tt.status, base.StatusCode)
			assert.Equal(t, tt.wantMsg, base.Message)
			assert.Equal(t, tt.wantCode, base.Code)
		})
	}

	t.Run("unreachable host surfaces as NetworkError", func(t *testing.T) {
		server := httptest.NewServer(nil)
		server.Close()

		client := newTestClient(t, server.URL)
		err := client.transport.get(context.Background(), "/probe", &StatusResult{})

		var netErr *NetworkError
		require.ErrorAs(t, err, &netErr)
	})

	t.Run("non-JSON success body surfaces as NetworkError", func(t *testing.T) {
		server := jsonServer(http.StatusOK, `not json`)
		defer server.Close()

		client := newTestClient(t, server.URL)
		err := client.transport.get(context.Background(), "/probe", &StatusResult{})

		var netErr *NetworkError
		require.ErrorAs(t, err, &netErr)
	})
}

func TestTransport_Headers(t *testing.T) {
	t.Run("API key is sent as Bearer with org id header", func(t *testing.T) {
		var got http.Header
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Clone()
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		require.NoError(t, client.transport.get(context.Background(), "/probe", nil))

		assert.Equal(t, "Bearer "+testAPIKey, got.Get("Authorization"))
		assert.Equal(t, testOrgID, got.Get("x-rapiddocx-org-id"))
		assert.NotEmpty(t, got.Get("X-Request-Id"))
	})

	t.Run("access token takes precedence in the Bearer header", func(t *testing.T) {
		var got http.Header
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got = r.Header.Clone()
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client, err := NewClient(ClientConfig{
			AccessToken: "opaque-access-token",
			OrgID:       testOrgID,
			BaseURL:     server.URL,
		})
		require.NoError(t, err)
		require.NoError(t, client.transport.get(context.Background(), "/probe", nil))

		assert.Equal(t, "Bearer opaque-access-token", got.Get("Authorization"))
	})

	t.Run("request ids are fresh per request", func(t *testing.T) {
		seen := map[string]bool{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen[r.Header.Get("X-Request-Id")] = true
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		for i := 0; i < 3; i++ {
			require.NoError(t, client.transport.get(context.Background(), "/probe", nil))
		}
		assert.Len(t, seen, 3)
	})
}

func TestTransport_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := client.transport.get(ctx, "/probe", &StatusResult{})

	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
