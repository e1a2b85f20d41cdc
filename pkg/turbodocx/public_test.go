package turbodocx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicClient(t *testing.T) {
	t.Run("requires document id and recipient token", func(t *testing.T) {
		client := NewPublicClient("http://unused")

		_, err := client.GetFields(context.Background(), "doc-1", "")
		var valErr *ClientValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Contains(t, valErr.Message, "recipientToken")

		_, err = client.GetFields(context.Background(), "", "tok")
		require.ErrorAs(t, err, &valErr)
	})

	t.Run("sends the token as a query parameter without credentials", func(t *testing.T) {
		t.Setenv(EnvAPIKey, "ambient-key-must-not-leak")
		t.Setenv(EnvOrgID, "ambient-org")

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/turbosign/public/documents/doc-1/fields", r.URL.Path)
			assert.Equal(t, "tok/with+chars", r.URL.Query().Get("recipientToken"))
			assert.Empty(t, r.Header.Get("Authorization"))
			assert.Empty(t, r.Header.Get("x-rapiddocx-org-id"))

			_, _ = w.Write([]byte(`{"data":[{"id":"f-1","type":"signature","required":true}]}`))
		}))
		defer server.Close()

		client := NewPublicClient(server.URL)
		fields, err := client.GetFields(context.Background(), "doc-1", "tok/with+chars")

		require.NoError(t, err)
		require.Len(t, fields, 1)
		assert.Equal(t, FieldTypeSignature, fields[0].Type)
		assert.True(t, fields[0].Required)
	})

	t.Run("fetches the document bytes raw", func(t *testing.T) {
		content := []byte("%PDF-1.7 to sign")
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/turbosign/public/documents/doc-1/file", r.URL.Path)
			_, _ = w.Write(content)
		}))
		defer server.Close()

		client := NewPublicClient(server.URL)
		got, err := client.GetFile(context.Background(), "doc-1", "tok")

		require.NoError(t, err)
		assert.Equal(t, content, got)
	})

	t.Run("records consent", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/turbosign/public/documents/doc-1/consent", r.URL.Path)
			_, _ = w.Write([]byte(`{"data":{"success":true}}`))
		}))
		defer server.Close()

		client := NewPublicClient(server.URL)
		result, err := client.RecordConsent(context.Background(), "doc-1", "tok")

		require.NoError(t, err)
		assert.True(t, result.Success)
	})

	t.Run("submits field values under a fields key", func(t *testing.T) {
		var raw map[string][]SignedFieldValue
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/turbosign/public/documents/doc-1/submit", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
			_, _ = w.Write([]byte(`{"data":{"success":true,"status":"completed"}}`))
		}))
		defer server.Close()

		client := NewPublicClient(server.URL)
		result, err := client.SubmitFields(context.Background(), "doc-1", "tok", []SignedFieldValue{
			{FieldID: "f-1", Value: "Jane Roe"},
		})

		require.NoError(t, err)
		assert.Equal(t, StatusCompleted, result.Status)
		require.Len(t, raw["fields"], 1)
		assert.Equal(t, "f-1", raw["fields"][0].FieldID)
	})

	t.Run("rejects an empty submission", func(t *testing.T) {
		client := NewPublicClient("http://unused")
		_, err := client.SubmitFields(context.Background(), "doc-1", "tok", nil)

		var valErr *ClientValidationError
		require.ErrorAs(t, err, &valErr)
	})

	t.Run("reports the signing status", func(t *testing.T) {
		server := jsonServer(http.StatusOK, `{"data":{"status":"under_review"}}`)
		defer server.Close()

		client := NewPublicClient(server.URL)
		result, err := client.GetSigningStatus(context.Background(), "doc-1", "tok")

		require.NoError(t, err)
		assert.Equal(t, StatusUnderReview, result.Status)
	})
}
