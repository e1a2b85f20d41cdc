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

func TestVariableValue_MarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		value VariableValue
		want  string
	}{
		{"text", TextValue("hello"), `"hello"`},
		{"number", NumberValue(42.5), `42.5`},
		{"bool", BoolValue(true), `true`},
		{"image url", ImageURLValue("https://x/logo.png"), `"https://x/logo.png"`},
		{
			"json tree keeps its structure",
			JSONValue(map[string]interface{}{
				"items": []interface{}{
					map[string]interface{}{"sku": "A", "qty": 2},
					map[string]interface{}{"sku": "B", "qty": 1},
				},
			}),
			`{"items":[{"sku":"A","qty":2},{"sku":"B","qty":1}]}`,
		},
		{"unset marshals as null", VariableValue{}, `null`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.value)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestTemplateVariable_Validate(t *testing.T) {
	t.Run("accepts a complete variable", func(t *testing.T) {
		assert.NoError(t, NewTextVariable("customer_name", "ACME").Validate())
	})

	t.Run("rejects a missing mime type", func(t *testing.T) {
		v := NewTextVariable("customer_name", "ACME")
		v.MimeType = ""
		assert.Error(t, v.Validate())
	})

	t.Run("rejects an unknown mime type", func(t *testing.T) {
		v := NewTextVariable("customer_name", "ACME")
		v.MimeType = "video"
		assert.Error(t, v.Validate())
	})

	t.Run("rejects an unset value", func(t *testing.T) {
		v := NewTextVariable("customer_name", "ACME")
		v.Value = VariableValue{}
		assert.Error(t, v.Validate())
	})
}

func TestVariableConstructors(t *testing.T) {
	t.Run("names get brace placeholders", func(t *testing.T) {
		v := NewTextVariable("customer_name", "ACME")
		assert.Equal(t, "{customer_name}", v.Placeholder)
		assert.Equal(t, "customer_name", v.Name)
		assert.Equal(t, MimeTypeText, v.MimeType)
	})

	t.Run("explicit placeholders are kept", func(t *testing.T) {
		v := NewTextVariable("{already}", "x")
		assert.Equal(t, "{already}", v.Placeholder)
	})

	t.Run("json variables enable the advanced engine", func(t *testing.T) {
		v := NewJSONVariable("order", map[string]interface{}{"total": 10})
		assert.Equal(t, MimeTypeJSON, v.MimeType)
		assert.True(t, v.UsesAdvancedTemplatingEngine)
	})
}

func TestGenerate(t *testing.T) {
	t.Run("posts the request and returns the deliverable", func(t *testing.T) {
		var raw map[string]json.RawMessage
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/v1/deliverable", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
			_, _ = w.Write([]byte(`{"data":{"success":true,"deliverableId":"del-1","downloadUrl":"https://files/del-1.docx"}}`))
		}))
		defer server.Close()

		req := &GenerateRequest{
			TemplateID: "tpl-1",
			Variables: []TemplateVariable{
				NewTextVariable("customer_name", "ACME"),
				NewJSONVariable("line_items", []interface{}{
					map[string]interface{}{"sku": "A", "qty": 2},
				}),
			},
			OutputFormat: "pdf",
		}

		client := newTestClient(t, server.URL)
		result, err := client.TurboTemplate.Generate(context.Background(), req)

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, "del-1", result.DeliverableID)

		assert.JSONEq(t, `"tpl-1"`, string(raw["templateId"]))
		assert.JSONEq(t, `"pdf"`, string(raw["outputFormat"]))

		// The JSON tree travels as structure, not as a flattened string.
		var variables []map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(raw["variables"], &variables))
		require.Len(t, variables, 2)
		assert.JSONEq(t, `[{"sku":"A","qty":2}]`, string(variables[1]["value"]))
		assert.JSONEq(t, `true`, string(variables[1]["usesAdvancedTemplatingEngine"]))
	})

	t.Run("rejects a missing template id", func(t *testing.T) {
		server := failServer(t)
		defer server.Close()

		client := newTestClient(t, server.URL)
		_, err := client.TurboTemplate.Generate(context.Background(), &GenerateRequest{
			Variables: []TemplateVariable{NewTextVariable("x", "y")},
		})

		var valErr *ClientValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Contains(t, valErr.Message, "templateId")
	})

	t.Run("rejects an empty variable list", func(t *testing.T) {
		server := failServer(t)
		defer server.Close()

		client := newTestClient(t, server.URL)
		_, err := client.TurboTemplate.Generate(context.Background(), &GenerateRequest{TemplateID: "tpl-1"})

		var valErr *ClientValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Contains(t, valErr.Message, "variable")
	})

	t.Run("rejects an invalid variable with its placeholder in the message", func(t *testing.T) {
		server := failServer(t)
		defer server.Close()

		bad := NewTextVariable("customer_name", "ACME")
		bad.MimeType = ""

		client := newTestClient(t, server.URL)
		_, err := client.TurboTemplate.Generate(context.Background(), &GenerateRequest{
			TemplateID: "tpl-1",
			Variables:  []TemplateVariable{bad},
		})

		var valErr *ClientValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Contains(t, valErr.Message, "{customer_name}")
	})
}

func TestDownloadDeliverable(t *testing.T) {
	t.Run("prefers the inline buffer", func(t *testing.T) {
		server := failServer(t)
		defer server.Close()

		client := newTestClient(t, server.URL)
		got, err := client.TurboTemplate.DownloadDeliverable(context.Background(), &GenerateResult{
			Buffer:      []byte("inline bytes"),
			DownloadURL: server.URL + "/never-fetched",
		})

		require.NoError(t, err)
		assert.Equal(t, []byte("inline bytes"), got)
	})

	t.Run("falls back to the download URL", func(t *testing.T) {
		content := []byte("%PDF-1.7 generated")
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("Authorization"))
			_, _ = w.Write(content)
		}))
		defer server.Close()

		client := newTestClient(t, server.URL)
		got, err := client.TurboTemplate.DownloadDeliverable(context.Background(), &GenerateResult{
			DownloadURL: server.URL + "/files/del-1.pdf",
		})

		require.NoError(t, err)
		assert.Equal(t, content, got)
	})

	t.Run("rejects a result with no artifact", func(t *testing.T) {
		client := newTestClient(t, "http://unused")
		_, err := client.TurboTemplate.DownloadDeliverable(context.Background(), &GenerateResult{})

		var valErr *ClientValidationError
		require.ErrorAs(t, err, &valErr)
	})
}
