package turbodocx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

// httpTransport performs the HTTP round trips for one endpoint family.
// Every logical call is exactly one round trip; only presigned-URL
// downloads perform a second hop (see fetchURL).
type httpTransport struct {
	client      *http.Client
	baseURL     string
	apiKey      string
	accessToken string
	orgID       string
	unwrapData  bool
	log         hclog.Logger
}

func newTransport(config ClientConfig, unwrapData bool) *httpTransport {
	client := config.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: config.Timeout}
	}
	return &httpTransport{
		client:      client,
		baseURL:     strings.TrimSuffix(config.BaseURL, "/"),
		apiKey:      config.APIKey,
		accessToken: config.AccessToken,
		orgID:       config.OrgID,
		unwrapData:  unwrapData,
		log:         config.Logger,
	}
}

// setHeaders attaches exactly one Authorization header, the org id
// header when configured, and a fresh request id.
func (t *httpTransport) setHeaders(req *http.Request, contentType string) {
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if t.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+t.accessToken)
	} else if t.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+t.apiKey)
	}
	if t.orgID != "" {
		req.Header.Set("x-rapiddocx-org-id", t.orgID)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
}

func (t *httpTransport) get(ctx context.Context, path string, result interface{}) error {
	return t.doJSON(ctx, http.MethodGet, path, nil, result)
}

func (t *httpTransport) post(ctx context.Context, path string, payload, result interface{}) error {
	return t.doJSON(ctx, http.MethodPost, path, payload, result)
}

func (t *httpTransport) patch(ctx context.Context, path string, payload, result interface{}) error {
	return t.doJSON(ctx, http.MethodPatch, path, payload, result)
}

func (t *httpTransport) delete(ctx context.Context, path string, result interface{}) error {
	return t.doJSON(ctx, http.MethodDelete, path, nil, result)
}

func (t *httpTransport) doJSON(ctx context.Context, method, path string, payload, result interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return networkErrorf(err, "marshal request body: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, body)
	if err != nil {
		return networkErrorf(err, "create request: %v", err)
	}
	t.setHeaders(req, "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return networkErrorf(err, "request failed: %v", err)
	}
	return t.handle(method, path, resp, result)
}

// upload performs a multipart POST with the binary payload under the
// "file" part and all other parameters flattened to string form fields.
func (t *httpTransport) upload(ctx context.Context, path string, file []byte, fileName string, fields map[string]string, result interface{}) error {
	detected := detectFileType(file)
	if fileName == "" {
		fileName = "document." + detected.extension
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	// CreatePart rather than CreateFormFile so the part carries the
	// sniffed Content-Type instead of application/octet-stream.
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, fileName))
	h.Set("Content-Type", detected.mimeType)
	part, err := writer.CreatePart(h)
	if err != nil {
		return networkErrorf(err, "create multipart file part: %v", err)
	}
	if _, err := part.Write(file); err != nil {
		return networkErrorf(err, "write multipart file part: %v", err)
	}

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return networkErrorf(err, "write multipart field %s: %v", key, err)
		}
	}
	if err := writer.Close(); err != nil {
		return networkErrorf(err, "close multipart writer: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+path, &buf)
	if err != nil {
		return networkErrorf(err, "create request: %v", err)
	}
	t.setHeaders(req, writer.FormDataContentType())

	resp, err := t.client.Do(req)
	if err != nil {
		return networkErrorf(err, "request failed: %v", err)
	}
	return t.handle(http.MethodPost, path, resp, result)
}

// getRaw performs a GET and returns the raw body bytes, bypassing JSON
// decoding. Non-2xx statuses still map through the error taxonomy.
func (t *httpTransport) getRaw(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+path, nil)
	if err != nil {
		return nil, networkErrorf(err, "create request: %v", err)
	}
	t.setHeaders(req, "")

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, networkErrorf(err, "request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, networkErrorf(err, "read response body: %v", err)
	}
	t.log.Debug("request", "method", http.MethodGet, "path", path, "status", resp.StatusCode)

	if resp.StatusCode >= 400 {
		return nil, mapStatusError(resp.StatusCode, body)
	}
	return body, nil
}

// fetchURL performs the second hop of a presigned-URL download. The URL
// is outside the documented API, so any failure here is a NetworkError,
// never an API-taxonomy error, and no auth headers are sent.
func (t *httpTransport) fetchURL(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, networkErrorf(err, "create download request: %v", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, networkErrorf(err, "download failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, &NetworkError{
			Message:    "download failed: " + resp.Status,
			StatusCode: resp.StatusCode,
		}
	}
	return io.ReadAll(resp.Body)
}

func (t *httpTransport) handle(method, path string, resp *http.Response, result interface{}) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return networkErrorf(err, "read response body: %v", err)
	}
	t.log.Debug("request", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode >= 400 {
		return mapStatusError(resp.StatusCode, body)
	}
	if result == nil {
		return nil
	}
	return t.decodeBody(body, result)
}

// decodeBody applies the smart unwrap: a JSON object whose only key is
// "data" yields its inner value, anything else decodes unchanged. The
// rule only fires on that exact shape, so applying it to an already
// unwrapped value is a no-op.
func (t *httpTransport) decodeBody(body []byte, result interface{}) error {
	if t.unwrapData {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(body, &wrapper); err == nil {
			if data, ok := wrapper["data"]; ok && len(wrapper) == 1 {
				body = data
			}
		}
	}
	if err := json.Unmarshal(body, result); err != nil {
		return networkErrorf(err, "decode response: %v", err)
	}
	return nil
}
