package turbodocx

import (
	"context"
	"net/url"
)

// PublicField is a signable field as seen by a recipient.
type PublicField struct {
	ID             string    `json:"id"`
	Type           FieldType `json:"type"`
	Page           int       `json:"page,omitempty"`
	X              int       `json:"x,omitempty"`
	Y              int       `json:"y,omitempty"`
	Width          int       `json:"width,omitempty"`
	Height         int       `json:"height,omitempty"`
	Required       bool      `json:"required,omitempty"`
	DefaultValue   string    `json:"defaultValue,omitempty"`
	RecipientEmail string    `json:"recipientEmail,omitempty"`
}

// SignedFieldValue is a recipient's value for one field.
type SignedFieldValue struct {
	FieldID string `json:"fieldId"`
	Value   string `json:"value"`
}

// ConsentResult is returned by RecordConsent.
type ConsentResult struct {
	Success bool `json:"success"`
}

// SubmitResult is returned by SubmitFields.
type SubmitResult struct {
	Success bool   `json:"success"`
	Status  string `json:"status,omitempty"`
}

// PublicClient covers the recipient-facing signing endpoints. These
// authenticate with the recipient token issued in the signature email,
// passed as a query parameter, so the client needs no credentials.
type PublicClient struct {
	transport *httpTransport
}

// NewPublicClient creates a credential-free client for the public
// signing endpoints. An empty baseURL falls back to TURBODOCX_BASE_URL
// and then the production host.
func NewPublicClient(baseURL string) *PublicClient {
	config := ClientConfig{BaseURL: baseURL}.withEnvFallback()
	// Drop any credentials picked up from the environment; public
	// endpoints authenticate by recipient token only.
	config.APIKey = ""
	config.AccessToken = ""
	config.OrgID = ""
	return &PublicClient{transport: newTransport(config, true)}
}

func publicPath(documentID, suffix, recipientToken string) string {
	return "/turbosign/public/documents/" + documentID + suffix +
		"?recipientToken=" + url.QueryEscape(recipientToken)
}

func validatePublicArgs(documentID, recipientToken string) error {
	if documentID == "" {
		return clientValidationErrorf("documentID is required")
	}
	if recipientToken == "" {
		return clientValidationErrorf("recipientToken is required")
	}
	return nil
}

// GetFile fetches the document bytes the recipient is asked to sign.
func (c *PublicClient) GetFile(ctx context.Context, documentID, recipientToken string) ([]byte, error) {
	if err := validatePublicArgs(documentID, recipientToken); err != nil {
		return nil, err
	}
	return c.transport.getRaw(ctx, publicPath(documentID, "/file", recipientToken))
}

// GetFields lists the fields assigned to the recipient.
func (c *PublicClient) GetFields(ctx context.Context, documentID, recipientToken string) ([]PublicField, error) {
	if err := validatePublicArgs(documentID, recipientToken); err != nil {
		return nil, err
	}
	var fields []PublicField
	if err := c.transport.get(ctx, publicPath(documentID, "/fields", recipientToken), &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// RecordConsent records the recipient's consent to sign electronically.
// Consent must be recorded before fields can be submitted.
func (c *PublicClient) RecordConsent(ctx context.Context, documentID, recipientToken string) (*ConsentResult, error) {
	if err := validatePublicArgs(documentID, recipientToken); err != nil {
		return nil, err
	}
	var result ConsentResult
	if err := c.transport.post(ctx, publicPath(documentID, "/consent", recipientToken), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SubmitFields submits the recipient's signed field values.
func (c *PublicClient) SubmitFields(ctx context.Context, documentID, recipientToken string, values []SignedFieldValue) (*SubmitResult, error) {
	if err := validatePublicArgs(documentID, recipientToken); err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return nil, clientValidationErrorf("at least one field value is required")
	}

	var result SubmitResult
	err := c.transport.post(ctx, publicPath(documentID, "/submit", recipientToken), map[string][]SignedFieldValue{"fields": values}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetSigningStatus returns the document status visible to the
// recipient.
func (c *PublicClient) GetSigningStatus(ctx context.Context, documentID, recipientToken string) (*StatusResult, error) {
	if err := validatePublicArgs(documentID, recipientToken); err != nil {
		return nil, err
	}
	var result StatusResult
	if err := c.transport.get(ctx, publicPath(documentID, "/status", recipientToken), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
