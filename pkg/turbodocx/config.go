package turbodocx

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hashicorp/go-hclog"
)

// DefaultBaseURL is the production API host.
const DefaultBaseURL = "https://api.turbodocx.com"

// DefaultTimeout applies to every HTTP call unless overridden at
// construction. There is no per-operation override.
const DefaultTimeout = 30 * time.Second

// Environment variables consulted per-field when the corresponding
// ClientConfig field is empty. Explicit values always win.
const (
	EnvAPIKey        = "TURBODOCX_API_KEY"
	EnvAccessToken   = "TURBODOCX_ACCESS_TOKEN"
	EnvOrgID         = "TURBODOCX_ORG_ID"
	EnvSenderEmail   = "TURBODOCX_SENDER_EMAIL"
	EnvSenderName    = "TURBODOCX_SENDER_NAME"
	EnvBaseURL       = "TURBODOCX_BASE_URL"
	EnvPartnerAPIKey = "TURBODOCX_PARTNER_API_KEY"
	EnvPartnerID     = "TURBODOCX_PARTNER_ID"
)

// ClientConfig holds the configuration for a Client. It is immutable
// after construction; there is no process-wide configuration state.
type ClientConfig struct {
	// APIKey authenticates organization-scoped calls. Exactly one of
	// APIKey or AccessToken must be set.
	APIKey string

	// AccessToken is an OAuth2 access token, used instead of APIKey.
	AccessToken string

	// OrgID is the organization id, sent in the x-rapiddocx-org-id
	// header. Required.
	OrgID string

	// SenderEmail is the default sender identity for signature
	// operations. Required only when a signature call does not supply
	// its own sender email.
	SenderEmail string

	// SenderName is the optional default sender display name.
	SenderName string

	// BaseURL overrides the API host (default DefaultBaseURL).
	BaseURL string

	// Timeout applies per HTTP call (default DefaultTimeout).
	Timeout time.Duration

	// HTTPClient overrides the underlying HTTP client. The Timeout
	// field is ignored when this is set.
	HTTPClient *http.Client

	// Logger receives opt-in debug records of request method, path and
	// status. Defaults to a no-op logger; failures are never logged.
	Logger hclog.Logger
}

// orEnv returns value, falling back to the environment variable when
// value is empty. Explicit configuration always wins over environment.
func orEnv(value, key string) string {
	if value != "" {
		return value
	}
	return os.Getenv(key)
}

// withEnvFallback resolves each empty field from its environment
// variable. Precedence is explicit > environment, per field.
func (c ClientConfig) withEnvFallback() ClientConfig {
	c.APIKey = orEnv(c.APIKey, EnvAPIKey)
	c.AccessToken = orEnv(c.AccessToken, EnvAccessToken)
	c.OrgID = orEnv(c.OrgID, EnvOrgID)
	c.SenderEmail = orEnv(c.SenderEmail, EnvSenderEmail)
	c.SenderName = orEnv(c.SenderName, EnvSenderName)
	c.BaseURL = orEnv(c.BaseURL, EnvBaseURL)
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Logger == nil {
		c.Logger = hclog.NewNullLogger()
	}
	return c
}

// validate enforces the mandatory-field rules eagerly so that a
// misconfigured client fails at construction, not on a later call.
func (c ClientConfig) validate() error {
	if c.APIKey != "" && c.AccessToken != "" {
		return clientValidationErrorf("configure either APIKey or AccessToken, not both")
	}
	if c.APIKey == "" && c.AccessToken == "" {
		return &AuthenticationError{APIError: APIError{
			Message:    "missing credentials: set APIKey or AccessToken (or " + EnvAPIKey + " / " + EnvAccessToken + ")",
			StatusCode: http.StatusUnauthorized,
		}}
	}
	if c.OrgID == "" {
		return clientValidationErrorf("OrgID is required: set it in ClientConfig or via %s", EnvOrgID)
	}
	if err := checkTokenExpiry(c.AccessToken); err != nil {
		return err
	}
	return nil
}

// checkTokenExpiry rejects an access token that is a JWT with an exp
// claim in the past. Opaque (non-JWT) tokens pass through untouched;
// the server remains the authority on their validity.
func checkTokenExpiry(token string) error {
	if token == "" || strings.Count(token, ".") != 2 {
		return nil
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil
	}
	if exp.Before(time.Now()) {
		return &AuthenticationError{APIError: APIError{
			Message:    "access token expired at " + exp.UTC().Format(time.RFC3339),
			StatusCode: http.StatusUnauthorized,
		}}
	}
	return nil
}

// Client is the TurboDocx API client for organization-scoped
// operations. It is safe for concurrent use: configuration is immutable
// and no response state is cached across calls.
type Client struct {
	// TurboSign provides the digital signature workflow.
	TurboSign *TurboSignClient

	// TurboTemplate provides document generation from templates.
	TurboTemplate *TurboTemplateClient

	transport *httpTransport
}

// NewClient creates a client from the given configuration. Empty fields
// fall back to their TURBODOCX_* environment variables.
func NewClient(config ClientConfig) (*Client, error) {
	config = config.withEnvFallback()
	if err := config.validate(); err != nil {
		return nil, err
	}

	t := newTransport(config, true)
	return &Client{
		TurboSign:     &TurboSignClient{transport: t, senderEmail: config.SenderEmail, senderName: config.SenderName},
		TurboTemplate: &TurboTemplateClient{transport: t},
		transport:     t,
	}, nil
}

// NewClientFromEnv creates a client configured entirely from
// environment variables.
func NewClientFromEnv() (*Client, error) {
	return NewClient(ClientConfig{})
}
