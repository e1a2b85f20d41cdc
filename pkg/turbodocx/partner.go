package turbodocx

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

// PartnerKeyPrefix is the literal prefix every partner API key carries.
const PartnerKeyPrefix = "TDXP-"

// PartnerConfig holds the configuration for a PartnerClient.
type PartnerConfig struct {
	// PartnerAPIKey must start with PartnerKeyPrefix. Falls back to
	// TURBODOCX_PARTNER_API_KEY.
	PartnerAPIKey string

	// PartnerID is the partner account UUID, part of every request
	// path. Falls back to TURBODOCX_PARTNER_ID.
	PartnerID string

	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     hclog.Logger
}

// PartnerClient provides partner account management: organizations,
// their users and API keys, partner-level API keys, portal users and
// audit logs. Partner endpoints use Bearer-token auth exclusively and
// return raw success/data/message envelopes (no smart unwrapping).
type PartnerClient struct {
	transport *httpTransport
	partnerID string
}

// NewPartnerClient creates a partner client. Missing fields fall back
// to their environment variables; credential problems fail here, before
// any network call.
func NewPartnerClient(config PartnerConfig) (*PartnerClient, error) {
	config.PartnerAPIKey = orEnv(config.PartnerAPIKey, EnvPartnerAPIKey)
	config.PartnerID = orEnv(config.PartnerID, EnvPartnerID)
	config.BaseURL = orEnv(config.BaseURL, EnvBaseURL)
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}
	if config.Logger == nil {
		config.Logger = hclog.NewNullLogger()
	}

	if config.PartnerAPIKey == "" {
		return nil, &AuthenticationError{APIError: APIError{
			Message:    "partner API key is required: set PartnerAPIKey or " + EnvPartnerAPIKey,
			StatusCode: http.StatusUnauthorized,
		}}
	}
	if !strings.HasPrefix(config.PartnerAPIKey, PartnerKeyPrefix) {
		return nil, &AuthenticationError{APIError: APIError{
			Message:    "partner API key must start with " + PartnerKeyPrefix,
			StatusCode: http.StatusUnauthorized,
		}}
	}
	if config.PartnerID == "" {
		return nil, &AuthenticationError{APIError: APIError{
			Message:    "partner ID is required: set PartnerID or " + EnvPartnerID,
			StatusCode: http.StatusUnauthorized,
		}}
	}

	t := newTransport(ClientConfig{
		APIKey:     config.PartnerAPIKey,
		BaseURL:    config.BaseURL,
		Timeout:    config.Timeout,
		HTTPClient: config.HTTPClient,
		Logger:     config.Logger,
	}, false)

	return &PartnerClient{transport: t, partnerID: config.PartnerID}, nil
}

func (c *PartnerClient) basePath() string {
	return "/partner/" + c.partnerID
}

func buildQuery(q url.Values) string {
	encoded := q.Encode()
	if encoded == "" {
		return ""
	}
	return "?" + encoded
}

func (o *ListOptions) apply(q url.Values) {
	if o == nil {
		return
	}
	if o.Limit != nil {
		q.Set("limit", strconv.Itoa(*o.Limit))
	}
	if o.Offset != nil {
		q.Set("offset", strconv.Itoa(*o.Offset))
	}
	if o.Search != "" {
		q.Set("search", o.Search)
	}
}

// --- Organizations ---

// CreateOrganization creates an organization under the partner account.
func (c *PartnerClient) CreateOrganization(ctx context.Context, req *CreateOrganizationRequest) (*Envelope[Organization], error) {
	if req == nil || req.Name == "" {
		return nil, clientValidationErrorf("organization name is required")
	}
	var result Envelope[Organization]
	if err := c.transport.post(ctx, c.basePath()+"/organization", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ListOrganizations lists organizations with optional pagination and
// search.
func (c *PartnerClient) ListOrganizations(ctx context.Context, opts *ListOptions) (*Envelope[Page[Organization]], error) {
	q := url.Values{}
	opts.apply(q)
	var result Envelope[Page[Organization]]
	if err := c.transport.get(ctx, c.basePath()+"/organizations"+buildQuery(q), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetOrganizationDetails returns an organization with its features and
// usage tracking.
func (c *PartnerClient) GetOrganizationDetails(ctx context.Context, organizationID string) (*Envelope[OrganizationDetail], error) {
	if organizationID == "" {
		return nil, clientValidationErrorf("organizationID is required")
	}
	var result Envelope[OrganizationDetail]
	if err := c.transport.get(ctx, c.basePath()+"/organizations/"+organizationID, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateOrganizationInfo renames an organization.
func (c *PartnerClient) UpdateOrganizationInfo(ctx context.Context, organizationID string, req *UpdateOrganizationRequest) (*Envelope[Organization], error) {
	if organizationID == "" {
		return nil, clientValidationErrorf("organizationID is required")
	}
	var result Envelope[Organization]
	if err := c.transport.patch(ctx, c.basePath()+"/organizations/"+organizationID, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DeleteOrganization soft-deletes an organization.
func (c *PartnerClient) DeleteOrganization(ctx context.Context, organizationID string) (*SuccessResult, error) {
	if organizationID == "" {
		return nil, clientValidationErrorf("organizationID is required")
	}
	var result SuccessResult
	if err := c.transport.delete(ctx, c.basePath()+"/organizations/"+organizationID, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateOrganizationEntitlements updates an organization's feature
// limits and capabilities.
func (c *PartnerClient) UpdateOrganizationEntitlements(ctx context.Context, organizationID string, req *UpdateEntitlementsRequest) (*Envelope[Entitlements], error) {
	if organizationID == "" {
		return nil, clientValidationErrorf("organizationID is required")
	}
	var result Envelope[Entitlements]
	if err := c.transport.patch(ctx, c.basePath()+"/organizations/"+organizationID+"/entitlements", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// --- Organization users ---

// ListOrganizationUsers lists the members of an organization.
func (c *PartnerClient) ListOrganizationUsers(ctx context.Context, organizationID string, opts *ListOptions) (*Envelope[Page[OrganizationUser]], error) {
	if organizationID == "" {
		return nil, clientValidationErrorf("organizationID is required")
	}
	q := url.Values{}
	opts.apply(q)
	var result Envelope[Page[OrganizationUser]]
	if err := c.transport.get(ctx, c.basePath()+"/organizations/"+organizationID+"/users"+buildQuery(q), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AddUserToOrganization adds a user to an organization with a role.
func (c *PartnerClient) AddUserToOrganization(ctx context.Context, organizationID string, req *AddOrgUserRequest) (*Envelope[OrganizationUser], error) {
	if organizationID == "" {
		return nil, clientValidationErrorf("organizationID is required")
	}
	var result Envelope[OrganizationUser]
	if err := c.transport.post(ctx, c.basePath()+"/organizations/"+organizationID+"/users", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateOrganizationUserRole changes a user's role within an
// organization.
func (c *PartnerClient) UpdateOrganizationUserRole(ctx context.Context, organizationID, userID string, req *UpdateOrgUserRequest) (*Envelope[OrganizationUser], error) {
	if organizationID == "" || userID == "" {
		return nil, clientValidationErrorf("organizationID and userID are required")
	}
	var result Envelope[OrganizationUser]
	if err := c.transport.patch(ctx, c.basePath()+"/organizations/"+organizationID+"/users/"+userID, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RemoveUserFromOrganization removes a user from an organization.
func (c *PartnerClient) RemoveUserFromOrganization(ctx context.Context, organizationID, userID string) (*SuccessResult, error) {
	if organizationID == "" || userID == "" {
		return nil, clientValidationErrorf("organizationID and userID are required")
	}
	var result SuccessResult
	if err := c.transport.delete(ctx, c.basePath()+"/organizations/"+organizationID+"/users/"+userID, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ResendOrganizationInvitation resends the invitation email to a
// pending organization user.
func (c *PartnerClient) ResendOrganizationInvitation(ctx context.Context, organizationID, userID string) (*SuccessResult, error) {
	if organizationID == "" || userID == "" {
		return nil, clientValidationErrorf("organizationID and userID are required")
	}
	var result SuccessResult
	if err := c.transport.post(ctx, c.basePath()+"/organizations/"+organizationID+"/users/"+userID+"/resend-invitation", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// --- Organization API keys ---

// ListOrganizationAPIKeys lists an organization's API keys.
func (c *PartnerClient) ListOrganizationAPIKeys(ctx context.Context, organizationID string, opts *ListOptions) (*Envelope[Page[OrgAPIKey]], error) {
	if organizationID == "" {
		return nil, clientValidationErrorf("organizationID is required")
	}
	q := url.Values{}
	opts.apply(q)
	var result Envelope[Page[OrgAPIKey]]
	if err := c.transport.get(ctx, c.basePath()+"/organizations/"+organizationID+"/apikeys"+buildQuery(q), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateOrganizationAPIKey creates an API key for an organization. The
// key value is only returned once, in this response.
func (c *PartnerClient) CreateOrganizationAPIKey(ctx context.Context, organizationID string, req *CreateOrgAPIKeyRequest) (*Envelope[OrgAPIKey], error) {
	if organizationID == "" {
		return nil, clientValidationErrorf("organizationID is required")
	}
	var result Envelope[OrgAPIKey]
	if err := c.transport.post(ctx, c.basePath()+"/organizations/"+organizationID+"/apikeys", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdateOrganizationAPIKey updates an organization API key.
func (c *PartnerClient) UpdateOrganizationAPIKey(ctx context.Context, organizationID, apiKeyID string, req *UpdateOrgAPIKeyRequest) (*Envelope[OrgAPIKey], error) {
	if organizationID == "" || apiKeyID == "" {
		return nil, clientValidationErrorf("organizationID and apiKeyID are required")
	}
	var result Envelope[OrgAPIKey]
	if err := c.transport.patch(ctx, c.basePath()+"/organizations/"+organizationID+"/apikeys/"+apiKeyID, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RevokeOrganizationAPIKey revokes an organization API key.
func (c *PartnerClient) RevokeOrganizationAPIKey(ctx context.Context, organizationID, apiKeyID string) (*SuccessResult, error) {
	if organizationID == "" || apiKeyID == "" {
		return nil, clientValidationErrorf("organizationID and apiKeyID are required")
	}
	var result SuccessResult
	if err := c.transport.delete(ctx, c.basePath()+"/organizations/"+organizationID+"/apikeys/"+apiKeyID, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// --- Partner API keys ---

// ListPartnerAPIKeys lists the partner-level API keys.
func (c *PartnerClient) ListPartnerAPIKeys(ctx context.Context, opts *ListOptions) (*Envelope[Page[PartnerAPIKey]], error) {
	q := url.Values{}
	opts.apply(q)
	var result Envelope[Page[PartnerAPIKey]]
	if err := c.transport.get(ctx, c.basePath()+"/api-keys"+buildQuery(q), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreatePartnerAPIKey creates a partner API key with specific scopes.
// The key value is only returned once, in this response.
func (c *PartnerClient) CreatePartnerAPIKey(ctx context.Context, req *CreatePartnerAPIKeyRequest) (*Envelope[PartnerAPIKey], error) {
	if req == nil || req.Name == "" {
		return nil, clientValidationErrorf("API key name is required")
	}
	if len(req.Scopes) == 0 {
		return nil, clientValidationErrorf("at least one scope is required")
	}
	var result Envelope[PartnerAPIKey]
	if err := c.transport.post(ctx, c.basePath()+"/api-keys", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdatePartnerAPIKey updates a partner API key.
func (c *PartnerClient) UpdatePartnerAPIKey(ctx context.Context, keyID string, req *UpdatePartnerAPIKeyRequest) (*Envelope[PartnerAPIKey], error) {
	if keyID == "" {
		return nil, clientValidationErrorf("keyID is required")
	}
	var result Envelope[PartnerAPIKey]
	if err := c.transport.patch(ctx, c.basePath()+"/api-keys/"+keyID, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RevokePartnerAPIKey revokes a partner API key.
func (c *PartnerClient) RevokePartnerAPIKey(ctx context.Context, keyID string) (*SuccessResult, error) {
	if keyID == "" {
		return nil, clientValidationErrorf("keyID is required")
	}
	var result SuccessResult
	if err := c.transport.delete(ctx, c.basePath()+"/api-keys/"+keyID, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// --- Partner portal users ---

// ListPartnerUsers lists the partner portal users.
func (c *PartnerClient) ListPartnerUsers(ctx context.Context, opts *ListOptions) (*Envelope[Page[PartnerUser]], error) {
	q := url.Values{}
	opts.apply(q)
	var result Envelope[Page[PartnerUser]]
	if err := c.transport.get(ctx, c.basePath()+"/users"+buildQuery(q), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// AddPartnerUser adds a user to the partner portal with permissions.
func (c *PartnerClient) AddPartnerUser(ctx context.Context, req *AddPartnerUserRequest) (*Envelope[PartnerUser], error) {
	if req == nil || req.Email == "" {
		return nil, clientValidationErrorf("user email is required")
	}
	var result Envelope[PartnerUser]
	if err := c.transport.post(ctx, c.basePath()+"/users", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// UpdatePartnerUserPermissions changes a partner user's role and
// permissions.
func (c *PartnerClient) UpdatePartnerUserPermissions(ctx context.Context, userID string, req *UpdatePartnerUserRequest) (*Envelope[PartnerUserUpdate], error) {
	if userID == "" {
		return nil, clientValidationErrorf("userID is required")
	}
	var result Envelope[PartnerUserUpdate]
	if err := c.transport.patch(ctx, c.basePath()+"/users/"+userID, req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// RemovePartnerUser removes a user from the partner portal.
func (c *PartnerClient) RemovePartnerUser(ctx context.Context, userID string) (*SuccessResult, error) {
	if userID == "" {
		return nil, clientValidationErrorf("userID is required")
	}
	var result SuccessResult
	if err := c.transport.delete(ctx, c.basePath()+"/users/"+userID, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ResendPartnerInvitation resends the invitation email to a pending
// partner portal user.
func (c *PartnerClient) ResendPartnerInvitation(ctx context.Context, userID string) (*SuccessResult, error) {
	if userID == "" {
		return nil, clientValidationErrorf("userID is required")
	}
	var result SuccessResult
	if err := c.transport.post(ctx, c.basePath()+"/users/"+userID+"/resend-invitation", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// --- Audit logs ---

// GetAuditLogs lists partner activity records with optional filters.
func (c *PartnerClient) GetAuditLogs(ctx context.Context, filter *AuditLogFilter) (*Envelope[Page[AuditLogEntry]], error) {
	q := url.Values{}
	if filter != nil {
		filter.ListOptions.apply(q)
		if filter.Action != "" {
			q.Set("action", filter.Action)
		}
		if filter.ResourceType != "" {
			q.Set("resourceType", filter.ResourceType)
		}
		if filter.ResourceID != "" {
			q.Set("resourceId", filter.ResourceID)
		}
		if filter.Success != nil {
			q.Set("success", strconv.FormatBool(*filter.Success))
		}
		if filter.StartDate != "" {
			q.Set("startDate", filter.StartDate)
		}
		if filter.EndDate != "" {
			q.Set("endDate", filter.EndDate)
		}
	}

	var result Envelope[Page[AuditLogEntry]]
	if err := c.transport.get(ctx, c.basePath()+"/audit-logs"+buildQuery(q), &result); err != nil {
		return nil, err
	}
	return &result, nil
}
