package turbodocx

// Partner API key scopes.
const (
	ScopeOrgCreate            = "org:create"
	ScopeOrgRead              = "org:read"
	ScopeOrgUpdate            = "org:update"
	ScopeOrgDelete            = "org:delete"
	ScopeEntitlementsUpdate   = "entitlements:update"
	ScopeOrgUsersCreate       = "org-users:create"
	ScopeOrgUsersRead         = "org-users:read"
	ScopeOrgUsersUpdate       = "org-users:update"
	ScopeOrgUsersDelete       = "org-users:delete"
	ScopePartnerUsersCreate   = "partner-users:create"
	ScopePartnerUsersRead     = "partner-users:read"
	ScopePartnerUsersUpdate   = "partner-users:update"
	ScopePartnerUsersDelete   = "partner-users:delete"
	ScopeOrgAPIKeysCreate     = "org-apikeys:create"
	ScopeOrgAPIKeysRead       = "org-apikeys:read"
	ScopeOrgAPIKeysUpdate     = "org-apikeys:update"
	ScopeOrgAPIKeysDelete     = "org-apikeys:delete"
	ScopePartnerAPIKeysCreate = "partner-apikeys:create"
	ScopePartnerAPIKeysRead   = "partner-apikeys:read"
	ScopePartnerAPIKeysUpdate = "partner-apikeys:update"
	ScopePartnerAPIKeysDelete = "partner-apikeys:delete"
	ScopeAuditRead            = "audit:read"
)

// Organization is a customer organization under a partner account.
type Organization struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	PartnerID   string                 `json:"partnerId,omitempty"`
	CreatedOn   string                 `json:"createdOn,omitempty"`
	UpdatedOn   string                 `json:"updatedOn,omitempty"`
	CreatedBy   string                 `json:"createdBy,omitempty"`
	IsActive    bool                   `json:"isActive,omitempty"`
	UserCount   int                    `json:"userCount,omitempty"`
	StorageUsed int64                  `json:"storageUsed,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// OrganizationUser is a member of an organization.
type OrganizationUser struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	SsoID     string `json:"ssoId,omitempty"`
	Role      string `json:"role,omitempty"`
	CreatedOn string `json:"createdOn,omitempty"`
	IsActive  bool   `json:"isActive,omitempty"`
}

// OrgAPIKey is an organization-scoped API key. The Key value is only
// present in the creation response.
type OrgAPIKey struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Key        string   `json:"key,omitempty"`
	Role       string   `json:"role,omitempty"`
	Scopes     []string `json:"scopes,omitempty"`
	CreatedOn  string   `json:"createdOn,omitempty"`
	CreatedBy  string   `json:"createdBy,omitempty"`
	LastUsedOn string   `json:"lastUsedOn,omitempty"`
	LastUsedIP string   `json:"lastUsedIP,omitempty"`
	UpdatedOn  string   `json:"updatedOn,omitempty"`
}

// PartnerAPIKey is a partner-level API key. The Key value is only
// present in the creation response.
type PartnerAPIKey struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Key         string   `json:"key,omitempty"`
	Description string   `json:"description,omitempty"`
	Scopes      []string `json:"scopes,omitempty"`
	CreatedOn   string   `json:"createdOn,omitempty"`
	CreatedBy   string   `json:"createdBy,omitempty"`
	LastUsedOn  string   `json:"lastUsedOn,omitempty"`
	LastUsedIP  string   `json:"lastUsedIP,omitempty"`
	UpdatedOn   string   `json:"updatedOn,omitempty"`
}

// PartnerPermissions control what a partner portal user may manage.
type PartnerPermissions struct {
	CanManageOrgs           bool `json:"canManageOrgs"`
	CanManageOrgUsers       bool `json:"canManageOrgUsers"`
	CanManagePartnerUsers   bool `json:"canManagePartnerUsers"`
	CanManageOrgAPIKeys     bool `json:"canManageOrgAPIKeys"`
	CanManagePartnerAPIKeys bool `json:"canManagePartnerAPIKeys"`
	CanUpdateEntitlements   bool `json:"canUpdateEntitlements"`
	CanViewAuditLogs        bool `json:"canViewAuditLogs"`
}

// PartnerUser is a partner portal user.
type PartnerUser struct {
	ID             string              `json:"id"`
	Email          string              `json:"email"`
	FirstName      string              `json:"firstName,omitempty"`
	LastName       string              `json:"lastName,omitempty"`
	SsoID          string              `json:"ssoId,omitempty"`
	Role           string              `json:"role,omitempty"`
	Permissions    *PartnerPermissions `json:"permissions,omitempty"`
	IsPrimaryAdmin bool                `json:"isPrimaryAdmin,omitempty"`
	CreatedOn      string              `json:"createdOn,omitempty"`
	IsActive       bool                `json:"isActive,omitempty"`
}

// Features are settable entitlement limits and capability flags for an
// organization. Pointer fields distinguish "leave unchanged" from an
// explicit value in PATCH payloads.
type Features struct {
	OrgID                    string `json:"orgId,omitempty"`
	MaxUsers                 *int   `json:"maxUsers,omitempty"`
	MaxProjectspaces         *int   `json:"maxProjectspaces,omitempty"`
	MaxTemplates             *int   `json:"maxTemplates,omitempty"`
	MaxStorage               *int64 `json:"maxStorage,omitempty"`
	MaxGeneratedDeliverables *int   `json:"maxGeneratedDeliverables,omitempty"`
	MaxSignatures            *int   `json:"maxSignatures,omitempty"`
	MaxAICredits             *int   `json:"maxAICredits,omitempty"`
	RdWatermark              *bool  `json:"rdWatermark,omitempty"`
	HasFileDownload          *bool  `json:"hasFileDownload,omitempty"`
	HasAdvancedDateFormats   *bool  `json:"hasAdvancedDateFormats,omitempty"`
	HasGDrive                *bool  `json:"hasGDrive,omitempty"`
	HasSharepoint            *bool  `json:"hasSharepoint,omitempty"`
	HasTDAI                  *bool  `json:"hasTDAI,omitempty"`
	HasPptx                  *bool  `json:"hasPptx,omitempty"`
	HasSalesforce            *bool  `json:"hasSalesforce,omitempty"`
	HasVariableStack         *bool  `json:"hasVariableStack,omitempty"`
	HasSubvariables          *bool  `json:"hasSubvariables,omitempty"`
	HasZapier                *bool  `json:"hasZapier,omitempty"`
	HasBetaFeatures          *bool  `json:"hasBetaFeatures,omitempty"`
	EnableBulkSending        *bool  `json:"enableBulkSending,omitempty"`
	CreatedBy                string `json:"createdBy,omitempty"`
}

// Tracking carries read-only usage counters for an organization.
type Tracking struct {
	NumUsers                 int   `json:"numUsers,omitempty"`
	NumProjectspaces         int   `json:"numProjectspaces,omitempty"`
	NumTemplates             int   `json:"numTemplates,omitempty"`
	StorageUsed              int64 `json:"storageUsed,omitempty"`
	NumGeneratedDeliverables int   `json:"numGeneratedDeliverables,omitempty"`
	NumSignaturesUsed        int   `json:"numSignaturesUsed,omitempty"`
	CurrentAICredits         int   `json:"currentAICredits,omitempty"`
}

// AuditLogEntry is one record of partner-level activity.
type AuditLogEntry struct {
	ID              string                 `json:"id"`
	PartnerID       string                 `json:"partnerId"`
	PartnerAPIKeyID string                 `json:"partnerAPIKeyId,omitempty"`
	Action          string                 `json:"action,omitempty"`
	ResourceType    string                 `json:"resourceType,omitempty"`
	ResourceID      string                 `json:"resourceId,omitempty"`
	Details         map[string]interface{} `json:"details,omitempty"`
	Success         bool                   `json:"success,omitempty"`
	IPAddress       string                 `json:"ipAddress,omitempty"`
	UserAgent       string                 `json:"userAgent,omitempty"`
	CreatedOn       string                 `json:"createdOn,omitempty"`
}

// ListOptions are the shared pagination and search filters for partner
// list endpoints. Nil pointer fields are omitted from the query.
type ListOptions struct {
	Limit  *int
	Offset *int
	Search string
}

// AuditLogFilter narrows an audit log listing. Booleans serialize
// lowercase in the query string.
type AuditLogFilter struct {
	ListOptions
	Action       string
	ResourceType string
	ResourceID   string
	Success      *bool
	StartDate    string
	EndDate      string
}

// Page is the standard partner list payload.
type Page[T any] struct {
	Results      []T `json:"results"`
	TotalRecords int `json:"totalRecords"`
	Limit        int `json:"limit"`
	Offset       int `json:"offset"`
}

// Envelope is the raw partner response wrapper. Partner endpoints are
// not smart-unwrapped; the success/data/message siblings are surfaced
// as the server sent them.
type Envelope[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Message string `json:"message,omitempty"`
}

// SuccessResult is a partner response with no data payload.
type SuccessResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// OrganizationDetail is an organization with its entitlements attached.
type OrganizationDetail struct {
	Organization
	Features *Features `json:"features,omitempty"`
	Tracking *Tracking `json:"tracking,omitempty"`
}

// Entitlements pairs the settable features with the usage counters.
type Entitlements struct {
	Features *Features `json:"features,omitempty"`
	Tracking *Tracking `json:"tracking,omitempty"`
}

// CreateOrganizationRequest creates a new organization.
type CreateOrganizationRequest struct {
	Name     string                 `json:"name"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
	Features *Features              `json:"features,omitempty"`
}

// UpdateOrganizationRequest renames an organization.
type UpdateOrganizationRequest struct {
	Name string `json:"name"`
}

// UpdateEntitlementsRequest updates an organization's limits.
type UpdateEntitlementsRequest struct {
	Features *Features `json:"features,omitempty"`
	Tracking *Tracking `json:"tracking,omitempty"`
}

// AddOrgUserRequest adds a user to an organization.
type AddOrgUserRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// UpdateOrgUserRequest changes an organization user's role.
type UpdateOrgUserRequest struct {
	Role string `json:"role"`
}

// CreateOrgAPIKeyRequest creates an organization API key.
type CreateOrgAPIKeyRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

// UpdateOrgAPIKeyRequest updates an organization API key.
type UpdateOrgAPIKeyRequest struct {
	Name string `json:"name,omitempty"`
	Role string `json:"role,omitempty"`
}

// CreatePartnerAPIKeyRequest creates a partner API key with scopes.
type CreatePartnerAPIKeyRequest struct {
	Name        string   `json:"name"`
	Scopes      []string `json:"scopes"`
	Description string   `json:"description,omitempty"`
}

// UpdatePartnerAPIKeyRequest updates a partner API key.
type UpdatePartnerAPIKeyRequest struct {
	Name        string   `json:"name,omitempty"`
	Description string   `json:"description,omitempty"`
	Scopes      []string `json:"scopes,omitempty"`
}

// AddPartnerUserRequest adds a user to the partner portal.
type AddPartnerUserRequest struct {
	Email       string             `json:"email"`
	Role        string             `json:"role"`
	Permissions PartnerPermissions `json:"permissions"`
}

// UpdatePartnerUserRequest changes a partner user's role/permissions.
type UpdatePartnerUserRequest struct {
	Role        string              `json:"role,omitempty"`
	Permissions *PartnerPermissions `json:"permissions,omitempty"`
}

// PartnerUserUpdate is the payload returned after a partner user
// permissions update.
type PartnerUserUpdate struct {
	UserID      string             `json:"userId"`
	Role        string             `json:"role"`
	Permissions PartnerPermissions `json:"permissions"`
}

// IntPtr returns a pointer to v, for optional int fields.
func IntPtr(v int) *int { return &v }

// Int64Ptr returns a pointer to v, for optional int64 fields.
func Int64Ptr(v int64) *int64 { return &v }

// BoolPtr returns a pointer to v, for optional bool fields.
func BoolPtr(v bool) *bool { return &v }
