package turbodocx

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// FieldType identifies the kind of signable element a Field places.
type FieldType string

const (
	FieldTypeSignature FieldType = "signature"
	FieldTypeInitial   FieldType = "initial"
	FieldTypeInitials  FieldType = "initials"
	FieldTypeDate      FieldType = "date"
	FieldTypeFullName  FieldType = "full_name"
	FieldTypeFirstName FieldType = "first_name"
	FieldTypeLastName  FieldType = "last_name"
	FieldTypeEmail     FieldType = "email"
	FieldTypeTitle     FieldType = "title"
	FieldTypeCompany   FieldType = "company"
	FieldTypeText      FieldType = "text"
	FieldTypeCheckbox  FieldType = "checkbox"
)

// AnchorPlacement controls where an anchor-based field lands relative
// to the matched text.
type AnchorPlacement string

const (
	PlacementReplace AnchorPlacement = "replace"
	PlacementBefore  AnchorPlacement = "before"
	PlacementAfter   AnchorPlacement = "after"
	PlacementAbove   AnchorPlacement = "above"
	PlacementBelow   AnchorPlacement = "below"
)

// Document status values reported by the server. The client observes
// these transitions but never drives or caches them.
const (
	StatusDraft         = "draft"
	StatusSetupComplete = "setup_complete"
	StatusReviewReady   = "review_ready"
	StatusUnderReview   = "under_review"
	StatusCompleted     = "completed"
	StatusVoided        = "voided"
)

// Recipient is a signing party. SigningOrder ranks the sequence in
// which recipients must sign and must be unique within a request.
type Recipient struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	SigningOrder int    `json:"signingOrder"`
}

// Validate reports whether the recipient is well formed.
func (r Recipient) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.SigningOrder, validation.Required, validation.Min(1)),
	)
}

// Size is a width/height pair in document units.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Offset is an x/y displacement in document units.
type Offset struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// FieldAnchor places a field by matching literal text in the document
// instead of fixed page coordinates.
type FieldAnchor struct {
	Anchor        string          `json:"anchor"`
	Placement     AnchorPlacement `json:"placement,omitempty"`
	Size          *Size           `json:"size,omitempty"`
	Offset        *Offset         `json:"offset,omitempty"`
	CaseSensitive bool            `json:"caseSensitive,omitempty"`
	UseRegex      bool            `json:"useRegex,omitempty"`
}

// Validate reports whether the anchor is well formed.
func (a FieldAnchor) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Anchor, validation.Required),
		validation.Field(&a.Placement, validation.In(
			PlacementReplace, PlacementBefore, PlacementAfter, PlacementAbove, PlacementBelow,
		)),
	)
}

// Field is a placement directive for a signable element. Exactly one
// placement style must be used: page coordinates or a text anchor.
type Field struct {
	Type FieldType `json:"type"`

	// Coordinate placement.
	Page   int `json:"page,omitempty"`
	X      int `json:"x,omitempty"`
	Y      int `json:"y,omitempty"`
	Width  int `json:"width,omitempty"`
	Height int `json:"height,omitempty"`

	// Anchor placement.
	Template *FieldAnchor `json:"template,omitempty"`

	// RecipientEmail must match a Recipient.Email in the same request.
	RecipientEmail string `json:"recipientEmail"`

	DefaultValue    string `json:"defaultValue,omitempty"`
	IsMultiline     bool   `json:"isMultiline,omitempty"`
	IsReadonly      bool   `json:"isReadonly,omitempty"`
	Required        bool   `json:"required,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
}

// Validate reports whether the field is well formed, including the
// one-placement-style rule.
func (f Field) Validate() error {
	if err := validation.ValidateStruct(&f,
		validation.Field(&f.Type, validation.Required, validation.In(
			FieldTypeSignature, FieldTypeInitial, FieldTypeInitials, FieldTypeDate,
			FieldTypeFullName, FieldTypeFirstName, FieldTypeLastName, FieldTypeEmail,
			FieldTypeTitle, FieldTypeCompany, FieldTypeText, FieldTypeCheckbox,
		)),
		validation.Field(&f.RecipientEmail, validation.Required, is.Email),
	); err != nil {
		return err
	}

	hasCoords := f.Page != 0 || f.X != 0 || f.Y != 0 || f.Width != 0 || f.Height != 0
	hasAnchor := f.Template != nil
	switch {
	case hasCoords && hasAnchor:
		return errors.New("field must use coordinate or anchor placement, not both")
	case !hasCoords && !hasAnchor:
		return errors.New("field must use coordinate or anchor placement")
	}
	if hasAnchor {
		return f.Template.Validate()
	}
	return nil
}

// SignatureRequest describes a document to prepare for review or
// signing. Exactly one document source must be supplied: inline File
// bytes, a remote FileLink, an existing DeliverableID, or a TemplateID.
type SignatureRequest struct {
	// File is the inline document content. FileName is optional; the
	// type is sniffed from the bytes when absent.
	File     []byte
	FileName string

	FileLink      string
	DeliverableID string
	TemplateID    string

	Recipients []Recipient
	Fields     []Field

	DocumentName        string
	DocumentDescription string

	// SenderEmail and SenderName override the client-level sender
	// identity for this request.
	SenderEmail string
	SenderName  string

	CCEmails []string
}

// Validate enforces the request invariants before any network call.
func (r *SignatureRequest) Validate() error {
	sources := 0
	if len(r.File) > 0 {
		sources++
	}
	for _, s := range []string{r.FileLink, r.DeliverableID, r.TemplateID} {
		if s != "" {
			sources++
		}
	}
	if sources == 0 {
		return errors.New("a document source is required: File, FileLink, DeliverableID or TemplateID")
	}
	if sources > 1 {
		return errors.New("supply exactly one document source: File, FileLink, DeliverableID or TemplateID")
	}

	if len(r.Recipients) == 0 {
		return errors.New("at least one recipient is required")
	}
	emails := make(map[string]bool, len(r.Recipients))
	orders := make(map[int]bool, len(r.Recipients))
	for _, rec := range r.Recipients {
		if err := rec.Validate(); err != nil {
			return err
		}
		if orders[rec.SigningOrder] {
			return errors.New("recipient signing orders must be unique")
		}
		orders[rec.SigningOrder] = true
		emails[rec.Email] = true
	}

	for _, f := range r.Fields {
		if err := f.Validate(); err != nil {
			return err
		}
		if !emails[f.RecipientEmail] {
			return errors.New("field recipientEmail " + f.RecipientEmail + " does not match any recipient")
		}
	}
	return nil
}

// ReviewRecipient is a recipient echoed back in a review-link response.
type ReviewRecipient struct {
	ID       string                 `json:"id"`
	Name     string                 `json:"name"`
	Email    string                 `json:"email"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// ReviewLinkResult is returned by CreateSignatureReviewLink.
type ReviewLinkResult struct {
	Success    bool              `json:"success"`
	DocumentID string            `json:"documentId"`
	Status     string            `json:"status"`
	PreviewURL string            `json:"previewUrl,omitempty"`
	Message    string            `json:"message,omitempty"`
	Recipients []ReviewRecipient `json:"recipients,omitempty"`
}

// SendResult is returned by SendSignature.
type SendResult struct {
	Success    bool   `json:"success"`
	DocumentID string `json:"documentId"`
	Message    string `json:"message,omitempty"`
}

// StatusResult is returned by GetStatus.
type StatusResult struct {
	Status string `json:"status"`
}

// VoidResult is returned by VoidDocument.
type VoidResult struct {
	ID         string `json:"id"`
	Name       string `json:"name,omitempty"`
	Status     string `json:"status"`
	VoidReason string `json:"voidReason,omitempty"`
	VoidedAt   string `json:"voidedAt,omitempty"`
}

// ResendResult is returned by ResendEmail.
type ResendResult struct {
	Success        bool `json:"success"`
	RecipientCount int  `json:"recipientCount"`
}

// downloadInfo is the first-hop metadata of a document download.
type downloadInfo struct {
	DownloadURL string `json:"downloadUrl"`
	FileName    string `json:"fileName,omitempty"`
}

// AuditTrailUser identifies the actor of an audit trail entry.
type AuditTrailUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AuditTrailEntry is one event in a document's tamper-evident history.
type AuditTrailEntry struct {
	ID           string                 `json:"id"`
	DocumentID   string                 `json:"documentId"`
	ActionType   string                 `json:"actionType"`
	Timestamp    string                 `json:"timestamp,omitempty"`
	PreviousHash string                 `json:"previousHash,omitempty"`
	CurrentHash  string                 `json:"currentHash,omitempty"`
	CreatedOn    string                 `json:"createdOn,omitempty"`
	Details      map[string]interface{} `json:"details,omitempty"`
	User         *AuditTrailUser        `json:"user,omitempty"`
	UserID       string                 `json:"userId,omitempty"`
	Recipient    *AuditTrailUser        `json:"recipient,omitempty"`
	RecipientID  string                 `json:"recipientId,omitempty"`
}

// AuditTrailDocument identifies the document an audit trail belongs to.
type AuditTrailDocument struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// AuditTrailResult is returned by GetAuditTrail.
type AuditTrailResult struct {
	Document   AuditTrailDocument `json:"document"`
	AuditTrail []AuditTrailEntry  `json:"auditTrail"`
}
