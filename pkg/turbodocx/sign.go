package turbodocx

import (
	"context"
	"encoding/json"
	"strings"
)

// TurboSignClient provides the digital signature workflow: preparing
// documents for review or signing, tracking status, downloading the
// signed result, voiding, resending emails and fetching audit trails.
//
// Document state (draft → setup_complete → review_ready → under_review →
// completed | voided) lives entirely server-side. Calls against a
// terminal-state document are not pre-checked locally; the server's
// error is surfaced as-is.
type TurboSignClient struct {
	transport   *httpTransport
	senderEmail string
	senderName  string
}

// buildPayload validates the request and flattens it into the string
// form fields the prepare endpoints expect. Recipients and fields
// travel as JSON-encoded strings in both the multipart and JSON paths.
func (c *TurboSignClient) buildPayload(req *SignatureRequest) (map[string]string, error) {
	if req == nil {
		return nil, clientValidationErrorf("request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, &ClientValidationError{Message: err.Error()}
	}

	senderEmail := req.SenderEmail
	if senderEmail == "" {
		senderEmail = c.senderEmail
	}
	if senderEmail == "" {
		return nil, clientValidationErrorf("SenderEmail is required for signature operations: set it on the request, the ClientConfig, or via %s", EnvSenderEmail)
	}
	senderName := req.SenderName
	if senderName == "" {
		senderName = c.senderName
	}

	recipientsJSON, err := json.Marshal(req.Recipients)
	if err != nil {
		return nil, networkErrorf(err, "marshal recipients: %v", err)
	}
	fieldsJSON, err := json.Marshal(req.Fields)
	if err != nil {
		return nil, networkErrorf(err, "marshal fields: %v", err)
	}

	payload := map[string]string{
		"recipients":  string(recipientsJSON),
		"fields":      string(fieldsJSON),
		"senderEmail": senderEmail,
	}
	if senderName != "" {
		payload["senderName"] = senderName
	}
	if req.DocumentName != "" {
		payload["documentName"] = req.DocumentName
	}
	if req.DocumentDescription != "" {
		payload["documentDescription"] = req.DocumentDescription
	}
	if len(req.CCEmails) > 0 {
		cc, err := json.Marshal(req.CCEmails)
		if err != nil {
			return nil, networkErrorf(err, "marshal ccEmails: %v", err)
		}
		payload["ccEmails"] = string(cc)
	}
	return payload, nil
}

// prepare posts the request to one of the prepare endpoints, as a
// multipart upload for inline file bytes and as JSON otherwise.
func (c *TurboSignClient) prepare(ctx context.Context, path string, req *SignatureRequest, result interface{}) error {
	payload, err := c.buildPayload(req)
	if err != nil {
		return err
	}

	if len(req.File) > 0 {
		return c.transport.upload(ctx, path, req.File, req.FileName, payload, result)
	}

	if req.FileLink != "" {
		payload["fileLink"] = req.FileLink
	}
	if req.DeliverableID != "" {
		payload["deliverableId"] = req.DeliverableID
	}
	if req.TemplateID != "" {
		payload["templateId"] = req.TemplateID
	}
	return c.transport.post(ctx, path, payload, result)
}

// CreateSignatureReviewLink prepares a document for review without
// sending any emails, returning a preview URL for checking field
// placement before the document goes out.
func (c *TurboSignClient) CreateSignatureReviewLink(ctx context.Context, req *SignatureRequest) (*ReviewLinkResult, error) {
	var result ReviewLinkResult
	if err := c.prepare(ctx, "/turbosign/single/prepare-for-review", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SendSignature prepares a document for signing and emails the
// recipients in a single call.
func (c *TurboSignClient) SendSignature(ctx context.Context, req *SignatureRequest) (*SendResult, error) {
	var result SendResult
	if err := c.prepare(ctx, "/turbosign/single/prepare-for-signing", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetStatus returns the document's current lifecycle status.
func (c *TurboSignClient) GetStatus(ctx context.Context, documentID string) (*StatusResult, error) {
	if documentID == "" {
		return nil, clientValidationErrorf("documentID is required")
	}
	var result StatusResult
	if err := c.transport.get(ctx, "/turbosign/documents/"+documentID+"/status", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Download fetches the signed document bytes. It is a two-hop call: the
// API returns presigned URL metadata, then the file is fetched from
// that URL directly. A failure on the second hop is a NetworkError.
func (c *TurboSignClient) Download(ctx context.Context, documentID string) ([]byte, error) {
	if documentID == "" {
		return nil, clientValidationErrorf("documentID is required")
	}

	var info downloadInfo
	if err := c.transport.get(ctx, "/turbosign/documents/"+documentID+"/download", &info); err != nil {
		return nil, err
	}
	if info.DownloadURL == "" {
		return nil, &NetworkError{Message: "download URL missing from response"}
	}
	return c.transport.fetchURL(ctx, info.DownloadURL)
}

// VoidDocument cancels a signature request. A non-empty reason is
// required and is enforced before the request is sent.
func (c *TurboSignClient) VoidDocument(ctx context.Context, documentID, reason string) (*VoidResult, error) {
	if documentID == "" {
		return nil, clientValidationErrorf("documentID is required")
	}
	if strings.TrimSpace(reason) == "" {
		return nil, clientValidationErrorf("a non-empty reason is required to void a document")
	}

	var result VoidResult
	err := c.transport.post(ctx, "/turbosign/documents/"+documentID+"/void", map[string]string{"reason": reason}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// ResendEmail resends the signature request email. An empty or nil
// recipientIDs slice means every pending recipient.
func (c *TurboSignClient) ResendEmail(ctx context.Context, documentID string, recipientIDs []string) (*ResendResult, error) {
	if documentID == "" {
		return nil, clientValidationErrorf("documentID is required")
	}
	if recipientIDs == nil {
		// Serialize as [] rather than null; the server treats the
		// empty list as "all recipients".
		recipientIDs = []string{}
	}

	var result ResendResult
	err := c.transport.post(ctx, "/turbosign/documents/"+documentID+"/resend-email", map[string][]string{"recipientIds": recipientIDs}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetAuditTrail returns the document's audit history.
func (c *TurboSignClient) GetAuditTrail(ctx context.Context, documentID string) (*AuditTrailResult, error) {
	if documentID == "" {
		return nil, clientValidationErrorf("documentID is required")
	}
	var result AuditTrailResult
	if err := c.transport.get(ctx, "/turbosign/documents/"+documentID+"/audit-trail", &result); err != nil {
		return nil, err
	}
	return &result, nil
}
