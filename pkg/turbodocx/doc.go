// Package turbodocx provides a client for the TurboDocx document
// generation and e-signature API.
//
// The package exposes three endpoint families: TurboSign (digital
// signature workflow), TurboTemplate (document generation from
// templates), and TurboPartner (partner account management). A fourth,
// credential-free client covers the recipient-facing public signing
// endpoints.
//
// # Configuration
//
// Clients are built from an immutable ClientConfig. Every field falls
// back to its TURBODOCX_* environment variable individually, with
// explicit values always winning:
//
//	client, err := turbodocx.NewClient(turbodocx.ClientConfig{
//	    APIKey:      "your-api-key",
//	    OrgID:       "your-org-id",
//	    SenderEmail: "sender@company.com",
//	})
//
//	// Send a document for signature
//	result, err := client.TurboSign.SendSignature(ctx, &turbodocx.SignatureRequest{
//	    FileLink: "https://example.com/contract.pdf",
//	    Recipients: []turbodocx.Recipient{
//	        {Name: "Jane Doe", Email: "jane@example.com", SigningOrder: 1},
//	    },
//	    Fields: []turbodocx.Field{
//	        {Type: turbodocx.FieldTypeSignature, RecipientEmail: "jane@example.com",
//	            Page: 1, X: 100, Y: 500, Width: 200, Height: 50},
//	    },
//	})
//
// Exactly one credential (APIKey or AccessToken) must be configured;
// both are sent as "Authorization: Bearer". Organization-scoped calls
// carry the org id in the x-rapiddocx-org-id header.
//
// # Response envelopes
//
// TurboSign and TurboTemplate endpoints may wrap payloads in a
// single-key {"data": ...} envelope; the client strips it transparently
// so results always decode into the inner payload type. TurboPartner
// endpoints return full success/data/message envelopes which are
// surfaced as-is.
//
// # Error handling
//
// Malformed input is rejected before any network call with a
// *ClientValidationError. Server failures map by status code to
// *ValidationError (400), *AuthenticationError (401), *NotFoundError
// (404), *RateLimitError (429) or the generic *APIError, each carrying
// the HTTP status and the server's application error code when present:
//
//	_, err := client.TurboSign.GetStatus(ctx, docID)
//	var nf *turbodocx.NotFoundError
//	if errors.As(err, &nf) {
//	    // nf.StatusCode == 404, nf.Code == server error code
//	}
//
// Transport-level failures (unreachable host, non-JSON bodies, presigned
// download failures) surface as *NetworkError. The client never
// retries and never suppresses an error.
package turbodocx
