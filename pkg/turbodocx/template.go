package turbodocx

import (
	"context"
	"encoding/json"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// VariableMimeType tags how the server should interpret a template
// variable's value.
type VariableMimeType string

const (
	MimeTypeText     VariableMimeType = "text"
	MimeTypeHTML     VariableMimeType = "html"
	MimeTypeImage    VariableMimeType = "image"
	MimeTypeMarkdown VariableMimeType = "markdown"
	MimeTypeJSON     VariableMimeType = "json"
)

type valueKind int

const (
	kindUnset valueKind = iota
	kindText
	kindNumber
	kindBool
	kindJSON
	kindImageURL
)

// VariableValue is a discriminated template variable value: text, a
// number, a boolean, an image URL, or an arbitrary JSON tree. JSON
// trees are serialized exactly as given; arrays and nested objects are
// never flattened or stringified, since server-side loop and
// conditional evaluation depends on their structure.
type VariableValue struct {
	kind    valueKind
	text    string
	number  float64
	boolean bool
	tree    interface{}
}

// TextValue wraps a plain string value.
func TextValue(s string) VariableValue { return VariableValue{kind: kindText, text: s} }

// NumberValue wraps a numeric value.
func NumberValue(f float64) VariableValue { return VariableValue{kind: kindNumber, number: f} }

// BoolValue wraps a boolean value.
func BoolValue(b bool) VariableValue { return VariableValue{kind: kindBool, boolean: b} }

// JSONValue wraps an arbitrary JSON tree (maps, slices, structs). The
// tree is passed through to the server untouched.
func JSONValue(v interface{}) VariableValue { return VariableValue{kind: kindJSON, tree: v} }

// ImageURLValue wraps an image URL or base64 data string.
func ImageURLValue(u string) VariableValue { return VariableValue{kind: kindImageURL, text: u} }

// IsZero reports whether no value has been set.
func (v VariableValue) IsZero() bool { return v.kind == kindUnset }

// MarshalJSON emits the underlying value in its native JSON form.
func (v VariableValue) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case kindText, kindImageURL:
		return json.Marshal(v.text)
	case kindNumber:
		return json.Marshal(v.number)
	case kindBool:
		return json.Marshal(v.boolean)
	case kindJSON:
		return json.Marshal(v.tree)
	default:
		return []byte("null"), nil
	}
}

// TemplateVariable is one value to inject into a template. MimeType is
// required. Setting UsesAdvancedTemplatingEngine enables server-side
// evaluation of loops ({#arr}...{/arr}), conditionals
// ({#if cond}...{/if}), dotted-path access ({user.profile.company}) and
// arithmetic ({price * qty}) over this variable; the client only tags
// the variable and passes the value through.
type TemplateVariable struct {
	// Placeholder is the token in the template, e.g. "{customer_name}".
	Placeholder string `json:"placeholder"`

	// Name is the variable name, which may differ from the placeholder.
	Name string `json:"name"`

	Value    VariableValue    `json:"value"`
	MimeType VariableMimeType `json:"mimeType"`

	UsesAdvancedTemplatingEngine     bool `json:"usesAdvancedTemplatingEngine,omitempty"`
	NestedInAdvancedTemplatingEngine bool `json:"nestedInAdvancedTemplatingEngine,omitempty"`
	AllowRichTextInjection           bool `json:"allowRichTextInjection,omitempty"`

	Description string `json:"description,omitempty"`
}

// Validate reports whether the variable is well formed.
func (v TemplateVariable) Validate() error {
	return validation.ValidateStruct(&v,
		validation.Field(&v.Placeholder, validation.Required),
		validation.Field(&v.Name, validation.Required),
		validation.Field(&v.MimeType, validation.Required, validation.In(
			MimeTypeText, MimeTypeHTML, MimeTypeImage, MimeTypeMarkdown, MimeTypeJSON,
		)),
		validation.Field(&v.Value, validation.By(func(interface{}) error {
			if v.Value.IsZero() {
				return validation.NewError("validation_required", "cannot be blank")
			}
			return nil
		})),
	)
}

func defaultPlaceholder(name string) string {
	if len(name) > 0 && name[0] == '{' {
		return name
	}
	return "{" + name + "}"
}

// NewTextVariable builds a plain text variable named name with the
// default {name} placeholder.
func NewTextVariable(name, value string) TemplateVariable {
	return TemplateVariable{
		Placeholder: defaultPlaceholder(name),
		Name:        name,
		Value:       TextValue(value),
		MimeType:    MimeTypeText,
	}
}

// NewJSONVariable builds a variable carrying a JSON tree with the
// advanced templating engine enabled, for loops, conditionals and
// nested access in the template.
func NewJSONVariable(name string, tree interface{}) TemplateVariable {
	return TemplateVariable{
		Placeholder:                  defaultPlaceholder(name),
		Name:                         name,
		Value:                        JSONValue(tree),
		MimeType:                     MimeTypeJSON,
		UsesAdvancedTemplatingEngine: true,
	}
}

// NewImageVariable builds an image variable from a URL or base64 data.
func NewImageVariable(name, imageURL string) TemplateVariable {
	return TemplateVariable{
		Placeholder: defaultPlaceholder(name),
		Name:        name,
		Value:       ImageURLValue(imageURL),
		MimeType:    MimeTypeImage,
	}
}

// GenerateRequest describes a document generation from a template.
type GenerateRequest struct {
	TemplateID string             `json:"templateId"`
	Variables  []TemplateVariable `json:"variables"`

	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`

	// OutputFormat defaults to docx server-side.
	OutputFormat string `json:"outputFormat,omitempty"`

	ReplaceFonts bool   `json:"replaceFonts,omitempty"`
	DefaultFont  string `json:"defaultFont,omitempty"`

	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// GenerateResult describes the generated artifact: its deliverable id
// and either an inline buffer or a download URL.
type GenerateResult struct {
	Success       bool   `json:"success"`
	DeliverableID string `json:"deliverableId,omitempty"`
	Buffer        []byte `json:"buffer,omitempty"`
	DownloadURL   string `json:"downloadUrl,omitempty"`
	Message       string `json:"message,omitempty"`
	Error         string `json:"error,omitempty"`
}

// TurboTemplateClient provides document generation from templates.
type TurboTemplateClient struct {
	transport *httpTransport
}

// Generate renders a template with the given variables and returns the
// generated document descriptor. It does not fetch the artifact bytes;
// use DownloadDeliverable for that.
func (c *TurboTemplateClient) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error) {
	if req == nil {
		return nil, clientValidationErrorf("request is required")
	}
	if req.TemplateID == "" {
		return nil, clientValidationErrorf("templateId is required")
	}
	if len(req.Variables) == 0 {
		return nil, clientValidationErrorf("at least one variable is required")
	}
	for i, v := range req.Variables {
		if err := v.Validate(); err != nil {
			return nil, clientValidationErrorf("variable %d (%s): %v", i, v.Placeholder, err)
		}
	}

	var result GenerateResult
	if err := c.transport.post(ctx, "/v1/deliverable", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// DownloadDeliverable returns the generated artifact bytes, preferring
// an inline buffer and otherwise fetching the download URL. The URL hop
// is outside the documented API, so its failure is a NetworkError.
func (c *TurboTemplateClient) DownloadDeliverable(ctx context.Context, result *GenerateResult) ([]byte, error) {
	if result == nil {
		return nil, clientValidationErrorf("generate result is required")
	}
	if len(result.Buffer) > 0 {
		return result.Buffer, nil
	}
	if result.DownloadURL == "" {
		return nil, clientValidationErrorf("generate result carries neither a buffer nor a download URL")
	}
	return c.transport.fetchURL(ctx, result.DownloadURL)
}
