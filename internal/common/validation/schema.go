package validation

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	apperrors "github.com/janhavi-28/SEO-Agent/internal/common/errors"
)

// Schema is a compiled JSON schema used to check request inputs.
type Schema struct {
	compiled *gojsonschema.Schema
}

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Compile parses a JSON schema document.
func Compile(schemaJSON string) (*Schema, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Schema{compiled: compiled}, nil
}

// MustCompile is Compile for package-level schemas.
func MustCompile(schemaJSON string) *Schema {
	s, err := Compile(schemaJSON)
	if err != nil {
		panic(err)
	}
	return s
}

// Validate checks any JSON-marshalable value against the schema.
func (s *Schema) Validate(document interface{}) *ValidationResult {
	result, err := s.compiled.Validate(gojsonschema.NewGoLoader(document))
	if err != nil {
		return &ValidationResult{
			Valid: false,
			Errors: []ValidationError{{
				Field:   "(root)",
				Message: err.Error(),
				Code:    "INVALID_DOCUMENT",
			}},
		}
	}
	return fromResult(result)
}

// ValidateDocument validates a raw JSON document against a schema string.
func ValidateDocument(schemaJSON string, documentJSON []byte) (*ValidationResult, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaJSON),
		gojsonschema.NewBytesLoader(documentJSON),
	)
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	return fromResult(result), nil
}

func fromResult(result *gojsonschema.Result) *ValidationResult {
	errs := make([]ValidationError, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		field := desc.Field()
		if desc.Type() == "required" {
			if prop, ok := desc.Details()["property"].(string); ok {
				if field == "(root)" {
					field = prop
				} else {
					field = field + "." + prop
				}
			}
		}
		errs = append(errs, ValidationError{
			Field:   field,
			Message: desc.Description(),
			Code:    strings.ToUpper(desc.Type()),
		})
	}
	return &ValidationResult{
		Valid:  len(errs) == 0,
		Errors: errs,
	}
}

// Err converts a failed result into an INVALID_INPUT error, nil when valid.
func (vr *ValidationResult) Err() error {
	if vr == nil || vr.Valid {
		return nil
	}
	stdErr := apperrors.NewInvalidInputError(strings.Join(vr.GetErrorMessages(), "; "))
	stdErr.WithMetadata("fields", vr.Fields())
	return stdErr
}

// Fields lists the offending fields in order.
func (vr *ValidationResult) Fields() []string {
	fields := make([]string, 0, len(vr.Errors))
	for _, err := range vr.Errors {
		fields = append(fields, err.Field)
	}
	return fields
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// HasErrors checks if validation has errors for specific field
func (vr *ValidationResult) HasErrors(field string) bool {
	for _, err := range vr.Errors {
		if err.Field == field {
			return true
		}
	}
	return false
}

// ValidateHTTPURL accepts absolute http and https URLs with a host.
func ValidateHTTPURL(raw string) error {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("url must use http or https")
	}
	if u.Host == "" {
		return fmt.Errorf("url must include a host")
	}
	return nil
}
