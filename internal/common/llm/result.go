package llm

import (
	"bytes"
	"encoding/json"
	"errors"
)

// ErrorMarker is the "error" value of a parse-failure record.
const ErrorMarker = "❌ Failed to parse Gemini response as JSON"

var ErrParseFailure = errors.New("generation result is a parse failure")

// Result is the outcome of a structured generation: either the parsed JSON
// document or a parse-failure record that keeps the untouched reply.
// Conformance to the requested template is not checked; callers should
// treat every field as optional.
type Result struct {
	raw      string
	document json.RawMessage
}

// NewResult sanitizes and parses a backend reply.
func NewResult(raw string) *Result {
	cleaned := Sanitize(raw)
	if cleaned == "" || !json.Valid([]byte(cleaned)) {
		return &Result{raw: raw}
	}
	return &Result{raw: raw, document: json.RawMessage(cleaned)}
}

// IsParseFailure reports whether the reply could not be parsed as JSON.
func (r *Result) IsParseFailure() bool {
	return r == nil || r.document == nil
}

// RawResponse is the backend reply before sanitizing.
func (r *Result) RawResponse() string {
	if r == nil {
		return ""
	}
	return r.raw
}

// Document returns the parsed JSON, nil for parse failures.
func (r *Result) Document() json.RawMessage {
	if r == nil {
		return nil
	}
	return r.document
}

// Decode unmarshals the document into v.
func (r *Result) Decode(v any) error {
	if r.IsParseFailure() {
		return ErrParseFailure
	}
	dec := json.NewDecoder(bytes.NewReader(r.document))
	dec.UseNumber()
	return dec.Decode(v)
}

// Object returns the document as a map. It is nil for parse failures and
// for documents that are not JSON objects.
func (r *Result) Object() map[string]any {
	var out map[string]any
	if err := r.Decode(&out); err != nil {
		return nil
	}
	return out
}

// Value returns the document decoded into generic Go values, or the
// failure record for parse failures.
func (r *Result) Value() any {
	if r.IsParseFailure() {
		return map[string]any{"error": ErrorMarker, "raw_response": r.RawResponse()}
	}
	var out any
	if err := r.Decode(&out); err != nil {
		return nil
	}
	return out
}

type failureRecord struct {
	Error       string `json:"error"`
	RawResponse string `json:"raw_response"`
}

// MarshalJSON emits the parsed document as-is, keeping the backend's key
// order, or the failure record.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.document == nil {
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(failureRecord{Error: ErrorMarker, RawResponse: r.raw}); err != nil {
			return nil, err
		}
		return bytes.TrimRight(buf.Bytes(), "\n"), nil
	}
	return []byte(r.document), nil
}

// UnmarshalJSON restores a Result from its wire form. A document with the
// failure marker becomes a parse failure again.
func (r *Result) UnmarshalJSON(data []byte) error {
	var rec failureRecord
	if err := json.Unmarshal(data, &rec); err == nil && rec.Error == ErrorMarker {
		*r = Result{raw: rec.RawResponse}
		return nil
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	*r = Result{raw: string(cp), document: json.RawMessage(cp)}
	return nil
}
