package llm

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Template node.
type Kind int

const (
	KindObject Kind = iota
	KindArray
	KindString
	KindInt
	KindFloat
	KindBool
	KindNull
)

// Template describes the exact JSON shape a generation must follow.
// It is an immutable tree: objects keep their key order, arrays hold
// example items and leaves carry placeholder values. Templates are only
// ever serialized into prompts.
type Template struct {
	kind   Kind
	fields []Field
	items  []Template
	str    string
	num    float64
	digits string // integer literal, unbounded
	flag   bool
}

// Field is one key of an object template.
type Field struct {
	Key   string
	Value Template
}

func Object(fields ...Field) Template {
	cp := make([]Field, len(fields))
	copy(cp, fields)
	return Template{kind: KindObject, fields: cp}
}

func Prop(key string, value Template) Field {
	return Field{Key: key, Value: value}
}

func Array(items ...Template) Template {
	cp := make([]Template, len(items))
	copy(cp, items)
	return Template{kind: KindArray, items: cp}
}

func String(placeholder string) Template {
	return Template{kind: KindString, str: placeholder}
}

func Int(placeholder int64) Template {
	return Template{kind: KindInt, digits: strconv.FormatInt(placeholder, 10)}
}

func Float(placeholder float64) Template {
	return Template{kind: KindFloat, num: placeholder}
}

func Bool(placeholder bool) Template {
	return Template{kind: KindBool, flag: placeholder}
}

func Null() Template {
	return Template{kind: KindNull}
}

func (t Template) Kind() Kind { return t.kind }

// Fields returns a copy of the object's fields, nil for non-objects.
func (t Template) Fields() []Field {
	if t.kind != KindObject {
		return nil
	}
	cp := make([]Field, len(t.fields))
	copy(cp, t.fields)
	return cp
}

// Lookup returns the value stored under key in an object template.
func (t Template) Lookup(key string) (Template, bool) {
	for _, f := range t.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return Template{}, false
}

// Keys returns the top-level keys of an object template in order.
func (t Template) Keys() []string {
	keys := make([]string, 0, len(t.fields))
	for _, f := range t.fields {
		keys = append(keys, f.Key)
	}
	return keys
}

// MarshalJSON renders the template compactly with key order preserved.
func (t Template) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := t.write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalJSON lets templates arrive in request bodies.
func (t *Template) UnmarshalJSON(data []byte) error {
	parsed, err := ParseTemplate(data)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Pretty renders the template with a two-space indent, the form embedded
// into prompts.
func (t Template) Pretty() string {
	compact, err := t.MarshalJSON()
	if err != nil {
		return "{}"
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact, "", "  "); err != nil {
		return string(compact)
	}
	return out.String()
}

func (t Template) String() string { return t.Pretty() }

func (t Template) write(buf *bytes.Buffer) error {
	switch t.kind {
	case KindObject:
		buf.WriteByte('{')
		for i, f := range t.fields {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeString(buf, f.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := f.Value.write(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case KindArray:
		buf.WriteByte('[')
		for i, item := range t.items {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.write(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case KindString:
		return writeString(buf, t.str)
	case KindInt:
		buf.WriteString(t.digits)
	case KindFloat:
		buf.WriteString(formatFloat(t.num))
	case KindBool:
		buf.WriteString(strconv.FormatBool(t.flag))
	case KindNull:
		buf.WriteString("null")
	default:
		return fmt.Errorf("unknown template kind %d", t.kind)
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode appends a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// formatFloat keeps a trailing ".0" on integral values so that float
// placeholders read as floats in the prompt.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// ParseTemplate builds a Template from JSON, keeping object key order.
func ParseTemplate(data []byte) (Template, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	t, err := parseValue(dec)
	if err != nil {
		return Template{}, fmt.Errorf("parse template: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return Template{}, fmt.Errorf("parse template: trailing data after value")
	}
	return t, nil
}

func parseValue(dec *json.Decoder) (Template, error) {
	tok, err := dec.Token()
	if err != nil {
		return Template{}, err
	}

	switch v := tok.(type) {
	case json.Delim:
		switch v {
		case '{':
			var fields []Field
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return Template{}, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return Template{}, fmt.Errorf("unexpected object key %v", keyTok)
				}
				value, err := parseValue(dec)
				if err != nil {
					return Template{}, err
				}
				fields = append(fields, Prop(key, value))
			}
			if _, err := dec.Token(); err != nil {
				return Template{}, err
			}
			return Object(fields...), nil
		case '[':
			var items []Template
			for dec.More() {
				item, err := parseValue(dec)
				if err != nil {
					return Template{}, err
				}
				items = append(items, item)
			}
			if _, err := dec.Token(); err != nil {
				return Template{}, err
			}
			return Array(items...), nil
		}
		return Template{}, fmt.Errorf("unexpected delimiter %q", v)
	case string:
		return String(v), nil
	case json.Number:
		// Integers keep their literal text so values beyond int64 or
		// float64 precision reach the prompt unchanged.
		if !strings.ContainsAny(v.String(), ".eE") {
			return Template{kind: KindInt, digits: v.String()}, nil
		}
		f, err := v.Float64()
		if err != nil {
			return Template{}, err
		}
		return Float(f), nil
	case bool:
		return Bool(v), nil
	case nil:
		return Null(), nil
	}
	return Template{}, fmt.Errorf("unexpected token %v", tok)
}
