package toolbox

import (
	"strconv"
	"strings"
	"time"
)

// FieldType is the declared type of a tool argument.
type FieldType int

const (
	TypeString FieldType = iota
	TypeInt
	TypeBool
	TypeTime
	TypeStringList
)

// Field describes one argument of a tool: its wire name, declared type,
// whether it is required, and an optional default applied when absent.
// Defaults must already be in normalized form (e.g. int64 for TypeInt).
type Field struct {
	Name        string
	Type        FieldType
	Required    bool
	Default     any
	Description string
}

// Schema is the ordered argument list of a tool. Order matters only for
// presentation (the generated MCP tool definition); validation is by name.
type Schema []Field

// Args holds validated, coerced arguments keyed by field name. Values
// are normalized: string, int64, bool, time.Time or []string.
type Args map[string]any

// Has reports whether the field was provided (or defaulted).
func (a Args) Has(name string) bool {
	_, ok := a[name]
	return ok
}

// String returns the string value for name, or "" when absent.
func (a Args) String(name string) string {
	v, _ := a[name].(string)
	return v
}

// Int returns the integer value for name, or 0 when absent.
func (a Args) Int(name string) int64 {
	v, _ := a[name].(int64)
	return v
}

// Bool returns the boolean value for name, or false when absent.
func (a Args) Bool(name string) bool {
	v, _ := a[name].(bool)
	return v
}

// Time returns the timestamp value for name, or the zero time when absent.
func (a Args) Time(name string) time.Time {
	v, _ := a[name].(time.Time)
	return v
}

// StringList returns the list value for name, or nil when absent.
func (a Args) StringList(name string) []string {
	v, _ := a[name].([]string)
	return v
}

// Validate checks raw arguments against the schema and returns the
// normalized set. Required fields must be present and non-empty; optional
// fields get their default when absent. An empty string is treated the
// same as an absent value. Fields not declared in the schema are ignored
// for forward compatibility.
func (s Schema) Validate(raw map[string]any) (Args, error) {
	out := make(Args, len(s))

	for _, f := range s {
		v, ok := raw[f.Name]
		if ok {
			// Empty string and explicit null count as absent.
			if v == nil {
				ok = false
			} else if str, isStr := v.(string); isStr && strings.TrimSpace(str) == "" {
				ok = false
			}
		}

		if !ok {
			if f.Required {
				return nil, Errorf(KindValidation, "missing required field %q", f.Name)
			}
			if f.Default != nil {
				out[f.Name] = f.Default
			}
			continue
		}

		coerced, err := coerceField(f, v)
		if err != nil {
			return nil, err
		}
		out[f.Name] = coerced
	}

	return out, nil
}

// coerceField converts a loosely-typed JSON value into the field's
// normalized representation.
func coerceField(f Field, v any) (any, error) {
	switch f.Type {
	case TypeString:
		s, ok := v.(string)
		if !ok {
			return nil, Errorf(KindValidation, "field %q must be a string", f.Name)
		}
		return s, nil

	case TypeInt:
		switch n := v.(type) {
		case float64:
			return int64(n), nil
		case int:
			return int64(n), nil
		case int64:
			return n, nil
		case string:
			i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
			if err != nil {
				return nil, Errorf(KindValidation, "field %q must be an integer", f.Name)
			}
			return i, nil
		}
		return nil, Errorf(KindValidation, "field %q must be an integer", f.Name)

	case TypeBool:
		switch b := v.(type) {
		case bool:
			return b, nil
		case string:
			parsed, err := strconv.ParseBool(strings.TrimSpace(b))
			if err != nil {
				return nil, Errorf(KindValidation, "field %q must be a boolean", f.Name)
			}
			return parsed, nil
		}
		return nil, Errorf(KindValidation, "field %q must be a boolean", f.Name)

	case TypeTime:
		s, ok := v.(string)
		if !ok {
			return nil, Errorf(KindValidation, "field %q must be an RFC3339 timestamp", f.Name)
		}
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t, nil
		}
		// Date-only values are accepted for all-day bounds.
		if t, err := time.Parse("2006-01-02", s); err == nil {
			return t, nil
		}
		return nil, Errorf(KindValidation, "field %q must be an RFC3339 timestamp, got %q", f.Name, s)

	case TypeStringList:
		switch list := v.(type) {
		case []string:
			return list, nil
		case []any:
			out := make([]string, 0, len(list))
			for _, item := range list {
				s, ok := item.(string)
				if !ok {
					return nil, Errorf(KindValidation, "field %q must be a list of strings", f.Name)
				}
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
			return out, nil
		case string:
			// Comma-separated shorthand for recipient/label style fields.
			parts := strings.Split(list, ",")
			out := make([]string, 0, len(parts))
			for _, p := range parts {
				if p = strings.TrimSpace(p); p != "" {
					out = append(out, p)
				}
			}
			return out, nil
		}
		return nil, Errorf(KindValidation, "field %q must be a list of strings", f.Name)
	}

	return nil, Errorf(KindValidation, "field %q has an unknown declared type", f.Name)
}
