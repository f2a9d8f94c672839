package transforms

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Fragments are decoded with encoding/json, so numbers arrive as float64,
// objects as map[string]any and arrays as []any. The helpers below read those
// shapes and report absence with nil pointers.

// AsString returns the string form of a scalar fragment.
func AsString(raw any) *string {
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		return &v
	case float64:
		s := strconv.FormatFloat(v, 'f', -1, 64)
		return &s
	case bool:
		s := strconv.FormatBool(v)
		return &s
	case map[string]any, []any:
		return nil
	default:
		s := fmt.Sprint(v)
		return &s
	}
}

// String is AsString with "" for absence.
func String(raw any) string {
	if s := AsString(raw); s != nil {
		return *s
	}
	return ""
}

// AsInt reads integral numbers and numeric strings such as "1999".
func AsInt(raw any) *int {
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return nil
		}
		i := int(v)
		return &i
	case int:
		return &v
	case int64:
		i := int(v)
		return &i
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil
		}
		return &i
	default:
		return nil
	}
}

// AsFloat reads numbers and numeric strings.
func AsFloat(raw any) *float64 {
	switch v := raw.(type) {
	case float64:
		return &v
	case int:
		f := float64(v)
		return &f
	case int64:
		f := float64(v)
		return &f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}

func AsBool(raw any) *bool {
	if b, ok := raw.(bool); ok {
		return &b
	}
	return nil
}

func AsList(raw any) []any {
	list, _ := raw.([]any)
	return list
}

func AsMap(raw any) map[string]any {
	m, _ := raw.(map[string]any)
	return m
}

// Strings keeps the string elements of a list fragment, dropping nulls and
// anything that is not a scalar.
func Strings(raw any) []string {
	list := AsList(raw)
	if list == nil {
		return nil
	}

	out := make([]string, 0, len(list))
	for _, item := range list {
		if s := AsString(item); s != nil {
			out = append(out, *s)
		}
	}
	return out
}

// Dig walks nested objects by key and returns nil as soon as a step is
// missing or not an object.
func Dig(raw any, keys ...string) any {
	current := raw
	for _, key := range keys {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = m[key]
		if !ok {
			return nil
		}
	}
	return current
}

// Has reports whether the dotted path resolves to a non-null value.
func Has(raw any, path string) bool {
	return Dig(raw, strings.Split(path, ".")...) != nil
}

// Index returns the i-th element of a list fragment, or nil.
func Index(raw any, i int) any {
	list := AsList(raw)
	if i < 0 || i >= len(list) {
		return nil
	}
	return list[i]
}
