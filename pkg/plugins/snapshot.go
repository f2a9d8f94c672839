package plugins

import (
	"bytes"
	"encoding/json"
	"reflect"

	"github.com/Ramsey-B/fern/pkg/errors"
)

// Snapshot is a frozen copy of a chain.
type Snapshot []Override

// Empty reports whether there is nothing to consult.
func (s Snapshot) Empty() bool {
	return len(s) == 0
}

// First returns the first non-nil answer for field and the override that gave it.
func (s Snapshot) First(field string, value any, document any) (any, Override, bool) {
	for _, o := range s {
		answer, ok := o.Override(field, value, document)
		if ok && !isNil(answer) {
			return answer, o, true
		}
	}
	return nil, nil, false
}

// Resolve offers computed to the snapshot and returns the winning answer
// decoded as T, or computed when no override answers. An answer that cannot
// be decoded as T without loss fails with a *errors.ParseError naming field.
func Resolve[T any](s Snapshot, field string, computed T, document any) (T, error) {
	if s.Empty() {
		return computed, nil
	}

	generic, err := Generic(computed)
	if err != nil {
		return computed, errors.NewParseErrorf("encode computed value: %w", err).AddField(field)
	}

	answer, o, ok := s.First(field, generic, document)
	if !ok {
		return computed, nil
	}

	decoded, err := decode[T](answer)
	if err != nil {
		return computed, errors.NewParseErrorf("override does not fit the field: %w", err).AddField(field).AddPlugin(NameOf(o))
	}
	return decoded, nil
}

// Generic converts a typed value to its JSON form.
func Generic(value any) (any, error) {
	if isNil(value) {
		return nil, nil
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}

	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func decode[T any](answer any) (T, error) {
	if typed, ok := answer.(T); ok {
		return typed, nil
	}

	var out T
	raw, err := json.Marshal(answer)
	if err != nil {
		return out, err
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&out); err != nil {
		return out, err
	}
	return out, nil
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}
