// Package builders turns single document fragments into typed entities.
//
// Each builder lists the key paths it requires. A fragment missing one of them
// fails with errors.ErrMissingKey and is never built with placeholder values;
// Collect drops such fragments and keeps their siblings.
package builders

import (
	"strings"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/ids"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/transforms"
)

// Builder builds one entity from one fragment.
type Builder[T any] func(fragment any) (T, error)

// SkipFunc is told about every fragment Collect drops.
type SkipFunc func(index int, err error)

// Collect builds every fragment in order, skipping the ones that fail. The
// result is never nil.
func Collect[T any](fragments []any, build Builder[T], skip SkipFunc) []T {
	out := make([]T, 0, len(fragments))
	for i, fragment := range fragments {
		entity, err := build(fragment)
		if err != nil {
			if skip != nil {
				skip(i, err)
			}
			continue
		}
		out = append(out, entity)
	}
	return out
}

func required(fragment any, path string) (any, error) {
	value := transforms.Dig(fragment, strings.Split(path, ".")...)
	if value == nil {
		return nil, errors.MissingKey(path)
	}
	return value, nil
}

func requiredString(fragment any, path string) (string, error) {
	value, err := required(fragment, path)
	if err != nil {
		return "", err
	}
	s := transforms.AsString(value)
	if s == nil || *s == "" {
		return "", errors.MissingKey(path)
	}
	return *s, nil
}

func requiredInt(fragment any, path string) (int, error) {
	value, err := required(fragment, path)
	if err != nil {
		return 0, err
	}
	i := transforms.AsInt(value)
	if i == nil {
		return 0, errors.MissingKey(path)
	}
	return *i, nil
}

func optionalString(fragment any, path string) *string {
	return transforms.AsString(transforms.Dig(fragment, strings.Split(path, ".")...))
}

func identity(prefixed string, prefix ids.Prefix) (models.Identity, error) {
	id, err := ids.ParseAs(prefixed, prefix)
	if err != nil {
		return models.Identity{}, err
	}
	return models.NewIdentity(id), nil
}

func titleIdentity(fragment any, path string) (models.Identity, error) {
	prefixed, err := requiredString(fragment, path)
	if err != nil {
		return models.Identity{}, err
	}
	return identity(prefixed, ids.Title)
}
