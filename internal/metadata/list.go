package metadata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
)

// decode unmarshals a metadata document into doc after the emptiness check.
// The document must be a JSON object; "null", arrays and scalars are malformed.
func decode(data []byte, doc any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return ErrEmptyMetadata
	}
	if trimmed[0] != '{' {
		return fmt.Errorf("%w: document is not a JSON object", ErrMalformedMetadata)
	}
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedMetadata, err)
	}
	return nil
}

func find[T any](items []T, name string, nameOf func(T) string) int {
	return slices.IndexFunc(items, func(v T) bool { return nameOf(v) == name })
}

func lookup[T any](items []T, name string, nameOf func(T) string) (T, bool) {
	var zero T
	i := find(items, name, nameOf)
	if i < 0 {
		return zero, false
	}
	return items[i], true
}

func names[T any](items []T, nameOf func(T) string) []string {
	out := make([]string, len(items))
	for i, v := range items {
		out[i] = nameOf(v)
	}
	return out
}

// unique reports a malformed-document error for an empty or repeated name.
func unique[T any](c Collection, items []T, nameOf func(T) string) error {
	seen := make(map[string]struct{}, len(items))
	for _, v := range items {
		n := nameOf(v)
		if n == "" {
			return fmt.Errorf("%w: %s entry without a name", ErrMalformedMetadata, c)
		}
		if _, dup := seen[n]; dup {
			return fmt.Errorf("%w: duplicate %s entry %q", ErrMalformedMetadata, c, n)
		}
		seen[n] = struct{}{}
	}
	return nil
}

func upsert[T any](c Collection, items []T, v T, nameOf func(T) string) ([]T, error) {
	n := nameOf(v)
	if n == "" {
		return items, fmt.Errorf("metadata: %s entry must have a name", c)
	}
	if i := find(items, n, nameOf); i >= 0 {
		items[i] = v
		return items, nil
	}
	return append(items, v), nil
}

func remove[T any](c Collection, items []T, name string, nameOf func(T) string) ([]T, error) {
	i := find(items, name, nameOf)
	if i < 0 {
		return items, fmt.Errorf("%w: %s %q", ErrNotFound, c, name)
	}
	return slices.Delete(items, i, i+1), nil
}

// orEmpty keeps collections encoded as [] rather than null.
func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
