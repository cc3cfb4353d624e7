package sheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cory-johannsen/ocsm/internal/metadata"
)

// Edit is one change to a sheet. Key selects the sub-field for keyed fields
// (an ability, skill, class, item or coin denomination) and is empty otherwise.
type Edit struct {
	Field string `json:"field"`
	Key   string `json:"key,omitempty"`
	Value string `json:"value"`
}

func (e Edit) String() string {
	if e.Key == "" {
		return fmt.Sprintf("%s=%q", e.Field, e.Value)
	}
	return fmt.Sprintf("%s[%s]=%q", e.Field, e.Key, e.Value)
}

// Fields shared by every game system.
const (
	FieldName   = "name"
	FieldPlayer = "player"
)

func invalid(e Edit, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidValue, e, fmt.Sprintf(format, args...))
}

func intValue(e Edit) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(e.Value))
	if err != nil {
		return 0, invalid(e, "expected an integer")
	}
	return n, nil
}

func boolValue(e Edit) (bool, error) {
	b, err := strconv.ParseBool(strings.TrimSpace(e.Value))
	if err != nil {
		return false, invalid(e, "expected true or false")
	}
	return b, nil
}

func requireKey(e Edit) error {
	if e.Key == "" {
		return invalid(e, "field %q needs a key", e.Field)
	}
	return nil
}

// lookup finds a named catalog entry for the character's game system.
func lookup[T any](cat Catalog, ch Character, collection metadata.Collection, name string) (T, error) {
	var zero T
	if cat == nil {
		return zero, fmt.Errorf("%w: no catalog for %s %q", ErrNotFound, collection, name)
	}
	st := cat.Current()
	if st.System != ch.System() || st.Container == nil {
		return zero, fmt.Errorf("%w: %s catalog not loaded for %s %q", ErrNotFound, ch.System(), collection, name)
	}
	e, ok := st.Container.Lookup(collection, name)
	if !ok {
		return zero, fmt.Errorf("%w: %s %q", ErrNotFound, collection, name)
	}
	v, ok := e.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s %q has type %T", ErrNotFound, collection, name, e)
	}
	return v, nil
}
