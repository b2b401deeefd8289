package v1alpha1

import (
	"fmt"
	"reflect"
)

const (
	// GroupsKey is the host parameter holding the host's group memberships.
	GroupsKey = "groups"
	// InstalledMarker is the group membership Bergenholm uses to flag an installed host.
	// bergctl controls it through HostStateInstalled and HostStateUninstalled only.
	InstalledMarker = "installed"
)

// Params is the parameter set of a group or host as stored by Bergenholm.
// Values are JSON-compatible: maps, lists, strings, numbers, booleans and nil.
type Params map[string]any

// DeepCopy returns a copy of p that shares no maps or lists with p.
// A nil receiver yields nil.
func (p Params) DeepCopy() Params {
	if p == nil {
		return nil
	}

	out := make(Params, len(p))
	for key, value := range p {
		out[key] = deepCopyValue(value)
	}

	return out
}

// Merge returns a deep copy of p with every top-level key of overrides set.
// A nil p without overrides stays nil.
func (p Params) Merge(overrides Params) Params {
	merged := p.DeepCopy()
	if len(overrides) == 0 {
		return merged
	}

	if merged == nil {
		merged = make(Params, len(overrides))
	}

	for key, value := range overrides {
		merged[key] = deepCopyValue(value)
	}

	return merged
}

// Equal reports whether p and other hold structurally equal values.
// Key order is irrelevant, nil and empty lists or maps are equal, and numbers
// are compared by value regardless of their Go type.
func (p Params) Equal(other Params) bool {
	return equalValues(map[string]any(p), map[string]any(other))
}

// Groups returns the groups list of p. A missing groups key yields an empty list.
func (p Params) Groups() ([]any, error) {
	raw, ok := p[GroupsKey]
	if !ok || raw == nil {
		return []any{}, nil
	}

	switch groups := raw.(type) {
	case []any:
		return groups, nil
	case []string:
		out := make([]any, 0, len(groups))
		for _, group := range groups {
			out = append(out, group)
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: got %T", ErrInvalidGroups, raw)
	}
}

// SplitInstalled returns a copy of p whose groups list exists and no longer
// contains the installed marker, and whether the marker was present.
func (p Params) SplitInstalled() (Params, bool, error) {
	groups, err := p.Groups()
	if err != nil {
		return nil, false, err
	}

	installed := false
	kept := make([]any, 0, len(groups))

	for _, group := range groups {
		if name, ok := group.(string); ok && name == InstalledMarker {
			installed = true

			continue
		}

		kept = append(kept, deepCopyValue(group))
	}

	out := p.DeepCopy()
	if out == nil {
		out = Params{}
	}

	out[GroupsKey] = kept

	return out, installed, nil
}

// WithInstalled returns a copy of p with the installed marker appended to its groups.
func (p Params) WithInstalled() (Params, error) {
	stripped, _, err := p.SplitInstalled()
	if err != nil {
		return nil, err
	}

	groups, _ := stripped[GroupsKey].([]any)
	stripped[GroupsKey] = append(groups, InstalledMarker)

	return stripped, nil
}

// --- internals ---

func deepCopyValue(value any) any {
	switch typed := value.(type) {
	case Params:
		return typed.DeepCopy()
	case map[string]any:
		return map[string]any(Params(typed).DeepCopy())
	case []any:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = deepCopyValue(item)
		}

		return out
	case []string:
		out := make([]string, len(typed))
		copy(out, typed)

		return out
	default:
		return value
	}
}

//nolint:cyclop // one case per JSON kind
func equalValues(left, right any) bool {
	left, right = normalizeValue(left), normalizeValue(right)

	switch l := left.(type) {
	case map[string]any:
		r, ok := right.(map[string]any)
		if !ok || len(l) != len(r) {
			return false
		}

		for key, lv := range l {
			rv, found := r[key]
			if !found || !equalValues(lv, rv) {
				return false
			}
		}

		return true
	case []any:
		r, ok := right.([]any)
		if !ok || len(l) != len(r) {
			return false
		}

		for i := range l {
			if !equalValues(l[i], r[i]) {
				return false
			}
		}

		return true
	case float64:
		r, ok := right.(float64)

		return ok && l == r
	default:
		return reflect.DeepEqual(left, right)
	}
}

// normalizeValue folds the Go representations a JSON value can take into one
// canonical form so that equalValues only deals with maps, lists and float64.
//
//nolint:cyclop // one case per numeric kind
func normalizeValue(value any) any {
	switch typed := value.(type) {
	case Params:
		if typed == nil {
			return map[string]any{}
		}

		return map[string]any(typed)
	case map[string]any:
		if typed == nil {
			return map[string]any{}
		}

		return typed
	case []any:
		if typed == nil {
			return []any{}
		}

		return typed
	case []string:
		out := make([]any, len(typed))
		for i, item := range typed {
			out[i] = item
		}

		return out
	case int:
		return float64(typed)
	case int32:
		return float64(typed)
	case int64:
		return float64(typed)
	case uint:
		return float64(typed)
	case uint32:
		return float64(typed)
	case uint64:
		return float64(typed)
	case float32:
		return float64(typed)
	default:
		return value
	}
}
