package bridge

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/five82/chromaview/internal/chroma"
)

// Args is the flat argument record passed with a command. Keys use the
// camelCase wire names (collectionName, limit, offset, ...).
type Args map[string]any

// String returns a required string argument.
func (a Args) String(key string) (string, error) {
	v, ok := a[key]
	if !ok || v == nil {
		return "", fmt.Errorf("missing argument %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %q must be a string, got %T", key, v)
	}
	return s, nil
}

// Int returns a required integer argument. JSON-style float64 values are
// accepted when they hold a whole number.
func (a Args) Int(key string) (int, error) {
	v, ok := a[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("missing argument %q", key)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int32:
		return int(n), nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || math.IsNaN(n) {
			return 0, fmt.Errorf("argument %q must be an integer, got %v", key, n)
		}
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("argument %q must be an integer: %w", key, err)
		}
		return int(i), nil
	default:
		return 0, fmt.Errorf("argument %q must be an integer, got %T", key, v)
	}
}

// Strings returns a required string slice argument.
func (a Args) Strings(key string) ([]string, error) {
	v, ok := a[key]
	if !ok || v == nil {
		return nil, fmt.Errorf("missing argument %q", key)
	}
	switch s := v.(type) {
	case []string:
		return s, nil
	case []any:
		out := make([]string, len(s))
		for i, item := range s {
			str, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("argument %q[%d] must be a string, got %T", key, i, item)
			}
			out[i] = str
		}
		return out, nil
	default:
		return nil, fmt.Errorf("argument %q must be a list of strings, got %T", key, v)
	}
}

// OptionalMap returns an optional object argument; absent or nil yields nil.
func (a Args) OptionalMap(key string) (map[string]any, error) {
	v, ok := a[key]
	if !ok || v == nil {
		return nil, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("argument %q must be an object, got %T", key, v)
	}
	return m, nil
}

// OptionalAuth returns the optional authConfig argument.
func (a Args) OptionalAuth(key string) (chroma.Auth, error) {
	v, ok := a[key]
	if !ok || v == nil {
		return chroma.Auth{}, nil
	}
	switch auth := v.(type) {
	case chroma.Auth:
		return auth, nil
	case *chroma.Auth:
		return *auth, nil
	case map[string]any:
		header, _ := auth["header"].(string)
		value, _ := auth["value"].(string)
		return chroma.Auth{Header: header, Value: value}, nil
	default:
		return chroma.Auth{}, fmt.Errorf("argument %q has unsupported type %T", key, v)
	}
}
