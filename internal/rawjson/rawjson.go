// Package rawjson provides the tolerant value-coercion helpers the quest
// loader needs to read the DefaultQuests dialect: fields that are
// sometimes an int, sometimes a bool, sometimes a numeric string, and
// containers that are sometimes an array and sometimes a numeric-keyed
// object the Normalizer didn't get a chance to promote.
package rawjson

import (
	"encoding/json"
	"strconv"
	"strings"

	"questgraph/internal/nbt"
)

// Get looks up key in an nbt.Object or map[string]any, returning (nil,
// false) for any other shape (including nil).
func Get(v any, key string) (any, bool) {
	switch obj := v.(type) {
	case nbt.Object:
		return obj.Get(key)
	case map[string]any:
		val, ok := obj[key]
		return val, ok
	default:
		return nil, false
	}
}

// String extracts the first present key's value as a string. Returns
// ("", false) if none of keys are present or the value isn't a string.
func String(v any, keys ...string) (string, bool) {
	for _, k := range keys {
		if val, ok := Get(v, k); ok {
			if s, ok := val.(string); ok {
				return s, true
			}
		}
	}
	return "", false
}

// Int32 extracts key's value as a signed 32-bit integer, accepting JSON
// numbers and numeric strings.
func Int32(v any, key string) (int32, bool) {
	val, ok := Get(v, key)
	if !ok {
		return 0, false
	}
	return toInt32(val)
}

func toInt32(val any) (int32, bool) {
	switch n := val.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			f, ferr := n.Float64()
			if ferr != nil {
				return 0, false
			}
			return int32(f), true
		}
		return int32(i), true
	case float64:
		return int32(n), true
	case int:
		return int32(n), true
	case int32:
		return n, true
	case int64:
		return int32(n), true
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, false
		}
		return int32(i), true
	default:
		return 0, false
	}
}

// Bool coerces a value into a boolean, accepting real booleans, integer
// 0/1 (any JSON number), and the strings "0"/"1".
func Bool(val any) (bool, bool) {
	switch b := val.(type) {
	case bool:
		return b, true
	case json.Number:
		i, err := b.Int64()
		if err != nil {
			return false, false
		}
		switch i {
		case 0:
			return false, true
		case 1:
			return true, true
		default:
			return false, false
		}
	case float64:
		switch b {
		case 0:
			return false, true
		case 1:
			return true, true
		default:
			return false, false
		}
	case int:
		switch b {
		case 0:
			return false, true
		case 1:
			return true, true
		default:
			return false, false
		}
	case string:
		switch b {
		case "0":
			return false, true
		case "1":
			return true, true
		default:
			return false, false
		}
	default:
		return false, false
	}
}

// BoolField looks up key and coerces it with Bool, returning (false,
// false) if key is absent or not coercible.
func BoolField(v any, key string) (bool, bool) {
	val, ok := Get(v, key)
	if !ok {
		return false, false
	}
	return Bool(val)
}

// AsSlice returns v as a []any, promoting a numeric-keyed nbt.Object or
// map[string]any into an ordered slice as a defensive fallback for
// documents the Normalizer didn't get to run on (or ran on before this
// sub-tree existed, e.g. values assembled programmatically in tests).
func AsSlice(v any) ([]any, bool) {
	switch val := v.(type) {
	case []any:
		return val, true
	case nbt.Object:
		promoted := nbt.Normalize(val)
		arr, ok := promoted.([]any)
		return arr, ok
	case map[string]any:
		promoted := nbt.Normalize(val)
		arr, ok := promoted.([]any)
		return arr, ok
	default:
		return nil, false
	}
}

// Extra returns a shallow plain-JSON copy of v's fields minus the keys
// listed in known, for populating "extra" fields that preserve unmodeled
// data. v must be an nbt.Object or map[string]any; any other shape yields
// an empty map.
func Extra(v any, known ...string) map[string]any {
	skip := make(map[string]bool, len(known))
	for _, k := range known {
		skip[k] = true
	}
	out := map[string]any{}
	switch obj := v.(type) {
	case nbt.Object:
		for _, kv := range obj {
			if skip[kv.Key] {
				continue
			}
			out[kv.Key] = nbt.ToPlain(kv.Value)
		}
	case map[string]any:
		for k, val := range obj {
			if skip[k] {
				continue
			}
			out[k] = nbt.ToPlain(val)
		}
	}
	return out
}
