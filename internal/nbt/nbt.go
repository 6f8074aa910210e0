// Package nbt normalizes the NBT-tagged JSON dialect emitted by the
// DefaultQuests mod into ordinary JSON: object keys carrying a trailing
// ":<type-id>" suffix are stripped, and objects whose keys are all decimal
// indices are promoted into arrays.
//
// Because two of the dialect's rules — collision merge order and the
// "first entry wins" heuristic used elsewhere in this module for picking
// an un-tagged properties blob — are defined in terms of the *original*
// document's key order, and Go's encoding/json loses that order the
// moment it lands in a map[string]any, this package decodes JSON itself
// with an order-preserving Object representation instead of unmarshaling
// into map[string]any.
package nbt

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// KV is one key/value pair of an order-preserving object.
type KV struct {
	Key   string
	Value any
}

// Object is a JSON object that preserves the order its keys were decoded
// in. Values are the same tree shape Decode produces: nil, bool,
// json.Number, string, []any, or Object.
type Object []KV

// Get returns the value associated with key and whether it was present.
func (o Object) Get(key string) (any, bool) {
	for _, kv := range o {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return nil, false
}

// First returns the object's first key/value pair in decode order.
func (o Object) First() (KV, bool) {
	if len(o) == 0 {
		return KV{}, false
	}
	return o[0], true
}

// Decode parses JSON text into an order-preserving tree: Object for
// objects, []any for arrays, and json.Number/string/bool/nil for scalars.
func Decode(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("nbt: trailing data after JSON document")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	return decodeFromToken(dec, tok)
}

func decodeFromToken(dec *json.Decoder, tok json.Token) (any, error) {
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			obj := Object{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("nbt: expected object key, got %v", keyTok)
				}
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				obj = append(obj, KV{Key: key, Value: val})
			}
			if _, err := dec.Token(); err != nil { // consume '}'
				return nil, err
			}
			return obj, nil
		case '[':
			arr := []any{}
			for dec.More() {
				val, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				arr = append(arr, val)
			}
			if _, err := dec.Token(); err != nil { // consume ']'
				return nil, err
			}
			return arr, nil
		default:
			return nil, fmt.Errorf("nbt: unexpected delimiter %v", t)
		}
	default:
		return tok, nil
	}
}

// Normalize recursively strips NBT type-tag suffixes from object keys,
// merges keys that collide after stripping (in first-seen order), and
// promotes numeric-keyed objects into arrays. Scalars pass through
// unchanged. Normalize is idempotent: Normalize(Normalize(v)) == Normalize(v).
func Normalize(v any) any {
	switch val := v.(type) {
	case Object:
		return normalizeObject(val)
	case map[string]any:
		return normalizeObject(objectFromMap(val))
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = Normalize(elem)
		}
		return out
	default:
		return val
	}
}

func normalizeObject(o Object) any {
	stripped := stripAndMerge(o)
	if arr, ok := promoteNumericMap(stripped); ok {
		out := make([]any, len(arr))
		for i, elem := range arr {
			out[i] = Normalize(elem)
		}
		return out
	}
	out := make(Object, 0, len(stripped))
	for _, kv := range stripped {
		out = append(out, KV{Key: kv.Key, Value: Normalize(kv.Value)})
	}
	return out
}

// stripAndMerge strips the trailing ":<tag>" suffix from each key (the
// substring before the *last* colon is kept) and merges values whose keys
// collide after stripping, in first-seen order: the first collision
// promotes the existing value to a two-element slice, later collisions on
// the same key append to it.
func stripAndMerge(o Object) Object {
	out := make(Object, 0, len(o))
	for _, kv := range o {
		stripped := stripSuffix(kv.Key)
		idx := indexOfKey(out, stripped)
		if idx < 0 {
			out = append(out, KV{Key: stripped, Value: kv.Value})
			continue
		}
		existing := out[idx].Value
		if seq, ok := existing.([]any); ok {
			out[idx].Value = append(seq, kv.Value)
		} else {
			out[idx].Value = []any{existing, kv.Value}
		}
	}
	return out
}

func indexOfKey(o Object, key string) int {
	for i, kv := range o {
		if kv.Key == key {
			return i
		}
	}
	return -1
}

func stripSuffix(key string) string {
	for i := len(key) - 1; i >= 0; i-- {
		if key[i] == ':' {
			return key[:i]
		}
	}
	return key
}

// promoteNumericMap reports whether every key of o parses as a
// non-negative base-10 integer; if so it returns the values ordered
// ascending by that parsed index.
func promoteNumericMap(o Object) ([]any, bool) {
	if len(o) == 0 {
		return nil, false
	}
	type indexed struct {
		idx int
		val any
	}
	entries := make([]indexed, 0, len(o))
	for _, kv := range o {
		idx, ok := parseNonNegativeInt(kv.Key)
		if !ok {
			return nil, false
		}
		entries = append(entries, indexed{idx, kv.Value})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].idx < entries[j].idx })
	out := make([]any, len(entries))
	for i, e := range entries {
		out[i] = e.val
	}
	return out, true
}

func parseNonNegativeInt(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
		n = n*10 + int(r-'0')
	}
	return n, true
}

// objectFromMap builds an Object from a plain map[string]any, ordered by
// sorted key, for callers that hand Normalize an already-decoded
// map[string]any (e.g. test fixtures built as Go literals) rather than
// Decode's order-preserving tree. Order is necessarily synthetic in this
// path since map[string]any carries none.
func objectFromMap(m map[string]any) Object {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(Object, 0, len(m))
	for _, k := range keys {
		out = append(out, KV{Key: k, Value: m[k]})
	}
	return out
}

// ToPlain converts a Decode/Normalize tree into the ordinary Go JSON
// shapes (map[string]any, []any, and scalars) used by the library's
// exported Quest/Properties/etc. types, e.g. for "extra" fields.
func ToPlain(v any) any {
	switch val := v.(type) {
	case Object:
		out := make(map[string]any, len(val))
		for _, kv := range val {
			out[kv.Key] = ToPlain(kv.Value)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = ToPlain(elem)
		}
		return out
	default:
		return val
	}
}
