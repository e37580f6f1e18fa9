package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
)

// Props maps attribute names to arbitrary values.
// A node's props are always replaced wholesale, never merged.
type Props map[string]any

// Lookup returns the first truthy value among keys. Missing keys, nil,
// false, the empty string and numeric zero fall through to the next key.
func (p Props) Lookup(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := p[k]; ok && truthy(v) {
			return v, true
		}
	}
	return nil, false
}

// String returns the first truthy value among keys rendered as a string,
// or the empty string. Non-scalar values are formatted, never rejected.
func (p Props) String(keys ...string) string {
	v, ok := p.Lookup(keys...)
	if !ok {
		return ""
	}
	switch tv := v.(type) {
	case string:
		return tv
	case fmt.Stringer:
		return tv.String()
	default:
		return fmt.Sprint(tv)
	}
}

// StringOr is String with a fallback for when no key holds a truthy value.
func (p Props) StringOr(def string, keys ...string) string {
	if s := p.String(keys...); s != "" {
		return s
	}
	return def
}

func truthy(v any) bool {
	switch tv := v.(type) {
	case nil:
		return false
	case bool:
		return tv
	case string:
		return tv != ""
	case json.Number:
		f, err := tv.Float64()
		return err != nil || (f != 0 && !math.IsNaN(f))
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && !math.IsNaN(f)
	}
	return true
}

// PropsDiff lists keys that differ between two prop sets.
type PropsDiff struct {
	Added   []string `json:"added,omitempty"`
	Changed []string `json:"changed,omitempty"`
	Removed []string `json:"removed,omitempty"`
}

// IsEmpty reports whether the two prop sets were deeply equal.
func (d PropsDiff) IsEmpty() bool {
	return len(d.Added) == 0 && len(d.Changed) == 0 && len(d.Removed) == 0
}

// DiffProps compares two prop sets key by key. Keys are returned sorted.
func DiffProps(oldProps, newProps Props) PropsDiff {
	var d PropsDiff

	for k, newVal := range newProps {
		oldVal, exists := oldProps[k]
		if !exists {
			d.Added = append(d.Added, k)
		} else if !reflect.DeepEqual(oldVal, newVal) {
			d.Changed = append(d.Changed, k)
		}
	}
	for k := range oldProps {
		if _, exists := newProps[k]; !exists {
			d.Removed = append(d.Removed, k)
		}
	}

	sort.Strings(d.Added)
	sort.Strings(d.Changed)
	sort.Strings(d.Removed)
	return d
}
