package defaults

import (
	"math"
	"reflect"
)

// IsDefault reports whether v carries no information.
//
// Absence markers (nil, Undefined, NaN, nil pointers) are always default.
// Sequences are default when empty, keyed containers when they have no keys,
// and any other value when it equals ByValue(v). A function is default only
// if it is DoNothing itself.
func IsDefault(v any) bool {
	if isAbsent(v) {
		return true
	}
	if n, ok := sequenceLen(v); ok {
		return n == 0
	}
	if n, ok := containerLen(v); ok {
		return n == 0
	}
	return equalsDefault(v, ByValue(v))
}

// SetDefault returns v, or fallback when v is default.
func SetDefault(v, fallback any) any {
	if IsDefault(v) {
		return fallback
	}
	return v
}

// Fallback is the typed form of SetDefault.
func Fallback[T any](v, fallback T) T {
	if IsDefault(v) {
		return fallback
	}
	return v
}

// Normalize collapses every absence marker to nil and returns anything else unchanged.
// Unlike IsDefault it leaves empty strings, zeros and empty containers alone.
func Normalize(v any) any {
	if isAbsent(v) {
		return ByType(TagNull)
	}
	return v
}

// As asserts v to T. It reports false instead of panicking on a mismatch.
func As[T any](v any) (res T, ok bool) {
	res, ok = v.(T)
	return
}

func isAbsent(v any) bool {
	switch TypeOf(v) {
	case TagNull, TagUndefined:
		return true
	case TagNumber:
		return isNaN(v)
	}
	return false
}

func isNaN(v any) bool {
	switch f := v.(type) {
	case float64:
		return math.IsNaN(f)
	case float32:
		return math.IsNaN(float64(f))
	}
	rv := reflect.ValueOf(v)
	if k := rv.Kind(); k == reflect.Float32 || k == reflect.Float64 {
		return math.IsNaN(rv.Float())
	}
	return false
}

func sequenceLen(v any) (int, bool) {
	if s, ok := v.([]any); ok {
		return len(s), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return rv.Len(), true
	}
	return 0, false
}

// containerLen accepts any map keyed by strings, not only Object, so that
// map[string]string and friends count as keyed containers for the predicate.
func containerLen(v any) (int, bool) {
	if o, ok := v.(Object); ok {
		return len(o), true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		return rv.Len(), true
	}
	return 0, false
}

// equalsDefault compares a scalar against the default picked for its tag.
func equalsDefault(v, d any) bool {
	rv := reflect.ValueOf(v)
	switch d := d.(type) {
	case string:
		return rv.Kind() == reflect.String && rv.String() == d
	case bool:
		return rv.Kind() == reflect.Bool && rv.Bool() == d
	case float64:
		f, ok := toFloat(rv)
		return ok && f == d
	case func(...any) any:
		return rv.Kind() == reflect.Func && rv.Pointer() == reflect.ValueOf(d).Pointer()
	}
	return false
}

func toFloat(rv reflect.Value) (float64, bool) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
