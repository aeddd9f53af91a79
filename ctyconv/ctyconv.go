// Package ctyconv lets cty values take part in the defaults helpers.
//
// Values cross over in their most natural Go form: strings, float64 numbers,
// bools, []any for lists, tuples and sets, defaults.Object for objects and
// maps. A null becomes nil and an unknown value becomes defaults.Undefined.
package ctyconv

import (
	"fmt"
	"reflect"

	"github.com/on-the-ground/nothing/defaults"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ToNative recursively converts v to its Go counterpart.
func ToNative(v cty.Value) (any, error) {
	if !v.IsKnown() {
		return defaults.Undefined, nil
	}
	if v.IsNull() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("could not convert cty.Number to float64: %w", err)
		}
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0, v.LengthInt())
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			native, err := ToNative(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, native)
		}
		return out, nil

	case ty.IsObjectType() || ty.IsMapType():
		out := defaults.NewObject()
		for it := v.ElementIterator(); it.Next(); {
			key, elem := it.Element()
			native, err := ToNative(elem)
			if err != nil {
				return nil, fmt.Errorf("in attribute '%s': %w", key.AsString(), err)
			}
			out[key.AsString()] = native
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported cty type for conversion: %s", ty.FriendlyName())
	}
}

// FromNative converts a Go value back into cty. Absence markers, NaN
// included, become a dynamic null; Undefined becomes cty.DynamicVal.
func FromNative(v any) (cty.Value, error) {
	if defaults.TypeOf(v) == defaults.TagUndefined {
		return cty.DynamicVal, nil
	}
	v = defaults.Normalize(v)

	switch v := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case defaults.Object:
		attrs := make(map[string]cty.Value, len(v))
		for key, elem := range v {
			val, err := FromNative(elem)
			if err != nil {
				return cty.NilVal, fmt.Errorf("in attribute '%s': %w", key, err)
			}
			attrs[key] = val
		}
		return cty.ObjectVal(attrs), nil
	case []any:
		return tupleOf(len(v), func(i int) any { return v[i] })
	}

	rv := reflect.ValueOf(v)
	switch defaults.TypeOf(v) {
	case defaults.TagString:
		return cty.StringVal(rv.String()), nil
	case defaults.TagBoolean:
		return cty.BoolVal(rv.Bool()), nil
	case defaults.TagNumber:
		switch rv.Kind() {
		case reflect.Float32, reflect.Float64:
			return cty.NumberFloatVal(rv.Float()), nil
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return cty.NumberUIntVal(rv.Uint()), nil
		default:
			return cty.NumberIntVal(rv.Int()), nil
		}
	case defaults.TagArray:
		return tupleOf(rv.Len(), func(i int) any { return rv.Index(i).Interface() })
	}
	return cty.NilVal, fmt.Errorf("unsupported type for conversion to cty.Value: %T", v)
}

func tupleOf(n int, at func(int) any) (cty.Value, error) {
	elems := make([]cty.Value, 0, n)
	for i := 0; i < n; i++ {
		val, err := FromNative(at(i))
		if err != nil {
			return cty.NilVal, fmt.Errorf("at index %d: %w", i, err)
		}
		elems = append(elems, val)
	}
	return cty.TupleVal(elems), nil
}

// IsDefault reports whether v is null, unknown, or converts to a default Go value.
// Values that cannot be converted are never default.
func IsDefault(v cty.Value) bool {
	if !v.IsKnown() || v.IsNull() {
		return true
	}
	native, err := ToNative(v)
	if err != nil {
		return false
	}
	return defaults.IsDefault(native)
}

// Purify drops default attributes from an object value, as defaults.Purification does.
func Purify(v cty.Value, depth ...int) (cty.Value, error) {
	native, err := ToNative(v)
	if err != nil {
		return cty.NilVal, fmt.Errorf("purify: %w", err)
	}
	purified, err := defaults.Purification(native, depth...)
	if err != nil {
		return cty.NilVal, fmt.Errorf("purify: %w", err)
	}
	return FromNative(purified)
}
