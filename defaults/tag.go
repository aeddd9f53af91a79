package defaults

import "reflect"

// Tag classifies a value for the purpose of picking its canonical default.
type Tag string

const (
	TagObject    Tag = "object"
	TagString    Tag = "string"
	TagNumber    Tag = "number"
	TagBoolean   Tag = "boolean"
	TagArray     Tag = "array"
	TagFunction  Tag = "function"
	TagNull      Tag = "null"
	TagUndefined Tag = "undefined"
)

// Object is a keyed container: string keys, arbitrary values, no inherited members.
type Object = map[string]any

// Unlimited is the depth budget that lets recursive helpers walk the whole tree.
const Unlimited = -1

type undefined struct{}

func (undefined) String() string { return "undefined" }

// Undefined marks a value that was never provided. It is distinct from nil,
// which plays the role of an explicit null.
var Undefined any = undefined{}

// DoNothing accepts anything and yields Undefined. It is the default for TagFunction.
func DoNothing(...any) any { return Undefined }

// NewObject returns a fresh empty keyed container.
func NewObject() Object { return Object{} }

// table is never written after init. Containers come from factories so no
// caller ever shares an empty default with another.
var table = map[Tag]func() any{
	TagObject:    func() any { return NewObject() },
	TagString:    func() any { return "" },
	TagNumber:    func() any { return float64(0) },
	TagBoolean:   func() any { return false },
	TagArray:     func() any { return []any{} },
	TagFunction:  func() any { return DoNothing },
	TagNull:      func() any { return nil },
	TagUndefined: func() any { return Undefined },
}

// Tags lists every known tag.
func Tags() []Tag {
	return []Tag{TagObject, TagString, TagNumber, TagBoolean, TagArray, TagFunction, TagNull, TagUndefined}
}

// ByType returns the canonical default for tag, or Undefined for an unknown tag.
func ByType(tag Tag) any {
	if mk, ok := table[tag]; ok {
		return mk()
	}
	return Undefined
}

// ByValue returns the canonical default for the tag TypeOf(v) reports.
func ByValue(v any) any {
	return ByType(TypeOf(v))
}

// TypeOf classifies v. Sequences are reported as TagArray before any
// container check. NaN stays a number here; it only counts as absent in
// IsDefault and Normalize.
func TypeOf(v any) Tag {
	switch v.(type) {
	case nil:
		return TagNull
	case undefined:
		return TagUndefined
	case string:
		return TagString
	case bool:
		return TagBoolean
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64:
		return TagNumber
	case []any:
		return TagArray
	case Object:
		return TagObject
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		return TagArray
	case reflect.Func:
		if rv.IsNil() {
			return TagNull
		}
		return TagFunction
	case reflect.Pointer, reflect.Interface, reflect.Chan, reflect.UnsafePointer:
		if rv.IsNil() {
			return TagNull
		}
	case reflect.String:
		return TagString
	case reflect.Bool:
		return TagBoolean
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return TagNumber
	}
	return TagObject
}
