package defaults

import (
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint digests a value tree so that structurally equal trees collide.
// Map keys are visited in sorted order. Every container and leaf is tagged
// with its Go type, integers are hashed exactly and floats by their bits, so
// int(1), int64(1) and 1.0 differ, as do an Object and a map[string]string
// with the same entries. Cyclic trees never terminate.
func Fingerprint(v any) uint64 {
	d := xxhash.New()
	writeValue(d, v)
	return d.Sum64()
}

func writeValue(d *xxhash.Digest, v any) {
	switch v := v.(type) {
	case nil:
		d.WriteString("n")
		return
	case undefined:
		d.WriteString("u")
		return
	case Object:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		d.WriteString("{")
		for _, k := range keys {
			writeString(d, k)
			writeValue(d, v[k])
		}
		d.WriteString("}")
		return
	case []any:
		d.WriteString("[")
		for _, e := range v {
			writeValue(d, e)
		}
		d.WriteString("]")
		return
	}

	rv := reflect.ValueOf(v)
	writeString(d, rv.Type().String())
	switch rv.Kind() {
	case reflect.String:
		writeString(d, rv.String())
	case reflect.Bool:
		d.WriteString(strconv.FormatBool(rv.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		d.WriteString(strconv.FormatInt(rv.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		d.WriteString(strconv.FormatUint(rv.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		d.WriteString(strconv.FormatUint(math.Float64bits(rv.Float()), 16))
	case reflect.Func, reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		d.WriteString(strconv.FormatUint(uint64(rv.Pointer()), 16))
	case reflect.Slice, reflect.Array:
		d.WriteString("[")
		for i := 0; i < rv.Len(); i++ {
			writeValue(d, rv.Index(i).Interface())
		}
		d.WriteString("]")
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			fmt.Fprintf(d, "%v", v)
			return
		}
		keys := rv.MapKeys()
		slices.SortFunc(keys, func(a, b reflect.Value) int {
			switch {
			case a.String() < b.String():
				return -1
			case a.String() > b.String():
				return 1
			}
			return 0
		})
		d.WriteString("{")
		for _, k := range keys {
			writeString(d, k.String())
			writeValue(d, rv.MapIndex(k).Interface())
		}
		d.WriteString("}")
	default:
		fmt.Fprintf(d, "%v", v)
	}
}

func writeString(d *xxhash.Digest, s string) {
	d.WriteString(strconv.Itoa(len(s)) + ":")
	d.WriteString(s)
}
