// Package defaults knows what "nothing" looks like for every kind of value.
//
// A value is classified into a Tag (object, string, number, boolean, array,
// function, null, undefined) and each tag has exactly one canonical default:
//
//	""            for TagString
//	float64(0)    for TagNumber
//	false         for TagBoolean
//	[]any{}       for TagArray
//	Object{}      for TagObject
//	DoNothing     for TagFunction
//	nil           for TagNull
//	Undefined     for TagUndefined
//
// On top of that table the package offers:
//   - IsDefault, SetDefault, Fallback and Normalize for single values.
//   - FromObject, ShallowMerge and DeepMerge to combine keyed containers.
//   - Purification and CutDefault to strip defaults out of nested data.
//
// Keyed containers are plain map[string]any values (see Object). Sequences are
// never merged or descended into; they are compared by length and otherwise
// treated as opaque values.
//
// Recursive helpers take an optional depth budget. Each descent into a nested
// object consumes one unit, 0 turns the call into a no-op and a negative
// budget is unlimited. There is no cycle detection: bound the depth when the
// input may reference itself.
//
// Nothing here synchronizes. ShallowMerge, DeepMerge and CutDefault mutate
// their first argument and callers sharing that container across goroutines
// must serialize access themselves.
package defaults
