package defaults

import (
	"fmt"

	"go.uber.org/multierr"
)

var ErrType = fmt.Errorf("type error")

// TypeError reports an argument of the wrong shape handed to an object helper.
type TypeError struct {
	Op    string
	Param string
	Want  string
	Got   string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("%v: %s: %s must be %s, got %s", ErrType, e.Op, e.Param, e.Want, e.Got)
}

func (e *TypeError) Unwrap() error {
	return ErrType
}

func newTypeError(op, param, want, got string) *TypeError {
	logger.Sugar().Debugf("rejected argument: op: %s, param: %s, got: %s", op, param, got)
	return &TypeError{Op: op, Param: param, Want: want, Got: got}
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case undefined:
		return "undefined"
	}
	return fmt.Sprintf("%T", v)
}

// asObject validates that v is a keyed container. writable additionally
// rejects a nil map, which would panic on the first assignment.
func asObject(op, param string, v any, writable bool) (Object, error) {
	o, ok := v.(Object)
	if !ok {
		return nil, newTypeError(op, param, "an object", describe(v))
	}
	if writable && o == nil {
		return nil, newTypeError(op, param, "a non-nil object", "nil map")
	}
	return o, nil
}

// propertyNames validates every requested property, reporting all offenders at once.
func propertyNames(op string, properties []any) ([]string, error) {
	names := make([]string, 0, len(properties))
	var errs error
	for i, p := range properties {
		name, ok := p.(string)
		if !ok {
			errs = multierr.Append(errs, newTypeError(op, fmt.Sprintf("properties[%d]", i), "a string", describe(p)))
			continue
		}
		names = append(names, name)
	}
	return names, errs
}
