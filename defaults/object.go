package defaults

// FromObject copies the requested own properties of source into a fresh Object.
// Requested keys missing from source are skipped. Every property must be a string.
func FromObject(source any, properties ...any) (Object, error) {
	s, err := asObject("FromObject", "source", source, false)
	if err != nil {
		return nil, err
	}
	names, err := propertyNames("FromObject", properties)
	if err != nil {
		return nil, err
	}

	out := NewObject()
	for _, name := range names {
		if v, ok := s[name]; ok {
			out[name] = v
		}
	}
	return out, nil
}

// ShallowMerge copies every key of source into target, overwriting on conflict.
// Nested values are shared with source, not cloned. It returns target.
func ShallowMerge(target, source any) (Object, error) {
	t, err := asObject("ShallowMerge", "target", target, true)
	if err != nil {
		return nil, err
	}
	s, err := asObject("ShallowMerge", "source", source, false)
	if err != nil {
		return nil, err
	}

	for k, v := range s {
		t[k] = v
	}
	return t, nil
}

// DeepMerge merges source into target and returns target.
//
// Nested objects are merged key by key, each level consuming one unit of
// depth; a depth of 0 leaves target untouched and a negative depth (the
// default) is unlimited. Sequences and scalars replace whatever target holds.
// When target has no object at a key that source nests into, a fresh one is
// created there, so target never aliases containers owned by source.
func DeepMerge(target, source any, depth ...int) (Object, error) {
	t, err := asObject("DeepMerge", "target", target, true)
	if err != nil {
		return nil, err
	}
	s, err := asObject("DeepMerge", "source", source, false)
	if err != nil {
		return nil, err
	}
	return deepMerge(t, s, normalizeDepth(depth)), nil
}

func deepMerge(t, s Object, depth int) Object {
	if depth == 0 {
		logger.Sugar().Debugf("deep merge stopped: depth exhausted, %d keys left unmerged", len(s))
		return t
	}
	for k, v := range s {
		nested, ok := v.(Object)
		if !ok {
			t[k] = v
			continue
		}
		existing, ok := t[k].(Object)
		if !ok || existing == nil {
			existing = NewObject()
		}
		t[k] = deepMerge(existing, nested, next(depth))
	}
	return t
}

// Purification returns a fresh Object holding only the non-default values of
// source, with nested objects purified in turn. Sequences are kept as they are.
// A depth of 0 returns source itself without looking at it.
func Purification(source any, depth ...int) (any, error) {
	d := normalizeDepth(depth)
	if d == 0 {
		return source, nil
	}
	s, err := asObject("Purification", "source", source, false)
	if err != nil {
		return nil, err
	}
	return purify(s, d), nil
}

func purify(s Object, depth int) Object {
	if depth == 0 {
		return s
	}
	out := NewObject()
	for k, v := range s {
		if IsDefault(v) {
			continue
		}
		if nested, ok := v.(Object); ok {
			out[k] = purify(nested, next(depth))
			continue
		}
		out[k] = v
	}
	return out
}

// CutDefault deletes default-valued keys from source in place, descending into
// nested objects. A nested object emptied this way stays where it is.
func CutDefault(source any, depth ...int) error {
	s, err := asObject("CutDefault", "source", source, false)
	if err != nil {
		return err
	}
	cutDefault(s, normalizeDepth(depth))
	return nil
}

func cutDefault(s Object, depth int) {
	if depth == 0 {
		return
	}
	for k, v := range s {
		if IsDefault(v) {
			delete(s, k)
			continue
		}
		if nested, ok := v.(Object); ok {
			cutDefault(nested, next(depth))
		}
	}
}

// normalizeDepth flattens the optional depth argument.
//
// Accepts either 0 or 1 values. Panics if more than one is passed.
func normalizeDepth(depth []int) int {
	switch len(depth) {
	case 1:
		return depth[0]
	case 0:
		return Unlimited
	default:
		panic("normalizeDepth: only one or zero depth values allowed")
	}
}

func next(depth int) int {
	if depth < 0 {
		return depth
	}
	return depth - 1
}
