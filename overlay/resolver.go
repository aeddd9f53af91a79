// Package overlay resolves stacked layers of defaults into one purified object.
package overlay

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"github.com/on-the-ground/nothing/defaults"
	"github.com/on-the-ground/nothing/internal/memo"
	"go.uber.org/zap"
)

const defaultMemoSize = 64

// Resolver merges layers and remembers recent results. It is safe for concurrent use.
type Resolver struct {
	ResolverId string
	logger     *zap.Logger
	depth      int
	memoSize   uint32
	memo       *memo.Trie[defaults.Object]
}

type Option func(*Resolver)

func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithDepth bounds how deep layers are merged and purified. Negative means unlimited.
func WithDepth(depth int) Option {
	return func(r *Resolver) { r.depth = depth }
}

// WithMemoSize sets how many results a memo generation holds. It must be positive.
func WithMemoSize(size uint32) Option {
	return func(r *Resolver) { r.memoSize = size }
}

func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{
		ResolverId: uuid.New().String(),
		logger:     zap.NewNop(),
		depth:      defaults.Unlimited,
		memoSize:   defaultMemoSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.memo = memo.New[defaults.Object](r.memoSize)
	r.logger.Sugar().Debugf("created resolver: resolverId: %v, depth: %v, memoSize: %v", r.ResolverId, r.depth, r.memoSize)
	return r
}

// Resolve deep-merges layers left to right into a fresh object and strips
// every default value from the result. The caller owns the returned object.
func (r *Resolver) Resolve(layers ...Layer) (defaults.Object, error) {
	if len(layers) == 0 {
		return defaults.NewObject(), nil
	}

	path := make([]uint64, len(layers))
	for i, l := range layers {
		path[i] = defaults.Fingerprint(l.Values)
	}
	if cached, ok := r.memo.Load(path); ok {
		r.logger.Sugar().Debugf("memo hit: resolverId: %v, layers: %d", r.ResolverId, len(layers))
		return deepCopy(cached), nil
	}

	merged := defaults.NewObject()
	for _, l := range layers {
		if _, err := defaults.DeepMerge(merged, l.Values, r.depth); err != nil {
			return nil, fmt.Errorf("merge layer %s: %w", l.Name, err)
		}
	}
	purified, err := defaults.Purification(merged, r.depth)
	if err != nil {
		return nil, fmt.Errorf("purify layers: %w", err)
	}
	resolved, _ := defaults.As[defaults.Object](purified)

	r.memo.Store(path, deepCopy(resolved))
	r.logger.Sugar().Debugf("memo miss: resolverId: %v, layers: %d, keys: %d", r.ResolverId, len(layers), len(resolved))
	return deepCopy(resolved), nil
}

// Lookup reads a nested value by key path and asserts it to T.
func Lookup[T any](obj defaults.Object, path ...string) (T, bool) {
	var zero T
	if len(path) == 0 {
		return zero, false
	}
	var cur any = obj
	for _, key := range path {
		o, ok := cur.(defaults.Object)
		if !ok {
			return zero, false
		}
		if cur, ok = o[key]; !ok {
			return zero, false
		}
	}
	return defaults.As[T](cur)
}

func deepCopy(in defaults.Object) defaults.Object {
	out := make(defaults.Object, len(in))
	for k, v := range in {
		out[k] = deepCopyAny(v)
	}
	return out
}

// deepCopyAny copies every map and slice in the tree, typed ones included.
// Pointers, funcs and chans are still shared.
func deepCopyAny(v any) any {
	switch typed := v.(type) {
	case defaults.Object:
		return deepCopy(typed)
	case []any:
		out := make([]any, 0, len(typed))
		for _, item := range typed {
			out = append(out, deepCopyAny(item))
		}
		return out
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		for it := rv.MapRange(); it.Next(); {
			out.SetMapIndex(it.Key(), deepCopyValue(it.Value()))
		}
		return out.Interface()
	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out.Index(i).Set(deepCopyValue(rv.Index(i)))
		}
		return out.Interface()
	}
	return v
}

func deepCopyValue(rv reflect.Value) reflect.Value {
	copied := deepCopyAny(rv.Interface())
	if copied == nil {
		return reflect.Zero(rv.Type())
	}
	return reflect.ValueOf(copied)
}
