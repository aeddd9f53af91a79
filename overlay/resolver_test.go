package overlay_test

import (
	"sync"
	"testing"

	"github.com/on-the-ground/nothing/defaults"
	"github.com/on-the-ground/nothing/overlay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func layers(t *testing.T) []overlay.Layer {
	base, err := overlay.DecodeYAML("base", []byte(baseYAML))
	require.NoError(t, err)
	override, err := overlay.DecodeHCL("override.hcl", []byte(overrideHCL))
	require.NoError(t, err)
	return []overlay.Layer{base, override}
}

func TestResolve(t *testing.T) {
	r := overlay.NewResolver()

	got, err := r.Resolve(layers(t)...)
	require.NoError(t, err)
	assert.Equal(t, defaults.Object{
		"name": "app",
		"port": float64(9090),
		"tags": []any{"b", "c"},
		"db": defaults.Object{
			"host": "db.internal",
			"pool": defaults.Object{"size": 4},
		},
		"ports": defaults.Object{"80": "http"},
	}, got)
}

func TestResolve_NoLayers(t *testing.T) {
	got, err := overlay.NewResolver().Resolve()
	require.NoError(t, err)
	assert.Equal(t, defaults.Object{}, got)
}

func TestResolve_LayersAreNotMutated(t *testing.T) {
	ls := layers(t)
	_, err := overlay.NewResolver().Resolve(ls...)
	require.NoError(t, err)

	assert.Equal(t, "localhost", ls[0].Values["db"].(defaults.Object)["host"])
	assert.Equal(t, "", ls[0].Values["db"].(defaults.Object)["user"])
}

func TestResolve_Memoized(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	r := overlay.NewResolver(overlay.WithLogger(zap.New(core)))

	first, err := r.Resolve(layers(t)...)
	require.NoError(t, err)
	first["name"] = "tampered"
	first["db"].(defaults.Object)["host"] = "tampered"

	second, err := r.Resolve(layers(t)...)
	require.NoError(t, err)
	assert.Equal(t, "app", second["name"])
	assert.Equal(t, "db.internal", second["db"].(defaults.Object)["host"])

	assert.Equal(t, 1, logs.FilterMessageSnippet("memo miss").Len())
	assert.Equal(t, 1, logs.FilterMessageSnippet("memo hit").Len())
	for _, entry := range logs.All() {
		assert.Contains(t, entry.Message, r.ResolverId)
	}
}

func TestResolve_OrderMatters(t *testing.T) {
	r := overlay.NewResolver(overlay.WithMemoSize(1))
	a := overlay.Layer{Name: "a", Values: defaults.Object{"v": "a"}}
	b := overlay.Layer{Name: "b", Values: defaults.Object{"v": "b"}}

	ab, err := r.Resolve(a, b)
	require.NoError(t, err)
	ba, err := r.Resolve(b, a)
	require.NoError(t, err)

	assert.Equal(t, "b", ab["v"])
	assert.Equal(t, "a", ba["v"])
}

func TestResolve_Depth(t *testing.T) {
	r := overlay.NewResolver(overlay.WithDepth(1))
	got, err := r.Resolve(
		overlay.Layer{Name: "a", Values: defaults.Object{"x": 1, "n": defaults.Object{"k": 1}}},
		overlay.Layer{Name: "b", Values: defaults.Object{"y": 2, "n": defaults.Object{"j": 2}}},
	)
	require.NoError(t, err)
	assert.Equal(t, defaults.Object{"x": 1, "y": 2}, got)
}

func TestResolve_Concurrent(t *testing.T) {
	r := overlay.NewResolver(overlay.WithMemoSize(2))
	ls := layers(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := r.Resolve(ls...)
			assert.NoError(t, err)
			assert.Equal(t, "db.internal", got["db"].(defaults.Object)["host"])
		}()
	}
	wg.Wait()
}

func TestLookup(t *testing.T) {
	obj := defaults.Object{"db": defaults.Object{"pool": defaults.Object{"size": 4}}, "name": "app"}

	size, ok := overlay.Lookup[int](obj, "db", "pool", "size")
	assert.True(t, ok)
	assert.Equal(t, 4, size)

	name, ok := overlay.Lookup[string](obj, "name")
	assert.True(t, ok)
	assert.Equal(t, "app", name)

	_, ok = overlay.Lookup[string](obj, "db", "pool", "size")
	assert.False(t, ok)
	_, ok = overlay.Lookup[int](obj, "db", "missing")
	assert.False(t, ok)
	_, ok = overlay.Lookup[int](obj, "name", "deeper")
	assert.False(t, ok)
	_, ok = overlay.Lookup[int](obj)
	assert.False(t, ok)
}

func TestResolve_OverlappingStacks(t *testing.T) {
	a := overlay.Layer{Name: "a", Values: defaults.Object{"v": "a", "only_a": 1}}
	b := overlay.Layer{Name: "b", Values: defaults.Object{"v": "b"}}

	// short stack first, then long stack first
	for _, stacks := range [][][]overlay.Layer{
		{{a}, {a, b}},
		{{a, b}, {a}},
	} {
		r := overlay.NewResolver()
		for _, stack := range stacks {
			got, err := r.Resolve(stack...)
			require.NoError(t, err)
			assert.Equal(t, stack[len(stack)-1].Name, got["v"])
			assert.Equal(t, 1, got["only_a"])
		}
	}
}

func TestResolve_ContainerKindIsPartOfTheKey(t *testing.T) {
	r := overlay.NewResolver()

	typed, err := r.Resolve(overlay.Layer{Name: "typed", Values: defaults.Object{"n": map[string]string{"x": ""}}})
	require.NoError(t, err)
	assert.Equal(t, defaults.Object{"n": map[string]string{"x": ""}}, typed)

	plain, err := r.Resolve(overlay.Layer{Name: "plain", Values: defaults.Object{"n": defaults.Object{"x": ""}}})
	require.NoError(t, err)
	assert.Equal(t, defaults.Object{"n": defaults.Object{}}, plain)
}

func TestResolve_LargeIntegersAreDistinct(t *testing.T) {
	const big = 1 << 53
	r := overlay.NewResolver()

	first, err := r.Resolve(overlay.Layer{Name: "a", Values: defaults.Object{"id": big}})
	require.NoError(t, err)
	second, err := r.Resolve(overlay.Layer{Name: "b", Values: defaults.Object{"id": big + 1}})
	require.NoError(t, err)

	assert.Equal(t, big, first["id"])
	assert.Equal(t, big+1, second["id"])
}

func TestResolve_TypedContainersAreCopied(t *testing.T) {
	hosts := map[string]string{"primary": "db1"}
	tags := []string{"a", "b"}
	layer := overlay.Layer{Name: "typed", Values: defaults.Object{"hosts": hosts, "tags": tags}}
	r := overlay.NewResolver()

	first, err := r.Resolve(layer)
	require.NoError(t, err)
	first["hosts"].(map[string]string)["primary"] = "tampered"
	first["tags"].([]string)[0] = "tampered"

	assert.Equal(t, "db1", hosts["primary"])
	assert.Equal(t, "a", tags[0])

	second, err := r.Resolve(layer)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"primary": "db1"}, second["hosts"])
	assert.Equal(t, []string{"a", "b"}, second["tags"])
}
