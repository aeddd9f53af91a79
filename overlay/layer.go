package overlay

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/on-the-ground/nothing/ctyconv"
	"github.com/on-the-ground/nothing/defaults"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

var ErrUnsupportedFormat = fmt.Errorf("unsupported layer format")

// Layer is one named source of values. Later layers win when resolved.
type Layer struct {
	Name   string
	Values defaults.Object
}

// DecodeYAML reads a YAML mapping into a layer. An empty document yields an empty layer.
func DecodeYAML(name string, src []byte) (Layer, error) {
	var doc any
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return Layer{}, fmt.Errorf("yaml unmarshal %s: %w", name, err)
	}
	if doc == nil {
		return Layer{Name: name, Values: defaults.NewObject()}, nil
	}
	values, ok := normalizeYAML(doc).(defaults.Object)
	if !ok {
		return Layer{}, fmt.Errorf("layer %s: top level must be a mapping, got %T", name, doc)
	}
	return Layer{Name: name, Values: values}, nil
}

// normalizeYAML rewrites mappings with non-string keys into Objects.
func normalizeYAML(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, elem := range v {
			v[k] = normalizeYAML(elem)
		}
		return v
	case map[any]any:
		out := make(defaults.Object, len(v))
		for k, elem := range v {
			out[fmt.Sprint(k)] = normalizeYAML(elem)
		}
		return out
	case []any:
		for i, elem := range v {
			v[i] = normalizeYAML(elem)
		}
		return v
	}
	return v
}

// DecodeHCL reads the top-level attributes of an HCL document into a layer.
// Expressions are evaluated without variables or functions; blocks are rejected.
func DecodeHCL(name string, src []byte) (Layer, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, name)
	if diags.HasErrors() {
		return Layer{}, fmt.Errorf("failed to parse HCL layer %s: %s", name, diags.Error())
	}
	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return Layer{}, fmt.Errorf("failed to decode HCL layer %s: %s", name, diags.Error())
	}

	values := defaults.NewObject()
	for attrName, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return Layer{}, fmt.Errorf("failed to evaluate %s in HCL layer %s: %s", attrName, name, diags.Error())
		}
		native, err := ctyconv.ToNative(val)
		if err != nil {
			return Layer{}, fmt.Errorf("HCL layer %s: in attribute '%s': %w", name, attrName, err)
		}
		values[attrName] = native
	}
	return Layer{Name: name, Values: values}, nil
}

// LoadFiles decodes each file by extension (.yaml, .yml or .hcl), in order.
// Every failing file is reported, not only the first.
func LoadFiles(paths ...string) ([]Layer, error) {
	layers := make([]Layer, 0, len(paths))
	var errs error
	for _, path := range paths {
		layer, err := loadFile(path)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		layers = append(layers, layer)
	}
	if errs != nil {
		return nil, errs
	}
	return layers, nil
}

func loadFile(path string) (Layer, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return Layer{}, fmt.Errorf("read %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeYAML(path, src)
	case ".hcl":
		return DecodeHCL(path, src)
	default:
		return Layer{}, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}
