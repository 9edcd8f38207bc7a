package indicator

import (
	"fmt"
	"math"
	"slices"

	"github.com/roelofgootjesgit/edgelab/pkg/errors"
)

// FieldType is the declared type of a config field.
type FieldType string

const (
	FieldTypeInt    FieldType = "int"
	FieldTypeFloat  FieldType = "float"
	FieldTypeSelect FieldType = "select"
)

// Field declares one configuration parameter: its type, default and valid
// range. The schema drives build-time validation; modules never see an
// unvalidated config.
type Field struct {
	Name    string    `json:"name"`
	Label   string    `json:"label,omitempty"`
	Type    FieldType `json:"type"`
	Default any       `json:"default"`
	Min     float64   `json:"min,omitempty"`
	Max     float64   `json:"max,omitempty"`
	Step    float64   `json:"step,omitempty"`
	Options []string  `json:"options,omitempty"`
	Help    string    `json:"help,omitempty"`
}

// ConfigSchema is the full parameter declaration of a module.
type ConfigSchema struct {
	Fields []Field `json:"fields"`
}

// Config is a module configuration mapping parameter name to scalar. Raw
// configs may carry loosely typed values (YAML ints, floats); Resolve
// normalizes them against the schema.
type Config map[string]any

// Int returns an int parameter from a resolved config.
func (c Config) Int(name string) int {
	v, _ := c[name].(int)

	return v
}

// Float returns a float parameter from a resolved config.
func (c Config) Float(name string) float64 {
	v, _ := c[name].(float64)

	return v
}

// String returns a select parameter from a resolved config.
func (c Config) String(name string) string {
	v, _ := c[name].(string)

	return v
}

// Resolve validates a raw config against the schema and returns a normalized
// copy: missing keys fall back to declared defaults, unknown keys are
// ignored, numeric values are coerced to the declared type, and out-of-range
// or wrong-typed values are build-time errors.
func (s ConfigSchema) Resolve(raw Config) (Config, error) {
	resolved := make(Config, len(s.Fields))

	for _, field := range s.Fields {
		value, supplied := raw[field.Name]
		if !supplied {
			resolved[field.Name] = field.Default

			continue
		}

		normalized, err := field.normalize(value)
		if err != nil {
			return nil, err
		}

		resolved[field.Name] = normalized
	}

	return resolved, nil
}

func (f Field) normalize(value any) (any, error) {
	switch f.Type {
	case FieldTypeInt:
		n, ok := asInt(value)
		if !ok {
			return nil, errors.NewDetailed(errors.ErrCodeInvalidType,
				fmt.Sprintf("field %s expects an integer, got %T", f.Name, value),
				map[string]string{"field": f.Name})
		}

		if err := f.checkRange(float64(n)); err != nil {
			return nil, err
		}

		return n, nil

	case FieldTypeFloat:
		x, ok := asFloat(value)
		if !ok {
			return nil, errors.NewDetailed(errors.ErrCodeInvalidType,
				fmt.Sprintf("field %s expects a number, got %T", f.Name, value),
				map[string]string{"field": f.Name})
		}

		if err := f.checkRange(x); err != nil {
			return nil, err
		}

		return x, nil

	case FieldTypeSelect:
		option, ok := value.(string)
		if !ok {
			return nil, errors.NewDetailed(errors.ErrCodeInvalidType,
				fmt.Sprintf("field %s expects a string option, got %T", f.Name, value),
				map[string]string{"field": f.Name})
		}

		if !slices.Contains(f.Options, option) {
			return nil, errors.NewDetailed(errors.ErrCodeInvalidOption,
				fmt.Sprintf("field %s: unknown option %q", f.Name, option),
				map[string]string{"field": f.Name, "option": option})
		}

		return option, nil

	default:
		return nil, errors.Newf(errors.ErrCodeInvalidConfiguration, "field %s has unknown type %q", f.Name, f.Type)
	}
}

func (f Field) checkRange(v float64) error {
	if f.Min == 0 && f.Max == 0 {
		return nil
	}

	if v < f.Min || v > f.Max {
		return errors.NewDetailed(errors.ErrCodeParameterOutOfRange,
			fmt.Sprintf("field %s: value %g outside [%g, %g]", f.Name, v, f.Min, f.Max),
			map[string]string{"field": f.Name})
	}

	return nil
}

func asInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v == math.Trunc(v) {
			return int(v), true
		}

		return 0, false
	default:
		return 0, false
	}
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
