package parameters

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/latchbio-nfcore/rnadnavar/models"
	pt "github.com/latchbio-nfcore/rnadnavar/models/constants/parameter-type"
	"github.com/latchbio-nfcore/rnadnavar/workflows"
)

var (
	ErrUnknownParameter = errors.New("unknown parameter")
	ErrUnsupportedValue = errors.New("unsupported parameter value")
)

// Resolve turns decoded YAML/JSON values into resolved parameters. Unset
// parameters stay absent unless emitDefaults is set, in which case schema
// defaults are filled in.
func Resolve(raw map[string]interface{}, emitDefaults bool) (models.ResolvedParameters, error) {
	resolved := models.ResolvedParameters{}

	for _, name := range sortedKeys(raw) {
		spec, ok := workflows.GetParameter(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownParameter, name)
		}
		v, err := ToValue(spec, raw[name])
		if err != nil {
			return nil, err
		}
		resolved[name] = v
	}

	if emitDefaults {
		for _, spec := range workflows.PIPELINE_PARAMETERS {
			if _, set := raw[spec.Name]; set || spec.Default == nil {
				continue
			}
			v, err := ToValue(spec, spec.Default)
			if err != nil {
				return nil, err
			}
			resolved[spec.Name] = v
		}
	}

	return resolved, nil
}

// ToValue maps a single decoded value onto the tagged value variants. No
// type checking against the schema happens here beyond choosing how numbers,
// path objects and YAML 1.1 booleans on string parameters are rendered.
func ToValue(spec models.ParameterSpec, raw interface{}) (models.Value, error) {
	if spec.Type == pt.Float {
		if f, ok := asFloat(raw); ok {
			return models.Scalar(FormatFloat(spec, f)), nil
		}
	}

	switch v := raw.(type) {
	case nil:
		return models.Absent(), nil
	case bool:
		// unquoted yes/no/on/off decode as booleans
		if spec.Type == pt.String {
			return models.Scalar(strconv.FormatBool(v)), nil
		}
		return models.Bool(v), nil
	case string:
		return models.Scalar(v), nil
	case json.Number:
		return models.Scalar(v.String()), nil
	case int:
		return models.Scalar(strconv.Itoa(v)), nil
	case int64:
		return models.Scalar(strconv.FormatInt(v, 10)), nil
	case int32:
		return models.Scalar(strconv.FormatInt(int64(v), 10)), nil
	case uint64:
		return models.Scalar(strconv.FormatUint(v, 10)), nil
	case float32:
		return models.Scalar(FormatFloat(spec, float64(v))), nil
	case float64:
		return models.Scalar(FormatFloat(spec, v)), nil
	case map[string]interface{}, map[interface{}]interface{}:
		if p, ok := pathOf(v); ok {
			return models.Scalar(p), nil
		}
	}
	return models.Value{}, fmt.Errorf("%w: %s=%v", ErrUnsupportedValue, spec.Name, raw)
}

// FormatFloat renders float parameters with a trailing ".0" when integral
// (76 -> "76.0"); integral values of any other type render as integers.
func FormatFloat(spec models.ParameterSpec, f float64) string {
	integral := f == math.Trunc(f) && !math.IsInf(f, 0)
	if spec.Type == pt.Float {
		if integral {
			return strconv.FormatFloat(f, 'f', 1, 64)
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	if integral && math.Abs(f) < 1e18 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func asFloat(raw interface{}) (float64, bool) {
	switch n := raw.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

// path objects carry a remote_path (preferred) or a local path
func pathOf(v interface{}) (string, bool) {
	get := func(key string) (string, bool) {
		var found interface{}
		switch m := v.(type) {
		case map[string]interface{}:
			found = m[key]
		case map[interface{}]interface{}:
			found = m[key]
		}
		s, ok := found.(string)
		return s, ok && s != ""
	}
	if p, ok := get("remote_path"); ok {
		return p, true
	}
	return get("path")
}

// Validate checks decoded values against the schema types and reports
// missing required parameters. Results are ordered: unknown names first,
// then schema order.
func Validate(raw map[string]interface{}) []models.ValidationError {
	errs := []models.ValidationError{}

	for _, name := range sortedKeys(raw) {
		if !workflows.IsKnownParameter(name) {
			errs = append(errs, models.ValidationError{Parameter: name, Message: ErrUnknownParameter.Error()})
		}
	}

	for _, spec := range workflows.PIPELINE_PARAMETERS {
		v, set := raw[spec.Name]
		if !set || v == nil {
			if spec.IsRequired() {
				errs = append(errs, models.ValidationError{Parameter: spec.Name, Message: "required parameter is missing"})
			}
			continue
		}
		if msg := checkType(spec, v); msg != "" {
			errs = append(errs, models.ValidationError{Parameter: spec.Name, Message: msg})
		}
	}

	return errs
}

func checkType(spec models.ParameterSpec, v interface{}) string {
	switch spec.Type {
	case pt.Boolean:
		if _, ok := v.(bool); !ok {
			return "expected a boolean"
		}
	case pt.Integer:
		if !isInteger(v) {
			return "expected an integer"
		}
	case pt.Float:
		if !isNumber(v) {
			return "expected a number"
		}
	case pt.String:
		if _, ok := v.(bool); ok {
			return "expected a string, quote yes/no/on/off values"
		}
		if _, ok := v.(string); !ok {
			return "expected a string"
		}
	case pt.File, pt.Directory:
		if s, ok := v.(string); ok {
			if s == "" {
				return fmt.Sprintf("expected a %s path", spec.Type)
			}
			return ""
		}
		if _, ok := pathOf(v); !ok {
			return fmt.Sprintf("expected a %s path", spec.Type)
		}
	}
	return ""
}

func isInteger(v interface{}) bool {
	switch n := v.(type) {
	case int, int32, int64, uint64:
		return true
	case float64:
		return n == math.Trunc(n)
	case json.Number:
		_, err := n.Int64()
		return err == nil
	}
	return false
}

func isNumber(v interface{}) bool {
	switch n := v.(type) {
	case int, int32, int64, uint64, float32, float64:
		return true
	case json.Number:
		_, err := n.Float64()
		return err == nil
	}
	return false
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
