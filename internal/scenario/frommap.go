package scenario

import (
	"fmt"
	"sort"
)

// FromMap builds Overrides from named parameters, the surface used by YAML
// scenario files and the CLI. Recognized names mirror the model's rate
// configuration. Unknown names are not an error: they are returned so the
// caller can warn and carry on.
func FromMap(params map[string]any) (Overrides, []string, error) {
	var o Overrides
	var unknown []string

	for name, value := range params {
		switch name {
		case "recruitment_rates":
			v, err := toFloats(value)
			if err != nil {
				return o, nil, fmt.Errorf("%s: %w", name, err)
			}
			o.Recruitment = v
		case "promotion_rates":
			v, err := toFloats(value)
			if err != nil {
				return o, nil, fmt.Errorf("%s: %w", name, err)
			}
			o.Promotion = v
		case "attrition_rates":
			v, err := toFloats(value)
			if err != nil {
				return o, nil, fmt.Errorf("%s: %w", name, err)
			}
			o.Attrition = v
		case "cross_training_matrix":
			v, err := toMatrix(value)
			if err != nil {
				return o, nil, fmt.Errorf("%s: %w", name, err)
			}
			o.CrossTraining = v
		case "training_times":
			v, err := toFloats(value)
			if err != nil {
				return o, nil, fmt.Errorf("%s: %w", name, err)
			}
			o.TrainingTimes = v
		case "max_service_years":
			v, err := toFloat(value)
			if err != nil {
				return o, nil, fmt.Errorf("%s: %w", name, err)
			}
			o.MaxServiceYears = &v
		default:
			unknown = append(unknown, name)
		}
	}

	sort.Strings(unknown)
	return o, unknown, nil
}

func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case int64:
		return float64(x), nil
	}
	return 0, fmt.Errorf("want a number, got %T", v)
}

func toFloats(v any) ([]float64, error) {
	items, ok := v.([]any)
	if !ok {
		if fs, ok := v.([]float64); ok {
			return append([]float64(nil), fs...), nil
		}
		return nil, fmt.Errorf("want a list of numbers, got %T", v)
	}
	out := make([]float64, len(items))
	for i, item := range items {
		f, err := toFloat(item)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		out[i] = f
	}
	return out, nil
}

func toMatrix(v any) ([][]float64, error) {
	items, ok := v.([]any)
	if !ok {
		if m, ok := v.([][]float64); ok {
			out := make([][]float64, len(m))
			for i, row := range m {
				out[i] = append([]float64(nil), row...)
			}
			return out, nil
		}
		return nil, fmt.Errorf("want a list of rows, got %T", v)
	}
	out := make([][]float64, len(items))
	for i, item := range items {
		row, err := toFloats(item)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = row
	}
	return out, nil
}
