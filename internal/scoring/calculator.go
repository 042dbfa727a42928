package scoring

import (
	"fmt"
	"strconv"
)

type ValidationResult struct {
	OK     bool     `json:"ok"`
	Errors []string `json:"errors,omitempty"`
}

// ComputeAggregate reduces values to one number using scheme.Method. Only
// criteria listed in the scheme count; values that are not finite numbers are
// ignored. It returns 0 when no numeric value is present.
func ComputeAggregate(values Values, scheme Scheme) float64 {
	var numeric []float64
	for _, c := range scheme.Criteria {
		if v, ok := values[c.ID]; ok && isNumber(v) {
			numeric = append(numeric, v)
		}
	}
	if len(numeric) == 0 {
		return 0
	}

	switch scheme.Method {
	case MethodWeighted:
		var weighted, totalWeight float64
		for _, c := range scheme.Criteria {
			v, ok := values[c.ID]
			if !ok || !isNumber(v) {
				v = 0
			}
			weighted += v * c.Weight
			totalWeight += c.Weight
		}
		if totalWeight == 0 {
			return 0
		}

		return weighted / totalWeight

	case MethodSum:
		return sum(numeric)

	default:
		return sum(numeric) / float64(len(numeric))
	}
}

// Validate reports one message per criterion of scheme that is missing, not a
// finite number, or outside scheme.Range.
func Validate(values Values, scheme Scheme) ValidationResult {
	var errs []string
	for _, c := range scheme.Criteria {
		v, ok := values[c.ID]
		switch {
		case !ok:
			errs = append(errs, fmt.Sprintf("%s is required", c.Name))
		case !isNumber(v):
			errs = append(errs, fmt.Sprintf("%s must be a valid number", c.Name))
		case !scheme.Range.Contains(v):
			errs = append(errs, fmt.Sprintf("%s must be between %s and %s",
				c.Name, formatBound(scheme.Range.Min), formatBound(scheme.Range.Max)))
		}
	}

	return ValidationResult{
		OK:     len(errs) == 0,
		Errors: errs,
	}
}

func sum(vs []float64) float64 {
	var total float64
	for _, v := range vs {
		total += v
	}

	return total
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
