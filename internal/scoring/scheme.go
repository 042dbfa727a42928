// Package scoring turns raw per-criterion judge values into a single aggregate
// score and orders scored entities into a leaderboard.
package scoring

import (
	"math"
	"sort"
)

type Method string

const (
	MethodAverage  Method = "average"
	MethodWeighted Method = "weighted"
	MethodSum      Method = "sum"
)

type Criterion struct {
	ID     string  `json:"id" mapstructure:"id"`
	Name   string  `json:"name" mapstructure:"name"`
	Weight float64 `json:"weight" mapstructure:"weight"`
}

// Range bounds every criterion value, both ends inclusive.
type Range struct {
	Min float64 `json:"min" mapstructure:"min"`
	Max float64 `json:"max" mapstructure:"max"`
}

func (r *Range) Contains(v float64) bool {
	return r == nil || (v >= r.Min && v <= r.Max)
}

// Scheme describes how raw values are combined. A nil Range leaves values
// unbounded.
type Scheme struct {
	Criteria []Criterion `json:"criteria" mapstructure:"criteria"`
	Range    *Range      `json:"range,omitempty" mapstructure:"range"`
	Method   Method      `json:"method" mapstructure:"method"`
}

// Values maps a criterion ID to the judge's raw value.
type Values map[string]float64

// ExternalScheme builds the scheme used for payloads that arrive without a
// configured scheme: every key of values is a criterion of weight 1, averaged.
func ExternalScheme(values Values) Scheme {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	criteria := make([]Criterion, 0, len(keys))
	for _, k := range keys {
		criteria = append(criteria, Criterion{ID: k, Name: k, Weight: 1})
	}

	return Scheme{
		Criteria: criteria,
		Method:   MethodAverage,
	}
}

func isNumber(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
