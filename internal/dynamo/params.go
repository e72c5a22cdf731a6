package dynamo

import (
	"fmt"
	"sort"
	"strings"
)

// Params is the parameter set handed to an RHS. It is either the empty
// default set, in which case the RHS uses its built-in constants, or an
// explicit set naming every parameter the RHS understands.
type Params struct {
	values map[string]float64
}

func DefaultParams() Params {
	return Params{}
}

// ExplicitParams copies values into a new explicit parameter set. An empty
// map yields the default set.
func ExplicitParams(values map[string]float64) Params {
	if len(values) == 0 {
		return Params{}
	}
	p := Params{values: make(map[string]float64, len(values))}
	for k, v := range values {
		p.values[k] = v
	}
	return p
}

func (p Params) IsDefault() bool { return len(p.values) == 0 }

func (p Params) Len() int { return len(p.values) }

// Get returns the explicit value for name, or fallback for the default set.
func (p Params) Get(name string, fallback float64) float64 {
	if v, ok := p.values[name]; ok {
		return v
	}
	return fallback
}

func (p Params) Names() []string {
	names := make([]string, 0, len(p.values))
	for k := range p.values {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Map returns a copy of the explicit values.
func (p Params) Map() map[string]float64 {
	out := make(map[string]float64, len(p.values))
	for k, v := range p.values {
		out[k] = v
	}
	return out
}

// Validate checks that p is either empty or contains exactly names.
func (p Params) Validate(names ...string) error {
	if p.IsDefault() {
		return nil
	}

	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}

	var missing, unknown []string
	for _, n := range names {
		if _, ok := p.values[n]; !ok {
			missing = append(missing, n)
		}
	}
	for _, n := range p.Names() {
		if !want[n] {
			unknown = append(unknown, n)
		}
	}
	sort.Strings(missing)

	if len(missing) == 0 && len(unknown) == 0 {
		return nil
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "missing "+strings.Join(missing, ", "))
	}
	if len(unknown) > 0 {
		parts = append(parts, "unknown "+strings.Join(unknown, ", "))
	}
	return fmt.Errorf("%w: %s (provide none or all of: %s)", ErrInvalidParams, strings.Join(parts, "; "), strings.Join(names, ", "))
}
