package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// ParseParams turns "name=value" pairs into a parameter map.
func ParseParams(pairs []string) (map[string]float64, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("parameter %q: want name=value", pair)
		}
		v, err := cast.ToFloat64E(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("parameter %s: %w", name, err)
		}
		if _, dup := out[name]; dup {
			return nil, fmt.Errorf("parameter %s given twice", name)
		}
		out[name] = v
	}
	return out, nil
}

// ParseState parses a comma-separated state such as "1,0,0.5".
func ParseState(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := cast.ToFloat64E(strings.TrimSpace(f))
		if err != nil {
			return nil, fmt.Errorf("state component %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// ParseRange reads either "lo:hi:n", n evenly spaced values from lo to hi
// inclusive, or an explicit list "a,b,c".
func ParseRange(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, ":") {
		values, err := ParseState(s)
		if err != nil {
			return nil, err
		}
		if len(values) == 0 {
			return nil, fmt.Errorf("empty range")
		}
		return values, nil
	}

	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return nil, fmt.Errorf("range %q: want lo:hi:n", s)
	}
	lo, err := cast.ToFloat64E(strings.TrimSpace(parts[0]))
	if err != nil {
		return nil, fmt.Errorf("range %q: %w", s, err)
	}
	hi, err := cast.ToFloat64E(strings.TrimSpace(parts[1]))
	if err != nil {
		return nil, fmt.Errorf("range %q: %w", s, err)
	}
	n, err := cast.ToIntE(strings.TrimSpace(parts[2]))
	if err != nil {
		return nil, fmt.Errorf("range %q: %w", s, err)
	}
	if n < 1 || (n == 1 && lo != hi) {
		return nil, fmt.Errorf("range %q: need at least two points between distinct ends", s)
	}
	if n == 1 {
		return []float64{lo}, nil
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	out[n-1] = hi
	return out, nil
}
