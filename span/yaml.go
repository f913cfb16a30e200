package span

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// MarshalYAML renders a span as a two-element sequence [lo, hi], with the
// open bounds rendered as "min"/"max" and the empty span as null.
func (s Span) MarshalYAML() ([]byte, error) {
	if !s.valid {
		return []byte("null"), nil
	}
	var lo, hi any = s.lo, s.hi
	if s.lo == Min {
		lo = "min"
	}
	if s.hi == Max {
		hi = "max"
	}
	return yaml.Marshal([]any{lo, hi})
}

// UnmarshalYAML accepts null (empty), a bare integer (singleton span), or
// a two-element sequence [lo, hi] where either bound may be "min"/"max".
func (s *Span) UnmarshalYAML(b []byte) error {
	var raw any
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		*s = Empty
		return nil
	case int64:
		*s = At(v)
		return nil
	case uint64:
		*s = At(int64(v))
		return nil
	case []any:
		if len(v) != 2 {
			return fmt.Errorf("span: expected [lo, hi], got %d elements", len(v))
		}
		lo, err := bound(v[0], Min)
		if err != nil {
			return err
		}
		hi, err := bound(v[1], Max)
		if err != nil {
			return err
		}
		if lo > hi {
			return fmt.Errorf("span: inverted bounds [%d, %d]", lo, hi)
		}
		*s = Make(lo, hi)
		return nil
	default:
		return fmt.Errorf("span: cannot decode %T", raw)
	}
}

func bound(v any, open int64) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case uint64:
		return int64(x), nil
	case string:
		switch x {
		case "min":
			return Min, nil
		case "max":
			return Max, nil
		}
		return 0, fmt.Errorf("span: bad bound %q", x)
	default:
		return 0, fmt.Errorf("span: cannot decode bound %T", v)
	}
}
