package deviation

import "fmt"

// Verdict summarises how far the drilled path has drifted from plan.
type Verdict int

const (
	OnPlan Verdict = iota
	Drifting
	OffPlan
)

// String returns the display label.
func (v Verdict) String() string {
	switch v {
	case OnPlan:
		return "On Plan"
	case Drifting:
		return "Drifting"
	case OffPlan:
		return "Off Plan"
	default:
		return fmt.Sprintf("Verdict(%d)", int(v))
	}
}

// Tone returns the colour family used for the verdict chip.
func (v Verdict) Tone() string {
	switch v {
	case OnPlan:
		return "green"
	case Drifting:
		return "amber"
	case OffPlan:
		return "red"
	default:
		return "zinc"
	}
}

// MarshalText encodes the verdict as its display label.
func (v Verdict) MarshalText() ([]byte, error) {
	switch v {
	case OnPlan, Drifting, OffPlan:
		return []byte(v.String()), nil
	}
	return nil, fmt.Errorf("unknown verdict %d", int(v))
}

// UnmarshalText parses a display label back into a verdict.
func (v *Verdict) UnmarshalText(b []byte) error {
	switch string(b) {
	case "On Plan":
		*v = OnPlan
	case "Drifting":
		*v = Drifting
	case "Off Plan":
		*v = OffPlan
	default:
		return fmt.Errorf("unknown verdict %q", string(b))
	}
	return nil
}
