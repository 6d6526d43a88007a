package clause

import "fmt"

// Tier is the human-readable confidence bucket attached to each result.
type Tier string

// Confidence tiers, highest to lowest.
const (
	TierVeryHigh Tier = "Very High"
	TierHigh     Tier = "High"
	TierModerate Tier = "Moderate"
	TierLow      Tier = "Low"
	TierVeryLow  Tier = "Very Low"
)

// Calibrate maps a raw model confidence onto its tier. The partition is
// fixed and exhaustive over [0,1]: lower bounds inclusive, upper bounds
// exclusive, except the top bucket which is closed at 1.0.
//
// Values outside [0,1] return ErrConfidenceRange and are never clamped;
// the caller decides whether to degrade the clause to Unclassified.
func Calibrate(raw float64) (Tier, error) {
	if raw < 0 || raw > 1 {
		return "", fmt.Errorf("%w: %v", ErrConfidenceRange, raw)
	}

	switch {
	case raw >= 0.9:
		return TierVeryHigh, nil
	case raw >= 0.7:
		return TierHigh, nil
	case raw >= 0.5:
		return TierModerate, nil
	case raw >= 0.3:
		return TierLow, nil
	default:
		return TierVeryLow, nil
	}
}
