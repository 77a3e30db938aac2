package calibrate

import (
	"math"

	"github.com/rotisserie/eris"

	"github.com/glycoform/sialo-cli/internal/kinetics"
)

// Free parameter names accepted by Options.Params and Options.Bounds.
const (
	ParamEpsilonGal   = "epsilon_gal"
	ParamEpsilonSia   = "epsilon_sia"
	ParamTGolgi       = "t_golgi"
	ParamLambdaCharge = "lambda_charge"
)

// FreeParamNames lists the calibratable parameters in canonical order.
func FreeParamNames() []string {
	return []string{ParamEpsilonGal, ParamEpsilonSia, ParamTGolgi, ParamLambdaCharge}
}

// Bounds is the physically motivated box constraint for one free parameter.
type Bounds struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// DefaultBounds returns the default box constraints: efficiencies in
// (0,1], residence time bounded by plausible organelle transit times, and
// a non-negative charge penalty.
func DefaultBounds() map[string]Bounds {
	return map[string]Bounds{
		ParamEpsilonGal:   {Lo: 1e-3, Hi: 1},
		ParamEpsilonSia:   {Lo: 1e-3, Hi: 1},
		ParamTGolgi:       {Lo: 1, Hi: 60}, // minutes
		ParamLambdaCharge: {Lo: 0, Hi: 5},
	}
}

func validateBounds(name string, b Bounds) error {
	if !(b.Lo < b.Hi) {
		return eris.Errorf("calibrate: bounds for %s: lo must be < hi (got [%g, %g])", name, b.Lo, b.Hi)
	}
	switch name {
	case ParamEpsilonGal, ParamEpsilonSia:
		if b.Lo <= 0 || b.Hi > 1 {
			return eris.Errorf("calibrate: bounds for %s must lie in (0,1] (got [%g, %g])", name, b.Lo, b.Hi)
		}
	case ParamTGolgi:
		if b.Lo <= 0 {
			return eris.Errorf("calibrate: bounds for %s: lo must be > 0 (got %g)", name, b.Lo)
		}
	case ParamLambdaCharge:
		if b.Lo < 0 {
			return eris.Errorf("calibrate: bounds for %s: lo must be >= 0 (got %g)", name, b.Lo)
		}
	default:
		return eris.Errorf("calibrate: unknown free parameter %q", name)
	}
	return nil
}

// The solver runs in unconstrained coordinates; each bounded parameter is
// mapped through a logistic transform so every proposal the solver makes
// lands strictly inside its box.

func toBounded(z float64, b Bounds) float64 {
	return b.Lo + (b.Hi-b.Lo)/(1+math.Exp(-z))
}

func toUnbounded(x float64, b Bounds) float64 {
	// Clip into the open interval so the inverse transform is finite.
	margin := (b.Hi - b.Lo) * 1e-4
	x = math.Max(b.Lo+margin, math.Min(b.Hi-margin, x))
	return math.Log((x - b.Lo) / (b.Hi - x))
}

func freeValue(f kinetics.FreeParameters, name string) float64 {
	switch name {
	case ParamEpsilonGal:
		return f.EpsilonGal
	case ParamEpsilonSia:
		return f.EpsilonSia
	case ParamTGolgi:
		return f.TGolgi
	case ParamLambdaCharge:
		return f.LambdaCharge
	}
	return math.NaN()
}

func setFreeValue(f *kinetics.FreeParameters, name string, v float64) {
	switch name {
	case ParamEpsilonGal:
		f.EpsilonGal = v
	case ParamEpsilonSia:
		f.EpsilonSia = v
	case ParamTGolgi:
		f.TGolgi = v
	case ParamLambdaCharge:
		f.LambdaCharge = v
	}
}
