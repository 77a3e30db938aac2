// Package kinetics implements the two-stage Golgi glycosylation model:
// galactosylation followed by sialylation, each treated as a first-order
// approach to saturation whose rate is Michaelis-Menten in the donor
// substrate and scaled by the site's structural accessibility.
package kinetics

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
)

// FixedParameters are literature-sourced constants that are never touched
// by calibration.
type FixedParameters struct {
	KcatGal float64 `json:"kcat_gal"` // effective B4GalT turnover, 1/(nM*min)
	KcatSia float64 `json:"kcat_sia"` // effective ST6Gal turnover, 1/(nM*min)

	KMGal float64 `json:"km_gal"` // UDP-Gal half-saturation, uM
	KMSia float64 `json:"km_sia"` // CMP-Neu5Ac half-saturation, uM

	// Accessibility sigmoid over SASA.
	SigmoidMidpoint  float64 `json:"sigmoid_midpoint"`  // sq. angstroms
	SigmoidSteepness float64 `json:"sigmoid_steepness"` // sq. angstroms
}

// FreeParameters are the calibrated subset: catalytic efficiency factors,
// effective Golgi residence time, and the charge-penalty coefficient.
type FreeParameters struct {
	EpsilonGal   float64 `json:"epsilon_gal"`   // in (0,1]
	EpsilonSia   float64 `json:"epsilon_sia"`   // in (0,1]
	TGolgi       float64 `json:"t_golgi"`       // minutes
	LambdaCharge float64 `json:"lambda_charge"` // per charged neighbor, >= 0
}

// Parameters is the full vector governing the rate model. Treated as
// immutable during prediction; the calibrator works on its own copy and
// publishes a fitted value.
type Parameters struct {
	Fixed FixedParameters `json:"fixed"`
	Free  FreeParameters  `json:"free"`
}

// DefaultParameters returns the literature defaults. The sigmoid midpoint
// and steepness come from the observed exposure threshold for enzyme
// engagement on Fc glycans.
func DefaultParameters() Parameters {
	return Parameters{
		Fixed: FixedParameters{
			KcatGal:          0.0025,
			KcatSia:          0.003,
			KMGal:            130,
			KMSia:            170,
			SigmoidMidpoint:  65,
			SigmoidSteepness: 15,
		},
		Free: FreeParameters{
			EpsilonGal:   0.75,
			EpsilonSia:   0.55,
			TGolgi:       20,
			LambdaCharge: 0.25,
		},
	}
}

// Validate checks the positivity and range invariants on the full vector.
func (p Parameters) Validate() error {
	var errs []string

	positive := map[string]float64{
		"kcat_gal":          p.Fixed.KcatGal,
		"kcat_sia":          p.Fixed.KcatSia,
		"km_gal":            p.Fixed.KMGal,
		"km_sia":            p.Fixed.KMSia,
		"sigmoid_steepness": p.Fixed.SigmoidSteepness,
		"t_golgi":           p.Free.TGolgi,
	}
	for name, v := range positive {
		if v <= 0 {
			errs = append(errs, fmt.Sprintf("%s must be > 0 (got %g)", name, v))
		}
	}

	if p.Fixed.SigmoidMidpoint < 0 {
		errs = append(errs, fmt.Sprintf("sigmoid_midpoint must be >= 0 (got %g)", p.Fixed.SigmoidMidpoint))
	}

	for name, eps := range map[string]float64{
		"epsilon_gal": p.Free.EpsilonGal,
		"epsilon_sia": p.Free.EpsilonSia,
	} {
		if eps <= 0 || eps > 1 {
			errs = append(errs, fmt.Sprintf("%s must be in (0,1] (got %g)", name, eps))
		}
	}

	if p.Free.LambdaCharge < 0 {
		errs = append(errs, fmt.Sprintf("lambda_charge must be >= 0 (got %g)", p.Free.LambdaCharge))
	}

	if len(errs) > 0 {
		return eris.Errorf("kinetics: parameter validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
