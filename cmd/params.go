package main

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/glycoform/sialo-cli/internal/calibrate"
	"github.com/glycoform/sialo-cli/internal/config"
	"github.com/glycoform/sialo-cli/internal/kinetics"
)

// registerParamFlags adds the free-parameter override flags shared by the
// predict and calibrate commands.
func registerParamFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64("epsilon-gal", 0, "galactosylation efficiency override (0,1]")
	f.Float64("epsilon-sia", 0, "sialylation efficiency override (0,1]")
	f.Float64("t-golgi", 0, "Golgi residence time override, minutes")
	f.Float64("lambda-charge", -1, "charge penalty coefficient override")
}

// buildParams assembles the kinetic parameters: literature defaults, then
// the configured sigmoid, then any flag overrides.
func buildParams(cmd *cobra.Command, kcfg config.KineticsConfig) (kinetics.Parameters, error) {
	params := kinetics.DefaultParameters()

	if kcfg.SigmoidMidpoint > 0 {
		params.Fixed.SigmoidMidpoint = kcfg.SigmoidMidpoint
	}
	if kcfg.SigmoidSteepness > 0 {
		params.Fixed.SigmoidSteepness = kcfg.SigmoidSteepness
	}

	f := cmd.Flags()
	if v, _ := f.GetFloat64("epsilon-gal"); v > 0 {
		params.Free.EpsilonGal = v
	}
	if v, _ := f.GetFloat64("epsilon-sia"); v > 0 {
		params.Free.EpsilonSia = v
	}
	if v, _ := f.GetFloat64("t-golgi"); v > 0 {
		params.Free.TGolgi = v
	}
	if v, _ := f.GetFloat64("lambda-charge"); v >= 0 {
		params.Free.LambdaCharge = v
	}

	if err := params.Validate(); err != nil {
		return kinetics.Parameters{}, err
	}
	return params, nil
}

// parseBoundFlag parses one --bound value of the form name=lo:hi.
func parseBoundFlag(s string) (string, calibrate.Bounds, error) {
	name, rangePart, ok := strings.Cut(s, "=")
	if !ok {
		return "", calibrate.Bounds{}, eris.Errorf("invalid bound %q: expected name=lo:hi", s)
	}
	loStr, hiStr, ok := strings.Cut(rangePart, ":")
	if !ok {
		return "", calibrate.Bounds{}, eris.Errorf("invalid bound %q: expected name=lo:hi", s)
	}

	lo, err := strconv.ParseFloat(strings.TrimSpace(loStr), 64)
	if err != nil {
		return "", calibrate.Bounds{}, eris.Wrapf(err, "invalid bound %q: parse lo", s)
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(hiStr), 64)
	if err != nil {
		return "", calibrate.Bounds{}, eris.Wrapf(err, "invalid bound %q: parse hi", s)
	}

	return strings.TrimSpace(name), calibrate.Bounds{Lo: lo, Hi: hi}, nil
}
