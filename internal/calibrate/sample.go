// Package calibrate fits the free kinetic parameters against reference
// antibodies with experimentally measured sialylation fractions, using
// bounded nonlinear least squares.
package calibrate

import (
	"github.com/rotisserie/eris"

	"github.com/glycoform/sialo-cli/internal/model"
)

// Sample is one labeled reference observation: the glycosylation sites of
// one antibody, the production context it was expressed in, and the
// measured sialylated fraction.
type Sample struct {
	Name     string                    `json:"name"`
	Sites    []model.GlycosylationSite `json:"sites"`
	Profile  model.CellLineProfile     `json:"profile"`
	Observed float64                   `json:"observed"` // measured sialylated fraction, in [0,1]
}

// Validate rejects samples the objective function could not score.
func (s Sample) Validate() error {
	if len(s.Sites) == 0 {
		return eris.Errorf("calibrate: sample %q has no glycosylation sites", s.Name)
	}
	if err := model.ValidateSites(s.Sites); err != nil {
		return eris.Wrapf(err, "calibrate: sample %q", s.Name)
	}
	if err := s.Profile.Validate(); err != nil {
		return eris.Wrapf(err, "calibrate: sample %q", s.Name)
	}
	if s.Observed < 0 || s.Observed > 1 {
		return eris.Errorf("calibrate: sample %q: observed fraction must be in [0,1] (got %g)", s.Name, s.Observed)
	}
	return nil
}

func validateSamples(samples []Sample, freeCount int) error {
	if len(samples) < freeCount {
		return eris.Errorf("calibrate: under-determined fit: %d samples for %d free parameters", len(samples), freeCount)
	}
	for _, s := range samples {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}
