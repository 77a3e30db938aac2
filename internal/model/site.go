// Package model defines the structural and biochemical inputs to the
// sialylation prediction engine: glycosylation sites, cell-line profiles,
// and prediction results.
package model

import (
	"github.com/rotisserie/eris"
)

// GlycosylationSite is one N-linked glycosylation sequon on one antibody
// chain, described by the structural features the kinetic model consumes.
// Sites are produced once per structure by an external feature extractor
// (SASA computation is not part of this tool) and are immutable afterwards.
type GlycosylationSite struct {
	ChainID       string  `json:"chain_id"`
	ResidueNumber int     `json:"residue_number"` // sequence position of the modified Asn
	SASA          float64 `json:"sasa"`           // solvent-accessible surface area, sq. angstroms
	ChargedCount  int     `json:"charged_neighbor_count"`

	// Flexibility is an optional B-factor-derived proxy. It is carried
	// through parsing for reporting but does not enter the probability
	// computation (measured correlation with sialylation is ~0.02).
	Flexibility *float64 `json:"flexibility,omitempty"`

	// Multiplicity weights the site in antibody-level aggregation, e.g. 2
	// for a sequon present on both copies of a heavy chain. Zero means
	// unset and is treated as 1.
	Multiplicity float64 `json:"multiplicity,omitempty"`
}

// Weight returns the aggregation weight for the site.
func (s GlycosylationSite) Weight() float64 {
	if s.Multiplicity <= 0 {
		return 1
	}
	return s.Multiplicity
}

// Validate checks the site's structural features. Invalid features are
// rejected outright rather than coerced.
func (s GlycosylationSite) Validate() error {
	if s.SASA < 0 {
		return eris.Errorf("model: site %s/%d: sasa must be >= 0 (got %g)", s.ChainID, s.ResidueNumber, s.SASA)
	}
	if s.ChargedCount < 0 {
		return eris.Errorf("model: site %s/%d: charged neighbor count must be >= 0 (got %d)", s.ChainID, s.ResidueNumber, s.ChargedCount)
	}
	return nil
}

// ValidateSites validates every site in a slice, failing on the first
// violation so the caller knows exactly which site is bad.
func ValidateSites(sites []GlycosylationSite) error {
	for _, s := range sites {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}
