package model

import (
	"sort"

	"github.com/rotisserie/eris"
)

// CellLine identifies a supported production host.
type CellLine string

const (
	CellLineCHO    CellLine = "CHO"
	CellLineHEK293 CellLine = "HEK293"
	CellLineNS0    CellLine = "NS0"
)

// CellLineProfile holds the literature-derived biochemical context of a
// production host: Golgi-resident enzyme levels and donor substrate levels
// for the two modeled reactions.
type CellLineProfile struct {
	Line CellLine `json:"line"`

	EnzymeGal float64 `json:"enzyme_gal"` // B4GalT level, nM
	EnzymeSia float64 `json:"enzyme_sia"` // ST6Gal level, nM

	SubstrateGal float64 `json:"substrate_gal"` // UDP-Gal donor level, uM
	SubstrateSia float64 `json:"substrate_sia"` // CMP-Neu5Ac donor level, uM
}

// Validate rejects non-positive concentrations. Zero concentrations would
// make the Michaelis-Menten denominators and first-order rates degenerate,
// so they are caught here at construction time.
func (p CellLineProfile) Validate() error {
	concs := []struct {
		name string
		v    float64
	}{
		{"enzyme_gal", p.EnzymeGal},
		{"enzyme_sia", p.EnzymeSia},
		{"substrate_gal", p.SubstrateGal},
		{"substrate_sia", p.SubstrateSia},
	}
	for _, c := range concs {
		if c.v <= 0 {
			return eris.Errorf("model: profile %s: %s must be > 0 (got %g)", p.Line, c.name, c.v)
		}
	}
	return nil
}

// profiles is the closed set of supported cell lines. Levels are
// literature-derived; HEK293 runs hotter on both enzymes and donors,
// matching its higher reported sialylation range, while NS0 is
// sialylation-poor.
var profiles = map[CellLine]CellLineProfile{
	CellLineCHO: {
		Line:      CellLineCHO,
		EnzymeGal: 65, EnzymeSia: 40,
		SubstrateGal: 150, SubstrateSia: 100,
	},
	CellLineHEK293: {
		Line:      CellLineHEK293,
		EnzymeGal: 80, EnzymeSia: 70,
		SubstrateGal: 180, SubstrateSia: 140,
	},
	CellLineNS0: {
		Line:      CellLineNS0,
		EnzymeGal: 55, EnzymeSia: 25,
		SubstrateGal: 120, SubstrateSia: 70,
	},
}

// ProfileFor returns the profile for a cell-line identifier. Unknown
// identifiers are rejected; there is no fallback profile.
func ProfileFor(line CellLine) (CellLineProfile, error) {
	p, ok := profiles[line]
	if !ok {
		return CellLineProfile{}, eris.Errorf("model: unknown cell line %q (supported: %v)", line, SupportedCellLines())
	}
	return p, nil
}

// SupportedCellLines lists the supported cell-line identifiers in stable
// order.
func SupportedCellLines() []CellLine {
	lines := make([]CellLine, 0, len(profiles))
	for l := range profiles {
		lines = append(lines, l)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i] < lines[j] })
	return lines
}
