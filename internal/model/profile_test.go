package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileFor(t *testing.T) {
	t.Parallel()

	for _, line := range SupportedCellLines() {
		line := line
		t.Run(string(line), func(t *testing.T) {
			t.Parallel()
			p, err := ProfileFor(line)
			require.NoError(t, err)
			assert.Equal(t, line, p.Line)
			assert.NoError(t, p.Validate())
		})
	}
}

func TestProfileForUnknownLine(t *testing.T) {
	t.Parallel()

	_, err := ProfileFor("BHK21")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown cell line")
	assert.Contains(t, err.Error(), "BHK21")
}

func TestProfileValidateRejectsNonPositive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*CellLineProfile)
		wantErr string
	}{
		{"zero enzyme gal", func(p *CellLineProfile) { p.EnzymeGal = 0 }, "enzyme_gal"},
		{"negative enzyme sia", func(p *CellLineProfile) { p.EnzymeSia = -5 }, "enzyme_sia"},
		{"zero substrate gal", func(p *CellLineProfile) { p.SubstrateGal = 0 }, "substrate_gal"},
		{"zero substrate sia", func(p *CellLineProfile) { p.SubstrateSia = 0 }, "substrate_sia"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, err := ProfileFor(CellLineCHO)
			require.NoError(t, err)
			tt.mutate(&p)
			err = p.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestHEK293RunsHotterThanCHO(t *testing.T) {
	t.Parallel()

	cho, err := ProfileFor(CellLineCHO)
	require.NoError(t, err)
	hek, err := ProfileFor(CellLineHEK293)
	require.NoError(t, err)

	// HEK293's higher reported sialylation range comes from higher enzyme
	// and donor levels in both stages.
	assert.Greater(t, hek.EnzymeGal, cho.EnzymeGal)
	assert.Greater(t, hek.EnzymeSia, cho.EnzymeSia)
	assert.Greater(t, hek.SubstrateGal, cho.SubstrateGal)
	assert.Greater(t, hek.SubstrateSia, cho.SubstrateSia)
}

func TestSupportedCellLinesStableOrder(t *testing.T) {
	t.Parallel()

	lines := SupportedCellLines()
	assert.Equal(t, []CellLine{CellLineCHO, CellLineHEK293, CellLineNS0}, lines)
}
