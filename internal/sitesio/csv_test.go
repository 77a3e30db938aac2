package sitesio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glycoform/sialo-cli/internal/model"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSites(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, `chain,residue,sasa,charged_neighbors,flexibility,multiplicity
H,297,71.8,0,0.42,2
L,42,12.3,3,,
`)

	sites, err := LoadSites(path)
	require.NoError(t, err)
	require.Len(t, sites, 2)

	assert.Equal(t, "H", sites[0].ChainID)
	assert.Equal(t, 297, sites[0].ResidueNumber)
	assert.InDelta(t, 71.8, sites[0].SASA, 1e-9)
	assert.Equal(t, 0, sites[0].ChargedCount)
	require.NotNil(t, sites[0].Flexibility)
	assert.InDelta(t, 0.42, *sites[0].Flexibility, 1e-9)
	assert.Equal(t, 2.0, sites[0].Multiplicity)

	assert.Equal(t, "L", sites[1].ChainID)
	assert.Nil(t, sites[1].Flexibility)
	assert.Equal(t, 1.0, sites[1].Weight())
}

func TestLoadSitesWithoutOptionalColumns(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, `chain,residue,sasa,charged_neighbors
H,297,71.8,1
`)

	sites, err := LoadSites(path)
	require.NoError(t, err)
	require.Len(t, sites, 1)
	assert.Nil(t, sites[0].Flexibility)
}

func TestLoadSitesErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing column",
			content: "chain,residue,sasa\nH,297,71.8\n",
			wantErr: "missing required columns: charged_neighbors",
		},
		{
			name:    "bad sasa",
			content: "chain,residue,sasa,charged_neighbors\nH,297,wide,0\n",
			wantErr: "row 2: parse sasa",
		},
		{
			name:    "negative sasa rejected",
			content: "chain,residue,sasa,charged_neighbors\nH,297,-3,0\n",
			wantErr: "sasa must be >= 0",
		},
		{
			name:    "empty chain",
			content: "chain,residue,sasa,charged_neighbors\n,297,71.8,0\n",
			wantErr: "chain id is empty",
		},
		{
			name:    "zero multiplicity rejected",
			content: "chain,residue,sasa,charged_neighbors,multiplicity\nH,297,71.8,0,0\n",
			wantErr: "multiplicity must be > 0",
		},
		{
			name:    "empty file",
			content: "",
			wantErr: "empty file",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadSites(writeTemp(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadSitesMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadSites(filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open sites file")
}

func TestLoadReference(t *testing.T) {
	t.Parallel()

	path := writeTemp(t, `antibody,cell_line,chain,residue,sasa,charged_neighbors,observed
mab-1,CHO,H,297,71.8,0,0.142
mab-1,CHO,L,42,30.0,2,0.142
mab-2,HEK293,H,297,65.5,1,0.21
# comment rows are skipped
mab-3,NS0,H,297,50.2,0,0.04
`)

	samples, err := LoadReference(path)
	require.NoError(t, err)
	require.Len(t, samples, 3)

	assert.Equal(t, "mab-1", samples[0].Name)
	assert.Len(t, samples[0].Sites, 2)
	assert.Equal(t, model.CellLineCHO, samples[0].Profile.Line)
	assert.InDelta(t, 0.142, samples[0].Observed, 1e-9)

	assert.Equal(t, "mab-2", samples[1].Name)
	assert.Equal(t, model.CellLineHEK293, samples[1].Profile.Line)

	assert.Equal(t, "mab-3", samples[2].Name)
	assert.Equal(t, model.CellLineNS0, samples[2].Profile.Line)
}

func TestLoadReferenceErrors(t *testing.T) {
	t.Parallel()

	header := "antibody,cell_line,chain,residue,sasa,charged_neighbors,observed\n"

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "unknown cell line",
			content: header + "mab-1,BHK21,H,297,71.8,0,0.1\n",
			wantErr: "unknown cell line",
		},
		{
			name:    "conflicting cell lines",
			content: header + "mab-1,CHO,H,297,71.8,0,0.1\nmab-1,HEK293,L,42,30,0,0.1\n",
			wantErr: "conflicting cell lines",
		},
		{
			name:    "conflicting observed",
			content: header + "mab-1,CHO,H,297,71.8,0,0.1\nmab-1,CHO,L,42,30,0,0.2\n",
			wantErr: "conflicting observed fractions",
		},
		{
			name:    "empty antibody id",
			content: header + ",CHO,H,297,71.8,0,0.1\n",
			wantErr: "antibody id is empty",
		},
		{
			name:    "missing observed column",
			content: "antibody,cell_line,chain,residue,sasa,charged_neighbors\nmab-1,CHO,H,297,71.8,0\n",
			wantErr: "missing required columns: observed",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := LoadReference(writeTemp(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
