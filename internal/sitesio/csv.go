// Package sitesio reads site-feature tables produced by an external
// structure-feature extractor. Only numeric per-site features cross this
// boundary; structural file formats (PDB, mmCIF) are never parsed here.
package sitesio

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/glycoform/sialo-cli/internal/calibrate"
	"github.com/glycoform/sialo-cli/internal/model"
)

// Site table columns. flexibility and multiplicity are optional.
const (
	colAntibody     = "antibody"
	colCellLine     = "cell_line"
	colChain        = "chain"
	colResidue      = "residue"
	colSASA         = "sasa"
	colCharged      = "charged_neighbors"
	colFlexibility  = "flexibility"
	colMultiplicity = "multiplicity"
	colObserved     = "observed"
)

// LoadSites reads a per-site feature table for one antibody:
// chain,residue,sasa,charged_neighbors[,flexibility][,multiplicity].
func LoadSites(path string) ([]model.GlycosylationSite, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "sitesio: open sites file")
	}
	defer f.Close()

	sites, err := readSites(f)
	if err != nil {
		return nil, eris.Wrapf(err, "sitesio: %s", path)
	}

	zap.L().Debug("sitesio: sites loaded",
		zap.String("path", path),
		zap.Int("sites", len(sites)),
	)
	return sites, nil
}

func readSites(r io.Reader) ([]model.GlycosylationSite, error) {
	rows, header, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if err := header.require(colChain, colResidue, colSASA, colCharged); err != nil {
		return nil, err
	}

	sites := make([]model.GlycosylationSite, 0, len(rows))
	for i, row := range rows {
		site, err := parseSite(header, row)
		if err != nil {
			return nil, eris.Wrapf(err, "row %d", i+2) // +2: 1-based with header
		}
		sites = append(sites, site)
	}
	return sites, nil
}

// LoadReference reads a labeled calibration table. Rows with the same
// antibody id are grouped into one sample; cell_line and observed must
// agree across a group.
func LoadReference(path string) ([]calibrate.Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrap(err, "sitesio: open reference file")
	}
	defer f.Close()

	samples, err := readReference(f)
	if err != nil {
		return nil, eris.Wrapf(err, "sitesio: %s", path)
	}

	zap.L().Debug("sitesio: reference dataset loaded",
		zap.String("path", path),
		zap.Int("samples", len(samples)),
	)
	return samples, nil
}

func readReference(r io.Reader) ([]calibrate.Sample, error) {
	rows, header, err := readTable(r)
	if err != nil {
		return nil, err
	}
	if err := header.require(colAntibody, colCellLine, colChain, colResidue, colSASA, colCharged, colObserved); err != nil {
		return nil, err
	}

	var order []string
	byName := make(map[string]*calibrate.Sample)

	for i, row := range rows {
		line := i + 2
		name := header.get(row, colAntibody)
		if name == "" {
			return nil, eris.Errorf("row %d: antibody id is empty", line)
		}

		site, err := parseSite(header, row)
		if err != nil {
			return nil, eris.Wrapf(err, "row %d", line)
		}

		cellLine := model.CellLine(header.get(row, colCellLine))
		profile, err := model.ProfileFor(cellLine)
		if err != nil {
			return nil, eris.Wrapf(err, "row %d", line)
		}

		observed, err := strconv.ParseFloat(header.get(row, colObserved), 64)
		if err != nil {
			return nil, eris.Wrapf(err, "row %d: parse observed", line)
		}

		s, ok := byName[name]
		if !ok {
			byName[name] = &calibrate.Sample{
				Name:     name,
				Sites:    []model.GlycosylationSite{site},
				Profile:  profile,
				Observed: observed,
			}
			order = append(order, name)
			continue
		}

		if s.Profile.Line != cellLine {
			return nil, eris.Errorf("row %d: antibody %q has conflicting cell lines (%s vs %s)", line, name, s.Profile.Line, cellLine)
		}
		if s.Observed != observed {
			return nil, eris.Errorf("row %d: antibody %q has conflicting observed fractions (%g vs %g)", line, name, s.Observed, observed)
		}
		s.Sites = append(s.Sites, site)
	}

	samples := make([]calibrate.Sample, len(order))
	for i, name := range order {
		samples[i] = *byName[name]
	}
	return samples, nil
}

func parseSite(h headerIndex, row []string) (model.GlycosylationSite, error) {
	var site model.GlycosylationSite
	site.ChainID = h.get(row, colChain)
	if site.ChainID == "" {
		return site, eris.New("chain id is empty")
	}

	residue, err := strconv.Atoi(h.get(row, colResidue))
	if err != nil {
		return site, eris.Wrap(err, "parse residue")
	}
	site.ResidueNumber = residue

	site.SASA, err = strconv.ParseFloat(h.get(row, colSASA), 64)
	if err != nil {
		return site, eris.Wrap(err, "parse sasa")
	}

	site.ChargedCount, err = strconv.Atoi(h.get(row, colCharged))
	if err != nil {
		return site, eris.Wrap(err, "parse charged_neighbors")
	}

	if v := h.get(row, colFlexibility); v != "" {
		flex, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return site, eris.Wrap(err, "parse flexibility")
		}
		site.Flexibility = &flex
	}

	if v := h.get(row, colMultiplicity); v != "" {
		site.Multiplicity, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return site, eris.Wrap(err, "parse multiplicity")
		}
		if site.Multiplicity <= 0 {
			return site, eris.Errorf("multiplicity must be > 0 (got %g)", site.Multiplicity)
		}
	}

	if err := site.Validate(); err != nil {
		return site, err
	}
	return site, nil
}

// headerIndex maps column names to positions.
type headerIndex map[string]int

func (h headerIndex) require(cols ...string) error {
	var missing []string
	for _, c := range cols {
		if _, ok := h[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return eris.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (h headerIndex) get(row []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func readTable(r io.Reader) ([][]string, headerIndex, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow trailing optional columns
	reader.Comment = '#'

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, eris.Wrap(err, "read csv")
	}
	if len(records) == 0 {
		return nil, nil, eris.New("empty file")
	}

	header := make(headerIndex, len(records[0]))
	for i, name := range records[0] {
		header[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return records[1:], header, nil
}
