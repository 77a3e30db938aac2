package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/glycoform/sialo-cli/internal/kinetics"
	"github.com/glycoform/sialo-cli/internal/model"
	"github.com/glycoform/sialo-cli/internal/sitesio"
	"github.com/glycoform/sialo-cli/internal/store"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Predict the sialylated fraction of an antibody",
	Long: `Predict per-site and whole-antibody sialylation probabilities from a
site-feature table produced by a structural feature extractor.

The input CSV needs chain,residue,sasa,charged_neighbors columns;
flexibility and multiplicity are optional.

Examples:
  # Predict for a CHO-expressed antibody
  sialo predict --sites features.csv --cell-line CHO

  # Export per-site results as CSV and record the run
  sialo predict --sites features.csv --format csv --output pred.csv --save

  # Try a longer Golgi residence time
  sialo predict --sites features.csv --t-golgi 30`,
	RunE: runPredict,
}

func init() {
	f := predictCmd.Flags()
	f.String("sites", "", "path to site-feature CSV (required)")
	f.String("cell-line", "CHO", "production cell line (CHO, HEK293, NS0)")
	f.String("output", "", "output file path (default: stdout)")
	f.String("format", "table", "output format: table or csv")
	f.Bool("save", false, "record the run in the history store")
	registerParamFlags(predictCmd)
	_ = predictCmd.MarkFlagRequired("sites")

	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sitesPath, _ := cmd.Flags().GetString("sites")
	cellLine, _ := cmd.Flags().GetString("cell-line")
	outputPath, _ := cmd.Flags().GetString("output")
	format, _ := cmd.Flags().GetString("format")
	save, _ := cmd.Flags().GetBool("save")

	if format != "table" && format != "csv" {
		return eris.Errorf("predict: --format must be table or csv (got %q)", format)
	}

	profile, err := model.ProfileFor(model.CellLine(cellLine))
	if err != nil {
		return err
	}
	params, err := buildParams(cmd, cfg.Kinetics)
	if err != nil {
		return err
	}

	sites, err := sitesio.LoadSites(sitesPath)
	if err != nil {
		return err
	}

	pred, err := kinetics.PredictAntibody(sites, profile, params)
	if err != nil {
		return err
	}

	zap.L().Info("predict: complete",
		zap.String("cell_line", cellLine),
		zap.Int("sites", len(sites)),
		zap.Float64("probability", pred.Probability),
		zap.Bool("no_sites", pred.NoSites),
	)

	out := os.Stdout
	if outputPath != "" {
		out, err = os.Create(outputPath)
		if err != nil {
			return eris.Wrap(err, "predict: create output file")
		}
		defer out.Close()
	}

	if format == "csv" {
		err = writePredictionCSV(out, pred)
	} else {
		err = writePredictionTable(out, cellLine, pred)
	}
	if err != nil {
		return err
	}

	if save {
		if err := savePredictionRun(ctx, cellLine, pred); err != nil {
			return err
		}
	}
	return nil
}

func writePredictionTable(out io.Writer, cellLine string, pred model.AntibodyPrediction) error {
	if pred.NoSites {
		fmt.Fprintln(out, "no glycosylation sites: aggregate sialylation 0.0%")
		return nil
	}

	fmt.Fprintf(out, "%-6s %-8s %10s %8s %8s %8s\n", "CHAIN", "RESIDUE", "P(SIA)", "ACCESS", "P(GAL)", "P(S|G)")
	for _, s := range pred.Sites {
		fmt.Fprintf(out, "%-6s %-8d %9.2f%% %8.3f %8.3f %8.3f\n",
			s.ChainID, s.ResidueNumber, s.Probability*100, s.Accessibility, s.PGal, s.PSiaGivenGal)
	}
	fmt.Fprintf(out, "\n%s antibody sialylated fraction: %.2f%% (%d sites)\n",
		cellLine, pred.Probability*100, len(pred.Sites))
	return nil
}

func writePredictionCSV(out io.Writer, pred model.AntibodyPrediction) error {
	w := csv.NewWriter(out)
	if err := w.Write([]string{"chain", "residue", "probability", "accessibility", "rate_gal", "rate_sia", "p_gal", "p_sia_given_gal"}); err != nil {
		return eris.Wrap(err, "predict: write csv header")
	}
	for _, s := range pred.Sites {
		row := []string{
			s.ChainID,
			strconv.Itoa(s.ResidueNumber),
			strconv.FormatFloat(s.Probability, 'g', -1, 64),
			strconv.FormatFloat(s.Accessibility, 'g', -1, 64),
			strconv.FormatFloat(s.RateGal, 'g', -1, 64),
			strconv.FormatFloat(s.RateSia, 'g', -1, 64),
			strconv.FormatFloat(s.PGal, 'g', -1, 64),
			strconv.FormatFloat(s.PSiaGivenGal, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return eris.Wrap(err, "predict: write csv row")
		}
	}
	w.Flush()
	return eris.Wrap(w.Error(), "predict: flush csv")
}

func savePredictionRun(ctx context.Context, cellLine string, pred model.AntibodyPrediction) error {
	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return err
	}

	details, err := json.Marshal(pred.Sites)
	if err != nil {
		return eris.Wrap(err, "predict: marshal site results")
	}

	run, err := st.SaveRun(ctx, store.Run{
		Kind:     store.RunKindPredict,
		CellLine: cellLine,
		Sites:    len(pred.Sites),
		Value:    pred.Probability,
		Details:  details,
	})
	if err != nil {
		return err
	}

	zap.L().Info("predict: run recorded", zap.String("run_id", run.ID))
	return nil
}
