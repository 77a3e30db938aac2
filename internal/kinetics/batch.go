package kinetics

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/glycoform/sialo-cli/internal/model"
)

// PredictBatch predicts many antibodies concurrently. Each antibody is an
// independent pure computation, so the work is fanned out over an errgroup
// with bounded concurrency. Results are returned in input order.
func PredictBatch(ctx context.Context, antibodies [][]model.GlycosylationSite, profile model.CellLineProfile, params Parameters, concurrency int) ([]model.AntibodyPrediction, error) {
	if concurrency <= 0 {
		concurrency = 4
	}

	results := make([]model.AntibodyPrediction, len(antibodies))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, sites := range antibodies {
		i, sites := i, sites
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			pred, err := PredictAntibody(sites, profile, params)
			if err != nil {
				return err
			}
			results[i] = pred
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
