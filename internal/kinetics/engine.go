package kinetics

import (
	"math"

	"go.uber.org/zap"

	"github.com/glycoform/sialo-cli/internal/model"
)

// PredictSite computes the sialylation probability for one glycosylation
// site. It is a pure function of its inputs and safe to call concurrently.
func PredictSite(site model.GlycosylationSite, profile model.CellLineProfile, params Parameters) (model.PredictionResult, error) {
	if err := site.Validate(); err != nil {
		return model.PredictionResult{}, err
	}
	if err := profile.Validate(); err != nil {
		return model.PredictionResult{}, err
	}
	if err := params.Validate(); err != nil {
		return model.PredictionResult{}, err
	}
	return predictSite(site, profile, params), nil
}

// predictSite is the validated inner computation, shared with the batch
// and antibody paths so validation runs once per call tree.
func predictSite(site model.GlycosylationSite, profile model.CellLineProfile, params Parameters) model.PredictionResult {
	a := accessibility(site, params)

	kGal := effectiveRate(params.Fixed.KcatGal, profile.EnzymeGal,
		profile.SubstrateGal, params.Fixed.KMGal, a, params.Free.EpsilonGal)
	kSia := effectiveRate(params.Fixed.KcatSia, profile.EnzymeSia,
		profile.SubstrateSia, params.Fixed.KMSia, a, params.Free.EpsilonSia)

	pGal := saturation(kGal, params.Free.TGolgi)
	pSia := saturation(kSia, params.Free.TGolgi)

	return model.PredictionResult{
		ChainID:       site.ChainID,
		ResidueNumber: site.ResidueNumber,
		Probability:   clamp01(pGal * pSia),
		Accessibility: a,
		RateGal:       kGal,
		RateSia:       kSia,
		PGal:          pGal,
		PSiaGivenGal:  pSia,
	}
}

// PredictAntibody predicts every site and aggregates to a whole-antibody
// sialylated fraction: the multiplicity-weighted mean of per-site
// probabilities. An empty site list yields zero with NoSites set rather
// than a division failure.
func PredictAntibody(sites []model.GlycosylationSite, profile model.CellLineProfile, params Parameters) (model.AntibodyPrediction, error) {
	if err := model.ValidateSites(sites); err != nil {
		return model.AntibodyPrediction{}, err
	}
	if err := profile.Validate(); err != nil {
		return model.AntibodyPrediction{}, err
	}
	if err := params.Validate(); err != nil {
		return model.AntibodyPrediction{}, err
	}

	if len(sites) == 0 {
		zap.L().Debug("kinetics: no glycosylation sites supplied")
		return model.AntibodyPrediction{NoSites: true}, nil
	}

	results := make([]model.PredictionResult, len(sites))
	var sum, weight float64
	for i, s := range sites {
		results[i] = predictSite(s, profile, params)
		w := s.Weight()
		sum += results[i].Probability * w
		weight += w
	}

	return model.AntibodyPrediction{
		Probability: sum / weight,
		Sites:       results,
	}, nil
}

// accessibility combines the geometric exposure sigmoid with the charge
// penalty, clipped to [0,1]. A site with no measurable exposure cannot be
// engaged by either enzyme at all.
func accessibility(site model.GlycosylationSite, params Parameters) float64 {
	if site.SASA == 0 {
		return 0
	}
	geom := sigmoid((site.SASA - params.Fixed.SigmoidMidpoint) / params.Fixed.SigmoidSteepness)
	charge := math.Exp(-params.Free.LambdaCharge * float64(site.ChargedCount))
	return clamp01(geom * charge)
}

// effectiveRate is the per-stage first-order rate constant:
// kcat * [E] * [S]/(KM+[S]) * A * epsilon.
func effectiveRate(kcat, enzyme, substrate, km, access, epsilon float64) float64 {
	return kcat * enzyme * (substrate / (km + substrate)) * access * epsilon
}

// saturation is the first-order irreversible approach to completion over
// the Golgi residence time, clamped against numeric overshoot for extreme
// rate/time combinations.
func saturation(rate, t float64) float64 {
	return clamp01(1 - math.Exp(-rate*t))
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}
