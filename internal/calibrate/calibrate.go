package calibrate

import (
	"math"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/optimize"

	"github.com/glycoform/sialo-cli/internal/kinetics"
)

const (
	defaultMaxIterations = 2000
	defaultTolerance     = 1e-10
)

// Options tunes a fit. The zero value fits all four free parameters with
// default bounds, iteration budget, and convergence tolerance.
type Options struct {
	// Params selects which free parameters to optimize. Empty means all.
	Params []string

	// Bounds overrides the default box constraint per parameter.
	Bounds map[string]Bounds

	// MaxIterations caps the solver's major iterations.
	MaxIterations int

	// Tolerance is the absolute objective-convergence threshold.
	Tolerance float64
}

// Result is the outcome of a fit. When Converged is false the solver
// exhausted its iteration budget; Params still holds the best proposal
// found, never silently passed off as a converged fit.
type Result struct {
	Params    kinetics.Parameters `json:"params"`    // base parameters with fitted free values
	Residuals []float64           `json:"residuals"` // observed - predicted, per sample
	RSS       float64             `json:"rss"`       // residual sum of squares at the fitted point
	Converged bool                `json:"converged"`

	Iterations      int `json:"iterations"`
	FuncEvaluations int `json:"func_evaluations"`
}

// solver is the narrow seam to the numerical optimizer: objective plus
// start point in, best point plus convergence flag out.
type solver interface {
	minimize(obj func([]float64) float64, x0 []float64) (x []float64, iters, evals int, converged bool, err error)
}

// Fit calibrates the selected free parameters of base against the
// reference samples by minimizing the sum of squared errors between
// predicted and observed sialylated fractions. Fixed parameters are held
// constant throughout; proposals are confined to their boxes by a logistic
// coordinate transform.
func Fit(samples []Sample, base kinetics.Parameters, opts Options) (*Result, error) {
	names := opts.Params
	if len(names) == 0 {
		names = FreeParamNames()
	}

	bounds := DefaultBounds()
	for name, b := range opts.Bounds {
		bounds[name] = b
	}
	boxes := make([]Bounds, len(names))
	for i, name := range names {
		b, ok := bounds[name]
		if !ok {
			return nil, eris.Errorf("calibrate: unknown free parameter %q", name)
		}
		if err := validateBounds(name, b); err != nil {
			return nil, err
		}
		boxes[i] = b
	}

	if err := base.Validate(); err != nil {
		return nil, err
	}
	if err := validateSamples(samples, len(names)); err != nil {
		return nil, err
	}

	// Start from the base free values, pulled inside their boxes.
	z0 := make([]float64, len(names))
	for i, name := range names {
		z0[i] = toUnbounded(freeValue(base.Free, name), boxes[i])
	}

	apply := func(z []float64) kinetics.Parameters {
		p := base
		for i, name := range names {
			setFreeValue(&p.Free, name, toBounded(z[i], boxes[i]))
		}
		return p
	}

	objective := func(z []float64) float64 {
		p := apply(z)
		var sse float64
		for _, s := range samples {
			pred, err := kinetics.PredictAntibody(s.Sites, s.Profile, p)
			if err != nil {
				return math.Inf(1)
			}
			d := pred.Probability - s.Observed
			sse += d * d
		}
		return sse
	}

	s := newNelderMeadSolver(opts.MaxIterations, opts.Tolerance)
	zBest, iters, evals, converged, err := s.minimize(objective, z0)
	if err != nil {
		return nil, eris.Wrap(err, "calibrate: minimize")
	}

	fitted := apply(zBest)
	residuals := make([]float64, len(samples))
	var rss float64
	for i, smp := range samples {
		pred, err := kinetics.PredictAntibody(smp.Sites, smp.Profile, fitted)
		if err != nil {
			return nil, eris.Wrapf(err, "calibrate: score sample %q", smp.Name)
		}
		residuals[i] = smp.Observed - pred.Probability
		rss += residuals[i] * residuals[i]
	}

	if !converged {
		zap.L().Warn("calibrate: solver did not converge within budget",
			zap.Int("iterations", iters),
			zap.Float64("rss", rss),
		)
	} else {
		zap.L().Info("calibrate: fit complete",
			zap.Int("iterations", iters),
			zap.Int("func_evaluations", evals),
			zap.Float64("rss", rss),
			zap.Float64("epsilon_gal", fitted.Free.EpsilonGal),
			zap.Float64("epsilon_sia", fitted.Free.EpsilonSia),
			zap.Float64("t_golgi", fitted.Free.TGolgi),
			zap.Float64("lambda_charge", fitted.Free.LambdaCharge),
		)
	}

	return &Result{
		Params:          fitted,
		Residuals:       residuals,
		RSS:             rss,
		Converged:       converged,
		Iterations:      iters,
		FuncEvaluations: evals,
	}, nil
}

// nelderMeadSolver runs gonum's derivative-free simplex method.
type nelderMeadSolver struct {
	maxIterations int
	tolerance     float64
}

func newNelderMeadSolver(maxIterations int, tolerance float64) *nelderMeadSolver {
	if maxIterations <= 0 {
		maxIterations = defaultMaxIterations
	}
	if tolerance <= 0 {
		tolerance = defaultTolerance
	}
	return &nelderMeadSolver{maxIterations: maxIterations, tolerance: tolerance}
}

func (s *nelderMeadSolver) minimize(obj func([]float64) float64, x0 []float64) ([]float64, int, int, bool, error) {
	problem := optimize.Problem{Func: obj}
	settings := &optimize.Settings{
		MajorIterations: s.maxIterations,
		Converger: &optimize.FunctionConverge{
			Absolute:   s.tolerance,
			Iterations: 100,
		},
	}

	sol, err := optimize.Minimize(problem, x0, settings, &optimize.NelderMead{})
	if err != nil || sol == nil {
		return nil, 0, 0, false, err
	}

	converged := sol.Status != optimize.IterationLimit &&
		sol.Status != optimize.FunctionEvaluationLimit &&
		sol.Status != optimize.NotTerminated

	// A limit status is a non-convergence report, not a failure: the best
	// proposal so far is still returned to the caller.
	return sol.X, sol.Stats.MajorIterations, sol.Stats.FuncEvaluations, converged, nil
}

var _ solver = (*nelderMeadSolver)(nil)
