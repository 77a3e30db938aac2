package model

// PredictionResult is the engine output for a single site: the sialylation
// probability plus the diagnostic intermediates used to reach it.
type PredictionResult struct {
	ChainID       string  `json:"chain_id"`
	ResidueNumber int     `json:"residue_number"`

	Probability float64 `json:"probability"` // P(site sialylated), in [0,1]

	// Diagnostics for inspection by the presentation layer.
	Accessibility float64 `json:"accessibility"`   // combined geometric * charge factor, in [0,1]
	RateGal       float64 `json:"rate_gal"`        // effective galactosylation rate, 1/min
	RateSia       float64 `json:"rate_sia"`        // effective sialylation rate, 1/min
	PGal          float64 `json:"p_gal"`           // stage-1 probability
	PSiaGivenGal  float64 `json:"p_sia_given_gal"` // stage-2 probability conditional on stage 1
}

// AntibodyPrediction aggregates per-site results to a whole-antibody
// sialylated fraction.
type AntibodyPrediction struct {
	Probability float64            `json:"probability"`
	NoSites     bool               `json:"no_sites,omitempty"` // set when the site list was empty
	Sites       []PredictionResult `json:"sites,omitempty"`
}
