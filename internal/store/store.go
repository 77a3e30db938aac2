// Package store persists prediction and calibration runs for later review.
package store

import (
	"context"
	"time"
)

// RunKind distinguishes what produced a stored run.
type RunKind string

const (
	RunKindPredict   RunKind = "predict"
	RunKindCalibrate RunKind = "calibrate"
)

// Run is one recorded invocation: the headline number plus a JSON detail
// blob (per-site results or fitted parameters).
type Run struct {
	ID        string    `json:"id"`
	Kind      RunKind   `json:"kind"`
	CellLine  string    `json:"cell_line"`
	Sites     int       `json:"sites"`
	Value     float64   `json:"value"` // aggregate probability, or RSS for calibration runs
	Details   []byte    `json:"details,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// RunFilter narrows ListRuns results.
type RunFilter struct {
	Kind  RunKind `json:"kind,omitempty"`
	Limit int     `json:"limit,omitempty"`
}

// Store is the persistence interface for run history.
type Store interface {
	SaveRun(ctx context.Context, run Run) (*Run, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]Run, error)
	Migrate(ctx context.Context) error
	Close() error
}
