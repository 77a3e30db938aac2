package main

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glycoform/sialo-cli/internal/calibrate"
	"github.com/glycoform/sialo-cli/internal/config"
)

func paramCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	registerParamFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return cmd
}

func TestBuildParamsDefaults(t *testing.T) {
	t.Parallel()

	params, err := buildParams(paramCmd(t), config.KineticsConfig{})
	require.NoError(t, err)

	assert.InDelta(t, 65.0, params.Fixed.SigmoidMidpoint, 1e-9)
	assert.InDelta(t, 15.0, params.Fixed.SigmoidSteepness, 1e-9)
	assert.InDelta(t, 0.75, params.Free.EpsilonGal, 1e-9)
	assert.InDelta(t, 20.0, params.Free.TGolgi, 1e-9)
}

func TestBuildParamsConfigSigmoid(t *testing.T) {
	t.Parallel()

	params, err := buildParams(paramCmd(t), config.KineticsConfig{SigmoidMidpoint: 70, SigmoidSteepness: 12})
	require.NoError(t, err)

	assert.InDelta(t, 70.0, params.Fixed.SigmoidMidpoint, 1e-9)
	assert.InDelta(t, 12.0, params.Fixed.SigmoidSteepness, 1e-9)
}

func TestBuildParamsFlagOverrides(t *testing.T) {
	t.Parallel()

	cmd := paramCmd(t,
		"--epsilon-gal", "0.5",
		"--epsilon-sia", "0.9",
		"--t-golgi", "35",
		"--lambda-charge", "0",
	)
	params, err := buildParams(cmd, config.KineticsConfig{})
	require.NoError(t, err)

	assert.InDelta(t, 0.5, params.Free.EpsilonGal, 1e-9)
	assert.InDelta(t, 0.9, params.Free.EpsilonSia, 1e-9)
	assert.InDelta(t, 35.0, params.Free.TGolgi, 1e-9)
	assert.Zero(t, params.Free.LambdaCharge)
}

func TestBuildParamsRejectsInvalidOverride(t *testing.T) {
	t.Parallel()

	cmd := paramCmd(t, "--epsilon-gal", "1.5")
	_, err := buildParams(cmd, config.KineticsConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "epsilon_gal must be in (0,1]")
}

func TestParseBoundFlag(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		wantName string
		want     calibrate.Bounds
		wantErr  string
	}{
		{
			name:     "valid",
			input:    "t_golgi=5:40",
			wantName: "t_golgi",
			want:     calibrate.Bounds{Lo: 5, Hi: 40},
		},
		{
			name:     "spaces trimmed",
			input:    "epsilon_gal = 0.1 : 0.9",
			wantName: "epsilon_gal",
			want:     calibrate.Bounds{Lo: 0.1, Hi: 0.9},
		},
		{
			name:    "no equals",
			input:   "t_golgi",
			wantErr: "expected name=lo:hi",
		},
		{
			name:    "no colon",
			input:   "t_golgi=5",
			wantErr: "expected name=lo:hi",
		},
		{
			name:    "bad lo",
			input:   "t_golgi=low:40",
			wantErr: "parse lo",
		},
		{
			name:    "bad hi",
			input:   "t_golgi=5:high",
			wantErr: "parse hi",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			name, bounds, err := parseBoundFlag(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.want, bounds)
		})
	}
}
