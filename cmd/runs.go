package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/glycoform/sialo-cli/internal/store"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded prediction and calibration runs",
	RunE:  runRuns,
}

func init() {
	f := runsCmd.Flags()
	f.String("kind", "", "filter by kind: predict or calibrate")
	f.Int("limit", 20, "maximum number of runs to list")

	rootCmd.AddCommand(runsCmd)
}

func runRuns(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kind, _ := cmd.Flags().GetString("kind")
	limit, _ := cmd.Flags().GetInt("limit")

	switch kind {
	case "", string(store.RunKindPredict), string(store.RunKindCalibrate):
	default:
		return eris.Errorf("runs: --kind must be predict or calibrate (got %q)", kind)
	}

	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Migrate(ctx); err != nil {
		return err
	}

	runs, err := st.ListRuns(ctx, store.RunFilter{Kind: store.RunKind(kind), Limit: limit})
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}

	fmt.Printf("%-36s %-10s %-8s %6s %12s %s\n", "ID", "KIND", "LINE", "SITES", "VALUE", "CREATED")
	for _, r := range runs {
		fmt.Printf("%-36s %-10s %-8s %6d %12.5g %s\n",
			r.ID, r.Kind, r.CellLine, r.Sites, r.Value, r.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
