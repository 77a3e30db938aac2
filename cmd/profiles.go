package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glycoform/sialo-cli/internal/model"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "List supported cell-line profiles",
	RunE: func(cmd *cobra.Command, _ []string) error {
		fmt.Printf("%-8s %12s %12s %15s %15s\n",
			"LINE", "B4GALT (nM)", "ST6GAL (nM)", "UDP-GAL (uM)", "CMP-NEU5AC (uM)")
		for _, line := range model.SupportedCellLines() {
			p, err := model.ProfileFor(line)
			if err != nil {
				return err
			}
			fmt.Printf("%-8s %12.0f %12.0f %15.0f %15.0f\n",
				p.Line, p.EnzymeGal, p.EnzymeSia, p.SubstrateGal, p.SubstrateSia)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}
