package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

type derivedID struct {
	Name string `json:"name"`
	K    int    `json:"k"`
	ID   string `json:"id"`
}

func newDeriveCommand(ctx *commandContext) *cobra.Command {
	var (
		k       int
		jsonOut bool
		ids     idFlags
	)

	cmd := &cobra.Command{
		Use:   "derive <name>...",
		Short: "Print the identifier for each name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.configCopy()
			if err != nil {
				return err
			}
			if err := ids.apply(cmd.Flags(), cfg); err != nil {
				return err
			}
			params, err := idParams(cfg)
			if err != nil {
				return err
			}

			derived := make([]derivedID, 0, len(args))
			for _, name := range args {
				id, err := params.Derive(name, k)
				if err != nil {
					return fmt.Errorf("derive %q: %w", name, err)
				}
				derived = append(derived, derivedID{Name: name, K: k, ID: id})
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return writeJSON(out, derived)
			}
			for _, d := range derived {
				fmt.Fprintf(out, "%s\t%s\n", d.ID, d.Name)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&k, "disambiguator", "k", 0, "Disambiguator mixed into the hash")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print results as JSON")
	ids.register(cmd)
	return cmd
}
