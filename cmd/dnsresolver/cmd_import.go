package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/kompox/dnsresolver/config/resolvercfg"
	"github.com/kompox/dnsresolver/usecase/zone"
)

func newCmdImport() *cobra.Command {
	return &cobra.Command{
		Use:   "import <dnsresolver.yml>",
		Short: "Load zones and seed records from a configuration file into the database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			cfg, err := resolvercfg.Load(args[0])
			if err != nil {
				return err
			}
			uc, err := buildZoneUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Minute)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "import", args[0])
			defer func() { cleanup(err) }()
			release, err := lockStore(ctx, cmd)
			if err != nil {
				return err
			}
			defer release()

			out, err := uc.Import(ctx, &zone.ImportInput{Config: cfg})
			if err != nil {
				return err
			}
			return printOutput(cmd, out)
		},
	}
}
