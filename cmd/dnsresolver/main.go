package main

import (
	"context"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/kompox/dnsresolver/internal/logging"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "dnsresolver",
		Short:   "Ownership-gated DNS record store",
		Long:    "Manage zones and the DNS records published under them. Only the current owner of a zone may change its records.",
		Version: version,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	defaultDB := os.Getenv("DNSRESOLVER_DB_URL")
	if defaultDB == "" {
		defaultDB = "file:dnsresolver.yml"
	}
	cmd.PersistentFlags().String("db-url", defaultDB, "Database URL (env DNSRESOLVER_DB_URL) (file:/path/to/dnsresolver.yml | sqlite:/path/to.db | redis://host:port/db)")
	cmd.PersistentFlags().String("log-format", "human", "Log format (human|text|json) (env DNSRESOLVER_LOG_FORMAT)")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().String("caller", os.Getenv("DNSRESOLVER_CALLER"), "Principal issuing mutating commands (env DNSRESOLVER_CALLER)")
	cmd.PersistentFlags().StringP("output", "o", "json", "Output format (json|yaml)")

	cmd.PersistentPreRunE = func(c *cobra.Command, _ []string) error {
		format, _ := c.Flags().GetString("log-format")
		if env := os.Getenv("DNSRESOLVER_LOG_FORMAT"); env != "" { // env overrides flag
			format = env
		}
		levelStr, _ := c.Flags().GetString("log-level")
		level, err := logging.ParseLevel(levelStr)
		if err != nil {
			return err
		}
		l, err := logging.NewWithWriter(format, level, c.ErrOrStderr())
		if err != nil {
			return err
		}
		l = l.With("runId", uuid.NewString())
		c.SetContext(logging.WithLogger(c.Context(), l))
		return nil
	}

	cmd.AddCommand(newCmdVersion())
	cmd.AddCommand(newCmdImport())
	cmd.AddCommand(newCmdZone())
	cmd.AddCommand(newCmdRecord())
	return cmd
}

func main() {
	root := newRootCmd()
	root.SetContext(context.Background())
	executed, err := root.ExecuteC()
	if err != nil {
		ctx := root.Context()
		if executed != nil {
			ctx = executed.Context()
		}
		logging.FromContext(ctx).Errorf(ctx, "Failed: %s", err)
		os.Exit(1)
	}
}
