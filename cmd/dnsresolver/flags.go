package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kompox/dnsresolver/domain/model"
)

// findFlag recursively searches parents for a flag.
func findFlag(cmd *cobra.Command, name string) *pflag.Flag {
	for c := cmd; c != nil; c = c.Parent() {
		if f := c.Flags().Lookup(name); f != nil {
			return f
		}
		if f := c.PersistentFlags().Lookup(name); f != nil {
			return f
		}
	}
	return nil
}

// getDBURL extracts the db-url flag value from command hierarchy.
func getDBURL(cmd *cobra.Command) string {
	f := findFlag(cmd, "db-url")
	if f != nil && f.Value.String() != "" {
		return f.Value.String()
	}
	return "file:dnsresolver.yml"
}

// getCaller returns the principal for mutating commands.
func getCaller(cmd *cobra.Command) (model.Principal, error) {
	f := findFlag(cmd, "caller")
	if f == nil || f.Value.String() == "" {
		return "", fmt.Errorf("--caller (or DNSRESOLVER_CALLER) is required")
	}
	return model.Principal(f.Value.String()), nil
}

func getOutputFormat(cmd *cobra.Command) string {
	if f := findFlag(cmd, "output"); f != nil && f.Value.String() != "" {
		return f.Value.String()
	}
	return "json"
}
