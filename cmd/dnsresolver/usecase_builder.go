package main

import (
	"github.com/spf13/cobra"

	"github.com/kompox/dnsresolver/adapters/oracle"
	"github.com/kompox/dnsresolver/usecase/record"
	"github.com/kompox/dnsresolver/usecase/zone"
)

// buildZoneUseCase creates zone use case with required repositories.
func buildZoneUseCase(cmd *cobra.Command) (*zone.UseCase, error) {
	repos, err := buildRepos(cmd)
	if err != nil {
		return nil, err
	}
	return &zone.UseCase{Repos: &zone.Repos{Zone: repos.Zone, Record: repos.Record}}, nil
}

// buildRecordUseCase creates record use case; ownership is read from the zone registry.
func buildRecordUseCase(cmd *cobra.Command) (*record.UseCase, error) {
	repos, err := buildRepos(cmd)
	if err != nil {
		return nil, err
	}
	return &record.UseCase{
		Repos:  &record.Repos{Record: repos.Record},
		Owners: oracle.NewRegistry(repos.Zone),
	}, nil
}
