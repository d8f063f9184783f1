package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kompox/dnsresolver/domain/model"
	"github.com/kompox/dnsresolver/internal/namehash"
	"github.com/kompox/dnsresolver/usecase/zone"
)

func newCmdZone() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "zone",
		Short:              "Manage the zone registry",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE:               func(cmd *cobra.Command, args []string) error { return cmd.Help() },
	}
	cmd.AddCommand(
		newCmdZoneInit(),
		newCmdZoneRegister(),
		newCmdZoneTransfer(),
		newCmdZoneUpdate(),
		newCmdZoneDelete(),
		newCmdZoneGet(),
		newCmdZoneList(),
	)
	return cmd
}

// parseZoneRef accepts a dotted zone name ("." for the root) or a 0x-prefixed zone ID.
func parseZoneRef(s string) (model.ZoneID, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") && len(s) == 2+2*model.HashLength {
		return model.ParseHash(s)
	}
	if s == "." {
		return model.RootZoneID, nil
	}
	return namehash.ZoneID(strings.TrimSuffix(s, "."))
}

func newCmdZoneInit() *cobra.Command {
	var (
		owner string
		open  bool
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the root zone",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			uc, err := buildZoneUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "zone.init", ".")
			defer func() { cleanup(err) }()
			release, err := lockStore(ctx, cmd)
			if err != nil {
				return err
			}
			defer release()

			out, err := uc.Init(ctx, &zone.InitInput{Owner: model.Principal(owner), OpenRegistration: open})
			if err != nil {
				return err
			}
			return printOutput(cmd, newZoneView(out.Zone))
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "Owner of the root zone")
	cmd.Flags().BoolVar(&open, "open", false, "Allow first-come registration of top-level zones")
	_ = cmd.MarkFlagRequired("owner")
	return cmd
}

func newCmdZoneRegister() *cobra.Command {
	var (
		owner string
		open  bool
	)
	cmd := &cobra.Command{
		Use:   "register <name>",
		Short: "Register or re-delegate a zone under its parent",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			caller, err := getCaller(cmd)
			if err != nil {
				return err
			}
			norm, err := namehash.Normalize(strings.TrimSuffix(args[0], "."))
			if err != nil {
				return err
			}
			if norm == "" {
				return fmt.Errorf("the root zone is created with zone init")
			}
			label, parent := namehash.Split(norm)

			uc, err := buildZoneUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "zone.register", norm)
			defer func() { cleanup(err) }()
			release, err := lockStore(ctx, cmd)
			if err != nil {
				return err
			}
			defer release()

			in := &zone.RegisterInput{
				Caller: caller,
				Parent: parent,
				Label:  label,
				Owner:  model.Principal(owner),
			}
			if cmd.Flags().Changed("open") {
				in.OpenRegistration = &open
			}
			out, err := uc.Register(ctx, in)
			if err != nil {
				return err
			}
			return printOutput(cmd, newZoneView(out.Zone))
		},
	}
	cmd.Flags().StringVar(&owner, "owner", "", "Owner of the zone (default: the caller)")
	cmd.Flags().BoolVar(&open, "open", false, "Allow first-come registration of child zones")
	return cmd
}

func newCmdZoneTransfer() *cobra.Command {
	return &cobra.Command{
		Use:   "transfer <zone> <new-owner>",
		Short: "Hand a zone to a new owner",
		Long:  "Hand a zone to a new owner. An empty new owner (\"\") leaves the zone unowned.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			caller, err := getCaller(cmd)
			if err != nil {
				return err
			}
			id, err := parseZoneRef(args[0])
			if err != nil {
				return err
			}
			uc, err := buildZoneUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "zone.transfer", args[0])
			defer func() { cleanup(err) }()
			release, err := lockStore(ctx, cmd)
			if err != nil {
				return err
			}
			defer release()

			out, err := uc.Transfer(ctx, &zone.TransferInput{Caller: caller, Zone: id, NewOwner: model.Principal(args[1])})
			if err != nil {
				return err
			}
			return printOutput(cmd, newZoneView(out.Zone))
		},
	}
}

func newCmdZoneUpdate() *cobra.Command {
	var open bool
	cmd := &cobra.Command{
		Use:   "update <zone>",
		Short: "Change zone settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			caller, err := getCaller(cmd)
			if err != nil {
				return err
			}
			id, err := parseZoneRef(args[0])
			if err != nil {
				return err
			}
			in := &zone.UpdateInput{Caller: caller, Zone: id}
			if cmd.Flags().Changed("open") {
				in.OpenRegistration = &open
			}
			uc, err := buildZoneUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "zone.update", args[0])
			defer func() { cleanup(err) }()
			release, err := lockStore(ctx, cmd)
			if err != nil {
				return err
			}
			defer release()

			out, err := uc.Update(ctx, in)
			if err != nil {
				return err
			}
			return printOutput(cmd, newZoneView(out.Zone))
		},
	}
	cmd.Flags().BoolVar(&open, "open", false, "Allow first-come registration of child zones")
	return cmd
}

func newCmdZoneDelete() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <zone>",
		Short: "Unregister a zone without child zones",
		Long:  "Unregister a zone without child zones. The zone owner or the parent owner may do it. Records under the zone are kept but cannot change until the zone is registered again.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			caller, err := getCaller(cmd)
			if err != nil {
				return err
			}
			id, err := parseZoneRef(args[0])
			if err != nil {
				return err
			}
			uc, err := buildZoneUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "zone.delete", args[0])
			defer func() { cleanup(err) }()
			release, err := lockStore(ctx, cmd)
			if err != nil {
				return err
			}
			defer release()

			out, err := uc.Delete(ctx, &zone.DeleteInput{Caller: caller, Zone: id})
			if err != nil {
				return err
			}
			return printOutput(cmd, newZoneView(out.Zone))
		},
	}
}

func newCmdZoneGet() *cobra.Command {
	return &cobra.Command{
		Use:   "get <zone>",
		Short: "Show a zone",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseZoneRef(args[0])
			if err != nil {
				return err
			}
			uc, err := buildZoneUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := uc.Get(ctx, &zone.GetInput{Zone: id})
			if err != nil {
				return err
			}
			return printOutput(cmd, newZoneView(out.Zone))
		},
	}
}

func newCmdZoneList() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List zones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			uc, err := buildZoneUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := uc.List(ctx, &zone.ListInput{})
			if err != nil {
				return err
			}
			views := make([]zoneView, 0, len(out.Zones))
			for _, z := range out.Zones {
				views = append(views, newZoneView(z))
			}
			return printOutput(cmd, views)
		},
	}
}
