package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/kompox/dnsresolver/domain/model"
	"github.com/kompox/dnsresolver/internal/namehash"
	"github.com/kompox/dnsresolver/internal/rdata"
	"github.com/kompox/dnsresolver/usecase/record"
)

func newCmdRecord() *cobra.Command {
	cmd := &cobra.Command{
		Use:                "record",
		Short:              "Manage records published under a zone",
		SilenceUsage:       true,
		SilenceErrors:      true,
		DisableSuggestions: true,
		RunE:               func(cmd *cobra.Command, args []string) error { return cmd.Help() },
	}
	cmd.AddCommand(
		newCmdRecordSet(),
		newCmdRecordClear(),
		newCmdRecordGet(),
		newCmdRecordHas(),
		newCmdRecordList(),
	)
	return cmd
}

// parseNameRef accepts a record FQDN or a 0x-prefixed name ID.
func parseNameRef(s string) (model.NameID, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") && len(s) == 2+2*model.HashLength {
		return model.ParseHash(s)
	}
	return namehash.NameID(s)
}

// parseSOAFlag accepts a hex payload or a presentation-format SOA record.
func parseSOAFlag(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return rdata.ParseHex(s)
	}
	_, typ, payload, err := rdata.FromText(s)
	if err != nil {
		return nil, fmt.Errorf("soa: %w", err)
	}
	if typ != model.TypeSOA {
		return nil, fmt.Errorf("soa: expected an SOA record, got %s", typ)
	}
	return payload, nil
}

// setRequest is the resolved form of record set arguments.
type setRequest struct {
	zone    model.ZoneID
	name    model.NameID
	typ     model.ResourceType
	payload []byte
	soa     []byte
}

// resolveSetArgs combines positional arguments with --data/--rr/--soa.
// With --rr the name and type may be omitted and are taken from the record text.
func resolveSetArgs(args []string, data, rr, soa string) (*setRequest, error) {
	if data != "" && rr != "" {
		return nil, fmt.Errorf("--data and --rr are mutually exclusive")
	}
	req := &setRequest{}
	var err error
	if req.zone, err = parseZoneRef(args[0]); err != nil {
		return nil, err
	}

	var nameText, typeText string
	if len(args) > 1 {
		nameText = args[1]
	}
	if len(args) > 2 {
		typeText = args[2]
	}
	if rr != "" {
		rrName, rrType, payload, err := rdata.FromText(rr)
		if err != nil {
			return nil, fmt.Errorf("rr: %w", err)
		}
		if nameText == "" {
			nameText = rrName
		}
		if typeText != "" {
			t, err := model.ParseResourceType(typeText)
			if err != nil {
				return nil, err
			}
			if t != rrType {
				return nil, fmt.Errorf("type %s does not match rr type %s", t, rrType)
			}
		}
		req.typ, req.payload = rrType, payload
	} else {
		if typeText == "" {
			return nil, fmt.Errorf("type is required without --rr")
		}
		if req.typ, err = model.ParseResourceType(typeText); err != nil {
			return nil, err
		}
		if req.payload, err = rdata.ParseHex(data); err != nil {
			return nil, fmt.Errorf("data: %w", err)
		}
	}
	if nameText == "" {
		return nil, fmt.Errorf("name is required")
	}
	if req.name, err = parseNameRef(nameText); err != nil {
		return nil, err
	}
	if req.soa, err = parseSOAFlag(soa); err != nil {
		return nil, err
	}
	return req, nil
}

func newCmdRecordSet() *cobra.Command {
	var data, rr, soa string
	cmd := &cobra.Command{
		Use:   "set <zone> [name] [type]",
		Short: "Write a record",
		Long: `Write a record under a zone owned by the caller.

The payload is given either as hex (--data 0x...) or as presentation-format
records (--rr "www.example.eth. 300 IN A 192.0.2.1"), which are packed to wire
format. --soa replaces the zone SOA slot in the same operation.`,
		Args: cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			caller, err := getCaller(cmd)
			if err != nil {
				return err
			}
			req, err := resolveSetArgs(args, data, rr, soa)
			if err != nil {
				return err
			}
			uc, err := buildRecordUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "record.set", args[0])
			defer func() { cleanup(err) }()
			release, err := lockStore(ctx, cmd)
			if err != nil {
				return err
			}
			defer release()

			out, err := uc.Set(ctx, &record.SetInput{
				Caller: caller,
				Zone:   req.zone,
				Name:   req.name,
				Type:   req.typ,
				Data:   req.payload,
				SOA:    req.soa,
			})
			if err != nil {
				return err
			}
			return printOutput(cmd, out)
		},
	}
	cmd.Flags().StringVar(&data, "data", "", "Record payload as hex")
	cmd.Flags().StringVar(&rr, "rr", "", "Record payload as presentation-format RRs")
	cmd.Flags().StringVar(&soa, "soa", "", "Zone SOA payload as hex or an SOA record")
	return cmd
}

func newCmdRecordClear() *cobra.Command {
	var soa string
	cmd := &cobra.Command{
		Use:   "clear <zone> <name> <type>",
		Short: "Remove a record",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			caller, err := getCaller(cmd)
			if err != nil {
				return err
			}
			zoneID, err := parseZoneRef(args[0])
			if err != nil {
				return err
			}
			nameID, err := parseNameRef(args[1])
			if err != nil {
				return err
			}
			typ, err := model.ParseResourceType(args[2])
			if err != nil {
				return err
			}
			soaPayload, err := parseSOAFlag(soa)
			if err != nil {
				return err
			}
			uc, err := buildRecordUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			ctx, cleanup := withCmdRunLogger(ctx, "record.clear", args[0])
			defer func() { cleanup(err) }()
			release, err := lockStore(ctx, cmd)
			if err != nil {
				return err
			}
			defer release()

			out, err := uc.Clear(ctx, &record.ClearInput{Caller: caller, Zone: zoneID, Name: nameID, Type: typ, SOA: soaPayload})
			if err != nil {
				return err
			}
			return printOutput(cmd, out)
		},
	}
	cmd.Flags().StringVar(&soa, "soa", "", "Zone SOA payload as hex or an SOA record")
	return cmd
}

func newCmdRecordGet() *cobra.Command {
	return &cobra.Command{
		Use:   "get <zone> <name> <type>",
		Short: "Show the payload of a record",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			zoneID, err := parseZoneRef(args[0])
			if err != nil {
				return err
			}
			nameID, err := parseNameRef(args[1])
			if err != nil {
				return err
			}
			typ, err := model.ParseResourceType(args[2])
			if err != nil {
				return err
			}
			uc, err := buildRecordUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := uc.Get(ctx, &record.GetInput{Zone: zoneID, Name: nameID, Type: typ})
			if err != nil {
				return err
			}
			return printOutput(cmd, newRecordView(typ, out.Data))
		},
	}
}

func newCmdRecordHas() *cobra.Command {
	return &cobra.Command{
		Use:   "has <zone> <name>",
		Short: "Report whether any record exists under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			zoneID, err := parseZoneRef(args[0])
			if err != nil {
				return err
			}
			nameID, err := parseNameRef(args[1])
			if err != nil {
				return err
			}
			uc, err := buildRecordUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := uc.Has(ctx, &record.HasInput{Zone: zoneID, Name: nameID})
			if err != nil {
				return err
			}
			return printOutput(cmd, out)
		},
	}
}

func newCmdRecordList() *cobra.Command {
	return &cobra.Command{
		Use:   "list <zone> <name>",
		Short: "List the records under a name",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			zoneID, err := parseZoneRef(args[0])
			if err != nil {
				return err
			}
			nameID, err := parseNameRef(args[1])
			if err != nil {
				return err
			}
			uc, err := buildRecordUseCase(cmd)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()
			out, err := uc.List(ctx, &record.ListInput{Zone: zoneID, Name: nameID})
			if err != nil {
				return err
			}
			views := make([]recordView, 0, len(out.Records))
			for _, r := range out.Records {
				views = append(views, newRecordView(r.Type, r.Data))
			}
			return printOutput(cmd, views)
		},
	}
}
