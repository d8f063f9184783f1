package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kompox/dnsresolver/domain/model"
	"github.com/kompox/dnsresolver/internal/rdata"
)

// zoneView is the printed representation of a zone.
type zoneView struct {
	ID               string    `json:"id" yaml:"id"`
	ParentID         string    `json:"parentId,omitempty" yaml:"parentId,omitempty"`
	Name             string    `json:"name" yaml:"name"`
	Owner            string    `json:"owner" yaml:"owner"`
	OpenRegistration bool      `json:"openRegistration" yaml:"openRegistration"`
	CreatedAt        time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt" yaml:"updatedAt"`
}

func newZoneView(z *model.Zone) zoneView {
	v := zoneView{
		ID:               z.ID.String(),
		Name:             z.Name,
		Owner:            string(z.Owner),
		OpenRegistration: z.OpenRegistration,
		CreatedAt:        z.CreatedAt,
		UpdatedAt:        z.UpdatedAt,
	}
	if z.IsRoot() {
		v.Name = "."
	} else {
		v.ParentID = z.ParentID.String()
	}
	return v
}

// recordView is the printed representation of a record payload.
type recordView struct {
	Type string `json:"type" yaml:"type"`
	Data string `json:"data" yaml:"data"`
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
}

func newRecordView(t model.ResourceType, data []byte) recordView {
	v := recordView{Type: t.String(), Data: rdata.Hex(data)}
	if text := rdata.Describe(data); text != v.Data {
		v.Text = text
	}
	return v
}

// printOutput writes v to stdout in the format selected by --output.
func printOutput(cmd *cobra.Command, v any) error {
	switch getOutputFormat(cmd) {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(v)
	default:
		return fmt.Errorf("unsupported output format: %s", getOutputFormat(cmd))
	}
}
