package resolvercfg

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/kompox/dnsresolver/domain/model"
	"github.com/kompox/dnsresolver/internal/namehash"
	"github.com/kompox/dnsresolver/internal/rdata"
)

// ToModels converts the configuration to domain models.
// Zones are returned parents first, root included; records as ready-to-apply changes.
func (r *Root) ToModels() ([]*model.Zone, []*model.RecordChange, error) {
	if err := r.Validate(); err != nil {
		return nil, nil, err
	}
	now := time.Now().UTC()

	zones := []*model.Zone{{
		ID:               model.RootZoneID,
		Owner:            model.Principal(r.Root.Owner),
		OpenRegistration: r.Root.OpenRegistration,
		CreatedAt:        now,
		UpdatedAt:        now,
	}}
	for _, z := range r.Zones {
		norm, _ := namehash.Normalize(z.Name)
		label, parent := namehash.Split(norm)
		parentID, _ := namehash.ZoneID(parent)
		zones = append(zones, &model.Zone{
			ID:               namehash.Child(parentID, namehash.LabelHash(label)),
			ParentID:         parentID,
			Label:            label,
			Name:             norm,
			Owner:            model.Principal(z.Owner),
			OpenRegistration: z.OpenRegistration,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
	}
	// Fewer labels first so parents precede children.
	sort.SliceStable(zones[1:], func(i, j int) bool {
		return strings.Count(zones[1+i].Name, ".") < strings.Count(zones[1+j].Name, ".")
	})

	declared := map[string]struct{}{"": {}}
	for _, z := range zones {
		declared[z.Name] = struct{}{}
	}
	changes := make([]*model.RecordChange, 0, len(r.Records))
	for i := range r.Records {
		ch, err := r.Records[i].resolve(declared)
		if err != nil {
			return nil, nil, fmt.Errorf("records[%d]: %w", i, err)
		}
		changes = append(changes, ch)
	}
	return zones, changes, nil
}

// resolve turns a seed record into a record change, applying the same type
// and SOA rules as a caller-issued write.
func (rec *Record) resolve(declared map[string]struct{}) (*model.RecordChange, error) {
	zoneName, err := namehash.Normalize(rec.Zone)
	if err != nil {
		return nil, fmt.Errorf("zone: %w", err)
	}
	if _, ok := declared[zoneName]; !ok {
		return nil, fmt.Errorf("zone: %q is not declared", rec.Zone)
	}

	var (
		name    = rec.Name
		typ     model.ResourceType
		payload []byte
	)
	switch {
	case rec.RR != "" && rec.Data != "":
		return nil, fmt.Errorf("data and rr are mutually exclusive")
	case rec.RR != "":
		var rrName string
		rrName, typ, payload, err = rdata.FromText(rec.RR)
		if err != nil {
			return nil, fmt.Errorf("rr: %w", err)
		}
		if name == "" {
			name = rrName
		}
		if rec.Type != "" {
			declaredType, err := model.ParseResourceType(rec.Type)
			if err != nil {
				return nil, fmt.Errorf("type: %w", err)
			}
			if declaredType != typ {
				return nil, fmt.Errorf("type: %s does not match rr type %s", declaredType, typ)
			}
		}
	default:
		if typ, err = model.ParseResourceType(rec.Type); err != nil {
			return nil, fmt.Errorf("type: %w", err)
		}
		if payload, err = rdata.ParseHex(rec.Data); err != nil {
			return nil, fmt.Errorf("data: %w", err)
		}
	}
	if name == "" {
		return nil, fmt.Errorf("name: required")
	}
	soa, err := parseSOA(rec.SOA)
	if err != nil {
		return nil, fmt.Errorf("soa: %w", err)
	}

	zoneID, _ := namehash.ZoneID(zoneName)
	nameID, err := namehash.NameID(name)
	if err != nil {
		return nil, fmt.Errorf("name: %w", err)
	}
	ch, err := model.NewSetChange(model.RecordKey{Zone: zoneID, Name: nameID, Type: typ}, payload, soa)
	if err != nil {
		return nil, fmt.Errorf("type %s: %w", typ, err)
	}
	return ch, nil
}

func parseSOA(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return rdata.ParseHex(s)
	}
	_, typ, payload, err := rdata.FromText(s)
	if err != nil {
		return nil, err
	}
	if typ != model.TypeSOA {
		return nil, fmt.Errorf("expected an SOA record, got %s", typ)
	}
	return payload, nil
}
