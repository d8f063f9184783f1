package resolvercfg

import (
	"fmt"

	"github.com/kompox/dnsresolver/internal/namehash"
)

// Validate performs semantic validation on the configuration tree.
func (r *Root) Validate() error {
	if r.Version != "" && r.Version != "v1" {
		return fmt.Errorf("version: unsupported %q", r.Version)
	}
	if r.Root.Owner == "" {
		return fmt.Errorf("root.owner: required")
	}
	declared, err := r.validateZones()
	if err != nil {
		return err
	}
	for i := range r.Records {
		if _, err := r.Records[i].resolve(declared); err != nil {
			return fmt.Errorf("records[%d]: %w", i, err)
		}
	}
	return nil
}

// validateZones returns the set of declared normalized zone names.
func (r *Root) validateZones() (map[string]struct{}, error) {
	declared := map[string]struct{}{"": {}}
	for i, z := range r.Zones {
		norm, err := namehash.Normalize(z.Name)
		if err != nil {
			return nil, fmt.Errorf("zones[%d].name: %w", i, err)
		}
		if norm == "" {
			return nil, fmt.Errorf("zones[%d].name: the root zone is configured under root", i)
		}
		if _, dup := declared[norm]; dup {
			return nil, fmt.Errorf("zones[%d].name: duplicate zone %q", i, norm)
		}
		if z.Owner == "" {
			return nil, fmt.Errorf("zones[%d].owner: required", i)
		}
		declared[norm] = struct{}{}
	}
	// Parents may be declared in any order.
	for i, z := range r.Zones {
		norm, _ := namehash.Normalize(z.Name)
		if _, parent := namehash.Split(norm); parent != "" {
			if _, ok := declared[parent]; !ok {
				return nil, fmt.Errorf("zones[%d].name: parent zone %q is not declared", i, parent)
			}
		}
	}
	return declared, nil
}
