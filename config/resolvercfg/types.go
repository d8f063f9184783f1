// Package resolvercfg defines the configuration schema (structs) for dnsresolver.yml.
// The file bootstraps the zone registry and optionally seeds records.
package resolvercfg

// Root is the root structure of dnsresolver.yml.
type Root struct {
	Version string   `yaml:"version"`
	Root    RootZone `yaml:"root"`
	Zones   []Zone   `yaml:"zones,omitempty"`
	Records []Record `yaml:"records,omitempty"`
}

// RootZone configures the owner of the root zone.
type RootZone struct {
	Owner            string `yaml:"owner"`
	OpenRegistration bool   `yaml:"openRegistration,omitempty"`
}

// Zone registers a domain and its controlling principal.
type Zone struct {
	Name             string `yaml:"name"` // dotted name, e.g. "test1.eth"
	Owner            string `yaml:"owner"`
	OpenRegistration bool   `yaml:"openRegistration,omitempty"` // first-come registration of children
}

// Record seeds one record. Exactly one of Data and RR is set.
type Record struct {
	Zone string `yaml:"zone"`           // zone name as declared in zones
	Name string `yaml:"name,omitempty"` // record FQDN; derived from RR when omitted
	Type string `yaml:"type,omitempty"` // mnemonic or number; derived from RR when omitted
	Data string `yaml:"data,omitempty"` // hex payload
	RR   string `yaml:"rr,omitempty"`   // presentation-format RRset
	SOA  string `yaml:"soa,omitempty"`  // hex SOA payload or presentation-format SOA record
}
