package resolvercfg

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Success(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dnsresolver.yml")

	content := `
version: v1
root:
  owner: registry-owner
zones:
  - name: eth
    owner: registrar
    openRegistration: true
  - name: test1.eth
    owner: alice
records:
  - zone: test1.eth
    rr: "test1.eth. 3600 IN A 192.0.2.1"
  - zone: test1.eth
    name: test1.eth.
    type: TXT
    data: "0x012345"
    soa: "0xffffff"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write temp yaml: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Version != "v1" {
		t.Errorf("expected version v1, got %s", cfg.Version)
	}
	if cfg.Root.Owner != "registry-owner" {
		t.Errorf("unexpected root owner %q", cfg.Root.Owner)
	}
	if len(cfg.Zones) != 2 || !cfg.Zones[0].OpenRegistration || cfg.Zones[1].Owner != "alice" {
		t.Errorf("unexpected zones: %+v", cfg.Zones)
	}
	if len(cfg.Records) != 2 || cfg.Records[1].SOA != "0xffffff" {
		t.Errorf("unexpected records: %+v", cfg.Records)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("expected error for missing file")
	}
	path := filepath.Join(t.TempDir(), "bad.yml")
	if err := os.WriteFile(path, []byte("zones: [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
