package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kompox/dnsresolver/domain/model"
	"github.com/kompox/dnsresolver/internal/namehash"
)

const testConfig = `version: v1
root:
  owner: root
zones:
  - name: eth
    owner: root
  - name: test1.eth
    owner: alice
records:
  - zone: test1.eth
    rr: "www.test1.eth. 300 IN A 192.0.2.1"
`

// runCmd executes the CLI with args and returns stdout.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dnsresolver.yml")
	if err := os.WriteFile(path, []byte(testConfig), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestParseZoneRef(t *testing.T) {
	eth, err := namehash.ZoneID("eth")
	if err != nil {
		t.Fatalf("ZoneID: %v", err)
	}
	tests := []struct {
		in   string
		want model.ZoneID
	}{
		{".", model.RootZoneID},
		{"eth", eth},
		{"ETH.", eth},
		{eth.String(), eth},
	}
	for _, tt := range tests {
		got, err := parseZoneRef(tt.in)
		if err != nil {
			t.Fatalf("parseZoneRef(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("parseZoneRef(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestResolveSetArgs(t *testing.T) {
	www, err := namehash.NameID("www.test1.eth")
	if err != nil {
		t.Fatalf("NameID: %v", err)
	}
	tests := []struct {
		name    string
		args    []string
		data    string
		rr      string
		soa     string
		wantTyp model.ResourceType
		wantErr bool
	}{
		{name: "hex", args: []string{"test1.eth", "www.test1.eth", "A"}, data: "0xc0000201", wantTyp: model.TypeA},
		{name: "rr infers name and type", args: []string{"test1.eth"}, rr: "www.test1.eth. 300 IN A 192.0.2.1", wantTyp: model.TypeA},
		{name: "rr with matching type", args: []string{"test1.eth", "www.test1.eth", "a"}, rr: "www.test1.eth. 300 IN A 192.0.2.1", wantTyp: model.TypeA},
		{name: "rr type mismatch", args: []string{"test1.eth", "www.test1.eth", "TXT"}, rr: "www.test1.eth. 300 IN A 192.0.2.1", wantErr: true},
		{name: "data and rr", args: []string{"test1.eth"}, data: "0x01", rr: "www.test1.eth. 300 IN A 192.0.2.1", wantErr: true},
		{name: "missing type", args: []string{"test1.eth", "www.test1.eth"}, data: "0x01", wantErr: true},
		{name: "bad hex", args: []string{"test1.eth", "www.test1.eth", "A"}, data: "0xzz", wantErr: true},
		{name: "soa text", args: []string{"test1.eth", "www.test1.eth", "A"}, data: "0x01", soa: "test1.eth. 300 IN SOA ns.test1.eth. admin.test1.eth. 1 7200 3600 1209600 300", wantTyp: model.TypeA},
		{name: "soa wrong type", args: []string{"test1.eth", "www.test1.eth", "A"}, data: "0x01", soa: "www.test1.eth. 300 IN A 192.0.2.1", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := resolveSetArgs(tt.args, tt.data, tt.rr, tt.soa)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("resolveSetArgs: %v", err)
			}
			if req.typ != tt.wantTyp || req.name != www {
				t.Fatalf("unexpected request: type=%s name=%s", req.typ, req.name)
			}
			if len(req.payload) == 0 {
				t.Fatal("expected payload")
			}
			if tt.soa != "" && len(req.soa) == 0 {
				t.Fatal("expected soa payload")
			}
		})
	}
}

func TestRecordCommands_FileStore(t *testing.T) {
	db := "--db-url=file:" + writeConfig(t)

	out, err := runCmd(t, db, "record", "has", "test1.eth", "www.test1.eth")
	if err != nil {
		t.Fatalf("has: %v", err)
	}
	var has struct {
		HasRecords bool `json:"has_records"`
		Count      int  `json:"count"`
	}
	if err := json.Unmarshal([]byte(out), &has); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if !has.HasRecords || has.Count != 1 {
		t.Fatalf("seed record missing: %+v", has)
	}

	if _, err := runCmd(t, db, "--caller=alice", "record", "set", "test1.eth", "--rr", "www.test1.eth. 300 IN TXT \"hello\""); err != nil {
		t.Fatalf("set: %v", err)
	}
	out, err = runCmd(t, db, "record", "get", "test1.eth", "www.test1.eth", "TXT")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	var view recordView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if view.Type != "TXT" || !strings.Contains(view.Text, "hello") {
		t.Fatalf("unexpected record: %+v", view)
	}

	_, err = runCmd(t, db, "--caller=bob", "record", "set", "test1.eth", "www.test1.eth", "A", "--data", "0x01")
	if !errors.Is(err, model.ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}
	_, err = runCmd(t, db, "--caller=alice", "record", "set", "test1.eth", "www.test1.eth", "RRSIG", "--data", "0x01")
	if !errors.Is(err, model.ErrForbiddenType) {
		t.Fatalf("err = %v, want ErrForbiddenType", err)
	}
	if _, err := runCmd(t, db, "record", "set", "test1.eth", "www.test1.eth", "A", "--data", "0x01"); err == nil {
		t.Fatal("expected error without --caller")
	}
}

func TestZoneCommands_SQLite(t *testing.T) {
	db := "--db-url=sqlite:" + filepath.Join(t.TempDir(), "dnsresolver.db")

	if _, err := runCmd(t, db, "zone", "init", "--owner", "root"); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := runCmd(t, db, "--caller=root", "zone", "register", "eth", "--owner", "alice"); err != nil {
		t.Fatalf("register: %v", err)
	}
	out, err := runCmd(t, db, "-o", "yaml", "zone", "get", "eth")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !strings.Contains(out, "owner: alice") {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if _, err := runCmd(t, db, "--caller=bob", "zone", "transfer", "eth", "bob"); !errors.Is(err, model.ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}
	if _, err := runCmd(t, db, "--caller=alice", "zone", "transfer", "eth", "bob"); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if _, err := runCmd(t, db, "--caller=bob", "record", "set", "eth", "eth", "--rr", "eth. 300 IN A 192.0.2.7"); err != nil {
		t.Fatalf("set by new owner: %v", err)
	}
	out, err = runCmd(t, db, "zone", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var zones []zoneView
	if err := json.Unmarshal([]byte(out), &zones); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if len(zones) != 2 || zones[0].Name != "." || zones[1].Owner != "bob" {
		t.Fatalf("unexpected zones: %+v", zones)
	}

	if _, err := runCmd(t, db, "--caller=alice", "zone", "delete", "eth"); !errors.Is(err, model.ErrNotOwner) {
		t.Fatalf("err = %v, want ErrNotOwner", err)
	}
	if _, err := runCmd(t, db, "--caller=bob", "zone", "delete", "eth"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := runCmd(t, db, "zone", "get", "eth"); !errors.Is(err, model.ErrZoneNotFound) {
		t.Fatalf("err = %v, want ErrZoneNotFound after delete", err)
	}
}

func TestVersion(t *testing.T) {
	out, err := runCmd(t, "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(out, "dnsresolver version ") {
		t.Fatalf("unexpected output %q", out)
	}
}
