package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWithoutPath(t *testing.T) {
	f, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if f.MACTableSize != 8 {
		t.Errorf("expected default mac-table-size 8, got %d", f.MACTableSize)
	}
	if f.LogLevel != "info" || f.LogFormat != "text" {
		t.Errorf("expected default info/text, got %s/%s", f.LogLevel, f.LogFormat)
	}
}

func TestLoadValidConfigWithPorts(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "vswitch.yaml")
	content := `
mac-table-size: 32
log-level: debug
log-format: json
ports:
  - name: access1
    untagged_vlan: 10
  - name: trunk1
    tagged_vlans: [10, 20]
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if f.MACTableSize != 32 {
		t.Errorf("expected mac-table-size 32, got %d", f.MACTableSize)
	}
	if f.LogLevel != "debug" || f.LogFormat != "json" {
		t.Errorf("expected debug/json, got %s/%s", f.LogLevel, f.LogFormat)
	}

	tbl, err := f.Ports()
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Len() != 2 {
		t.Fatalf("expected 2 ports, got %d", tbl.Len())
	}
	access, err := tbl.ByName("access1")
	if err != nil {
		t.Fatal(err)
	}
	if access.UntaggedVLAN() != 10 {
		t.Errorf("expected untagged VLAN 10, got %d", access.UntaggedVLAN())
	}
	trunk, err := tbl.ByName("trunk1")
	if err != nil {
		t.Fatal(err)
	}
	if !trunk.IsTaggedMember(10) || !trunk.IsTaggedMember(20) {
		t.Errorf("expected trunk1 tagged on 10 and 20, got %v", trunk.TaggedVLANs())
	}
}

func TestLoadRejectsBadLogLevel(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "vswitch.yaml")
	if err := os.WriteFile(path, []byte("log-level: loud\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for bad log-level")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path/vswitch.yaml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
