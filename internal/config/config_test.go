package config

import (
    "errors"
    "os"
    "path/filepath"
    "testing"
    "time"

    "github.com/jaminalder/codex-reversi/internal/textgrid"
)

func TestParseAppliesDefaults(t *testing.T) {
    c, err := Parse([]byte("ListenOn: 127.0.0.1:9000\n"))
    if err != nil {
        t.Fatalf("Parse failed: %v", err)
    }
    if c.ListenOn != "127.0.0.1:9000" {
        t.Fatalf("unexpected ListenOn %q", c.ListenOn)
    }
    if c.MarkerRune() != '0' {
        t.Fatalf("expected default marker '0', got %q", c.MarkerRune())
    }
    if c.Heartbeat != 15*time.Second {
        t.Fatalf("expected 15s heartbeat, got %v", c.Heartbeat)
    }
    if c.SubscriberBuffer != 1 {
        t.Fatalf("expected buffer 1, got %d", c.SubscriberBuffer)
    }
    if c.Pprof.Enabled || c.PprofAddr() != defaultPprofAddr {
        t.Fatalf("expected pprof disabled on %s, got %v %s", defaultPprofAddr, c.Pprof.Enabled, c.PprofAddr())
    }
}

func TestParseOverrides(t *testing.T) {
    doc := "Marker: \"*\"\nHeartbeat: 2s\nSubscriberBuffer: 4\nPprof:\n  Enabled: true\n  Addr: localhost:7070\n"
    c, err := Parse([]byte(doc))
    if err != nil {
        t.Fatalf("Parse failed: %v", err)
    }
    if c.MarkerRune() != '*' || c.Heartbeat != 2*time.Second || c.SubscriberBuffer != 4 {
        t.Fatalf("overrides not applied: %+v", c)
    }
    if !c.Pprof.Enabled || c.PprofAddr() != "localhost:7070" {
        t.Fatalf("pprof overrides not applied: %+v", c.Pprof)
    }
}

func TestParseRejectsBufferOutOfRange(t *testing.T) {
    if _, err := Parse([]byte("SubscriberBuffer: 0\n")); err == nil {
        t.Fatalf("expected range error")
    }
}

func TestParseRejectsCellMarker(t *testing.T) {
    for _, m := range []string{".", "B", "W"} {
        _, err := Parse([]byte("Marker: \"" + m + "\"\n"))
        if !errors.Is(err, textgrid.ErrInvalidMarker) {
            t.Fatalf("marker %q: expected ErrInvalidMarker, got %v", m, err)
        }
    }
    if _, err := Parse([]byte("Marker: \"ab\"\n")); err == nil {
        t.Fatalf("expected error for multi-character marker")
    }
}

func TestLoadShippedConfig(t *testing.T) {
    path := filepath.Join("..", "..", "etc", "reversi.yaml")
    if _, err := os.Stat(path); err != nil {
        t.Skipf("shipped config not found: %v", err)
    }
    c, err := Load(path)
    if err != nil {
        t.Fatalf("Load failed: %v", err)
    }
    if c.Log.ServiceName != "reversi" {
        t.Fatalf("unexpected service name %q", c.Log.ServiceName)
    }
}
