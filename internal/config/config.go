package config

import (
    "fmt"
    "time"
    "unicode/utf8"

    "github.com/zeromicro/go-zero/core/conf"
    "github.com/zeromicro/go-zero/core/logx"

    "github.com/jaminalder/codex-reversi/internal/textgrid"
)

// Config is the server configuration, loaded from etc/reversi.yaml.
type Config struct {
    ListenOn string `json:",default=0.0.0.0:8080"`
    Log      logx.LogConf `json:",optional"`

    // Marker replaces legal-move cells in rendered boards.
    Marker string `json:",default=0"`

    Heartbeat        time.Duration `json:",default=15s"`
    SubscriberBuffer int           `json:",default=1,range=[1:64]"`

    Pprof struct {
        Enabled bool   `json:",optional"`
        Addr    string `json:",optional"`
    } `json:",optional"`
}

const defaultPprofAddr = "localhost:6060"

// PprofAddr returns the profiling listen address.
func (c Config) PprofAddr() string {
    if c.Pprof.Addr == "" {
        return defaultPprofAddr
    }
    return c.Pprof.Addr
}

// MarkerRune returns the first rune of Marker.
func (c Config) MarkerRune() rune {
    for _, r := range c.Marker {
        return r
    }
    return '0'
}

// Validate checks constraints the struct tags cannot express.
func (c Config) Validate() error {
    if utf8.RuneCountInString(c.Marker) != 1 {
        return fmt.Errorf("Marker %q: must be a single character", c.Marker)
    }
    if err := textgrid.CheckMarker(c.MarkerRune()); err != nil {
        return fmt.Errorf("Marker %q: %w", c.Marker, err)
    }
    return nil
}

// Load reads the config file at path.
func Load(path string) (Config, error) {
    var c Config
    if err := conf.Load(path, &c); err != nil {
        return Config{}, err
    }
    if err := c.Validate(); err != nil {
        return Config{}, err
    }
    return c, nil
}

// Parse reads a YAML document.
func Parse(content []byte) (Config, error) {
    var c Config
    if err := conf.LoadFromYamlBytes(content, &c); err != nil {
        return Config{}, err
    }
    if err := c.Validate(); err != nil {
        return Config{}, err
    }
    return c, nil
}
