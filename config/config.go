// Package config loads vswitch's optional YAML configuration file: default
// values for the learning-table size and log settings, and an optional
// static port topology used when the command line supplies no PORTSPEC
// positional arguments.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/vlanswitch/vswitch/ethernet"
	"github.com/vlanswitch/vswitch/learntable"
	"github.com/vlanswitch/vswitch/port"
)

// PortConfig is one entry of the config file's static `ports:` list.
type PortConfig struct {
	Name         string `mapstructure:"name"`
	UntaggedVLAN *int   `mapstructure:"untagged_vlan"`
	TaggedVLANs  []int  `mapstructure:"tagged_vlans"`
}

// File is the top-level shape of vswitch's YAML config file.
type File struct {
	MACTableSize int          `mapstructure:"mac-table-size"`
	LogLevel     string       `mapstructure:"log-level"`
	LogFormat    string       `mapstructure:"log-format"`
	PortsConfig  []PortConfig `mapstructure:"ports"`
}

// Load reads the YAML file at path, if path is non-empty, merging it over
// built-in defaults; environment variables prefixed VSWITCH_ (with '-'
// replaced by '_') override both. With an empty path, Load returns the
// defaults untouched by any file.
func Load(path string) (*File, error) {
	v := viper.New()
	v.SetEnvPrefix("vswitch")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("mac-table-size", learntable.DefaultCapacity)
	v.SetDefault("log-level", "info")
	v.SetDefault("log-format", "text")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: reading %s: %w", path, err)
		}
	}

	var f File
	if err := v.Unmarshal(&f); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
var validLogFormats = map[string]bool{"text": true, "json": true}

// Validate checks the loaded values are within the sets vswitch understands.
func (f *File) Validate() error {
	if f.MACTableSize <= 0 {
		return fmt.Errorf("config: mac-table-size must be positive, got %d", f.MACTableSize)
	}
	if !validLogLevels[f.LogLevel] {
		return fmt.Errorf("config: invalid log-level %q", f.LogLevel)
	}
	if !validLogFormats[f.LogFormat] {
		return fmt.Errorf("config: invalid log-format %q", f.LogFormat)
	}
	return nil
}

// Ports builds a port.Table from the config file's static `ports:` list.
// Callers only use this when no PORTSPEC positional arguments were given on
// the command line; CLI-supplied ports always take precedence.
func (f *File) Ports() (*port.Table, error) {
	ports := make([]*port.Port, 0, len(f.PortsConfig))
	for i, pc := range f.PortsConfig {
		p := port.New(i+1, pc.Name)
		if pc.UntaggedVLAN != nil {
			if err := p.SetUntagged(ethernet.VLANID(*pc.UntaggedVLAN)); err != nil {
				return nil, fmt.Errorf("config: port %q: %w", pc.Name, err)
			}
		}
		for _, vid := range pc.TaggedVLANs {
			if err := p.AddTagged(ethernet.VLANID(vid)); err != nil {
				return nil, fmt.Errorf("config: port %q: %w", pc.Name, err)
			}
		}
		ports = append(ports, p)
	}
	return port.NewTable(ports), nil
}
