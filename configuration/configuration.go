package configuration

import (
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"
)

// Configuration is a versioned localhub configuration, intended to be
// provided by a yaml file, and optionally modified by environment variables.
//
// Note that yaml field names should never include _ characters, since this is
// the separator used in environment variable names.
type Configuration struct {
	// Version is the version which defines the format of the rest of the
	// configuration.
	Version Version `yaml:"version"`

	// Log supports setting various parameters related to the logging
	// subsystem.
	Log Log `yaml:"log,omitempty"`

	// HTTP contains configuration parameters for the server's http
	// interface.
	HTTP HTTP `yaml:"http,omitempty"`

	// Storage is the configuration for the backing store.
	Storage Storage `yaml:"storage"`

	// Cache tunes the TTL and capacities of the in-process caches.
	Cache Cache `yaml:"cache,omitempty"`
}

// Log represents the configuration for logging.
type Log struct {
	// Level is the granularity at which server operations are logged.
	Level Loglevel `yaml:"level,omitempty"`

	// Formatter overrides the default formatter with another. Options
	// include "text" and "json".
	Formatter string `yaml:"formatter,omitempty"`

	// Fields allows users to specify static string fields to include in
	// the logger context.
	Fields map[string]any `yaml:"fields,omitempty"`
}

// HTTP contains the listener parameters.
type HTTP struct {
	// Addr specifies the bind address for the hub instance.
	Addr string `yaml:"addr,omitempty"`

	// Debug configures the http debug interface, if specified. This can
	// include services such as pprof, expvar and the prometheus metrics
	// endpoint.
	Debug struct {
		Addr string `yaml:"addr,omitempty"`
	} `yaml:"debug,omitempty"`
}

// Storage defines the backing store as a driver name mapped to its parameter
// set. Only the "filesystem" driver exists today.
type Storage map[string]Parameters

// Parameters defines a key-value parameter set for a driver.
type Parameters map[string]any

// Type returns the storage driver type, such as filesystem.
func (storage Storage) Type() string {
	for k := range storage {
		return k
	}
	return ""
}

// Parameters returns the Parameters map for the active storage driver.
func (storage Storage) Parameters() Parameters {
	return storage[storage.Type()]
}

// Cache tunes the in-process caches. Zero values fall back to the defaults
// below.
type Cache struct {
	// TTL bounds the staleness of every cached value.
	TTL Duration `yaml:"ttl,omitempty"`

	// PathsInfo, Siblings and SHA256 cap the entry counts of the three
	// cache buckets.
	PathsInfo int `yaml:"pathsinfo,omitempty"`
	Siblings  int `yaml:"siblings,omitempty"`
	SHA256    int `yaml:"sha256,omitempty"`
}

// Duration is a time.Duration that unmarshals from a Go duration string
// such as "2s" or "250ms".
type Duration time.Duration

// UnmarshalYAML implements the yaml.Umarshaler interface.
func (d *Duration) UnmarshalYAML(unmarshal func(any) error) error {
	var durationString string
	if err := unmarshal(&durationString); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(durationString)
	if err != nil {
		return err
	}

	*d = Duration(parsed)
	return nil
}

const (
	// DefaultCacheTTL bounds staleness when no ttl is configured.
	DefaultCacheTTL = Duration(2 * time.Second)

	// DefaultPathsInfoSize is the paths-info cache capacity.
	DefaultPathsInfoSize = 512

	// DefaultSiblingsSize is the siblings cache capacity.
	DefaultSiblingsSize = 256

	// DefaultSHA256Size is the digest cache capacity.
	DefaultSHA256Size = 1024
)

// applyDefaults fills the zero-valued tunables.
func (c *Configuration) applyDefaults() {
	if c.HTTP.Addr == "" {
		c.HTTP.Addr = ":8080"
	}
	if c.Cache.TTL <= 0 {
		c.Cache.TTL = DefaultCacheTTL
	}
	if c.Cache.PathsInfo <= 0 {
		c.Cache.PathsInfo = DefaultPathsInfoSize
	}
	if c.Cache.Siblings <= 0 {
		c.Cache.Siblings = DefaultSiblingsSize
	}
	if c.Cache.SHA256 <= 0 {
		c.Cache.SHA256 = DefaultSHA256Size
	}
}

// Loglevel is the level at which operations are logged. This can be error,
// warn, info, or debug.
type Loglevel string

// UnmarshalYAML implements the yaml.Umarshaler interface, unmarshalling
// strings into Loglevel and validating that it represents a valid loglevel.
func (loglevel *Loglevel) UnmarshalYAML(unmarshal func(any) error) error {
	var loglevelString string
	err := unmarshal(&loglevelString)
	if err != nil {
		return err
	}

	loglevelString = strings.ToLower(loglevelString)
	switch loglevelString {
	case "error", "warn", "info", "debug":
	default:
		return fmt.Errorf("invalid loglevel %s Must be one of [error, warn, info, debug]", loglevelString)
	}

	*loglevel = Loglevel(loglevelString)
	return nil
}

// v0_1Configuration is a Version 0.1 Configuration struct. This is currently
// aliased to Configuration, as it is the current version.
type v0_1Configuration Configuration

// Parse parses an input configuration yaml document into a Configuration
// struct.
//
// Environment variables may be used to override configuration parameters
// other than version, following the scheme below:
// Configuration.Abc may be replaced by the value of LOCALHUB_ABC,
// Configuration.Abc.Xyz may be replaced by the value of LOCALHUB_ABC_XYZ,
// and so forth.
func Parse(rd io.Reader) (*Configuration, error) {
	in, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}

	p := NewParser("localhub", []VersionedParseInfo{
		{
			Version: MajorMinorVersion(0, 1),
			ParseAs: reflect.TypeOf(v0_1Configuration{}),
			ConversionFunc: func(c any) (any, error) {
				if v0_1, ok := c.(*v0_1Configuration); ok {
					if v0_1.Storage.Type() == "" {
						return nil, fmt.Errorf("no storage configuration provided")
					}
					return (*Configuration)(v0_1), nil
				}
				return nil, fmt.Errorf("expected *v0_1Configuration, received %#v", c)
			},
		},
	})

	config := new(Configuration)
	err = p.Parse(in, config)
	if err != nil {
		return nil, err
	}
	config.applyDefaults()

	return config, nil
}
