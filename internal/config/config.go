// Package config provides configuration loading and management for the catalog server.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/nationalmap/px3-catalog-server/internal/telemetry"
)

const (
	// EnvPrefix is the prefix for environment variables read by the server
	EnvPrefix = "PX3_CATALOG"

	// SourceTypeFile is the type for a catalog document stored on the local filesystem
	SourceTypeFile = "file"

	// SourceTypeHTTP is the type for a catalog document fetched from an HTTP endpoint
	SourceTypeHTTP = "http"
)

// Option defines the interface for configuration options
type Option func(*loaderConfig) error

// loaderConfig defines the configuration for loading a configuration
type loaderConfig struct {
	path string
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		// Resolve symlinks to prevent symlink attacks.
		// Note that this calls filepath.Clean internally.
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}

		// Validate the path to prevent path traversal attacks
		if !filepath.IsAbs(realPath) {
			if !filepath.IsLocal(realPath) {
				return fmt.Errorf("path is not local or contains invalid traversal: %s", path)
			}
		}

		cfg.path = realPath
		return nil
	}
}

// Config represents the root configuration structure
type Config struct {
	// CatalogName is the name/identifier for this catalog instance
	// Defaults to "default" if not specified
	CatalogName string `yaml:"catalogName,omitempty"`

	// Catalog points at the Px3 configuration document to serve
	Catalog CatalogConfig `yaml:"catalog"`

	// Layers tunes how layer descriptors are built
	Layers *LayersConfig `yaml:"layers,omitempty"`

	// Schema controls validation of the catalog document on load
	Schema *SchemaConfig `yaml:"schema,omitempty"`

	// Telemetry configures metrics export
	Telemetry *telemetry.Config `yaml:"telemetry,omitempty"`
}

// CatalogConfig defines where the Px3 configuration document comes from
type CatalogConfig struct {
	// Type-specific configurations (only one should be set)
	File *FileConfig `yaml:"file,omitempty"`
	HTTP *HTTPConfig `yaml:"http,omitempty"`

	// ReloadPolicy enables periodic catalog reloads
	ReloadPolicy *ReloadPolicyConfig `yaml:"reloadPolicy,omitempty"`
}

// FileConfig defines local file source configuration
type FileConfig struct {
	// Path is the path to the Px3 JSON document on the local filesystem
	// Can be absolute or relative to the working directory
	Path string `yaml:"path"`
}

// HTTPConfig defines HTTP source configuration
type HTTPConfig struct {
	// Endpoint is the URL the Px3 JSON document is served on
	Endpoint string `yaml:"endpoint"`
}

// ReloadPolicyConfig defines periodic reload settings
type ReloadPolicyConfig struct {
	Interval string `yaml:"interval"`
}

// LayersConfig defines layer descriptor build settings
type LayersConfig struct {
	// PreferTiled targets the National Map layer variants for tiled services
	PreferTiled bool `yaml:"preferTiled,omitempty"`

	// AutoParseCache lets the renderer parse ArcGIS tile caches itself.
	// Defaults to true when unset.
	AutoParseCache *bool `yaml:"autoParseCache,omitempty"`

	// CapabilitiesTimeout bounds each capabilities fetch (e.g., "10s").
	// Empty means the transport default.
	CapabilitiesTimeout string `yaml:"capabilitiesTimeout,omitempty"`
}

// SchemaConfig defines catalog document validation settings
type SchemaConfig struct {
	// Validate rejects catalog documents that fail the Px3 schema
	Validate bool `yaml:"validate"`
}

// LoadConfig loads and parses configuration from a YAML file
func LoadConfig(opts ...Option) (*Config, error) {
	loaderCfg := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loaderCfg); err != nil {
			return nil, err
		}
	}

	// As of now, this is required because there's no other options to load
	// configuration. Once we add more options, we can remove this check.
	if loaderCfg.path == "" {
		return nil, fmt.Errorf("path is required")
	}

	// Read the entire file into memory
	data, err := os.ReadFile(loaderCfg.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML content
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	// Validate the config
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// GetCatalogName returns the catalog name, using "default" if not specified
func (c *Config) GetCatalogName() string {
	if c.CatalogName == "" {
		return "default"
	}
	return c.CatalogName
}

// GetAutoParseCache returns the auto-parse-cache switch, defaulting to true.
func (c *Config) GetAutoParseCache() bool {
	if c.Layers == nil || c.Layers.AutoParseCache == nil {
		return true
	}
	return *c.Layers.AutoParseCache
}

// GetPreferTiled returns the prefer-tiled switch, defaulting to false.
func (c *Config) GetPreferTiled() bool {
	if c.Layers == nil {
		return false
	}
	return c.Layers.PreferTiled
}

// GetCapabilitiesTimeout returns the parsed per-fetch timeout, or zero when
// unset. Validation guarantees the value parses.
func (c *Config) GetCapabilitiesTimeout() time.Duration {
	if c.Layers == nil || c.Layers.CapabilitiesTimeout == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.Layers.CapabilitiesTimeout)
	return d
}

// GetReloadInterval returns the parsed periodic reload interval, or zero when
// no reload policy is configured. Validation guarantees the value parses.
func (c *Config) GetReloadInterval() time.Duration {
	if c.Catalog.ReloadPolicy == nil || c.Catalog.ReloadPolicy.Interval == "" {
		return 0
	}
	d, _ := time.ParseDuration(c.Catalog.ReloadPolicy.Interval)
	return d
}

// ShouldValidateSchema reports whether the catalog document must pass schema
// validation on load.
func (c *Config) ShouldValidateSchema() bool {
	return c.Schema != nil && c.Schema.Validate
}

// Validate performs validation on the configuration
func (c *Config) validate() error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := validateSourceTypeCount(&c.Catalog); err != nil {
		return err
	}
	if err := validateSourceSpecificConfig(&c.Catalog); err != nil {
		return err
	}
	if err := validateReloadPolicy(c.Catalog.ReloadPolicy); err != nil {
		return err
	}
	if err := validateLayersConfig(c.Layers); err != nil {
		return err
	}
	return c.Telemetry.Validate()
}

// validateSourceTypeCount ensures exactly one source type is configured
func validateSourceTypeCount(catalog *CatalogConfig) error {
	configCount := 0
	if catalog.File != nil {
		configCount++
	}
	if catalog.HTTP != nil {
		configCount++
	}

	if configCount == 0 {
		return fmt.Errorf("catalog: one of file or http configuration must be specified")
	}
	if configCount > 1 {
		return fmt.Errorf("catalog: only one of file or http configuration may be specified")
	}

	return nil
}

// validateSourceSpecificConfig validates the configuration for each source type
func validateSourceSpecificConfig(catalog *CatalogConfig) error {
	if catalog.File != nil && catalog.File.Path == "" {
		return fmt.Errorf("catalog: file.path is required")
	}
	if catalog.HTTP != nil && catalog.HTTP.Endpoint == "" {
		return fmt.Errorf("catalog: http.endpoint is required")
	}
	return nil
}

// validateReloadPolicy validates the reload policy configuration
func validateReloadPolicy(policy *ReloadPolicyConfig) error {
	if policy == nil {
		return nil
	}
	if policy.Interval == "" {
		return fmt.Errorf("catalog: reloadPolicy.interval is required when reloadPolicy is set")
	}
	if _, err := time.ParseDuration(policy.Interval); err != nil {
		return fmt.Errorf("catalog: reloadPolicy.interval must be a valid duration (e.g., '30m', '1h'): %w", err)
	}
	return nil
}

// validateLayersConfig validates the layer build settings
func validateLayersConfig(layers *LayersConfig) error {
	if layers == nil || layers.CapabilitiesTimeout == "" {
		return nil
	}
	if _, err := time.ParseDuration(layers.CapabilitiesTimeout); err != nil {
		return fmt.Errorf("layers: capabilitiesTimeout must be a valid duration (e.g., '10s'): %w", err)
	}
	return nil
}

// GetType returns the inferred type of the catalog source based on which field is present
func (c *CatalogConfig) GetType() string {
	if c.File != nil {
		return SourceTypeFile
	}
	if c.HTTP != nil {
		return SourceTypeHTTP
	}
	return ""
}
