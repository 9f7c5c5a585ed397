package model

import "time"

// Config holds the complete almagraph configuration.
type Config struct {
	Sources SourcesConfig `yaml:"sources" mapstructure:"sources"`
	Schema  SchemaConfig  `yaml:"schema" mapstructure:"schema"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
}

// Source names used in SourcesConfig.Optional and in error messages.
const (
	SourceGraph       = "graph"
	SourceGenizah     = "genizah"
	SourceManuscripts = "manuscripts"
	SourceCatalog     = "catalog"
)

// SourcesConfig locates the background data files.
type SourcesConfig struct {
	// ChildParentTable is the CSV/TSV export of the child/parent spreadsheet.
	ChildParentTable string `yaml:"child_parent_table" mapstructure:"child_parent_table"`
	// GenizahList is the newline-delimited Genizah ALMA list.
	GenizahList string `yaml:"genizah_list" mapstructure:"genizah_list"`
	// ManuscriptsList is the newline-delimited manuscripts ALMA list.
	ManuscriptsList string `yaml:"manuscripts_list" mapstructure:"manuscripts_list"`
	// CatalogDB is the SQLite catalog index used for enriched display.
	CatalogDB string `yaml:"catalog_db" mapstructure:"catalog_db"`
	// Optional names the sources allowed to be absent; absence of any other
	// source is fatal to the load.
	Optional []string `yaml:"optional" mapstructure:"optional"`
}

// IsOptional reports whether a named source may be missing.
func (s SourcesConfig) IsOptional(name string) bool {
	for _, n := range s.Optional {
		if n == name {
			return true
		}
	}
	return false
}

// SchemaConfig controls source validation strictness.
type SchemaConfig struct {
	// Strict makes every configured source mandatory, overriding
	// SourcesConfig.Optional.
	Strict bool `yaml:"strict" mapstructure:"strict"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Bind              string  `yaml:"bind" mapstructure:"bind"`
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
	MaxBodyBytes      int64   `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
}

// CacheConfig configures the classify response cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
	Dir     string        `yaml:"dir" mapstructure:"dir"` // disk layer; empty disables it
}

// OutputConfig controls CLI output behavior.
type OutputConfig struct {
	Dir     string `yaml:"dir" mapstructure:"dir"` // where classify writes partition exports
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Sources: SourcesConfig{
			ChildParentTable: "child_parent_alma.csv",
			GenizahList:      "NLI_GNIZA_ALMAs.list",
			ManuscriptsList:  "NLI_MANUSCRIPTS_JPGS_ALMAs_only.list",
			CatalogDB:        "catalog_index.db",
			Optional:         []string{SourceManuscripts, SourceCatalog},
		},
		Schema: SchemaConfig{
			Strict: false,
		},
		Server: ServerConfig{
			Bind:              "127.0.0.1:8470",
			RequestsPerSecond: 10,
			Burst:             20,
			MaxBodyBytes:      4_000_000,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     10 * time.Minute,
		},
		Output: OutputConfig{
			Dir: "./almagraph-out",
		},
	}
}
