// Package config provides configuration loading and management for trm-preview.
package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"strings"

	ssconfig "github.com/c360studio/semstreams/config"
	"gopkg.in/yaml.v3"
)

// Default file names, resolved against the directory of the running binary.
const (
	DefaultInputFile        = "Media_405073_smxx.xlsx"
	DefaultPreparedFile     = "prepared_hte_data.xlsx"
	DefaultIntermediateFile = "intermediate_hte_data.ttl"
)

// Identifier seed modes.
const (
	// SeedFloor starts the fallback counter at the configured floor.
	SeedFloor = "floor"
	// SeedMax starts the fallback counter at the highest numeric category id.
	SeedMax = "max"
)

// Config represents the complete trm-preview configuration
type Config struct {
	Paths   PathsConfig   `yaml:"paths,omitempty"`
	Columns ColumnsConfig `yaml:"columns"`
	IDs     IDsConfig     `yaml:"ids"`
	Scheme  SchemeConfig  `yaml:"scheme"`
	Output  OutputConfig  `yaml:"output"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// PathsConfig configures input and output files
type PathsConfig struct {
	// Input is the HTE spreadsheet (.xlsx or .csv)
	Input string `yaml:"input,omitempty"`
	// Prepared is where the enriched table is written (.xlsx or .csv)
	Prepared string `yaml:"prepared,omitempty"`
	// Intermediate is where the SKOS graph is written before skosify
	Intermediate string `yaml:"intermediate,omitempty"`
}

// ColumnsConfig maps spreadsheet headers to record fields
type ColumnsConfig struct {
	// Sheet is the worksheet to read (empty = first sheet)
	Sheet string `yaml:"sheet"`
	// CategoryID is the HTE category id column
	CategoryID string `yaml:"category_id"`
	// Primary are the thematic category path columns, root first (max 5)
	Primary []string `yaml:"primary"`
	// Secondary are the full HTE hierarchy path columns, root first (max 7)
	Secondary []string `yaml:"secondary"`
	// Position is appended verbatim to the secondary path
	Position string `yaml:"position"`
	// Subcategory is read but dropped from the prepared table
	Subcategory string `yaml:"subcategory"`
	// Heading is the HT heading column, dropped from the prepared table
	Heading string `yaml:"heading"`
	// Label is the preferred label column
	Label string `yaml:"label"`
}

// IDsConfig configures identifier assignment
type IDsConfig struct {
	// Floor is the value the fallback counter starts above
	Floor int64 `yaml:"floor"`
	// Seed selects how the fallback counter is seeded: floor or max
	Seed string `yaml:"seed"`
	// Overrides maps table positions (zero-based data rows) to fixed identifiers
	Overrides map[int]string `yaml:"overrides"`
}

// SchemeConfig configures the emitted concept scheme
type SchemeConfig struct {
	// IRI is the concept scheme IRI
	IRI string `yaml:"iri"`
	// ConceptPrefix is prepended to identifiers to build concept IRIs
	ConceptPrefix string `yaml:"concept_prefix"`
	// PrefLabel is the scheme's preferred label
	PrefLabel string `yaml:"pref_label"`
	// AltLabel is the scheme's abbreviation
	AltLabel string `yaml:"alt_label"`
	// Language tags every emitted label
	Language string `yaml:"language"`
}

// OutputConfig configures graph serialization
type OutputConfig struct {
	// Format is turtle, ntriples or jsonld
	Format string `yaml:"format"`
}

// MetricsConfig configures run metrics
type MetricsConfig struct {
	// Textfile is a node-exporter textfile path (empty = disabled)
	Textfile string `yaml:"textfile"`
}

// DefaultOverrides returns the known category ids missing from the source data.
func DefaultOverrides() map[int]string {
	return map[int]string{
		50:   "238078", // Asia, 01.01.06.02
		777:  "238074", // Textiles and clothing, 01.08
		1175: "238077", // Condition of matter
		1986: "238071", // Goodness and badness
	}
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	dir := ProgramDir()
	return &Config{
		Paths: PathsConfig{
			Input:        filepath.Join(dir, DefaultInputFile),
			Prepared:     filepath.Join(dir, DefaultPreparedFile),
			Intermediate: filepath.Join(dir, DefaultIntermediateFile),
		},
		Columns: ColumnsConfig{
			CategoryID:  "catid",
			Primary:     []string{"AS1", "S2", "S3", "S4", "S5"},
			Secondary:   []string{"t1", "t2", "t3", "t4", "t5", "t6", "t7"},
			Position:    "pos",
			Subcategory: "subcat",
			Heading:     "HT heading",
			Label:       "SAMUELS heading",
		},
		IDs: IDsConfig{
			Floor:     500000,
			Seed:      SeedFloor,
			Overrides: DefaultOverrides(),
		},
		Scheme: SchemeConfig{
			IRI:           "https://w3id.org/TRM/conceptSchemes/TRMBase",
			ConceptPrefix: "https://w3id.org/TRM/concepts/",
			PrefLabel:     "Thesaurus of Religious Metaphors",
			AltLabel:      "TRM",
			Language:      "en",
		},
		Output: OutputConfig{
			Format: "turtle",
		},
	}
}

// ProgramDir returns the directory of the running binary, or "." if unknown.
func ProgramDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Prepared == "" {
		return fmt.Errorf("paths.prepared is required")
	}
	if c.Paths.Intermediate == "" {
		return fmt.Errorf("paths.intermediate is required")
	}

	if n := len(c.Columns.Primary); n == 0 || n > 5 {
		return fmt.Errorf("columns.primary must list 1 to 5 columns, got %d", n)
	}
	if n := len(c.Columns.Secondary); n > 7 {
		return fmt.Errorf("columns.secondary must list at most 7 columns, got %d", n)
	}
	if c.Columns.CategoryID == "" {
		return fmt.Errorf("columns.category_id is required")
	}
	if c.Columns.Label == "" {
		return fmt.Errorf("columns.label is required")
	}

	if c.IDs.Floor < 0 {
		return fmt.Errorf("ids.floor must not be negative")
	}
	switch c.IDs.Seed {
	case SeedFloor, SeedMax:
	default:
		return fmt.Errorf("unsupported ids.seed: %s (valid: floor, max)", c.IDs.Seed)
	}
	seen := make(map[string]int, len(c.IDs.Overrides))
	for pos, id := range c.IDs.Overrides {
		if pos < 0 {
			return fmt.Errorf("ids.overrides: negative position %d", pos)
		}
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("ids.overrides: empty identifier for position %d", pos)
		}
		if other, ok := seen[id]; ok {
			return fmt.Errorf("ids.overrides: identifier %s used for positions %d and %d", id, other, pos)
		}
		seen[id] = pos
	}

	if c.Scheme.IRI == "" {
		return fmt.Errorf("scheme.iri is required")
	}
	if c.Scheme.ConceptPrefix == "" {
		return fmt.Errorf("scheme.concept_prefix is required")
	}

	switch strings.ToLower(c.Output.Format) {
	case "turtle", "ntriples", "jsonld":
	default:
		return fmt.Errorf("unsupported output.format: %s (valid: turtle, ntriples, jsonld)", c.Output.Format)
	}
	return nil
}

// expand substitutes ${VAR} and ${VAR:-default} references in raw config text.
func expand(data []byte) []byte {
	return []byte(ssconfig.ExpandEnvWithDefaults(string(data)))
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := config.apply(data); err != nil {
		return nil, err
	}

	return config, nil
}

// apply decodes a YAML layer onto c. Keys the layer sets win, including
// zero values; keys it omits keep their current value. An overrides table
// replaces the current one instead of being merged into it. On error c is
// left unchanged.
func (c *Config) apply(data []byte) error {
	data = expand(data)

	var keys struct {
		IDs struct {
			Overrides *map[int]string `yaml:"overrides"`
		} `yaml:"ids"`
	}
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	next := *c
	next.IDs.Overrides = maps.Clone(c.IDs.Overrides)
	if keys.IDs.Overrides != nil {
		next.IDs.Overrides = nil
	}
	if err := yaml.Unmarshal(data, &next); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	*c = next
	return nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values).
// A zero value cannot be expressed this way; file layers go through apply.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	// Paths
	if other.Paths.Input != "" {
		c.Paths.Input = other.Paths.Input
	}
	if other.Paths.Prepared != "" {
		c.Paths.Prepared = other.Paths.Prepared
	}
	if other.Paths.Intermediate != "" {
		c.Paths.Intermediate = other.Paths.Intermediate
	}

	// Columns
	if other.Columns.Sheet != "" {
		c.Columns.Sheet = other.Columns.Sheet
	}
	if other.Columns.CategoryID != "" {
		c.Columns.CategoryID = other.Columns.CategoryID
	}
	if len(other.Columns.Primary) > 0 {
		c.Columns.Primary = other.Columns.Primary
	}
	if len(other.Columns.Secondary) > 0 {
		c.Columns.Secondary = other.Columns.Secondary
	}
	if other.Columns.Position != "" {
		c.Columns.Position = other.Columns.Position
	}
	if other.Columns.Subcategory != "" {
		c.Columns.Subcategory = other.Columns.Subcategory
	}
	if other.Columns.Heading != "" {
		c.Columns.Heading = other.Columns.Heading
	}
	if other.Columns.Label != "" {
		c.Columns.Label = other.Columns.Label
	}

	// IDs
	if other.IDs.Floor != 0 {
		c.IDs.Floor = other.IDs.Floor
	}
	if other.IDs.Seed != "" {
		c.IDs.Seed = other.IDs.Seed
	}
	if other.IDs.Overrides != nil {
		c.IDs.Overrides = other.IDs.Overrides
	}

	// Scheme
	if other.Scheme.IRI != "" {
		c.Scheme.IRI = other.Scheme.IRI
	}
	if other.Scheme.ConceptPrefix != "" {
		c.Scheme.ConceptPrefix = other.Scheme.ConceptPrefix
	}
	if other.Scheme.PrefLabel != "" {
		c.Scheme.PrefLabel = other.Scheme.PrefLabel
	}
	if other.Scheme.AltLabel != "" {
		c.Scheme.AltLabel = other.Scheme.AltLabel
	}
	if other.Scheme.Language != "" {
		c.Scheme.Language = other.Scheme.Language
	}

	// Output
	if other.Output.Format != "" {
		c.Output.Format = other.Output.Format
	}

	// Metrics
	if other.Metrics.Textfile != "" {
		c.Metrics.Textfile = other.Metrics.Textfile
	}
}
