package contract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/elijahadejumo/DocStability/schema"
)

// Default values for configuration.
const (
	DefaultLookbackYears     = 5
	DefaultDominantThreshold = 0.5
	DefaultCVThreshold       = 0.5
	DefaultMinTotalCommits   = 5
	DefaultMinActiveWindows  = 3
	DefaultBotSamples        = 3
	DefaultOutputDir         = "outputs"
	DefaultTopK              = "3,5,10"
)

// DefaultOutPrefixes maps every engine to the prefix used when --out-prefix is unset.
var DefaultOutPrefixes = map[schema.Engine]string{
	schema.RhythmEngine:       "health_files",
	schema.OwnershipEngine:    "ownership",
	schema.EntropyEngine:      "health_docs_entropy",
	schema.ContributorsEngine: "contributors_5yr",
	schema.IntentionEngine:    "intention",
}

// Config holds the runtime configuration for the analysis.
// This struct is the "final, validated" config.
type Config struct {
	RepoPath string
	RepoName string
	Since    time.Time // inclusive, UTC midnight
	Until    time.Time // inclusive, UTC midnight

	Granularities     []schema.Granularity
	DominantThreshold float64
	CVThreshold       float64
	MinTotalCommits   int
	MinActiveWindows  int
	IncludeMerges     bool
	IncludeBots       bool
	BotPatterns       []string
	BotSamples        int
	TopK              []int

	OutPrefix  string
	OutputDir  string
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	// WriteArtifacts is false when results are only returned to the caller.
	WriteArtifacts     bool
	WriteTimeseries    bool
	WriteFileDetails   bool
	WriteProbabilities bool
	WriteSHAList       bool
	WriteDetails       bool
	WriteBots          bool

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	AnalysisBackend   schema.DatabaseBackend
	AnalysisDBConnect string // Please use env var as this is plaintext

	LogLevel  string
	LogFormat string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	RepoPathStr string

	Since             string   `mapstructure:"since"`
	Until             string   `mapstructure:"until"`
	Granularity       string   `mapstructure:"granularity"`
	DominantThreshold float64  `mapstructure:"dominant-threshold"`
	CVThreshold       float64  `mapstructure:"cv-threshold"`
	MinTotalCommits   int      `mapstructure:"min-total-commits"`
	MinActiveWindows  int      `mapstructure:"min-active-windows"`
	IncludeMerges     bool     `mapstructure:"include-merges"`
	IncludeBots       bool     `mapstructure:"include-bots"`
	BotPatterns       []string `mapstructure:"bot-patterns"`
	BotSamples        int      `mapstructure:"bot-samples"`
	TopK              string   `mapstructure:"topk"`

	OutPrefix  string `mapstructure:"out-prefix"`
	OutputDir  string `mapstructure:"output-dir"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	Width      int    `mapstructure:"width"`
	Color      string `mapstructure:"color"`

	WriteTimeseries    bool `mapstructure:"write-timeseries"`
	WriteFileDetails   bool `mapstructure:"write-file-details"`
	WriteProbabilities bool `mapstructure:"write-probabilities"`
	WriteSHAList       bool `mapstructure:"write-sha-list"`
	WriteDetails       bool `mapstructure:"write-details"`
	WriteBots          bool `mapstructure:"write-bots"`

	CacheBackend      string `mapstructure:"cache-backend"`
	CacheDBConnect    string `mapstructure:"cache-db-connect"`
	AnalysisBackend   string `mapstructure:"analysis-backend"`
	AnalysisDBConnect string `mapstructure:"analysis-db-connect"`

	LogLevel  string `mapstructure:"log-level"`
	LogFormat string `mapstructure:"log-format"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Granularities = slices.Clone(c.Granularities)
	clone.BotPatterns = slices.Clone(c.BotPatterns)
	clone.TopK = slices.Clone(c.TopK)
	return &clone
}

// PrefixFor returns the artifact prefix for an engine.
func (c *Config) PrefixFor(e schema.Engine) string {
	if c.OutPrefix != "" {
		return c.OutPrefix
	}
	return DefaultOutPrefixes[e]
}

// ReportPrefixFor returns the artifact prefix of an engine inside a full report.
// A user prefix is suffixed with the engine name so the summaries do not collide.
func (c *Config) ReportPrefixFor(e schema.Engine) string {
	if c.OutPrefix != "" {
		return c.OutPrefix + "_" + string(e)
	}
	return DefaultOutPrefixes[e]
}

// ArtifactDir returns the directory holding this repository's artifacts.
func (c *Config) ArtifactDir() string {
	return filepath.Join(c.OutputDir, c.RepoName)
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processDateRange(cfg, input, time.Now()); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	return resolveGitPath(ctx, cfg, client, input)
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.IncludeMerges = input.IncludeMerges
	cfg.IncludeBots = input.IncludeBots
	cfg.OutPrefix = strings.TrimSpace(input.OutPrefix)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.WriteArtifacts = true
	cfg.WriteTimeseries = input.WriteTimeseries
	cfg.WriteFileDetails = input.WriteFileDetails
	cfg.WriteProbabilities = input.WriteProbabilities
	cfg.WriteSHAList = input.WriteSHAList
	cfg.WriteDetails = input.WriteDetails
	cfg.WriteBots = input.WriteBots

	cfg.OutputDir = input.OutputDir
	if cfg.OutputDir == "" {
		cfg.OutputDir = DefaultOutputDir
	}

	if input.Color != "" {
		colors, err := ParseBoolString(input.Color)
		if err != nil {
			return fmt.Errorf("%w: --color: %v", ErrInvalidInput, err)
		}
		cfg.UseColors = colors
	}

	if input.DominantThreshold <= 0 || input.DominantThreshold > 1 {
		return fmt.Errorf("%w: dominant-threshold must be in (0, 1] (received %.3f)", ErrInvalidInput, input.DominantThreshold)
	}
	cfg.DominantThreshold = input.DominantThreshold

	if input.CVThreshold < 0 {
		return fmt.Errorf("%w: cv-threshold cannot be negative (received %.3f)", ErrInvalidInput, input.CVThreshold)
	}
	cfg.CVThreshold = input.CVThreshold

	if input.MinTotalCommits < 0 || input.MinActiveWindows < 0 {
		return fmt.Errorf("%w: min-total-commits and min-active-windows cannot be negative", ErrInvalidInput)
	}
	cfg.MinTotalCommits = input.MinTotalCommits
	cfg.MinActiveWindows = input.MinActiveWindows

	if input.BotSamples < 0 {
		return fmt.Errorf("%w: bot-samples cannot be negative (received %d)", ErrInvalidInput, input.BotSamples)
	}
	cfg.BotSamples = input.BotSamples
	cfg.BotPatterns = compactStrings(input.BotPatterns)

	granularities, err := ParseGranularities(input.Granularity)
	if err != nil {
		return err
	}
	cfg.Granularities = granularities

	topK, err := ParseTopK(input.TopK)
	if err != nil {
		return err
	}
	cfg.TopK = topK

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = schema.TextOut
	}
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("%w: output format '%s' must be text, csv, json, parquet", ErrInvalidInput, input.Output)
	}

	if err := ConfigureLogger(input.LogLevel, input.LogFormat); err != nil {
		return err
	}
	cfg.LogLevel = input.LogLevel
	cfg.LogFormat = input.LogFormat
	return nil
}

// ParseGranularities expands "week", "month" or "both" (also a comma list) into granularities.
func ParseGranularities(s string) ([]schema.Granularity, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return []schema.Granularity{schema.MonthGranularity}, nil
	}
	if s == "both" {
		return slices.Clone(schema.AllGranularities), nil
	}
	var out []schema.Granularity
	for part := range strings.SplitSeq(s, ",") {
		g := schema.Granularity(strings.TrimSpace(part))
		if g == "" {
			continue
		}
		if _, ok := schema.ValidGranularities[g]; !ok {
			return nil, fmt.Errorf("%w: granularity '%s' must be week, month or both", ErrInvalidInput, part)
		}
		if !slices.Contains(out, g) {
			out = append(out, g)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no granularity given", ErrInvalidInput)
	}
	return out, nil
}

// ParseTopK parses a comma or space separated list of positive integers.
func ParseTopK(s string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		s = DefaultTopK
	}
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		k, err := strconv.Atoi(f)
		if err != nil || k <= 0 {
			return nil, fmt.Errorf("%w: topk value '%s' must be a positive integer", ErrInvalidInput, f)
		}
		out = append(out, k)
	}
	return out, nil
}

// ParseDate parses a YYYY-MM-DD calendar date as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(schema.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date '%s' must be YYYY-MM-DD", ErrInvalidInput, s)
	}
	return t.UTC(), nil
}

// processDateRange parses since/until. A missing until means today and a missing
// since means DefaultLookbackYears before until.
func processDateRange(cfg *Config, input *ConfigRawInput, now time.Time) error {
	today := now.UTC().Truncate(24 * time.Hour)
	cfg.Until = today
	if input.Until != "" {
		t, err := ParseDate(input.Until)
		if err != nil {
			return err
		}
		cfg.Until = t
	}

	cfg.Since = cfg.Until.AddDate(-DefaultLookbackYears, 0, 1)
	if input.Since != "" {
		t, err := ParseDate(input.Since)
		if err != nil {
			return err
		}
		cfg.Since = t
	}

	if cfg.Since.After(cfg.Until) {
		return fmt.Errorf("%w: since (%s) cannot be after until (%s)", ErrInvalidInput,
			cfg.Since.Format(schema.DateLayout), cfg.Until.Format(schema.DateLayout))
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and analysis backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if cfg.CacheBackend == "" {
		cfg.CacheBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("%w: cache backend '%s' must be sqlite, mysql, postgresql, none", ErrInvalidInput, input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	cfg.AnalysisBackend = schema.DatabaseBackend(strings.ToLower(input.AnalysisBackend))
	if cfg.AnalysisBackend == "" {
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.AnalysisBackend]; !ok {
		return fmt.Errorf("%w: analysis backend '%s' must be sqlite, mysql, postgresql, none", ErrInvalidInput, input.AnalysisBackend)
	}
	cfg.AnalysisDBConnect = input.AnalysisDBConnect
	if err := ValidateDatabaseConnectionString(cfg.AnalysisBackend, cfg.AnalysisDBConnect); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// For SQLite, resolve to actual file paths to catch default path conflicts
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.AnalysisBackend == schema.SQLiteBackend {
		cacheDBPath := cfg.CacheDBConnect
		if cacheDBPath == "" {
			cacheDBPath = GetCacheDBFilePath()
		}
		analysisDBPath := cfg.AnalysisDBConnect
		if analysisDBPath == "" {
			analysisDBPath = GetAnalysisDBFilePath()
		}
		if cacheDBPath == analysisDBPath {
			return fmt.Errorf("%w: cache and analysis storage must use different SQLite database files. Both resolve to %q", ErrInvalidInput, cacheDBPath)
		}
	}
	return nil
}

// resolveGitPath checks the repository path exists and resolves it to the git root.
func resolveGitPath(ctx context.Context, cfg *Config, client GitClient, input *ConfigRawInput) error {
	searchPath := input.RepoPathStr
	if searchPath == "" {
		searchPath = "."
	}
	absSearchPath, err := filepath.Abs(searchPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	absSearchPath = filepath.Clean(absSearchPath)

	info, err := os.Stat(absSearchPath)
	if err != nil {
		return fmt.Errorf("%w: repository path %q does not exist", ErrInvalidInput, searchPath)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: repository path %q is not a directory", ErrInvalidInput, searchPath)
	}

	gitRoot, err := client.GetRepoRoot(ctx, absSearchPath)
	if err != nil {
		return fmt.Errorf("%w: %q is not inside a git repository: %v", ErrInvalidInput, searchPath, err)
	}
	cfg.RepoPath = gitRoot
	cfg.RepoName = filepath.Base(gitRoot)
	return nil
}

// ResolveRepoPath points cfg at the git root containing path.
// A missing path or one outside any repository is an ErrInvalidInput error.
func ResolveRepoPath(ctx context.Context, cfg *Config, client GitClient, path string) error {
	return resolveGitPath(ctx, cfg, client, &ConfigRawInput{RepoPathStr: path})
}

func compactStrings(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// RevalidateRange re-parses a date range supplied after startup, as MCP tool calls do.
// An empty bound keeps the value already in cfg.
func RevalidateRange(cfg *Config, since, until string) error {
	input := &ConfigRawInput{Since: since, Until: until}
	if input.Since == "" && !cfg.Since.IsZero() {
		input.Since = cfg.Since.Format(schema.DateLayout)
	}
	if input.Until == "" && !cfg.Until.IsZero() {
		input.Until = cfg.Until.Format(schema.DateLayout)
	}
	return processDateRange(cfg, input, time.Now())
}
