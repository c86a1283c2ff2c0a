package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching and run tracking.
	DatabaseBackend string

	// Granularity represents the size of a rhythm time window.
	Granularity string

	// Category represents how a commit relates to health documentation.
	Category string

	// RhythmLabel represents the terminal classification of a rhythm row.
	RhythmLabel string

	// Engine names a metric engine whose rows can be persisted.
	Engine string
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// All window granularities supported.
const (
	WeekGranularity  Granularity = "week"
	MonthGranularity Granularity = "month" // default
)

// Commit categories. NoTouch commits never reach the aggregation tables.
const (
	NoTouch        Category = "no_touch"
	DocOnly        Category = "only"
	DocDominant    Category = "dominant"
	DocNonDominant Category = "non_dominant"

	// DocTouch is the union of the three touching categories.
	DocTouch Category = "touch"
)

// Rhythm labels, checked in this order.
const (
	InactiveLabel RhythmLabel = "inactive"
	SparseLabel   RhythmLabel = "sparse"
	StableLabel   RhythmLabel = "stable"
	UnstableLabel RhythmLabel = "unstable"
)

// Metric engines.
const (
	RhythmEngine       Engine = "rhythm"
	OwnershipEngine    Engine = "ownership"
	EntropyEngine      Engine = "entropy"
	ContributorsEngine Engine = "contributors"
	IntentionEngine    Engine = "intention"
)

// TouchCategories lists the ownership prefixes in column order.
var TouchCategories = []Category{DocTouch, DocOnly, DocDominant, DocNonDominant}

// AllGranularities lists every granularity in reporting order.
var AllGranularities = []Granularity{WeekGranularity, MonthGranularity}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidGranularities lists all valid window granularities.
var ValidGranularities = map[Granularity]struct{}{
	WeekGranularity:  {},
	MonthGranularity: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
