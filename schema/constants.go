package schema

// Custom string types for type safety.
type (
	// Objective represents the scalar reduction used to rank box fits.
	Objective string

	// Method represents the box-fit evaluation algorithm.
	Method string

	// OutputMode represents the format of the output.
	OutputMode string

	// StoreBackend represents the database backend for run tracking.
	StoreBackend string
)

// All objectives supported.
const (
	LikelihoodObjective Objective = "likelihood" // default
	SNRObjective        Objective = "snr"
)

// All evaluation methods supported.
const (
	AutoMethod Method = "auto" // default: picked from input size
	FastMethod Method = "fast"
	SlowMethod Method = "slow"
)

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All store backends supported.
const (
	SQLiteBackend     StoreBackend = "sqlite" // default
	MySQLBackend      StoreBackend = "mysql"
	PostgreSQLBackend StoreBackend = "postgresql"
	NoneBackend       StoreBackend = "none"
)

// AllObjectives returns a list of all supported objectives.
var AllObjectives = []Objective{LikelihoodObjective, SNRObjective}

// ValidObjectives lists all valid objectives.
var ValidObjectives = map[Objective]struct{}{
	LikelihoodObjective: {},
	SNRObjective:        {},
}

// ValidMethods lists all valid evaluation methods.
var ValidMethods = map[Method]struct{}{
	AutoMethod: {},
	FastMethod: {},
	SlowMethod: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	CSVOut:     {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidStoreBackends lists all valid store backends.
var ValidStoreBackends = map[StoreBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
