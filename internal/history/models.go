package history

import "time"

const SchemaVersion = 1

// Snapshot is one recorded analysis run. RunID is assigned on save when
// empty; counts come from the model's Stats.
type Snapshot struct {
	RunID         string
	ProjectKey    string
	SchemaVersion int
	Timestamp     time.Time
	ModuleCount   int
	ClassCount    int
	FunctionCount int
	ImportCount   int
	CallCount     int
}

// Change is the count movement between two snapshots. Negative values mean
// the codebase shrank.
type Change struct {
	ModuleCount   int
	ClassCount    int
	FunctionCount int
	ImportCount   int
	CallCount     int
}

// Delta returns the change from prev to s.
func (s Snapshot) Delta(prev Snapshot) Change {
	return Change{
		ModuleCount:   s.ModuleCount - prev.ModuleCount,
		ClassCount:    s.ClassCount - prev.ClassCount,
		FunctionCount: s.FunctionCount - prev.FunctionCount,
		ImportCount:   s.ImportCount - prev.ImportCount,
		CallCount:     s.CallCount - prev.CallCount,
	}
}
