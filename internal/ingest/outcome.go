// Package ingest runs the per-file ingestion state machine: resolve the
// destination identity from the file name, ensure the dataset, infer the
// schema, ensure the table, stage the file, and run the load job. Each file
// reaches exactly one terminal outcome; nothing escapes the pipeline
// boundary as a panic or an aborted run.
package ingest

// Status is the terminal result of one file-processing attempt.
type Status string

const (
	// StatusLoaded means the load job reached a successful terminal state.
	StatusLoaded Status = "loaded"
	// StatusSkipped means an expected condition stopped processing early
	// (wrong naming convention, already loaded). Not a failure.
	StatusSkipped Status = "skipped"
	// StatusFailed means a step failed; the file may be retried on a later
	// run. Side effects of completed prior steps are kept, never rolled back.
	StatusFailed Status = "failed"
)

// Stage identifies the pipeline step that produced a terminal outcome.
type Stage string

const (
	StageNaming   Stage = "naming"
	StageHistory  Stage = "history"
	StageDataset  Stage = "dataset"
	StageSchema   Stage = "schema"
	StageTable    Stage = "table"
	StageStaging  Stage = "staging"
	StageLoad     Stage = "load"
	StageComplete Stage = "complete"
)

// Outcome is the per-file terminal report. Reason is set for skips, Err for
// failures; a loaded file has neither.
type Outcome struct {
	File      string
	TableID   string
	Partition string
	Status    Status
	Stage     Stage
	Reason    string
	Err       error
}

// Summary aggregates the outcomes of one directory run. The run never
// aborts on a per-file failure; the counts say how it went.
type Summary struct {
	Attempted int
	Loaded    int
	Skipped   int
	Failed    int
	Outcomes  []Outcome
}

func (s *Summary) add(o Outcome) {
	s.Attempted++
	s.Outcomes = append(s.Outcomes, o)
	switch o.Status {
	case StatusLoaded:
		s.Loaded++
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	}
}
