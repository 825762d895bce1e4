package recorder

// RunRecord captures the outcome of a single digest run. Record failures
// are logged by callers, never propagated into the pipeline.
type RunRecord struct {
	TickerCount   int
	IndexCount    int
	QuotesOK      bool
	Summarized    bool
	MessageLength int
	Delivered     bool
	DeliveryError string
}

// Recorder persists run history for later inspection.
type Recorder interface {
	RecordRun(rec *RunRecord) error
	LastRun() (*RunRecord, error)
	Close() error
}
