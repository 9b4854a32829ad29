package extract

const (
	// RateLabel marks the row that opens a result block. It appears in the third field,
	// followed by a colon and the arrival rate the simulator was run with.
	RateLabel = "interarrival_rate"
	// HeaderLabel is the first field of the row immediately preceding a metrics row.
	HeaderLabel = "Count"

	rateField = 2
)

// State is the position of the extractor within a result block.
type State int

const (
	// SeekRate: no result block has been opened yet.
	SeekRate State = iota
	// SeekHeader: a result block is open; waiting for the Count header row.
	SeekHeader
	// ConsumeMetrics: the previous row was a Count header, so this row holds the metrics.
	ConsumeMetrics
)

func (s State) String() string {
	switch s {
	case SeekRate:
		return "SeekRate"
	case SeekHeader:
		return "SeekHeader"
	case ConsumeMetrics:
		return "ConsumeMetrics"
	default:
		return "Unknown"
	}
}
