package metrics

const prefix = "loadsweep_"

const (
	sweepIdLabel   = "sweep_id"
	topologyLabel  = "topology"
	outcomeLabel   = "outcome"
	loadLevelLabel = "load_level"

	OutcomeSucceeded = "succeeded"
	OutcomeFailed    = "failed"
)
