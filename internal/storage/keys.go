package storage

// Persisted key space. Names match the keys the dashboard has always used so an
// exported store stays readable by older builds.
const (
	KeyResolutions = "cmd_resolutions"

	KeyTargetDate  = "target_date"
	KeyTargetLabel = "target_note"

	KeyTransactions = "op_tx"
	KeyBalance      = "op_money" // write-only mirror

	KeyOperatorName   = "op_name"
	KeyOperatorDesc   = "op_desc"
	KeyOperatorWeight = "op_weight"
	KeyOperatorHeight = "op_height"
	KeyOperatorImage  = "op_image"
	KeyAppearance     = "op_looks"
)
