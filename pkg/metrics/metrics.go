package metrics

/*
Labels and so on for metrics used in the profile backend.
*/

const (
	LabelMethod   = "method"
	LabelRoute    = "route"
	LabelSuccess  = "success"
	LabelDatabase = "database"
)
