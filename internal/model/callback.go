package model

// Outcome is the terminal (or non-terminal) state the provider reports for a
// job. Values outside the two terminal outcomes are acknowledged and ignored.
type Outcome string

const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
)

// CallbackEvent is the provider's completion notification, already decoded
// from the wire: multi-part output arrives pre-joined into Output.
type CallbackEvent struct {
	JobID   string
	Outcome Outcome
	Output  string
	Error   string
}
