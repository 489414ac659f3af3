package chat

// ReasonCode explains the outcome of prompt validation.
type ReasonCode string

const (
	ReasonOK             ReasonCode = "OK"
	ReasonEmpty          ReasonCode = "EMPTY"
	ReasonTooLong        ReasonCode = "TOO_LONG"
	ReasonBlockedKeyword ReasonCode = "BLOCKED_KEYWORD"
	ReasonOffTopic       ReasonCode = "OFF_TOPIC"
)

// ValidationResult is computed for every prompt and never stored.
// An OFF_TOPIC result is still accepted.
type ValidationResult struct {
	Accepted bool
	Reason   ReasonCode
}

func (v ValidationResult) OffTopic() bool {
	return v.Accepted && v.Reason == ReasonOffTopic
}

func Accepted(reason ReasonCode) ValidationResult {
	return ValidationResult{Accepted: true, Reason: reason}
}

func Rejected(reason ReasonCode) ValidationResult {
	return ValidationResult{Accepted: false, Reason: reason}
}

// Reply is the filtered assistant answer sent back to the caller.
type Reply struct {
	Text       string
	TokenCount *int
}
