package basket

import "time"

// Outcome labels reported to a Recorder.
const (
	OutcomeOK            = "ok"
	OutcomeBusinessError = "business_error"
	OutcomeTimeout       = "timeout"
	OutcomeError         = "error"
)

// Recorder observes every basket operation.
type Recorder interface {
	Observe(operation, outcome string, elapsed time.Duration)
}

// NopRecorder discards observations.
type NopRecorder struct{}

func (NopRecorder) Observe(string, string, time.Duration) {}
