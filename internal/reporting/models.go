package reporting

import "time"

// TimeRange is an inclusive query window.
type TimeRange struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

type ActivitySummaryRequest struct {
	CallerID string    `json:"caller_id"`
	Range    TimeRange `json:"range"`
}

// ActivitySummary aggregates one caller's call records over a window.
type ActivitySummary struct {
	CallerID string `json:"caller_id"`

	TotalCalls     int `json:"total_calls"`
	CompletedCalls int `json:"completed_calls"`
	FailedCalls    int `json:"failed_calls"`
	RecordedCalls  int `json:"recorded_calls"`

	// AnnotatedCalls counts records whose outcome was moved past the
	// correlator defaults by a human or the recording pipeline.
	AnnotatedCalls int `json:"annotated_calls"`

	TotalDurationSeconds   int `json:"total_duration_seconds"`
	AverageDurationSeconds int `json:"average_duration_seconds"`
}
