package reporting

import (
	"context"
	"errors"
	"time"

	"salesops-platform/internal/callrecords"
)

var ErrInvalidRequest = errors.New("reporting: invalid request")

// RecordLister is the read surface reporting needs from call-record storage.
// Both store implementations satisfy it.
type RecordLister interface {
	ListByCaller(ctx context.Context, callerID string, from, to time.Time) ([]callrecords.CallRecord, error)
}

type Service struct {
	records RecordLister
}

func NewService(records RecordLister) *Service { return &Service{records: records} }

func (s *Service) ActivitySummary(ctx context.Context, req ActivitySummaryRequest) (ActivitySummary, error) {
	if req.CallerID == "" {
		return ActivitySummary{}, ErrInvalidRequest
	}
	if req.Range.From.IsZero() || req.Range.To.IsZero() || !req.Range.To.After(req.Range.From) {
		return ActivitySummary{}, ErrInvalidRequest
	}
	if s.records == nil {
		return ActivitySummary{}, errors.New("reporting: record lister not configured")
	}

	rows, err := s.records.ListByCaller(ctx, req.CallerID, req.Range.From, req.Range.To)
	if err != nil {
		return ActivitySummary{}, err
	}

	out := ActivitySummary{CallerID: req.CallerID}
	for _, rec := range rows {
		out.TotalCalls++
		out.TotalDurationSeconds += rec.DurationSeconds
		if rec.RecordingURL != "" {
			out.RecordedCalls++
		}
		if rec.Outcome != "" && rec.Outcome != "Call in progress" {
			out.AnnotatedCalls++
		}
		switch rec.Status {
		case callrecords.StatusCompleted:
			out.CompletedCalls++
		case callrecords.StatusFailed:
			out.FailedCalls++
		}
	}
	if out.TotalCalls > 0 {
		out.AverageDurationSeconds = out.TotalDurationSeconds / out.TotalCalls
	}
	return out, nil
}
