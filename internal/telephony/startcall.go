package telephony

import (
	"context"
	"errors"
	"fmt"

	"salesops-platform/internal/callrecords"
	"salesops-platform/internal/crm"
)

var (
	// ErrTooManyActiveCalls means the caller hit their concurrency cap.
	ErrTooManyActiveCalls = errors.New("telephony: too many active calls")
	// ErrProspectNotDialable means the prospect has no phone number on file.
	ErrProspectNotDialable = errors.New("telephony: prospect has no phone number")
)

// CapAcquirer limits simultaneous active calls per caller. Slots expire by
// TTL so a crashed process cannot leak them forever.
type CapAcquirer interface {
	Acquire(ctx context.Context, callerID string) (bool, error)
	Release(ctx context.Context, callerID string) error
}

// CallStarter originates an outbound call and seeds its pending call record,
// so every outcome-eligible call has dialer history from the first event.
type CallStarter struct {
	Provider  DialerProvider
	Records   callrecords.Store
	Prospects crm.ProspectRepository
	Caps      CapAcquirer // optional

	// From is the caller-id number presented on outbound calls.
	From string
}

type StartCallResult struct {
	CallKey    string `json:"call_key"`
	Status     string `json:"status"`
	ProspectID string `json:"prospect_id"`
	CallerID   string `json:"caller_id"`
}

func (s *CallStarter) StartCall(ctx context.Context, prospectID, callerID string) (StartCallResult, error) {
	if s.Provider == nil || s.Records == nil || s.Prospects == nil {
		return StartCallResult{}, errors.New("telephony: call starter not configured")
	}
	if prospectID == "" || callerID == "" {
		return StartCallResult{}, callrecords.ErrInvalidArgument
	}

	prospect, err := s.Prospects.Get(ctx, prospectID)
	if err != nil {
		return StartCallResult{}, err
	}
	if prospect.Phone == "" {
		return StartCallResult{}, ErrProspectNotDialable
	}

	if s.Caps != nil {
		ok, err := s.Caps.Acquire(ctx, callerID)
		if err != nil {
			return StartCallResult{}, fmt.Errorf("acquire call slot: %w", err)
		}
		if !ok {
			return StartCallResult{}, ErrTooManyActiveCalls
		}
	}

	dial, err := s.Provider.Dial(ctx, DialRequest{
		To:         prospect.Phone,
		From:       s.From,
		ProspectID: prospectID,
		CallerID:   callerID,
	})
	if err != nil {
		if s.Caps != nil {
			_ = s.Caps.Release(ctx, callerID)
		}
		return StartCallResult{}, fmt.Errorf("dial: %w", err)
	}

	rec, err := s.Records.Upsert(ctx, dial.ProviderCallID, callrecords.Patch{
		ProspectID: &prospectID,
		CallerID:   &callerID,
		To:         &prospect.Phone,
	})
	if err != nil {
		// The call is already ringing; the status webhook will re-create the
		// record, just without the business identity until a later merge.
		return StartCallResult{}, fmt.Errorf("seed call record: %w", err)
	}

	return StartCallResult{
		CallKey:    rec.CallKey,
		Status:     rec.Status,
		ProspectID: prospectID,
		CallerID:   callerID,
	}, nil
}
