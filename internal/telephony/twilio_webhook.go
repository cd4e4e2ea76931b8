package telephony

import (
	"net/http"
	"strconv"
	"strings"

	"salesops-platform/internal/callrecords"
)

// Twilio voice webhook parsing. Twilio sends
// application/x-www-form-urlencoded by default.
//
// These are provider-adapter-only translations to internal event types; no
// business logic here. Correlation-key resolution belongs to the correlator.

// TwilioStatusForm captures the subset of status-callback fields we care about.
type TwilioStatusForm struct {
	CallSid       string
	ParentCallSid string
	CallStatus    string
	To            string
	Duration      string

	// prospect_id / caller_id are our own callback query parameters, echoed
	// back by Twilio on the callback URL.
	ProspectID string
	CallerID   string
}

func ParseTwilioStatusCallback(r *http.Request) (TwilioStatusForm, error) {
	if err := r.ParseForm(); err != nil {
		return TwilioStatusForm{}, err
	}
	// Twilio names the field CallDuration; some relays post plain Duration.
	duration := strings.TrimSpace(r.PostFormValue("Duration"))
	if duration == "" {
		duration = strings.TrimSpace(r.PostFormValue("CallDuration"))
	}
	return TwilioStatusForm{
		CallSid:       strings.TrimSpace(r.PostFormValue("CallSid")),
		ParentCallSid: strings.TrimSpace(r.PostFormValue("ParentCallSid")),
		CallStatus:    strings.TrimSpace(r.PostFormValue("CallStatus")),
		To:            strings.TrimSpace(r.PostFormValue("To")),
		Duration:      duration,
		ProspectID:    strings.TrimSpace(r.URL.Query().Get("prospect_id")),
		CallerID:      strings.TrimSpace(r.URL.Query().Get("caller_id")),
	}, nil
}

// ToStatusEvent converts the form into the correlator's event type.
func (f TwilioStatusForm) ToStatusEvent() callrecords.StatusEvent {
	e := callrecords.StatusEvent{
		CallSid:       f.CallSid,
		ParentCallSid: f.ParentCallSid,
		CallStatus:    f.CallStatus,
		To:            f.To,
		ProspectID:    f.ProspectID,
		CallerID:      f.CallerID,
	}
	if f.Duration != "" {
		if n, err := strconv.Atoi(f.Duration); err == nil {
			e.DurationSeconds = &n
		}
	}
	return e
}

// TwilioRecordingForm captures the recording-ready callback fields.
type TwilioRecordingForm struct {
	CallSid           string
	RecordingURL      string
	RecordingDuration string
}

func ParseTwilioRecordingCallback(r *http.Request) (TwilioRecordingForm, error) {
	if err := r.ParseForm(); err != nil {
		return TwilioRecordingForm{}, err
	}
	return TwilioRecordingForm{
		CallSid:           strings.TrimSpace(r.PostFormValue("CallSid")),
		RecordingURL:      strings.TrimSpace(r.PostFormValue("RecordingUrl")),
		RecordingDuration: strings.TrimSpace(r.PostFormValue("RecordingDuration")),
	}, nil
}

func (f TwilioRecordingForm) ToRecordingEvent() callrecords.RecordingEvent {
	e := callrecords.RecordingEvent{
		CallSid:      f.CallSid,
		RecordingURL: f.RecordingURL,
	}
	if f.RecordingDuration != "" {
		if n, err := strconv.Atoi(f.RecordingDuration); err == nil {
			e.RecordingDurationSeconds = &n
		}
	}
	return e
}
