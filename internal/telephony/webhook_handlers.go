package telephony

import (
	"errors"
	"net/http"

	"salesops-platform/internal/callrecords"
	"salesops-platform/pkg/logger"

	"github.com/gin-gonic/gin"
)

// TwilioWebhookHandler converts Twilio callbacks to internal events and
// applies them through the correlator.
//
// Response policy: 204 on success, 400 on malformed input, 502 on storage
// failure. Twilio retries non-2xx deliveries; the merge-upsert makes those
// retries safe.

type TwilioWebhookHandler struct {
	Correlator *callrecords.Correlator

	// ReleaseCallSlot frees the caller's concurrency slot when a call reaches
	// a terminal status. Optional; slots also expire by TTL.
	ReleaseCallSlot func(c *gin.Context, callerID string)
}

func (h TwilioWebhookHandler) HandleStatusCallback(c *gin.Context) {
	log := logger.FromGin(c)

	if h.Correlator == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "correlator not configured"})
		return
	}

	form, err := ParseTwilioStatusCallback(c.Request)
	if err != nil {
		log.Warn("twilio status webhook parse failed", "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid form"})
		return
	}

	rec, err := h.Correlator.RecordStatus(c.Request.Context(), form.ToStatusEvent())
	if err != nil {
		if errors.Is(err, callrecords.ErrInvalidArgument) {
			log.Warn("twilio status webhook invalid", "call_sid", form.CallSid, "status", form.CallStatus)
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid event"})
			return
		}
		log.Error("status event correlation failed", "call_sid", form.CallSid, "err", err)
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "storage failed"})
		return
	}

	if isTerminalStatus(rec.Status) && h.ReleaseCallSlot != nil && rec.CallerID != "" {
		h.ReleaseCallSlot(c, rec.CallerID)
	}

	log.Info("status event correlated", "call_key", rec.CallKey, "status", rec.Status)
	c.Status(http.StatusNoContent)
}

func (h TwilioWebhookHandler) HandleRecordingCallback(c *gin.Context) {
	log := logger.FromGin(c)

	if h.Correlator == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "correlator not configured"})
		return
	}

	form, err := ParseTwilioRecordingCallback(c.Request)
	if err != nil {
		log.Warn("twilio recording webhook parse failed", "err", err)
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid form"})
		return
	}

	rec, err := h.Correlator.RecordRecording(c.Request.Context(), form.ToRecordingEvent())
	if err != nil {
		if errors.Is(err, callrecords.ErrInvalidArgument) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid event"})
			return
		}
		log.Error("recording event correlation failed", "call_sid", form.CallSid, "err", err)
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "storage failed"})
		return
	}

	log.Info("recording event correlated", "call_key", rec.CallKey)
	c.Status(http.StatusNoContent)
}

func isTerminalStatus(status string) bool {
	switch status {
	case callrecords.StatusCompleted, callrecords.StatusFailed, "busy", "no-answer", "canceled":
		return true
	default:
		return false
	}
}
