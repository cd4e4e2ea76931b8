package audit

import (
	"context"
	"log/slog"

	"salesops-platform/internal/auth"
	"salesops-platform/internal/callrecords"
)

// OutcomeAuditor bridges the outcome-recording flow into the audit trail.
// Actor identity is taken from the request context; failures are logged and
// never surfaced to the caller.
type OutcomeAuditor struct {
	svc *Service
	log *slog.Logger
}

func NewOutcomeAuditor(svc *Service, log *slog.Logger) *OutcomeAuditor {
	if log == nil {
		log = slog.Default()
	}
	return &OutcomeAuditor{svc: svc, log: log}
}

func (a *OutcomeAuditor) OutcomeRecorded(ctx context.Context, rec callrecords.CallRecord, outcome string) {
	actor, _ := auth.UserID(ctx)
	role, _ := auth.Role(ctx)
	territory, err := auth.Territory(ctx)
	if err != nil {
		// Webhook-driven and internal flows carry no identity.
		territory = "system"
	}

	if err := a.svc.LogOutcomeRecorded(ctx, territory, actor, role, rec.ProspectID, rec.CallKey, outcome); err != nil {
		a.log.Warn("audit append failed",
			"type", string(EventTypeOutcomeRecorded),
			"prospect_id", rec.ProspectID,
			"call_key", rec.CallKey,
			"error", err)
	}
}
