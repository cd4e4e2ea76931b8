package telephony

import "context"

// DialerProvider is the provider-agnostic interface for placing outbound calls.
//
// Rules:
// - No provider SDK calls outside telephony adapters.
// - Request/response types are provider-agnostic; raw provider payloads stay
//   inside the adapter.
type DialerProvider interface {
	Name() string
	HealthCheck(ctx context.Context) error

	Dial(ctx context.Context, req DialRequest) (DialResult, error)
}

// DialRequest asks the provider to originate an outbound call.
type DialRequest struct {
	// To is the dialed number, E.164 where possible.
	To string `json:"to"`
	// From is the caller-id number owned by this service.
	From string `json:"from"`

	// ProspectID and CallerID ride along as callback parameters so status
	// events can be correlated back to business entities.
	ProspectID string `json:"prospect_id,omitempty"`
	CallerID   string `json:"caller_id,omitempty"`
}

// DialResult reports the provider's identity for the new call leg.
type DialResult struct {
	// ProviderCallID is the provider's unique identifier for this call.
	// It becomes the call-record correlation key.
	ProviderCallID string `json:"provider_call_id"`
	Status         string `json:"status"`
}
