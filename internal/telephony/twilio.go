package telephony

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TwilioProvider places calls through the Twilio Voice REST API.
//
// Credentials come from config; never log the auth token.

type TwilioProvider struct {
	AccountSID string
	AuthToken  string

	// StatusCallbackURL receives status webhooks for calls placed here.
	StatusCallbackURL string

	// BaseURL is overridable for tests.
	BaseURL string
	Client  *http.Client
}

func NewTwilioProvider(accountSID, authToken, statusCallbackURL string) *TwilioProvider {
	return &TwilioProvider{
		AccountSID:        accountSID,
		AuthToken:         authToken,
		StatusCallbackURL: statusCallbackURL,
		BaseURL:           "https://api.twilio.com",
		Client:            &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *TwilioProvider) Name() string { return "twilio" }

func (p *TwilioProvider) HealthCheck(ctx context.Context) error {
	if p.AccountSID == "" || p.AuthToken == "" {
		return errors.New("telephony: twilio credentials not configured")
	}
	return nil
}

type twilioCallResponse struct {
	Sid    string `json:"sid"`
	Status string `json:"status"`
}

func (p *TwilioProvider) Dial(ctx context.Context, req DialRequest) (DialResult, error) {
	if req.To == "" || req.From == "" {
		return DialResult{}, errors.New("telephony: to and from are required")
	}
	if err := p.HealthCheck(ctx); err != nil {
		return DialResult{}, err
	}

	form := url.Values{}
	form.Set("To", req.To)
	form.Set("From", req.From)
	if p.StatusCallbackURL != "" {
		cb, err := url.Parse(p.StatusCallbackURL)
		if err != nil {
			return DialResult{}, fmt.Errorf("telephony: bad status callback url: %w", err)
		}
		q := cb.Query()
		if req.ProspectID != "" {
			q.Set("prospect_id", req.ProspectID)
		}
		if req.CallerID != "" {
			q.Set("caller_id", req.CallerID)
		}
		cb.RawQuery = q.Encode()
		form.Set("StatusCallback", cb.String())
		form.Set("StatusCallbackEvent", "initiated ringing answered completed")
	}

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Calls.json", p.BaseURL, p.AccountSID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return DialResult{}, err
	}
	httpReq.SetBasicAuth(p.AccountSID, p.AuthToken)
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := p.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return DialResult{}, fmt.Errorf("telephony: twilio dial failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return DialResult{}, fmt.Errorf("telephony: twilio dial returned %d", resp.StatusCode)
	}

	var out twilioCallResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return DialResult{}, fmt.Errorf("telephony: twilio response decode failed: %w", err)
	}
	if out.Sid == "" {
		return DialResult{}, errors.New("telephony: twilio response missing call sid")
	}
	return DialResult{ProviderCallID: out.Sid, Status: out.Status}, nil
}
