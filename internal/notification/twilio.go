package notification

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Rakesh-Biswal/reminder-service/internal/config"
)

// DefaultTwilioBaseURL is the production Twilio API endpoint.
const DefaultTwilioBaseURL = "https://api.twilio.com"

// TwilioSender delivers messages through the Twilio Messages REST API.
type TwilioSender struct {
	// accountSID identifies the Twilio account.
	accountSID string
	// authToken authenticates API calls.
	authToken string
	// from is the sending phone number.
	from string
	// baseURL is the API endpoint, overridable for tests.
	baseURL string
	// client performs the REST calls.
	client *http.Client
}

// NewTwilioSender creates a sender from the provided credentials.
// The per-request timeout bounds every Send.
func NewTwilioSender(cfg config.Twilio, timeout time.Duration) *TwilioSender {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultTwilioBaseURL
	}

	return &TwilioSender{
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		from:       cfg.FromNumber,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		client:     &http.Client{Timeout: timeout},
	}
}

// Send renders the message and posts it to the Messages endpoint.
func (s *TwilioSender) Send(ctx context.Context, destination string, msg Message) error {
	body, err := msg.Render()
	if err != nil {
		return err
	}

	form := url.Values{}
	form.Set("To", destination)
	form.Set("From", s.from)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", s.baseURL, s.accountSID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build SMS request: %w", err)
	}

	req.SetBasicAuth(s.accountSID, s.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send SMS: %w", err)
	}

	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("send SMS: unexpected status %s", resp.Status)
	}

	return nil
}
