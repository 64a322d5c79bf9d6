package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Sender delivers a single message to a phone number. The production
// implementation talks to Twilio; tests substitute their own.
type Sender interface {
	Deliver(ctx context.Context, to, body, channel string) error
}

// TwilioSender posts messages to the Twilio REST API. BaseURL is
// configurable so tests can point it at a local server.
type TwilioSender struct {
	AccountSID   string
	AuthToken    string
	FromPhone    string
	FromWhatsApp string
	BaseURL      string

	client *http.Client
}

func NewTwilioSender(accountSID, authToken, fromPhone, fromWhatsApp, baseURL string) *TwilioSender {
	return &TwilioSender{
		AccountSID:   accountSID,
		AuthToken:    authToken,
		FromPhone:    fromPhone,
		FromWhatsApp: fromWhatsApp,
		BaseURL:      baseURL,
		client:       &http.Client{Timeout: 15 * time.Second},
	}
}

func (t *TwilioSender) Deliver(ctx context.Context, to, body, channel string) error {
	if t.AccountSID == "" || t.AuthToken == "" {
		return fmt.Errorf("twilio credentials not configured")
	}

	from := t.FromPhone
	if channel == ChannelWhatsApp {
		from = "whatsapp:" + t.FromWhatsApp
		if !strings.HasPrefix(to, "whatsapp:") {
			to = "whatsapp:" + to
		}
	}

	form := url.Values{}
	form.Set("To", to)
	form.Set("From", from)
	form.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", t.BaseURL, t.AccountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(t.AccountSID, t.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var apiErr struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Message != "" {
		return fmt.Errorf("twilio error %d: %s", apiErr.Code, apiErr.Message)
	}
	return fmt.Errorf("twilio returned status %d", resp.StatusCode)
}
