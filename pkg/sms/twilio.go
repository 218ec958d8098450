package sms

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Sender sends a text message to an E.164 number.
type Sender interface {
	Send(ctx context.Context, to, body string) error
}

// TwilioClient sends SMS through the Twilio Messages API.
type TwilioClient struct {
	BaseURL    string
	AccountSID string
	AuthToken  string
	From       string
	client     *http.Client
}

func NewTwilioClient(baseURL, accountSID, authToken, from string) *TwilioClient {
	if baseURL == "" {
		baseURL = "https://api.twilio.com"
	}
	return &TwilioClient{
		BaseURL:    baseURL,
		AccountSID: accountSID,
		AuthToken:  authToken,
		From:       from,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *TwilioClient) Send(ctx context.Context, to, body string) error {
	form := url.Values{}
	form.Set("To", to)
	form.Set("From", c.From)
	form.Set("Body", body)
	endpoint := c.BaseURL + "/2010-04-01/Accounts/" + c.AccountSID + "/Messages.json"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(c.AccountSID, c.AuthToken)
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("twilio send: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("twilio send: status=%d body=%s", resp.StatusCode, string(respBody))
	}
	return nil
}
