package payment

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// DarajaProvider implements STK push against the Safaricom Daraja API.
// A fresh access token is fetched for every transaction; Daraja tokens are
// short-lived and this service pushes rarely enough that caching is not worth
// the expiry bookkeeping.
type DarajaProvider struct {
	TokenURL         string
	PushURL          string
	ConsumerKey      string
	ConsumerSecret   string
	Passkey          string
	Shortcode        string
	CallbackURL      string
	AccountReference string

	client *http.Client
	now    func() time.Time
}

func NewDarajaProvider(tokenURL, pushURL, consumerKey, consumerSecret, passkey, shortcode, callbackURL, accountReference string) *DarajaProvider {
	return &DarajaProvider{
		TokenURL:         tokenURL,
		PushURL:          pushURL,
		ConsumerKey:      consumerKey,
		ConsumerSecret:   consumerSecret,
		Passkey:          passkey,
		Shortcode:        shortcode,
		CallbackURL:      callbackURL,
		AccountReference: accountReference,
		client:           &http.Client{Timeout: 30 * time.Second},
		now:              time.Now,
	}
}

// Password derives the Daraja request password for the given second. The
// construction is dictated by the provider protocol and must stay
// bit-for-bit: base64(shortcode + passkey + YYYYMMDDHHMMSS).
func Password(shortcode, passkey string, t time.Time) (password, timestamp string) {
	timestamp = t.Format("20060102150405")
	password = base64.StdEncoding.EncodeToString([]byte(shortcode + passkey + timestamp))
	return password, timestamp
}

type darajaTokenResp struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   string `json:"expires_in"`
}

// getToken exchanges the app credentials for a bearer token via basic auth.
func (p *DarajaProvider) getToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.TokenURL, nil)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(p.ConsumerKey, p.ConsumerSecret)
	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		log.Printf("[MPESA auth] token response status=%d body=%s", resp.StatusCode, string(body))
		return "", &AuthError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	var out darajaTokenResp
	if err := json.Unmarshal(body, &out); err != nil {
		return "", &AuthError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	if out.AccessToken == "" {
		log.Printf("[MPESA auth] access token missing from response: %s", string(body))
		return "", &AuthError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return out.AccessToken, nil
}

type darajaSTKReq struct {
	BusinessShortCode string `json:"BusinessShortCode"`
	Password          string `json:"Password"`
	Timestamp         string `json:"Timestamp"`
	TransactionType   string `json:"TransactionType"`
	Amount            int64  `json:"Amount"`
	PartyA            string `json:"PartyA"`
	PartyB            string `json:"PartyB"`
	PhoneNumber       string `json:"PhoneNumber"`
	CallBackURL       string `json:"CallBackURL"`
	AccountReference  string `json:"AccountReference"`
	TransactionDesc   string `json:"TransactionDesc"`
}

// InitiateSTKPush authenticates, derives the password and submits one push
// request. No retry on failure; a declined push surfaces as *PushError with
// the raw upstream body.
func (p *DarajaProvider) InitiateSTKPush(ctx context.Context, req STKPushRequest) (*STKPushResponse, error) {
	token, err := p.getToken(ctx)
	if err != nil {
		return nil, err
	}

	password, timestamp := Password(p.Shortcode, p.Passkey, p.now())
	payload := darajaSTKReq{
		BusinessShortCode: p.Shortcode,
		Password:          password,
		Timestamp:         timestamp,
		TransactionType:   "CustomerPayBillOnline",
		Amount:            req.Amount,
		PartyA:            req.Phone,
		PartyB:            p.Shortcode,
		PhoneNumber:       req.Phone,
		CallBackURL:       p.CallbackURL,
		AccountReference:  p.AccountReference,
		TransactionDesc:   req.Description,
	}
	body, _ := json.Marshal(payload)
	apiReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.PushURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	apiReq.Header.Set("Content-Type", "application/json")
	apiReq.Header.Set("Authorization", "Bearer "+token)
	log.Printf("[MPESA] POST %s phone=%s amount=%d callback=%s", p.PushURL, req.Phone, req.Amount, p.CallbackURL)
	resp, err := p.client.Do(apiReq)
	if err != nil {
		return nil, fmt.Errorf("stk push: %w", err)
	}
	defer resp.Body.Close()
	respBody, _ := io.ReadAll(resp.Body)
	log.Printf("[MPESA] response status=%d body=%s", resp.StatusCode, string(respBody))
	if resp.StatusCode != http.StatusOK {
		return nil, &PushError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	var out STKPushResponse
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, fmt.Errorf("stk push decode: %w", err)
	}
	out.Raw = respBody
	return &out, nil
}
