package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// STKPushRequest is one push-payment prompt to a donor's phone.
type STKPushRequest struct {
	Phone       string // canonical 254XXXXXXXXX
	Amount      int64  // whole KES
	Description string
}

// STKPushResponse is the provider's acknowledgement. Raw holds the verbatim
// response body; callers pass it through to the donor-facing client unchanged.
type STKPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`

	Raw json.RawMessage `json:"-"`
}

type Provider interface {
	InitiateSTKPush(ctx context.Context, req STKPushRequest) (*STKPushResponse, error)
}

// AuthError means the credential exchange did not yield an access token.
type AuthError struct {
	StatusCode int
	Body       string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("daraja auth: status=%d body=%s", e.StatusCode, e.Body)
}

// PushError means the STK push submission was rejected. Body carries the raw
// upstream error for diagnostics.
type PushError struct {
	StatusCode int
	Body       string
}

func (e *PushError) Error() string {
	return fmt.Sprintf("daraja stk push: status=%d body=%s", e.StatusCode, e.Body)
}

// NormalizePhone converts the accepted input forms (7XXXXXXXX, 07XXXXXXXX,
// 2547XXXXXXXX, +2547XXXXXXXX) to the canonical 254-prefixed digits stored
// and sent to the provider. Input is otherwise caller-trusted.
func NormalizePhone(phone string) string {
	p := strings.TrimSpace(phone)
	p = strings.TrimPrefix(p, "+")
	if strings.HasPrefix(p, "254") {
		return p
	}
	p = strings.TrimPrefix(p, "0")
	return "254" + p
}
