package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"jogoo/internal/repository"
	"jogoo/internal/service"

	"github.com/gin-gonic/gin"
)

// STKCallback is the Daraja callback envelope. CallbackMetadata is only
// present when ResultCode is 0.
type STKCallback struct {
	Body struct {
		StkCallback struct {
			MerchantRequestID string `json:"MerchantRequestID"`
			CheckoutRequestID string `json:"CheckoutRequestID"`
			ResultCode        int    `json:"ResultCode"`
			ResultDesc        string `json:"ResultDesc"`
			CallbackMetadata  struct {
				Item []CallbackItem `json:"Item"`
			} `json:"CallbackMetadata"`
		} `json:"stkCallback"`
	} `json:"Body"`
}

// CallbackItem is one name/value pair from the callback metadata. Values
// arrive as JSON numbers or strings depending on the field.
type CallbackItem struct {
	Name  string      `json:"Name"`
	Value interface{} `json:"Value"`
}

type MpesaWebhookHandler struct {
	donationRepo *repository.DonationRepository
	notifSvc     *service.NotificationService
}

func NewMpesaWebhookHandler(donationRepo *repository.DonationRepository, notifSvc *service.NotificationService) *MpesaWebhookHandler {
	return &MpesaWebhookHandler{donationRepo: donationRepo, notifSvc: notifSvc}
}

// Handle reconciles a Daraja STK callback against the Pending donation that
// initiated it. Every business outcome acknowledges with HTTP 200 so the
// provider stops redelivering; only the ack message differs.
func (h *MpesaWebhookHandler) Handle(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		log.Printf("[MPESA callback] read body error: %v", err)
		c.JSON(http.StatusOK, gin.H{"message": "Callback received successfully"})
		return
	}
	log.Printf("[MPESA callback] raw body: %s", string(body))
	var payload STKCallback
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Printf("[MPESA callback] json unmarshal error: %v", err)
		c.JSON(http.StatusOK, gin.H{"message": "Callback received successfully"})
		return
	}

	cb := payload.Body.StkCallback
	if cb.ResultCode != 0 {
		log.Printf("[MPESA callback] result_code=%d desc=%s checkout_request_id=%s: payment failed or cancelled", cb.ResultCode, cb.ResultDesc, cb.CheckoutRequestID)
		c.JSON(http.StatusOK, gin.H{"message": "Payment failed or cancelled"})
		return
	}

	meta := metadataToMap(cb.CallbackMetadata.Item)
	if len(meta) == 0 || cb.CheckoutRequestID == "" {
		log.Printf("[MPESA callback] no payment metadata or checkout_request_id, acknowledging")
		c.JSON(http.StatusOK, gin.H{"message": "No payment metadata found"})
		return
	}

	amount := itemInt(meta["Amount"])
	phone := itemString(meta["PhoneNumber"])
	receipt := itemString(meta["MpesaReceiptNumber"])
	txDate := itemString(meta["TransactionDate"])

	rows, err := h.donationRepo.MarkPaid(cb.CheckoutRequestID, amount, phone, receipt, txDate)
	if err != nil {
		log.Printf("[MPESA callback] update failed checkout_request_id=%s: %v", cb.CheckoutRequestID, err)
		c.JSON(http.StatusOK, gin.H{"message": "Callback received successfully"})
		return
	}
	if rows == 0 {
		log.Printf("[MPESA callback] no pending donation matched checkout_request_id=%s", cb.CheckoutRequestID)
		c.JSON(http.StatusOK, gin.H{"message": "Callback received and donation updated"})
		return
	}
	log.Printf("[MPESA callback] donation paid checkout_request_id=%s receipt=%s amount=%d", cb.CheckoutRequestID, receipt, amount)

	// Thank-you SMS is best effort; the donation stays Paid even if it fails.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := h.notifSvc.SendThankYou(ctx, phone, amount, receipt); err != nil {
		log.Printf("[MPESA callback] thank-you SMS failed phone=%s: %v", phone, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Callback received and donation updated"})
}

func metadataToMap(items []CallbackItem) map[string]interface{} {
	if len(items) == 0 {
		return nil
	}
	m := make(map[string]interface{}, len(items))
	for _, item := range items {
		m[item.Name] = item.Value
	}
	return m
}

// itemString renders a metadata value as a string. Daraja sends phone
// numbers and transaction dates as JSON numbers.
func itemString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatInt(int64(t), 10)
	default:
		return fmt.Sprintf("%v", t)
	}
}

func itemInt(v interface{}) int64 {
	switch t := v.(type) {
	case float64:
		return int64(t)
	case string:
		n, _ := strconv.ParseInt(t, 10, 64)
		return n
	default:
		return 0
	}
}
