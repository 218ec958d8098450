package handler

import (
	"errors"
	"log"
	"net/http"

	"jogoo/internal/models"
	"jogoo/internal/repository"
	"jogoo/pkg/payment"

	"github.com/gin-gonic/gin"
)

type DonationHandler struct {
	donationRepo *repository.DonationRepository
	provider     payment.Provider
}

func NewDonationHandler(donationRepo *repository.DonationRepository, provider payment.Provider) *DonationHandler {
	return &DonationHandler{donationRepo: donationRepo, provider: provider}
}

type DonateRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"` // 7XXXXXXXX, 07..., 254... or +254...
	Amount  int64  `json:"amount" binding:"required,min=1"`
	Message string `json:"message"`
	Email   string `json:"email"`
}

// Donate triggers an STK push on the donor's phone and records a Pending
// donation keyed by the CheckoutRequestID Daraja returns. The provider's
// acknowledgement is passed back verbatim; if it carries no
// CheckoutRequestID nothing is persisted.
func (h *DonationHandler) Donate(c *gin.Context) {
	var req DonateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	phone := payment.NormalizePhone(req.Phone)

	resp, err := h.provider.InitiateSTKPush(c.Request.Context(), payment.STKPushRequest{
		Phone:       phone,
		Amount:      req.Amount,
		Description: "Donation from " + req.Name,
	})
	if err != nil {
		var authErr *payment.AuthError
		if errors.As(err, &authErr) {
			log.Printf("[MPESA] auth failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to authenticate with Safaricom"})
			return
		}
		var pushErr *payment.PushError
		if errors.As(err, &pushErr) {
			log.Printf("[MPESA] STK push failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Safaricom STK Push failed: " + pushErr.Body})
			return
		}
		log.Printf("[MPESA] STK push error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if resp.CheckoutRequestID != "" {
		d := &models.Donation{
			DonorName:         req.Name,
			Phone:             phone,
			Amount:            req.Amount,
			Email:             req.Email,
			Message:           req.Message,
			CheckoutRequestID: resp.CheckoutRequestID,
			Status:            models.DonationStatusPending,
		}
		if err := h.donationRepo.Create(d); err != nil {
			log.Printf("[MPESA] donation create failed checkout_request_id=%s: %v", resp.CheckoutRequestID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record donation"})
			return
		}
		log.Printf("[MPESA] STK push initiated checkout_request_id=%s donation=%d", resp.CheckoutRequestID, d.ID)
	} else {
		log.Printf("[MPESA] no CheckoutRequestID in push response, nothing recorded")
	}

	c.Data(http.StatusOK, "application/json", resp.Raw)
}
