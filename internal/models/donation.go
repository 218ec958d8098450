package models

import (
	"time"
)

const (
	DonationStatusPending = "Pending"
	DonationStatusPaid    = "Paid"
)

// Donation is one STK push initiation and its outcome. CheckoutRequestID is
// assigned by Daraja at push time and is the only link between the outbound
// request and the asynchronous callback. Amount and Phone hold donor-declared
// values until the callback overwrites them with provider-reported ones.
// Donations are never deleted.
type Donation struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	DonorName          string    `gorm:"size:100;not null" json:"donor_name"`
	Phone              string    `gorm:"size:15;index" json:"phone"` // canonical 254XXXXXXXXX
	Amount             int64     `gorm:"not null" json:"amount"`     // whole KES
	Email              string    `gorm:"size:255" json:"email,omitempty"`
	Message            string    `gorm:"type:text" json:"message,omitempty"`
	CheckoutRequestID  string    `gorm:"size:100;uniqueIndex" json:"checkout_request_id"`
	Status             string    `gorm:"size:20;not null;index" json:"status"` // Pending, Paid
	MpesaReceiptNumber string    `gorm:"size:50" json:"mpesa_receipt_number,omitempty"`
	TransactionDate    string    `gorm:"size:20" json:"transaction_date,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (Donation) TableName() string {
	return "donations"
}
