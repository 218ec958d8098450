package service

import (
	"context"
	"fmt"

	"jogoo/pkg/sms"
)

// NotificationService sends donor-facing text messages. Delivery is best
// effort; callers log failures and move on.
type NotificationService struct {
	sender sms.Sender
}

func NewNotificationService(sender sms.Sender) *NotificationService {
	return &NotificationService{sender: sender}
}

// SendThankYou texts the donation confirmation to the provider-reported
// phone number (canonical 254 digits, sent as +254...).
func (s *NotificationService) SendThankYou(ctx context.Context, phone string, amount int64, receipt string) error {
	if s.sender == nil {
		return nil
	}
	body := fmt.Sprintf("Thank you for donating KES %d to Jogoo CBO! Receipt: %s.", amount, receipt)
	return s.sender.Send(ctx, "+"+phone, body)
}
