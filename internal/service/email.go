package service

import (
	"context"
	"fmt"

	"dealerdesk-backend/internal/logger"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(to, toName, subject, plainText string) error {
	logger.ExternalServiceCall("sendgrid", "Send", "to", to, "subject", subject)

	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		logger.ExternalServiceResult("sendgrid", "Send", err, "to", to)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		err := fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
		logger.ExternalServiceResult("sendgrid", "Send", err, "to", to)
		return err
	}

	logger.ExternalServiceResult("sendgrid", "Send", nil, "to", to)
	return nil
}

func (s *emailService) SendMembershipExpiryReminder(ctx context.Context, email, name, dealershipName string, daysLeft int32) error {
	subject := fmt.Sprintf("Membership Expiring in %d Days - %s", daysLeft, dealershipName)
	body := fmt.Sprintf("Hello %s,\n\nThe membership for %s expires in %d days. Renew now to keep access to inventory and sales tools.\n\nBest regards,\nThe DealerDesk Team", name, dealershipName, daysLeft)
	return s.send(email, name, subject, body)
}

func (s *emailService) SendPaymentResultNotification(ctx context.Context, email, name, orderNo string, amountCents int64, success bool) error {
	result := "succeeded"
	if !success {
		result = "failed"
	}
	subject := fmt.Sprintf("Membership Payment %s", result)
	body := fmt.Sprintf("Hello %s,\n\nYour membership payment of $%.2f (order %s) has %s.\n\nBest regards,\nThe DealerDesk Team", name, float64(amountCents)/100, orderNo, result)
	return s.send(email, name, subject, body)
}

func (s *emailService) SendFeedbackReceivedNotification(ctx context.Context, email, name, title string) error {
	subject := "New Message Received"
	body := fmt.Sprintf("Hello %s,\n\nYou have a new message: %s\n\nLog in to read and reply.\n\nBest regards,\nThe DealerDesk Team", name, title)
	return s.send(email, name, subject, body)
}

func (s *emailService) SendDealershipStatusNotification(ctx context.Context, email, name, dealershipName, status string) error {
	subject := fmt.Sprintf("Dealership Status Update - %s", dealershipName)
	body := fmt.Sprintf("Hello %s,\n\nThe status of dealership '%s' has been updated to: %s.\n\nBest regards,\nThe DealerDesk Team", name, dealershipName, status)
	return s.send(email, name, subject, body)
}
