package service

import (
	"context"
	"fmt"

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

func (s *emailService) SendWelcome(ctx context.Context, email, name string) error {
	body := fmt.Sprintf("Hello %s,\n\nWelcome to Foundly! Log volunteer hours, follow projects, and keep up with your organization's calendar.\n\nThe Foundly Team", name)
	return s.send(email, name, "Welcome to Foundly", body)
}

func (s *emailService) SendJoinedOrganization(ctx context.Context, email, name, orgName string) error {
	body := fmt.Sprintf("Hello %s,\n\nYou are now a member of %s on Foundly.\n\nThe Foundly Team", name, orgName)
	return s.send(email, name, fmt.Sprintf("You joined %s", orgName), body)
}

func (s *emailService) SendEventReminder(ctx context.Context, email, name, eventTitle, orgName string) error {
	body := fmt.Sprintf("Hello %s,\n\nReminder: %s is coming up in %s. See the calendar for details.\n\nThe Foundly Team", name, eventTitle, orgName)
	return s.send(email, name, fmt.Sprintf("Upcoming: %s", eventTitle), body)
}

func (s *emailService) send(to, toName, subject, plainText string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
