package email

import (
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Service sends transactional mail through SendGrid. With no API key
// configured it logs the message instead, which keeps local
// development working without an account.
type Service struct {
	apiKey string
	from   string
}

func NewService(apiKey, from string) *Service {
	return &Service{apiKey: apiKey, from: from}
}

func (s *Service) Send(to, subject, body string) error {
	if s.apiKey == "" {
		log.Println("====================================================")
		log.Printf("--- EMAIL (no SENDGRID_API_KEY, logging instead) ---")
		log.Printf("To: %s", to)
		log.Printf("Subject: %s", subject)
		log.Println(body)
		log.Println("====================================================")
		return nil
	}

	message := mail.NewSingleEmail(
		mail.NewEmail("Linesheet", s.from),
		subject,
		mail.NewEmail("", to),
		body,
		fmt.Sprintf("<pre>%s</pre>", body),
	)

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid send error: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid send failed: status=%d, body=%s", response.StatusCode, response.Body)
	}

	log.Printf("[email] sent to=%s subject=%q status=%d", to, subject, response.StatusCode)
	return nil
}

// SendVerificationEmail sends the signup verification code.
func (s *Service) SendVerificationEmail(to, code string) error {
	body := fmt.Sprintf(
		"Welcome to Linesheet!\n\nYour verification code is: %s\n\nThis code will expire in 15 minutes.",
		code,
	)
	return s.Send(to, "Verify your Linesheet account", body)
}

// SendApprovalEmail tells a user their account was approved.
func (s *Service) SendApprovalEmail(to string) error {
	return s.Send(to, "Your Linesheet account is approved",
		"An administrator approved your account. You can now log in and build linesheets.")
}
