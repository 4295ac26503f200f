package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendEscalationAlert(toEmail, userID, sessionID, reason, excerpt string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendEscalationAlert(toEmail, userID, sessionID, reason, excerpt string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Chat escalation: session %s", sessionID))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>A customer needs a human agent</h2>
			<p><b>Customer:</b> %s</p>
			<p><b>Session:</b> %s</p>
			<p><b>Reason:</b> %s</p>
			<p><b>Last message:</b></p>
			<blockquote style="border-left: 3px solid #E53935; padding-left: 10px;">%s</blockquote>
			<p>Please pick up the conversation from the support dashboard.</p>
		</div>
	`, userID, sessionID, reason, excerpt)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send escalation alert to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Escalation alert sent to %s\n", toEmail)
	return nil
}
