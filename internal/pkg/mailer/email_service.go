package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendClassCode(toEmail, teacherName, className, classCode string) error
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

// SendClassCode mails the generated class code to the teacher who created the
// class. Sharing students enter this code to show up on the class monitor.
func (s *emailService) SendClassCode(toEmail, teacherName, className, classCode string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Your MathClicks class code for %s", className))

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Hi %s!</h2>
			<p>Your class <strong>%s</strong> is ready. Students join with this code:</p>
			<h1 style="color: #4CAF50; letter-spacing: 5px;">%s</h1>
			<p>Open the class monitor and sign in with your PIN to watch progress live.</p>
			<p>If you didn't create this class, please ignore this email.</p>
		</div>
	`, teacherName, className, classCode)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send class code to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Class code sent to %s\n", toEmail)
	return nil
}
