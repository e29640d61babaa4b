package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"os"
	"path/filepath"
	"strings"
)

// MailService sends transactional email over SMTP. Delivery is async and
// best-effort; a failed send is logged and dropped, never retried, and
// never blocks the request that triggered it.
type MailService struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Enabled  bool
}

func NewMailService() *MailService {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	from := os.Getenv("SMTP_FROM")

	enabled := host != "" && port != "" && user != "" && pass != "" && from != ""
	if !enabled {
		log.Println("MailService disabled: missing SMTP environment variables")
	}

	return &MailService{
		Host:     host,
		Port:     port,
		Username: user,
		Password: pass,
		From:     from,
		Enabled:  enabled,
	}
}

func (s *MailService) sendAsync(to []string, subject string, body string) {
	if !s.Enabled {
		return
	}

	go func() {
		auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
		addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

		mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
		msg := []byte(fmt.Sprintf("To: %s\r\n"+
			"From: Dijital Pati <%s>\r\n"+
			"Subject: %s\r\n"+
			"%s\r\n%s", strings.Join(to, ","), s.From, subject, mime, body))

		if err := smtp.SendMail(addr, auth, s.From, to, msg); err != nil {
			log.Printf("Failed to send email to %v: %v", to, err)
		}
	}()
}

func (s *MailService) parseTemplate(templateName string, data interface{}) (string, error) {
	path := filepath.Join("web", "templates", "email", templateName)
	t, err := template.ParseFiles(path)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", templateName, err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}
	return buf.String(), nil
}

func (s *MailService) SendWelcomeEmail(email, username string) {
	body, err := s.parseTemplate("welcome.html", map[string]string{
		"Username": username,
	})
	if err != nil {
		log.Printf("Error rendering welcome email: %v", err)
		return
	}
	s.sendAsync([]string{email}, "Welcome to Dijital Pati", body)
}

// SendContactOwnerEmail forwards a message from a finder to the owner of
// a lost pet. The finder's address goes in the body, not the envelope.
func (s *MailService) SendContactOwnerEmail(ownerEmail, petName, fromUser, fromEmail, message string) {
	body, err := s.parseTemplate("contact.html", map[string]string{
		"PetName":   petName,
		"FromUser":  fromUser,
		"FromEmail": fromEmail,
		"Message":   message,
	})
	if err != nil {
		log.Printf("Error rendering contact email: %v", err)
		return
	}
	s.sendAsync([]string{ownerEmail}, "Someone has information about "+petName, body)
}

func (s *MailService) SendCommentNotification(email, activeUser, postTitle, replyContent, postLink string) {
	data := map[string]string{
		"ActiveUser":   activeUser,
		"PostTitle":    postTitle,
		"ReplyContent": replyContent,
		"PostLink":     postLink,
	}
	body, err := s.parseTemplate("notification.html", data)
	if err != nil {
		log.Printf("Error rendering notification email: %v", err)
		return
	}
	s.sendAsync([]string{email}, activeUser+" replied to you on Dijital Pati", body)
}
