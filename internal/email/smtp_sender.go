package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strings"
	"time"
)

// SMTPSender envia reportes de feedback via SMTP con reintentos acotados.
type SMTPSender struct {
	host          string
	port          int
	username      string
	password      string
	companyEmail  string
	appName       string
	subjectPrefix string
	retryAttempts int
	useTLS        bool

	sleep func(time.Duration)
}

func NewSMTPSender(host string, port int, username, password, companyEmail, appName, subjectPrefix string, retryAttempts int, useTLS bool) (*SMTPSender, error) {
	if strings.TrimSpace(host) == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if strings.TrimSpace(username) == "" {
		return nil, fmt.Errorf("smtp sender email is required")
	}
	if strings.TrimSpace(companyEmail) == "" {
		return nil, fmt.Errorf("company email is required")
	}
	if port == 0 {
		port = 587
	}
	if retryAttempts <= 0 {
		retryAttempts = 3
	}
	if appName == "" {
		appName = "Pawspective"
	}
	if subjectPrefix == "" {
		subjectPrefix = appName + " App Feedback"
	}
	return &SMTPSender{
		host:          host,
		port:          port,
		username:      username,
		password:      password,
		companyEmail:  companyEmail,
		appName:       appName,
		subjectPrefix: subjectPrefix,
		retryAttempts: retryAttempts,
		useTLS:        useTLS,
		sleep:         time.Sleep,
	}, nil
}

// SendFeedback intenta la entrega hasta retryAttempts veces con backoff exponencial.
func (s *SMTPSender) SendFeedback(ctx context.Context, userID, userEmail, feedback string) error {
	shortID := userID
	if len(shortID) > 8 {
		shortID = shortID[:8] + "..."
	}
	subject := fmt.Sprintf("%s - User %s", s.subjectPrefix, shortID)
	body := s.buildReport(userID, userEmail, feedback)
	msg := buildMessage(s.username, s.appName, s.companyEmail, subject, body)

	var lastErr error
	for attempt := 0; attempt < s.retryAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if lastErr = s.deliver(msg); lastErr == nil {
			return nil
		}
		if attempt < s.retryAttempts-1 {
			s.sleep(backoff(attempt))
		}
	}
	return fmt.Errorf("send feedback email after %d attempts: %w", s.retryAttempts, lastErr)
}

// backoff devuelve la espera previa al reintento attempt+1 (1s, 2s, 4s, ...).
func backoff(attempt int) time.Duration {
	return time.Duration(1<<attempt) * time.Second
}

func (s *SMTPSender) deliver(msg string) error {
	addr := fmt.Sprintf("%s:%d", s.host, s.port)
	auth := smtp.PlainAuth("", s.username, s.password, s.host)

	if s.useTLS {
		conn, err := tls.Dial("tcp", addr, &tls.Config{
			ServerName: s.host,
		})
		if err != nil {
			return err
		}
		defer conn.Close()

		client, err := smtp.NewClient(conn, s.host)
		if err != nil {
			return err
		}
		defer client.Quit()

		if err := client.Auth(auth); err != nil {
			return err
		}
		if err := client.Mail(s.username); err != nil {
			return err
		}
		if err := client.Rcpt(s.companyEmail); err != nil {
			return err
		}
		writer, err := client.Data()
		if err != nil {
			return err
		}
		if _, err := writer.Write([]byte(msg)); err != nil {
			_ = writer.Close()
			return err
		}
		return writer.Close()
	}

	return smtp.SendMail(addr, auth, s.username, []string{s.companyEmail}, []byte(msg))
}

func (s *SMTPSender) buildReport(userID, userEmail, feedback string) string {
	timestamp := time.Now().UTC().Format("2006-01-02 15:04:05 UTC")

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s - New User Feedback Received\n\n", s.appName))
	sb.WriteString("FEEDBACK DETAILS:\n")
	sb.WriteString(fmt.Sprintf("- User ID: %s\n", userID))
	sb.WriteString(fmt.Sprintf("- User Email: %s\n", userEmail))
	sb.WriteString(fmt.Sprintf("- Timestamp: %s\n\n", timestamp))
	sb.WriteString("USER FEEDBACK:\n\n")
	sb.WriteString(feedback)
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("This is an automated message from %s App. Please do not reply.\n", s.appName))
	return sb.String()
}

func buildMessage(from, fromName, to, subject, body string) string {
	fromHeader := from
	if strings.TrimSpace(fromName) != "" {
		fromHeader = fmt.Sprintf("%s <%s>", fromName, from)
	}

	headers := []string{
		fmt.Sprintf("From: %s", fromHeader),
		fmt.Sprintf("To: %s", to),
		fmt.Sprintf("Reply-To: %s", to),
		fmt.Sprintf("Subject: %s", subject),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
	}

	return strings.Join(headers, "\r\n") + "\r\n\r\n" + body
}
