package service

import (
	"context"
	"fmt"
	"strings"

	"AnimeTrackserver/internal/domain"
	"AnimeTrackserver/internal/email"
)

type MailSender interface {
	Send(ctx context.Context, msg email.Message) error
}

type ContactService struct {
	Mail          MailSender
	OperatorEmail string
}

type ContactParams struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// Submit relays a contact-form submission to the site operator's inbox. The
// visitor's address goes into the body rather than the envelope so replies
// work without the operator's SMTP relay rejecting a foreign sender.
func (s *ContactService) Submit(ctx context.Context, p ContactParams) error {
	fields := map[string]string{}
	if strings.TrimSpace(p.Name) == "" {
		fields["name"] = "required"
	}
	if strings.TrimSpace(p.Email) == "" {
		fields["email"] = "required"
	}
	if strings.TrimSpace(p.Message) == "" {
		fields["message"] = "required"
	}
	if len(fields) > 0 {
		return domain.NewValidationError(fields)
	}

	subject := strings.TrimSpace(p.Subject)
	if subject == "" {
		subject = "Contact form message from " + p.Name
	} else {
		subject = "Contact form: " + subject
	}

	body := fmt.Sprintf("From: %s <%s>\n\n%s", p.Name, p.Email, p.Message)
	msg := email.Message{
		FromName:  p.Name,
		FromEmail: s.OperatorEmail,
		ToEmail:   s.OperatorEmail,
		Subject:   subject,
		TextBody:  body,
	}

	if err := s.Mail.Send(ctx, msg); err != nil {
		return fmt.Errorf("send contact mail: %w", err)
	}
	return nil
}
