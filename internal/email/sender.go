package email

import (
	"context"
	"fmt"

	"buildxpert/internal/logger"
	"buildxpert/internal/models"
)

// Suppressor reports whether an address is on the bounce list.
// Satisfied by repositories.BounceRepository.
type Suppressor interface {
	ExistsForEmail(email string) (bool, error)
}

// TemplateStore looks up admin-managed template overrides.
// Satisfied by repositories.TemplateRepository.
type TemplateStore interface {
	FindByName(name string) (*models.EmailTemplate, error)
}

// Sender is the application-facing mail API: template resolution plus
// bounce suppression in front of the provider chain.
type Sender struct {
	provider  Provider
	bounces   Suppressor
	templates TemplateStore
}

func NewSender(provider Provider, bounces Suppressor, templates TemplateStore) *Sender {
	return &Sender{
		provider:  provider,
		bounces:   bounces,
		templates: templates,
	}
}

// Send delivers msg unless one of the recipients has bounced before.
func (s *Sender) Send(ctx context.Context, msg Message) error {
	for _, to := range msg.To {
		suppressed, err := s.bounces.ExistsForEmail(to)
		if err != nil {
			return err
		}
		if suppressed {
			logger.Info("email suppressed by bounce list", "to", to)
			return ErrSuppressed
		}
	}
	return s.provider.Send(ctx, msg)
}

// SendTemplate renders the named template (DB override first, shipped
// default otherwise) and sends it.
func (s *Sender) SendTemplate(ctx context.Context, to []string, name string, data any) error {
	subject, body, err := s.resolveTemplate(name)
	if err != nil {
		return err
	}

	renderedSubject, renderedBody, err := RenderTemplate(subject, body, data)
	if err != nil {
		return err
	}

	return s.Send(ctx, Message{
		To:       to,
		Subject:  renderedSubject,
		HTMLBody: renderedBody,
	})
}

func (s *Sender) resolveTemplate(name string) (string, string, error) {
	if s.templates != nil {
		if t, err := s.templates.FindByName(name); err == nil {
			return t.Subject, t.Body, nil
		}
	}

	subject, body, ok := BuiltinTemplate(name)
	if !ok {
		return "", "", fmt.Errorf("unknown email template: %s", name)
	}
	return subject, body, nil
}
