package email

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"

	"buildxpert/internal/config"
)

// SESProvider delivers mail through Amazon SES (classic API).
type SESProvider struct {
	client   *ses.SES
	from     string
	fromName string
}

func NewSESProvider(cfg config.EmailConfig) (*SESProvider, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.SESRegion),
	})
	if err != nil {
		return nil, fmt.Errorf("ses session: %w", err)
	}

	return &SESProvider{
		client:   ses.New(sess),
		from:     cfg.FromEmail,
		fromName: cfg.FromName,
	}, nil
}

func (p *SESProvider) Name() string { return "ses" }

func (p *SESProvider) Send(ctx context.Context, msg Message) error {
	input := &ses.SendEmailInput{
		Source: aws.String(fmt.Sprintf("%s <%s>", p.fromName, p.from)),
		Destination: &ses.Destination{
			ToAddresses: aws.StringSlice(msg.To),
		},
		Message: &ses.Message{
			Subject: &ses.Content{
				Data:    aws.String(msg.Subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &ses.Body{},
		},
	}

	if msg.HTMLBody != "" {
		input.Message.Body.Html = &ses.Content{
			Data:    aws.String(msg.HTMLBody),
			Charset: aws.String("UTF-8"),
		}
	}
	if msg.TextBody != "" {
		input.Message.Body.Text = &ses.Content{
			Data:    aws.String(msg.TextBody),
			Charset: aws.String("UTF-8"),
		}
	}

	if _, err := p.client.SendEmailWithContext(ctx, input); err != nil {
		return fmt.Errorf("ses send: %w", err)
	}
	return nil
}
