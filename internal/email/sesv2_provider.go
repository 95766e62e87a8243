package email

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/sesv2"

	"buildxpert/internal/config"
)

// SESV2Provider delivers mail through the SES v2 API. Kept alongside
// the classic client because some regions only enable one of the two.
type SESV2Provider struct {
	client   *sesv2.SESV2
	from     string
	fromName string
}

func NewSESV2Provider(cfg config.EmailConfig) (*SESV2Provider, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.SESRegion),
	})
	if err != nil {
		return nil, fmt.Errorf("sesv2 session: %w", err)
	}

	return &SESV2Provider{
		client:   sesv2.New(sess),
		from:     cfg.FromEmail,
		fromName: cfg.FromName,
	}, nil
}

func (p *SESV2Provider) Name() string { return "sesv2" }

func (p *SESV2Provider) Send(ctx context.Context, msg Message) error {
	body := &sesv2.Body{}
	if msg.HTMLBody != "" {
		body.Html = &sesv2.Content{
			Data:    aws.String(msg.HTMLBody),
			Charset: aws.String("UTF-8"),
		}
	}
	if msg.TextBody != "" {
		body.Text = &sesv2.Content{
			Data:    aws.String(msg.TextBody),
			Charset: aws.String("UTF-8"),
		}
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", p.fromName, p.from)),
		Destination: &sesv2.Destination{
			ToAddresses: aws.StringSlice(msg.To),
		},
		Content: &sesv2.EmailContent{
			Simple: &sesv2.Message{
				Subject: &sesv2.Content{
					Data:    aws.String(msg.Subject),
					Charset: aws.String("UTF-8"),
				},
				Body: body,
			},
		},
	}

	if _, err := p.client.SendEmailWithContext(ctx, input); err != nil {
		return fmt.Errorf("sesv2 send: %w", err)
	}
	return nil
}
