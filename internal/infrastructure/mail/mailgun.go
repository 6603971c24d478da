package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/stunite/backend/internal/config"
)

// LikeAlert carries the template variables for the like notification mail.
type LikeAlert struct {
	To          string
	FirstName   string
	LikedBy     string
	SocialMedia string
	SiteURL     string
}

type Client struct {
	mg           mailgun.Mailgun
	from         string
	likeTemplate string
}

func NewClient(cfg *config.MailConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("mailgun API key is missing")
	}
	return &Client{
		mg:           mailgun.NewMailgun(cfg.Domain, cfg.APIKey),
		from:         cfg.From,
		likeTemplate: cfg.LikeTemplate,
	}, nil
}

// SendLikeAlert sends the like_alert template mail and returns the provider
// message id.
func (c *Client) SendLikeAlert(ctx context.Context, alert LikeAlert) (string, error) {
	subject := fmt.Sprintf("Hey %s, You Might Have a New Friend!", alert.FirstName)

	m := c.mg.NewMessage(c.from, subject, "", alert.To)
	m.SetTemplate(c.likeTemplate)
	for k, v := range map[string]string{
		"FirstName":    alert.FirstName,
		"LikedBy":      alert.LikedBy,
		"social_media": alert.SocialMedia,
		"SiteURL":      alert.SiteURL,
	} {
		if err := m.AddTemplateVariable(k, v); err != nil {
			return "", fmt.Errorf("failed to set template variable %s: %w", k, err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, id, err := c.mg.Send(ctx, m)
	if err != nil {
		return "", fmt.Errorf("failed to send like alert: %w", err)
	}
	return id, nil
}

// SendPasswordReset mails a reset link for the forgot-password flow.
func (c *Client) SendPasswordReset(ctx context.Context, to, resetLink string) (string, error) {
	body := fmt.Sprintf(
		"We received a request to reset your Stunite password.\n\n"+
			"Follow this link to choose a new one: %s\n\n"+
			"If you did not ask for this, you can ignore this email.",
		resetLink,
	)

	m := c.mg.NewMessage(c.from, "Reset your Stunite password", body, to)

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, id, err := c.mg.Send(ctx, m)
	if err != nil {
		return "", fmt.Errorf("failed to send password reset: %w", err)
	}
	return id, nil
}
