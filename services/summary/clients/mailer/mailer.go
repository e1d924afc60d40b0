package mailer

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/wneessen/go-mail"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	config "github.com/xilidan/meeting-summary/config/summary"
	"github.com/xilidan/meeting-summary/pkg/apperr"
)

const (
	defaultPort = 587
	// placeholderMessageID is reported when the transport yields no Message-ID.
	placeholderMessageID = "sent"
)

type transport interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

type Client struct {
	cfg          config.SMTPConfig
	log          *slog.Logger
	markdown     goldmark.Markdown
	newTransport func(cfg config.SMTPConfig) (transport, error)
}

func New(cfg *config.SMTPConfig, log *slog.Logger) *Client {
	smtpCfg := *cfg
	if smtpCfg.Port == 0 {
		smtpCfg.Port = defaultPort
	}
	log.Debug("creating mail client",
		slog.String("host", cfg.Host),
		slog.Int("port", smtpCfg.Port),
		slog.Bool("secure", cfg.Secure),
		slog.Bool("auth", cfg.HasAuth()))
	return &Client{
		cfg:          smtpCfg,
		log:          log,
		markdown:     goldmark.New(goldmark.WithExtensions(extension.GFM)),
		newTransport: dialSMTP,
	}
}

func dialSMTP(cfg config.SMTPConfig) (transport, error) {
	opts := []mail.Option{mail.WithPort(cfg.Port)}
	if cfg.Secure {
		opts = append(opts, mail.WithSSL())
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSOpportunistic))
	}
	if cfg.HasAuth() {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	return mail.NewClient(cfg.Host, opts...)
}

// Send delivers one message to all recipients and returns its Message-ID.
func (c *Client) Send(ctx context.Context, recipients []string, subject, body string) (string, error) {
	if c.cfg.Host == "" {
		return "", apperr.Configuration("SMTP_HOST is not set")
	}
	if c.cfg.Sender() == "" {
		return "", apperr.Configuration("MAIL_FROM or SMTP_USER must be set")
	}
	c.log.Info("Send called",
		slog.Int("recipients", len(recipients)),
		slog.String("subject", subject),
		slog.Int("body_length", len(body)))

	msg, err := c.buildMessage(recipients, subject, body)
	if err != nil {
		c.log.Error("failed to build message", slog.String("error", err.Error()))
		return "", apperr.Delivery(err)
	}

	tr, err := c.newTransport(c.cfg)
	if err != nil {
		c.log.Error("failed to create SMTP transport", slog.String("error", err.Error()))
		return "", apperr.Delivery(fmt.Errorf("failed to create SMTP transport: %w", err))
	}

	if err := tr.DialAndSendWithContext(ctx, msg); err != nil {
		c.log.Error("failed to send mail",
			slog.String("error", err.Error()),
			slog.String("host", c.cfg.Host))
		return "", apperr.Delivery(fmt.Errorf("failed to send mail: %w", err))
	}

	messageID := placeholderMessageID
	if ids := msg.GetGenHeader(mail.HeaderMessageID); len(ids) > 0 && ids[0] != "" {
		messageID = ids[0]
	}
	c.log.Info("mail sent", slog.String("message_id", messageID))

	return messageID, nil
}

func (c *Client) buildMessage(recipients []string, subject, body string) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(c.cfg.Sender()); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", c.cfg.Sender(), err)
	}

	// one To header holding every recipient
	if err := msg.To(recipients...); err != nil {
		return nil, fmt.Errorf("invalid recipients %q: %w", strings.Join(recipients, ","), err)
	}
	msg.Subject(subject)
	msg.SetMessageID()
	msg.SetBodyString(mail.TypeTextPlain, body)

	var html bytes.Buffer
	if err := c.markdown.Convert([]byte(body), &html); err != nil {
		c.log.Warn("failed to render HTML alternative", slog.String("error", err.Error()))
		return msg, nil
	}
	msg.AddAlternativeString(mail.TypeTextHTML, html.String())

	return msg, nil
}
