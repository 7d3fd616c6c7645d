package mail

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	gomail "github.com/wneessen/go-mail"
)

// Message is a single outbound email
type Message struct {
	To      string
	ToName  string
	Subject string
	Body    string
}

// Client is the email transport. Implementations deliver one message per
// call; the fan-out layer handles concurrency and aggregation.
type Client interface {
	Send(ctx context.Context, msg *Message) error
}

type smtpClient struct {
	client *gomail.Client
	from   string
}

var _ Client = &smtpClient{}

// Config holds SMTP transport settings. Password is redacted from logs.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string `masq:"secret"`
	From     string
}

// New creates an SMTP-backed mail client
func New(cfg Config) (Client, error) {
	if cfg.Host == "" {
		return nil, goerr.New("SMTP host is required")
	}
	if cfg.From == "" {
		return nil, goerr.New("mail sender address is required")
	}

	opts := []gomail.Option{
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Port != 0 {
		opts = append(opts, gomail.WithPort(cfg.Port))
	}
	if cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create SMTP client", goerr.V("host", cfg.Host))
	}

	return &smtpClient{
		client: client,
		from:   cfg.From,
	}, nil
}

func (c *smtpClient) Send(ctx context.Context, msg *Message) error {
	m := gomail.NewMsg()
	if err := m.From(c.from); err != nil {
		return goerr.Wrap(err, "invalid sender address", goerr.V("from", c.from))
	}
	if err := m.AddToFormat(msg.ToName, msg.To); err != nil {
		return goerr.Wrap(err, "invalid recipient address", goerr.V("to", msg.To))
	}
	m.Subject(msg.Subject)
	m.SetBodyString(gomail.TypeTextPlain, msg.Body)

	if err := c.client.DialAndSendWithContext(ctx, m); err != nil {
		return goerr.Wrap(err, "failed to send mail", goerr.V("to", msg.To))
	}

	return nil
}
