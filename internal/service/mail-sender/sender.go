package mail_sender

import (
	"SmartShop/entity"
	"SmartShop/internal/lib/sl"
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"
)

type Options struct {
	Server   string
	Port     int
	UseTLS   bool
	Username string
	Password string
}

type Service struct {
	opts Options
	log  *slog.Logger
}

func NewMailSenderService(opts Options, logger *slog.Logger) *Service {
	return &Service{
		opts: opts,
		log:  logger.With(sl.Module("mail sender service")),
	}
}

// Enabled reports whether SMTP credentials are configured.
func (s *Service) Enabled() bool {
	return s.opts.Server != "" && s.opts.Username != ""
}

func BuildMessage(msg *entity.MailMessage) (*mail.Msg, error) {
	if len(msg.To) == 0 {
		return nil, fmt.Errorf("no recipients")
	}
	m := mail.NewMsg()
	if err := m.From(msg.Sender); err != nil {
		return nil, fmt.Errorf("sender %q: %w", msg.Sender, err)
	}
	if err := m.To(msg.To...); err != nil {
		return nil, fmt.Errorf("recipients: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	return m, nil
}

func (s *Service) client() (*mail.Client, error) {
	policy := mail.NoTLS
	if s.opts.UseTLS {
		policy = mail.TLSMandatory
	}
	opts := []mail.Option{
		mail.WithPort(s.opts.Port),
		mail.WithTLSPolicy(policy),
	}
	if s.opts.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.opts.Username),
			mail.WithPassword(s.opts.Password),
		)
	}
	return mail.NewClient(s.opts.Server, opts...)
}

func (s *Service) Send(ctx context.Context, msg *entity.MailMessage) error {
	if !s.Enabled() {
		return fmt.Errorf("mail server is not configured")
	}

	m, err := BuildMessage(msg)
	if err != nil {
		return err
	}

	client, err := s.client()
	if err != nil {
		return fmt.Errorf("mail client: %w", err)
	}

	if err = client.DialAndSendWithContext(ctx, m); err != nil {
		s.log.With(
			slog.String("subject", msg.Subject),
			slog.Int("recipients", len(msg.To)),
			sl.Err(err),
		).Error("send mail")
		return fmt.Errorf("send mail: %w", err)
	}

	s.log.With(
		slog.String("subject", msg.Subject),
		slog.Int("recipients", len(msg.To)),
	).Debug("mail sent")
	return nil
}
