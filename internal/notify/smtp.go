package notify

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/samber/oops"
	"gopkg.in/gomail.v2"
)

//go:embed templates/otp_email.html
var templatesFS embed.FS

var otpEmailTemplate = template.Must(template.ParseFS(templatesFS, "templates/otp_email.html"))

// SMTPConfig configures SMTPNotifier.
type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	Brand      string
	TTLMinutes int
}

// mailSender is satisfied by *gomail.Dialer.
type mailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPNotifier sends OTP emails over SMTP with an HTML body and a plain-text alternative.
type SMTPNotifier struct {
	cfg    SMTPConfig
	sender mailSender
	now    func() time.Time
}

// NewSMTPNotifier returns an SMTPNotifier that dials cfg.Host for every message.
func NewSMTPNotifier(cfg SMTPConfig) *SMTPNotifier {
	if cfg.Brand == "" {
		cfg.Brand = "Account Auth"
	}
	return &SMTPNotifier{
		cfg:    cfg,
		sender: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		now:    time.Now,
	}
}

type otpEmailData struct {
	Subject    string
	OTP        string
	TTLMinutes int
	Year       int
	Brand      string
}

func (n *SMTPNotifier) render(subject, otp string) (string, error) {
	var buf bytes.Buffer
	err := otpEmailTemplate.Execute(&buf, otpEmailData{
		Subject:    subject,
		OTP:        otp,
		TTLMinutes: n.cfg.TTLMinutes,
		Year:       n.now().Year(),
		Brand:      n.cfg.Brand,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SendOTPEmail renders and sends the OTP email. gomail has no context support,
// so ctx is only checked before dialing.
func (n *SMTPNotifier) SendOTPEmail(ctx context.Context, to, subject, otp string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	html, err := n.render(subject, otp)
	if err != nil {
		return oops.Code("NOTIFY_RENDER_FAILED").With("subject", subject).Wrap(err)
	}
	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", fmt.Sprintf("Your one-time code is %s. It expires in %d minutes.", otp, n.cfg.TTLMinutes))
	m.AddAlternative("text/html", html)
	if err := n.sender.DialAndSend(m); err != nil {
		return oops.Code("NOTIFY_SMTP_FAILED").
			With("host", n.cfg.Host).
			With("subject", subject).
			Wrap(err)
	}
	return nil
}
