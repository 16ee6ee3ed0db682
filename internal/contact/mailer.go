package contact

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/2beens/aitrainer/internal/telemetry/tracing"
)

var ErrMailerNotConfigured = errors.New("smtp mailer not configured")

type Message struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// SMTPMailer sends the contact messages to the configured mailbox, from that same mailbox.
// The connection must be upgraded with STARTTLS before authenticating.
type SMTPMailer struct {
	host     string
	port     int
	email    string
	password string
	// ability to inject the send func (for unit testing)
	SendFunc func(ctx context.Context, msg *mail.Msg) error
	nowFunc  func() time.Time
}

func NewSMTPMailer(host string, port int, email, password string) *SMTPMailer {
	m := &SMTPMailer{
		host:     host,
		port:     port,
		email:    email,
		password: password,
		nowFunc:  time.Now,
	}
	m.SendFunc = m.dialAndSend
	return m
}

func Subject(name string) string {
	return fmt.Sprintf("New Contact Message from %s", name)
}

func messageBody(msg Message) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Name: %s\n", msg.Name)
	fmt.Fprintf(&sb, "Email: %s\n", msg.Email)
	sb.WriteString("\nMessage:\n")
	sb.WriteString(msg.Message)
	sb.WriteString("\n")
	return sb.String()
}

// buildMessage leaves header encoding to go-mail, line breaks in user input end up
// inside encoded words and never start a new header.
func (m *SMTPMailer) buildMessage(msg Message) (*mail.Msg, error) {
	mm := mail.NewMsg()
	if err := mm.From(m.email); err != nil {
		return nil, fmt.Errorf("from address: %w", err)
	}
	if err := mm.To(m.email); err != nil {
		return nil, fmt.Errorf("to address: %w", err)
	}
	if err := mm.ReplyTo(msg.Email); err != nil {
		return nil, fmt.Errorf("reply-to address: %w", err)
	}
	mm.Subject(Subject(msg.Name))
	mm.SetDateWithValue(m.nowFunc())
	mm.SetBodyString(mail.TypeTextPlain, messageBody(msg))
	return mm, nil
}

func (m *SMTPMailer) dialAndSend(ctx context.Context, msg *mail.Msg) error {
	client, err := mail.NewClient(m.host,
		mail.WithPort(m.port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(m.email),
		mail.WithPassword(m.password),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}
	return client.DialAndSendWithContext(ctx, msg)
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "contact.smtp.send")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if m.host == "" || m.email == "" || m.password == "" {
		return ErrMailerNotConfigured
	}

	mm, err := m.buildMessage(msg)
	if err != nil {
		return fmt.Errorf("build message: %w", err)
	}

	addr := net.JoinHostPort(m.host, strconv.Itoa(m.port))
	if err := m.SendFunc(ctx, mm); err != nil {
		return fmt.Errorf("send mail via %s: %w", addr, err)
	}
	return nil
}
