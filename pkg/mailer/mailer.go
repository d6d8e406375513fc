package mailer

import (
	"context"
	"fmt"
	"html"
	"net/smtp"
	"strings"
	"sync"

	"usof/pkg/metrics"
	"usof/settings"

	"go.uber.org/zap"
)

// Message 一封待发送的邮件，Body 为 HTML
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// Sender 邮件发送方式
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

var (
	mu     sync.RWMutex
	sender Sender = LogSender{}
)

// SetSender 替换全局发送器
func SetSender(s Sender) {
	mu.Lock()
	defer mu.Unlock()
	sender = s
}

func current() Sender {
	mu.RLock()
	defer mu.RUnlock()
	return sender
}

// Send 同步发送
func Send(ctx context.Context, msg Message) error {
	return current().Send(ctx, msg)
}

// SendAsync 后台发送，失败只记录日志
func SendAsync(msg Message) {
	s := current()
	go func() {
		if err := s.Send(context.Background(), msg); err != nil {
			zap.L().Error("send mail failed",
				zap.String("to", msg.To),
				zap.String("subject", msg.Subject),
				zap.Error(err))
		}
	}()
}

// NewSMTPSender SMTP 未配置时返回 LogSender
func NewSMTPSender(cfg *settings.MailConfig) Sender {
	if cfg == nil || cfg.Host == "" || cfg.User == "" || cfg.Password == "" {
		zap.L().Warn("smtp not configured, mail will only be logged")
		return LogSender{}
	}
	return &SMTPSender{cfg: cfg}
}

type SMTPSender struct {
	cfg *settings.MailConfig
}

func (s *SMTPSender) Send(_ context.Context, msg Message) error {
	auth := smtp.PlainAuth("", s.cfg.User, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	body := buildMIME(s.cfg.From, msg)
	if err := smtp.SendMail(addr, auth, s.cfg.From, []string{msg.To}, body); err != nil {
		metrics.MailSentTotal.WithLabelValues("smtp", "error").Inc()
		return fmt.Errorf("smtp send to %s failed: %w", msg.To, err)
	}
	metrics.MailSentTotal.WithLabelValues("smtp", "ok").Inc()
	return nil
}

func buildMIME(from string, msg Message) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + msg.To + "\r\n")
	b.WriteString("Subject: " + msg.Subject + "\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n\r\n")
	b.WriteString(msg.Body)
	return []byte(b.String())
}

// LogSender 只把邮件写进日志
type LogSender struct{}

func (LogSender) Send(_ context.Context, msg Message) error {
	zap.L().Info("[MAIL:FAKE]",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("body", msg.Body))
	metrics.MailSentTotal.WithLabelValues("log", "ok").Inc()
	return nil
}

// ConfirmEmailMessage 注册确认邮件
func ConfirmEmailMessage(to, link string) Message {
	return Message{
		To:      to,
		Subject: "Confirm your email",
		Body: fmt.Sprintf(`<p>Confirm your email by following the link:</p><p><a href="%s">%s</a></p>`,
			html.EscapeString(link), html.EscapeString(link)),
	}
}

// PasswordResetMessage 重置密码邮件
func PasswordResetMessage(to, link string) Message {
	return Message{
		To:      to,
		Subject: "Password reset",
		Body: fmt.Sprintf(`<p>To reset your password follow the link:</p><p><a href="%s">%s</a></p>`,
			html.EscapeString(link), html.EscapeString(link)),
	}
}
