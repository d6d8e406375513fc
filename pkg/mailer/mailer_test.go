package mailer

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"usof/settings"
)

type recordSender struct {
	mu   sync.Mutex
	sent []Message
	done chan struct{}
}

func (r *recordSender) Send(_ context.Context, msg Message) error {
	r.mu.Lock()
	r.sent = append(r.sent, msg)
	r.mu.Unlock()
	if r.done != nil {
		close(r.done)
	}
	return nil
}

func TestNewSMTPSenderFallsBackToLog(t *testing.T) {
	if _, ok := NewSMTPSender(nil).(LogSender); !ok {
		t.Fatal("nil config should give LogSender")
	}
	if _, ok := NewSMTPSender(&settings.MailConfig{Host: "smtp.example.com"}).(LogSender); !ok {
		t.Fatal("config without credentials should give LogSender")
	}
	s := NewSMTPSender(&settings.MailConfig{Host: "smtp.example.com", User: "u", Password: "p"})
	if _, ok := s.(*SMTPSender); !ok {
		t.Fatalf("got %T, want *SMTPSender", s)
	}
}

func TestSendAsyncUsesCurrentSender(t *testing.T) {
	rec := &recordSender{done: make(chan struct{})}
	SetSender(rec)
	defer SetSender(LogSender{})

	SendAsync(ConfirmEmailMessage("a@example.com", "http://x/confirm?token=<t>"))
	select {
	case <-rec.done:
	case <-time.After(2 * time.Second):
		t.Fatal("message not delivered")
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	if len(rec.sent) != 1 || rec.sent[0].To != "a@example.com" {
		t.Fatalf("sent = %+v", rec.sent)
	}
	if strings.Contains(rec.sent[0].Body, "<t>") {
		t.Fatal("link must be escaped in body")
	}
}

func TestBuildMIME(t *testing.T) {
	b := string(buildMIME("from@x", PasswordResetMessage("to@x", "http://x/reset")))
	for _, want := range []string{"From: from@x\r\n", "To: to@x\r\n", "Subject: Password reset\r\n", "text/html"} {
		if !strings.Contains(b, want) {
			t.Errorf("mime missing %q", want)
		}
	}
}
