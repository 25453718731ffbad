package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/config"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/goerror"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/instrument"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/mail"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/validator"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMailer) Close() error { return nil }

type fakeConfig struct {
	config.Config
	strings map[string]string
}

func (f *fakeConfig) GetString(key string) string { return f.strings[key] }

func newTestUsecase(t *testing.T, mailer *fakeMailer, inbox string) *Usecase {
	t.Helper()

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	return New(Dependency{
		Validator:  v10,
		Config:     &fakeConfig{strings: map[string]string{"modules.contact.inbox": inbox}},
		Mail:       mailer,
		Instrument: instrument.NewNoop(),
	})
}

func assertCode(t *testing.T, err error, want goerror.Code) {
	t.Helper()

	var ge *goerror.Error
	if !errors.As(err, &ge) {
		t.Fatalf("expected *goerror.Error, got %T: %v", err, err)
	}
	if ge.Code() != want {
		t.Fatalf("error code = %s, want %s", ge.Code(), want)
	}
}

func TestSend(t *testing.T) {
	mailer := &fakeMailer{}
	uc := newTestUsecase(t, mailer, "hello@acg.test")

	err := uc.Send(context.Background(), SendInput{
		Name:    "Alice",
		Email:   "alice@example.com",
		Message: "The library entrance ramp is blocked.",
	})
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}

	if len(mailer.sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(mailer.sent))
	}
	msg := mailer.sent[0]
	if msg.To[0] != "hello@acg.test" {
		t.Fatalf("to = %q, want the configured inbox", msg.To[0])
	}
	if msg.Subject != "Contact Form Message from Alice" {
		t.Fatalf("subject = %q", msg.Subject)
	}
	if !strings.Contains(msg.TextBody, "alice@example.com") {
		t.Fatalf("body does not carry the sender email: %q", msg.TextBody)
	}
}

func TestSendInvalidInput(t *testing.T) {
	uc := newTestUsecase(t, &fakeMailer{}, "hello@acg.test")

	err := uc.Send(context.Background(), SendInput{Name: "Alice"})

	assertCode(t, err, goerror.CodeInvalidInput)
}

func TestSendMailFailure(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp down")}
	uc := newTestUsecase(t, mailer, "hello@acg.test")

	err := uc.Send(context.Background(), SendInput{
		Name:    "Alice",
		Email:   "alice@example.com",
		Message: "The library entrance ramp is blocked.",
	})

	assertCode(t, err, goerror.CodeDependency)
}

func TestSendMissingInbox(t *testing.T) {
	uc := newTestUsecase(t, &fakeMailer{}, "")

	err := uc.Send(context.Background(), SendInput{
		Name:    "Alice",
		Email:   "alice@example.com",
		Message: "The library entrance ramp is blocked.",
	})

	assertCode(t, err, goerror.CodeDependency)
}
