package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/config"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/instrument"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/mail"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/validator"
)

type fakeRepoMail struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (f *fakeRepoMail) Send(_ context.Context, msg mail.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeConfig struct {
	config.Config
	strings map[string]string
}

func (f *fakeConfig) GetString(key string) string { return f.strings[key] }

func newTestUsecase(t *testing.T, repoMail *fakeRepoMail, inbox string) *Usecase {
	t.Helper()

	v10, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("failed to build validator: %v", err)
	}

	return NewNotification(Dependency{
		Config:     &fakeConfig{strings: map[string]string{"modules.notification.moderation_inbox": inbox}},
		Validator:  v10,
		RepoMail:   repoMail,
		Instrument: instrument.NewNoop(),
	})
}

func TestConsumeUserRegistered(t *testing.T) {
	repoMail := &fakeRepoMail{}
	uc := newTestUsecase(t, repoMail, "mods@acg.test")

	err := uc.ConsumeUserRegistered(context.Background(), ConsumeUserRegisteredInput{
		UserID:   7,
		Email:    "alice@example.com",
		Username: "alice",
	})
	if err != nil {
		t.Fatalf("ConsumeUserRegistered() error = %v", err)
	}

	if len(repoMail.sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(repoMail.sent))
	}
	if repoMail.sent[0].To[0] != "alice@example.com" {
		t.Fatalf("to = %q, want the user email", repoMail.sent[0].To[0])
	}
	if !strings.Contains(repoMail.sent[0].TextBody, "alice") {
		t.Fatalf("body does not greet the user: %q", repoMail.sent[0].TextBody)
	}
}

func TestConsumeUserRegisteredInvalidPayload(t *testing.T) {
	repoMail := &fakeRepoMail{}
	uc := newTestUsecase(t, repoMail, "mods@acg.test")

	// Malformed payloads are dropped, not retried.
	if err := uc.ConsumeUserRegistered(context.Background(), ConsumeUserRegisteredInput{}); err != nil {
		t.Fatalf("ConsumeUserRegistered() error = %v", err)
	}

	if len(repoMail.sent) != 0 {
		t.Fatalf("sent = %d, want 0", len(repoMail.sent))
	}
}

func TestConsumePlaceSubmitted(t *testing.T) {
	repoMail := &fakeRepoMail{}
	uc := newTestUsecase(t, repoMail, "mods@acg.test")

	err := uc.ConsumePlaceSubmitted(context.Background(), ConsumePlaceSubmittedInput{
		PlaceID:   42,
		PlaceName: "Central Library",
		PlaceType: "library",
		City:      "Springfield",
	})
	if err != nil {
		t.Fatalf("ConsumePlaceSubmitted() error = %v", err)
	}

	if len(repoMail.sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(repoMail.sent))
	}
	if repoMail.sent[0].To[0] != "mods@acg.test" {
		t.Fatalf("to = %q, want the moderation inbox", repoMail.sent[0].To[0])
	}
}

func TestConsumePlaceSubmittedNoInboxConfigured(t *testing.T) {
	repoMail := &fakeRepoMail{}
	uc := newTestUsecase(t, repoMail, "")

	err := uc.ConsumePlaceSubmitted(context.Background(), ConsumePlaceSubmittedInput{
		PlaceID:   42,
		PlaceName: "Central Library",
	})
	if err != nil {
		t.Fatalf("ConsumePlaceSubmitted() error = %v", err)
	}

	if len(repoMail.sent) != 0 {
		t.Fatalf("sent = %d, want 0", len(repoMail.sent))
	}
}

func TestConsumePlaceModerated(t *testing.T) {
	repoMail := &fakeRepoMail{}
	uc := newTestUsecase(t, repoMail, "mods@acg.test")

	err := uc.ConsumePlaceModerated(context.Background(), ConsumePlaceModeratedInput{
		PlaceID:   42,
		PlaceName: "Central Library",
		Status:    "approved",
	})
	if err != nil {
		t.Fatalf("ConsumePlaceModerated() error = %v", err)
	}

	if len(repoMail.sent) != 1 {
		t.Fatalf("sent = %d, want 1", len(repoMail.sent))
	}
	if !strings.Contains(repoMail.sent[0].Subject, "approved") {
		t.Fatalf("subject does not carry the decision: %q", repoMail.sent[0].Subject)
	}
}

func TestConsumePlaceModeratedMailFailurePropagates(t *testing.T) {
	repoMail := &fakeRepoMail{err: errors.New("smtp down")}
	uc := newTestUsecase(t, repoMail, "mods@acg.test")

	// Delivery failures bubble up so the broker can redeliver.
	err := uc.ConsumePlaceModerated(context.Background(), ConsumePlaceModeratedInput{
		PlaceID:   42,
		PlaceName: "Central Library",
		Status:    "rejected",
	})
	if err == nil {
		t.Fatal("expected an error when mail delivery fails")
	}
}
