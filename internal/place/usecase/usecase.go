package usecase

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/clock"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/config"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/goroutine"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/idempotency"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/instrument"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/storage"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/uid"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/validator"
	"github.com/VenkataSiriPriya/Backend-acg/internal/place/entity"
)

type PlaceSubmittedEvent struct {
	PlaceID   int64
	PlaceName string
	PlaceType string
	City      string
}

type PlaceModeratedEvent struct {
	PlaceID   int64
	PlaceName string
	Status    entity.Status
}

type repoMessaging interface {
	PublishPlaceSubmitted(ctx context.Context, msg PlaceSubmittedEvent) error
	PublishPlaceModerated(ctx context.Context, msg PlaceModeratedEvent) error
}

type repoDB interface {
	GetPlaceByID(ctx context.Context, id int64) (*entity.Place, error)
	GetPlaceList(ctx context.Context) ([]entity.Place, error)

	CreatePlace(ctx context.Context, place entity.NewPlace) error
	UpdatePlaceStatus(ctx context.Context, id int64, status entity.Status) error
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	storage       storage.Storage
	idempotency   idempotency.Idempotency
	uid           uid.NumberID
	uuid          uid.StringID
	clock         clock.Clocker
	ins           instrument.Instrumentation
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	Storage       storage.Storage
	Idempotency   idempotency.Idempotency
	UID           uid.NumberID
	UUID          uid.StringID
	Clock         clock.Clocker
	Instrument    instrument.Instrumentation
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		storage:       dep.Storage,
		idempotency:   dep.Idempotency,
		uid:           dep.UID,
		uuid:          dep.UUID,
		clock:         dep.Clock,
		ins:           dep.Instrument,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("place.usecase").Start(ctx, name)
}
