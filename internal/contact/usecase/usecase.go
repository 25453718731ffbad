package usecase

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/config"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/instrument"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/mail"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/validator"
)

type Usecase struct {
	validator validator.Validator
	cfg       config.Config
	mailer    mail.Mail
	ins       instrument.Instrumentation
}

type Dependency struct {
	Validator  validator.Validator
	Config     config.Config
	Mail       mail.Mail
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		validator: dep.Validator,
		cfg:       dep.Config,
		mailer:    dep.Mail,
		ins:       dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("contact.usecase").Start(ctx, name)
}
