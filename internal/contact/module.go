package contact

import (
	"github.com/VenkataSiriPriya/Backend-acg/internal/contact/inbound"
	"github.com/VenkataSiriPriya/Backend-acg/internal/contact/usecase"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/config"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/instrument"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/mail"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/router"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/validator"
)

type Dependency struct {
	Router     *router.Router             `validate:"required"`
	Config     config.Config              `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.New(usecase.Dependency{
		Validator:  dep.Validator,
		Config:     dep.Config,
		Mail:       dep.Mail,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
