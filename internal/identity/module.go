package identity

import (
	"github.com/casbin/casbin/v3"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/VenkataSiriPriya/Backend-acg/internal/identity/inbound"
	"github.com/VenkataSiriPriya/Backend-acg/internal/identity/outbound/db"
	"github.com/VenkataSiriPriya/Backend-acg/internal/identity/outbound/mq"
	"github.com/VenkataSiriPriya/Backend-acg/internal/identity/usecase"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/clock"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/config"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/goroutine"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/hash"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/instrument"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/jwt"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/mail"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/messaging"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/otp"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/ratelimit"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/router"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/uid"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/validator"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Enforcer   *casbin.Enforcer           `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Bcrypt     hash.Hash                  `validate:"required"`
	OTP        *otp.Manager               `validate:"required"`
	OTPLimiter ratelimit.Limiter          `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	dbAuth := db.NewDB(dep.DBConn, dep.Instrument)
	repoMsg := mq.NewMessaging(dep.Messaging, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoDB:        dbAuth,
		RepoMessaging: repoMsg,
		Validator:     dep.Validator,
		Config:        dep.Config,
		Bcrypt:        dep.Bcrypt,
		OTP:           dep.OTP,
		Mail:          dep.Mail,
		UID:           dep.UID,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
		Enforcer:      dep.Enforcer,
		Goroutine:     dep.Goroutine,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, dep.OTPLimiter)

	return nil
}
