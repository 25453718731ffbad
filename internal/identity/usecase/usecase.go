package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/casbin/casbin/v3"
	"go.opentelemetry.io/otel/trace"

	"github.com/VenkataSiriPriya/Backend-acg/internal/identity/entity"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/clock"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/config"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/goerror"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/goroutine"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/hash"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/instrument"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/jwt"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/mail"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/otp"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/uid"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/validator"
)

type UserRegisteredEvent struct {
	UserID   int64
	Email    string
	Username string
}

type repoMessaging interface {
	PublishUserRegistered(ctx context.Context, msg UserRegisteredEvent) error
}

type repoDB interface {
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByUsername(ctx context.Context, username string) (*entity.User, error)
	GetUserLoginInfo(ctx context.Context, email string) (*entity.UserLoginInfo, error)
	GetUserList(ctx context.Context) ([]entity.User, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)

	CreateUser(ctx context.Context, user entity.NewUser, passwordHash string) error
	UpdateUserPassword(ctx context.Context, userID int64, passwordHash string) error
	DeleteUser(ctx context.Context, id int64) error
}

// otpManager is the subset of the otp.Manager API the identity flows use.
type otpManager interface {
	TTL() time.Duration
	Issue(ctx context.Context, key string) (string, error)
	Verify(ctx context.Context, key, code string) (otp.Outcome, error)
	Consume(ctx context.Context, key, code string, commit func(context.Context) error) (otp.Outcome, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	validator     validator.Validator
	cfg           config.Config
	bcrypt        hash.Hash
	otp           otpManager
	mailer        mail.Mail
	uid           uid.NumberID
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
	enforcer      *casbin.Enforcer
	goroutine     *goroutine.Manager
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	Validator     validator.Validator
	Config        config.Config
	Bcrypt        hash.Hash
	OTP           otpManager
	Mail          mail.Mail
	UID           uid.NumberID
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
	Enforcer      *casbin.Enforcer
	Goroutine     *goroutine.Manager
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		validator:     dep.Validator,
		cfg:           dep.Config,
		bcrypt:        dep.Bcrypt,
		otp:           dep.OTP,
		mailer:        dep.Mail,
		uid:           dep.UID,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
		enforcer:      dep.Enforcer,
		goroutine:     dep.Goroutine,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("identity.usecase").Start(ctx, name)
}

func (s *Usecase) authenticatedAndAuthorized(ctx context.Context, obj, act string) (*jwt.Claims, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	ok, err := s.enforcer.Enforce(clm.UserRole, obj, act)
	if err != nil {
		slog.ErrorContext(ctx, "failed to check authorization", "user_id", clm.UserID, "error", err)
		return nil, goerror.NewServer(err)
	}

	if !ok {
		return nil, goerror.NewBusiness("You do not have access to this resource", goerror.CodeForbidden)
	}

	return clm, nil
}

// mapOTPOutcome converts a non-valid outcome into the user-facing error. The
// message is the same for every failure mode so callers cannot probe which
// emails have a live code; the error code keeps the distinction for clients.
func mapOTPOutcome(outcome otp.Outcome) error {
	switch outcome {
	case otp.OutcomeNotFound:
		return goerror.NewBusiness("Invalid or expired OTP", goerror.CodeNotFound)
	case otp.OutcomeExpired:
		return goerror.NewBusiness("Invalid or expired OTP", goerror.CodeExpired)
	case otp.OutcomeMismatch:
		return goerror.NewBusiness("Invalid or expired OTP", goerror.CodeMismatch)
	default:
		return nil
	}
}
