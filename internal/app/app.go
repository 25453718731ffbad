package app

import (
	"context"
	"net/http"

	"github.com/casbin/casbin/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/clock"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/config"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/goroutine"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/hash"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/idempotency"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/instrument"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/jwt"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/mail"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/messaging"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/otp"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/ratelimit"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/router"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/storage"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/uid"
	"github.com/VenkataSiriPriya/Backend-acg/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	hmac      hash.Hash
	bcrypt    hash.Hash
	uid       uid.NumberID
	uuid      uid.StringID
	jwt       jwt.JWT

	// resources
	dbConn     *pgxpool.Pool
	cacheConn  *redis.Client
	idemp      idempotency.Idempotency
	otpManager *otp.Manager
	otpStore   *otp.MemoryStore
	otpLimiter ratelimit.Limiter
	mail       mail.Mail
	messaging  messaging.Messaging
	storage    storage.Storage
	casbin     *casbin.Enforcer

	// server
	router     *router.Router
	httpServer *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initJWT()
	app.initDatabase()
	app.initCache()
	app.initOTP()
	app.initRateLimit()
	app.initMail()
	app.initStorage()
	app.initMessaging()
	app.initCasbin()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
