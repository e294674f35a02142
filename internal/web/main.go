// Package web wires the fiber application: middleware, route groups and the
// server lifecycle.
package web

import (
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	authengine "github.com/authgate/authgate/internal/auth"
	"github.com/authgate/authgate/internal/config"
	"github.com/authgate/authgate/internal/db/store"
	eulaengine "github.com/authgate/authgate/internal/eula"
	fiberlogger "github.com/authgate/authgate/internal/logger/adapter/fiber"
	"github.com/authgate/authgate/internal/password"
	ssoengine "github.com/authgate/authgate/internal/sso"
	"github.com/authgate/authgate/internal/token"
	"github.com/authgate/authgate/internal/web/handler"
	authhandler "github.com/authgate/authgate/internal/web/handler/auth"
	eulahandler "github.com/authgate/authgate/internal/web/handler/eula"
	"github.com/authgate/authgate/internal/web/handler/health"
	ssohandler "github.com/authgate/authgate/internal/web/handler/sso"
)

// Service represents the web service.
type Service struct {
	App          *fiber.App
	cfg          *config.Config
	fastShutDown bool
	alive        atomic.Bool
	db           *gorm.DB
}

// Start starts the web service on the given address.
func (s *Service) Start(addr string) error {
	var doneFiber = make(chan bool)

	go func() {
		if err := s.App.Listen(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Msgf("fiber listen error: %v", err)
		}

		doneFiber <- true
	}()

	<-doneFiber // wait for fiber to stop

	return nil
}

// WaitShutdown waits for graceful shutdown of authgate.
func (s *Service) WaitShutdown() {
	irqSig := make(chan os.Signal, 1)
	signal.Notify(irqSig, syscall.SIGINT, syscall.SIGTERM)

	sig := <-irqSig
	log.Info().Msgf("shutdown request (signal: %v)", sig)

	// Graceful shutdown for reverse proxies: set status to fail, so checkalive returns fail.
	if !s.fastShutDown {
		log.Info().Msgf(
			"graceful shutdown: return 503 while %d seconds to let LB to remove this pod from active targets",
			s.cfg.Webserver.ShutDownTime,
		)

		s.alive.Store(false)
		time.Sleep(time.Duration(s.cfg.Webserver.ShutDownTime) * time.Second)
	}

	// stop fiber http server
	serverShutdown := make(chan struct{})

	go func() {
		log.Info().Msg("stopping http server ...")

		err := s.App.Shutdown()
		if err != nil {
			log.Error().Err(err).Msg("")
		}

		serverShutdown <- struct{}{}
	}()

	<-serverShutdown
	log.Info().Msg("http server was stopped ... good bye...")
}

// errorHandler renders unhandled route errors as the JSON error envelope.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := handler.InternalErrorMessage

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(code).JSON(handler.Error{Message: message})
}

// New creates a new web service with the given configuration.
func New(cfg *config.Config, db *gorm.DB) *Service {
	if cfg == nil {
		panic("config cannot be nil")
	}

	if db == nil {
		panic("db cannot be nil")
	}

	// create fiber app
	app := fiber.New(
		fiber.Config{
			ReadBufferSize: 8192,
			AppName:        "authgate",
			CaseSensitive:  true,
			Prefork:        false,
			Immutable:      true,
			ErrorHandler:   errorHandler,
		},
	)

	// access logging
	app.Use(fiberlogger.New(fiberlogger.Config{
		Config:        cfg.Log,
		CheckAliveURI: health.Path,
	}))

	// init web service
	service := &Service{
		cfg: cfg,
		App: app,
		db:  db,
	}
	service.alive.Store(true)

	// assemble the engine services
	repo := store.New(db)
	hasher := password.New(cfg.Auth.BcryptCost)
	codec := token.New(cfg.Auth.Secret, cfg.Auth.TokenTTL)

	authService := authengine.NewService(repo, repo, hasher, codec)
	ssoService := ssoengine.NewService(repo, repo, repo, codec, cfg.Auth.ProviderTimeout)
	eulaService := eulaengine.NewService(repo)

	// init handlers (they register their own routes)
	authhandler.NewService(authService, codec).Init(app)
	ssohandler.NewService(ssoService, codec).Init(app)
	eulahandler.NewService(eulaService, codec).Init(app)
	health.NewService(&service.alive).Init(app)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return service
}
