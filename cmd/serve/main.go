// Package classification EventEase Manager Service.
//
// Event management service behind EventEase: organizers create events with custom registration
// fields, the public RSVPs, administrators manage users and export data
//
// Terms Of Service:
//
// there are no TOS at this moment, use at your own risk we take no responsibility
//
//	Version: 0.1.0
//	License: TODO
//	Contact: <info@eventease.io> https://github.com/eventease/manager
//
//	Consumes:
//	  - application/json
//
//	Produces:
//	  - application/json
//
//	SecurityDefinitions:
//	  oauth2:
//	    type: oauth2
//	    tokenUrl: /tokens
//	    refreshUrl: /refresh
//	    flow: password
//
// swagger:meta
package main

import (
	stdlog "log"
	"log/slog"
	"os"

	"github.com/eventease/manager/internal/log"
	"github.com/eventease/manager/internal/middleware"
	"github.com/eventease/manager/internal/server"
	"github.com/eventease/manager/pkg/calendar"
	"github.com/eventease/manager/pkg/config"
	"github.com/eventease/manager/pkg/event"
	"github.com/eventease/manager/pkg/export"
	"github.com/eventease/manager/pkg/feed"
	"github.com/eventease/manager/pkg/rsvp"
	"github.com/eventease/manager/pkg/storage"
	"github.com/eventease/manager/pkg/token"
	"github.com/eventease/manager/pkg/user"
	"github.com/go-mail/mail"
	"github.com/go-redis/redis"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		stdlog.Fatal(err)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		return err
	}

	logger := newLogger(cfg.Environment)
	slog.SetDefault(logger)

	db, err := storage.NewDatabase(logger, cfg.Postgresql)
	if err != nil {
		return err
	}

	redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.GetAddr()})
	tokenRepository := token.NewRepository(redisClient)
	tokenService := token.NewService(tokenRepository, cfg.PrivateKey, cfg.AccessTokenTTL, cfg.RefreshTokenSecretKey, cfg.RefreshTokenTTL)

	dialer := mail.NewDialer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password)
	userRepository := user.NewRepository(db)
	userService := user.NewService(cfg.UIUrl, cfg.PasswordTokenTTL, userRepository, dialer)
	userHandler := user.NewHandler(userService, tokenService)

	authenticationMiddleware := middleware.NewAuthentication(&cfg.PrivateKey.PublicKey, userService)
	authorizationMiddleware := middleware.NewAuthorization(logger, userService)

	eventRepository := event.NewRepository(db)
	eventService := event.NewService(eventRepository)
	eventHandler := event.NewHandler(eventService)

	broker := feed.NewBroker()
	feedHandler := feed.NewHandler(logger, broker)

	calendarService := calendar.NewService(logger)
	rsvpRepository := rsvp.NewRepository(db)
	rsvpService := rsvp.NewService(logger, rsvpRepository, eventService, calendarService, broker)
	rsvpHandler := rsvp.NewHandler(rsvpService)

	exportRepository := export.NewRepository(db)
	exportService := export.NewService(exportRepository, eventService)
	exportHandler := export.NewHandler(exportService)

	r, err := server.GetEngine(
		logger,
		cfg.BasePath,
		authenticationMiddleware,
		authorizationMiddleware,
		userHandler,
		eventHandler,
		rsvpHandler,
		exportHandler,
		feedHandler,
	)
	if err != nil {
		return err
	}
	return r.Run()
}

// newLogger renders pretty JSON locally and plain JSON everywhere else. Both are wrapped in the
// context handler so correlation IDs and users travel from the request context into every record.
func newLogger(environment string) *slog.Logger {
	var handler slog.Handler
	if environment == "development" {
		handler = log.NewPrettyJSONHandler(os.Stdout, &log.PrettyJSONHandlerOptions{
			HandlerOptions: slog.HandlerOptions{Level: slog.LevelDebug},
			PrettyPrint:    true,
		})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, nil)
	}
	return slog.New(log.New(handler))
}
