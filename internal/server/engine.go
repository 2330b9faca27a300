package server

import (
	"log/slog"

	"github.com/eventease/manager/internal/handler"
	"github.com/eventease/manager/internal/middleware"
	"github.com/eventease/manager/pkg/event"
	"github.com/eventease/manager/pkg/export"
	"github.com/eventease/manager/pkg/feed"
	"github.com/eventease/manager/pkg/health"
	"github.com/eventease/manager/pkg/rsvp"
	"github.com/eventease/manager/pkg/user"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	redocMiddleware "github.com/go-openapi/runtime/middleware"
	sloggin "github.com/samber/slog-gin"
)

func GetEngine(
	logger *slog.Logger,
	basePath string,
	authenticationMiddleware middleware.AuthenticationMiddleware,
	authorizationMiddleware middleware.AuthorizationMiddleware,
	userHandler user.Handler,
	eventHandler event.Handler,
	rsvpHandler rsvp.Handler,
	exportHandler export.Handler,
	feedHandler feed.Handler,
) (*gin.Engine, error) {
	if err := handler.RegisterValidation(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(sloggin.NewWithConfig(logger, sloggin.Config{WithRequestID: true}))
	r.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("authorization")
	r.Use(cors.New(corsConfig))

	r.Use(middleware.CorrelationID())
	r.Use(middleware.ErrorHandler())

	router := r.Group(basePath)

	redoc(router, basePath)

	router.GET("/health", health.Health)

	user.Routes(router, authenticationMiddleware, authorizationMiddleware, userHandler)
	event.Routes(router, authenticationMiddleware, eventHandler)
	rsvp.Routes(router, authenticationMiddleware, rsvpHandler)
	export.Routes(router, authenticationMiddleware, exportHandler)
	feed.Routes(router, authenticationMiddleware, feedHandler)

	return r, nil
}

func redoc(router *gin.RouterGroup, basePath string) {
	router.StaticFile("/swagger.yaml", "./swagger/swagger.yaml")

	redocOpts := redocMiddleware.RedocOpts{
		BasePath: basePath,
		SpecURL:  "./swagger.yaml",
	}
	router.GET("/docs", func(c *gin.Context) {
		redocHandler := redocMiddleware.Redoc(redocOpts, nil)
		redocHandler.ServeHTTP(c.Writer, c.Request)
	})
}
