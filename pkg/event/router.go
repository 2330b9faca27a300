package event

import (
	"github.com/eventease/manager/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, authenticationMiddleware middleware.AuthenticationMiddleware, handler Handler) {
	r.GET("/public/events", handler.FindPublished)

	optionalTokenRouter := r.Group("")
	optionalTokenRouter.Use(authenticationMiddleware.OptionalTokenAuthentication)
	optionalTokenRouter.GET("/events/:id", handler.FindById)

	tokenAuthenticationRouter := r.Group("")
	tokenAuthenticationRouter.Use(authenticationMiddleware.TokenAuthentication)
	tokenAuthenticationRouter.GET("/events", handler.FindAll)
	tokenAuthenticationRouter.POST("/events", handler.Create)
	tokenAuthenticationRouter.PUT("/events/:id", handler.Update)
	tokenAuthenticationRouter.DELETE("/events/:id", handler.Delete)
	tokenAuthenticationRouter.PUT("/events/:id/publish", handler.Publish)
	tokenAuthenticationRouter.GET("/stats", handler.Stats)
}
