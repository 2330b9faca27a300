package rsvp

import (
	"github.com/eventease/manager/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, authenticationMiddleware middleware.AuthenticationMiddleware, handler Handler) {
	optionalTokenRouter := r.Group("")
	optionalTokenRouter.Use(authenticationMiddleware.OptionalTokenAuthentication)
	optionalTokenRouter.POST("/events/:id/rsvp", handler.Submit)

	tokenAuthenticationRouter := r.Group("")
	tokenAuthenticationRouter.Use(authenticationMiddleware.TokenAuthentication)
	tokenAuthenticationRouter.GET("/events/:id/attendees", handler.FindByEvent)
}
