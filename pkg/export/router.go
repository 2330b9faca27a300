package export

import (
	"github.com/eventease/manager/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, authenticationMiddleware middleware.AuthenticationMiddleware, handler Handler) {
	tokenAuthenticationRouter := r.Group("")
	tokenAuthenticationRouter.Use(authenticationMiddleware.TokenAuthentication)
	tokenAuthenticationRouter.GET("/events/:id/export", handler.Event)
	tokenAuthenticationRouter.GET("/attendees/export", handler.Attendees)
	tokenAuthenticationRouter.GET("/admin/events/export", handler.Events)
}
