package user

import (
	"github.com/eventease/manager/internal/middleware"
	"github.com/gin-gonic/gin"
)

func Routes(r *gin.RouterGroup, authenticationMiddleware middleware.AuthenticationMiddleware, authorizationMiddleware middleware.AuthorizationMiddleware, handler Handler) {
	r.POST("/users", handler.SignUp)
	r.POST("/refresh", handler.RefreshToken)
	r.GET("/users/validate/:token", handler.ValidateEmail)
	r.POST("/users/request-reset", handler.RequestPasswordReset)
	r.POST("/users/reset-password", handler.ResetPassword)

	basicAuthenticationRouter := r.Group("")
	basicAuthenticationRouter.Use(authenticationMiddleware.BasicAuthentication)
	basicAuthenticationRouter.POST("/tokens", handler.SignIn)

	tokenAuthenticationRouter := r.Group("")
	tokenAuthenticationRouter.Use(authenticationMiddleware.TokenAuthentication)
	tokenAuthenticationRouter.GET("/me", handler.Me)
	tokenAuthenticationRouter.DELETE("/tokens", handler.SignOut)

	administratorRouter := tokenAuthenticationRouter.Group("")
	administratorRouter.Use(authorizationMiddleware.RequireAdministrator)
	administratorRouter.GET("/users", handler.FindAll)
	administratorRouter.PUT("/users/:id/role", handler.UpdateRole)
	administratorRouter.DELETE("/users/:id", handler.Delete)
}
