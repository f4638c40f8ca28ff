// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"ratehub/internal/delivery/http/middleware"
	"ratehub/internal/delivery/http/router/handler"
	"ratehub/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	StoreHandler   *handler.StoreHandler
	RatingHandler  *handler.RatingHandler
	AdminHandler   *handler.AdminHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	storeHandler   *handler.StoreHandler
	ratingHandler  *handler.RatingHandler
	adminHandler   *handler.AdminHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		storeHandler:   params.StoreHandler,
		ratingHandler:  params.RatingHandler,
		adminHandler:   params.AdminHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.Refresh)
		authGroup.POST("/logout", r.authHandler.Logout, r.authMiddleware.Authenticate)
		authGroup.GET("/me", r.authHandler.Me, r.authMiddleware.Authenticate)
		authGroup.POST("/update-password", r.authHandler.UpdatePassword, r.authMiddleware.Authenticate)
	}

	storeGroup := e.Group("/stores")
	{
		// Browsing works anonymously; a bearer token enriches each store
		// with the caller's own score.
		storeGroup.GET("", r.storeHandler.List, r.authMiddleware.OptionalAuthenticate)
		storeGroup.GET("/owner/me", r.storeHandler.MyStores, r.authMiddleware.Authenticate)
		storeGroup.GET("/:id", r.storeHandler.Get, r.authMiddleware.OptionalAuthenticate)
		storeGroup.POST("", r.storeHandler.Create, r.authMiddleware.Authenticate)
		storeGroup.PUT("/:id", r.storeHandler.Update, r.authMiddleware.Authenticate)
		storeGroup.DELETE("/:id", r.storeHandler.Delete, r.authMiddleware.Authenticate)
	}

	ratingGroup := e.Group("/ratings")
	{
		ratingGroup.POST("", r.ratingHandler.Submit, r.authMiddleware.Authenticate)
		ratingGroup.GET("/store/:id", r.ratingHandler.ListByStore)
		ratingGroup.DELETE("/:id", r.ratingHandler.Delete, r.authMiddleware.Authenticate)
	}

	// User management is admin territory; the usecases check the policy
	// again, the route guard just fails fast.
	adminGroup := e.Group("/users")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("", r.adminHandler.ListUsers)
		adminGroup.POST("", r.adminHandler.CreateUser)
		adminGroup.GET("/stats", r.adminHandler.Stats)
		adminGroup.DELETE("/:id", r.adminHandler.DeleteUser)
	}
}
