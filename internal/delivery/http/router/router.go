// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"foodflex/internal/delivery/http/middleware"
	"foodflex/internal/delivery/http/router/handler"
	"foodflex/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CheckoutHandler *handler.CheckoutHandler
	OrderHandler    *handler.OrderHandler
	CartHandler     *handler.CartHandler
	CreditHandler   *handler.CreditHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	checkoutHandler *handler.CheckoutHandler
	orderHandler    *handler.OrderHandler
	cartHandler     *handler.CartHandler
	creditHandler   *handler.CreditHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		checkoutHandler: params.CheckoutHandler,
		orderHandler:    params.OrderHandler,
		cartHandler:     params.CartHandler,
		creditHandler:   params.CreditHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Order routes: checkout for buyers, lifecycle for all roles (usecases
	// re-validate resource-level permissions).
	orderGroup := e.Group("/orders")
	orderGroup.Use(r.authMiddleware.Authenticate)
	{
		orderGroup.POST("/checkout", r.checkoutHandler.Checkout)
		orderGroup.POST("/verify-qr", r.orderHandler.VerifyQR)
		orderGroup.POST("/:id/confirm", r.orderHandler.Confirm)
		orderGroup.POST("/:id/complete", r.orderHandler.Complete)
		orderGroup.POST("/:id/cancel", r.orderHandler.Cancel)
		orderGroup.GET("", r.orderHandler.List)
		orderGroup.GET("/:id", r.orderHandler.Get)
	}

	// Cart routes, buyer staging area
	cartGroup := e.Group("/cart")
	cartGroup.Use(r.authMiddleware.Authenticate)
	{
		cartGroup.GET("", r.cartHandler.Get)
		cartGroup.POST("/items", r.cartHandler.AddItem)
		cartGroup.PATCH("/items/:id", r.cartHandler.UpdateItem)
		cartGroup.DELETE("/items/:id", r.cartHandler.RemoveItem)
		cartGroup.DELETE("", r.cartHandler.Clear)
	}

	// Credit routes, buyer self-service views
	creditGroup := e.Group("/credit")
	creditGroup.Use(r.authMiddleware.Authenticate)
	{
		creditGroup.GET("/account", r.creditHandler.GetMyAccount)
		creditGroup.GET("/transactions", r.creditHandler.ListTransactions)
		creditGroup.GET("/repayments", r.creditHandler.ListRepayments)
	}

	// Admin routes require the ADMIN role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin))
	{
		adminGroup.GET("/credit/accounts", r.creditHandler.ListAccounts)
		adminGroup.POST("/credit/accounts/:userId", r.creditHandler.ProvisionAccount)
		adminGroup.GET("/credit/accounts/:userId", r.creditHandler.GetAccount)
		adminGroup.POST("/credit/accounts/:userId/repay", r.creditHandler.ProcessRepayment)
		adminGroup.POST("/credit/accounts/:userId/limit", r.creditHandler.IncreaseLimit)
	}
}
