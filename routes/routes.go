// SPDX-License-Identifier: GPL-3.0-only

package routes

import (
	"propman-server/commons"
	"propman-server/handlers"
	"propman-server/middlewares"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo) {
	commons.Logger.Debug("Registering v1 routes")
	api_v1 := e.Group("/v1")

	sessionOnly := middlewares.VerifyAuthMiddleware(middlewares.AuthMethodSession)
	sessionOrAPIKey := middlewares.VerifyAuthMiddleware(middlewares.AuthMethodSession, middlewares.AuthMethodAPIKey)

	api_v1.POST("/auth/signup", handlers.SignupHandler)
	api_v1.POST("/auth/login", handlers.LoginHandler)
	api_v1.POST("/auth/logout", handlers.LogoutHandler, sessionOnly)

	// API key management is deliberately session-only: a key cannot be
	// used to mint, modify or revoke keys.
	api_v1.POST("/auth/api-keys", handlers.CreateAPIKeyHandler, sessionOnly)
	api_v1.GET("/auth/api-keys", handlers.GetAllAPIKeysHandler, sessionOnly)
	api_v1.GET("/auth/api-keys/statistics", handlers.GetAPIKeyStatisticsHandler, sessionOnly)
	api_v1.GET("/auth/api-keys/verify", handlers.VerifyAPIKeyHandler, sessionOnly)
	api_v1.GET("/auth/api-keys/:key_id", handlers.GetAPIKeyHandler, sessionOnly)
	api_v1.PUT("/auth/api-keys/:key_id", handlers.UpdateAPIKeyHandler, sessionOnly)
	api_v1.DELETE("/auth/api-keys/:key_id", handlers.DeleteAPIKeyHandler, sessionOnly)
	api_v1.POST("/auth/api-keys/:key_id/rotate", handlers.RotateAPIKeyHandler, sessionOnly)
	api_v1.POST("/auth/api-keys/:key_id/activate", handlers.SetAPIKeyActiveHandler(true), sessionOnly)
	api_v1.POST("/auth/api-keys/:key_id/deactivate", handlers.SetAPIKeyActiveHandler(false), sessionOnly)
	api_v1.GET("/auth/api-keys/:key_id/usage", handlers.GetAPIKeyUsageLogsHandler, sessionOnly)

	api_v1.GET("/users/", handlers.GetUserHandler, sessionOnly)
	api_v1.PUT("/users/password", handlers.ChangePasswordHandler, sessionOnly)

	api_v1.POST("/properties/", handlers.CreatePropertyHandler, sessionOrAPIKey)
	api_v1.GET("/properties/", handlers.GetAllPropertiesHandler, sessionOrAPIKey)
	api_v1.GET("/properties/:property_id", handlers.GetPropertyHandler, sessionOrAPIKey)
	api_v1.PUT("/properties/:property_id", handlers.UpdatePropertyHandler, sessionOrAPIKey)
	api_v1.DELETE("/properties/:property_id", handlers.DeletePropertyHandler, sessionOrAPIKey)

	api_v1.POST("/tenants/", handlers.CreateTenantHandler, sessionOrAPIKey)
	api_v1.GET("/tenants/", handlers.GetAllTenantsHandler, sessionOrAPIKey)
	api_v1.GET("/tenants/:tenant_id", handlers.GetTenantHandler, sessionOrAPIKey)
	api_v1.PUT("/tenants/:tenant_id", handlers.UpdateTenantHandler, sessionOrAPIKey)
	api_v1.DELETE("/tenants/:tenant_id", handlers.DeleteTenantHandler, sessionOrAPIKey)

	api_v1.POST("/leases/", handlers.CreateLeaseHandler, sessionOrAPIKey)
	api_v1.GET("/leases/", handlers.GetAllLeasesHandler, sessionOrAPIKey)
	api_v1.GET("/leases/:lease_id", handlers.GetLeaseHandler, sessionOrAPIKey)
	api_v1.PUT("/leases/:lease_id", handlers.UpdateLeaseHandler, sessionOrAPIKey)
	api_v1.DELETE("/leases/:lease_id", handlers.DeleteLeaseHandler, sessionOrAPIKey)

	api_v1.POST("/financials/revenues", handlers.CreateRevenueHandler, sessionOrAPIKey)
	api_v1.GET("/financials/revenues", handlers.GetAllRevenuesHandler, sessionOrAPIKey)
	api_v1.GET("/financials/revenues/:revenue_id", handlers.GetRevenueHandler, sessionOrAPIKey)
	api_v1.PUT("/financials/revenues/:revenue_id", handlers.UpdateRevenueHandler, sessionOrAPIKey)
	api_v1.DELETE("/financials/revenues/:revenue_id", handlers.DeleteRevenueHandler, sessionOrAPIKey)
	api_v1.POST("/financials/expenses", handlers.CreateExpenseHandler, sessionOrAPIKey)
	api_v1.GET("/financials/expenses", handlers.GetAllExpensesHandler, sessionOrAPIKey)
	api_v1.GET("/financials/expenses/:expense_id", handlers.GetExpenseHandler, sessionOrAPIKey)
	api_v1.PUT("/financials/expenses/:expense_id", handlers.UpdateExpenseHandler, sessionOrAPIKey)
	api_v1.DELETE("/financials/expenses/:expense_id", handlers.DeleteExpenseHandler, sessionOrAPIKey)
	api_v1.POST("/financials/payments", handlers.CreatePaymentHandler, sessionOrAPIKey)
	api_v1.GET("/financials/payments", handlers.GetAllPaymentsHandler, sessionOrAPIKey)
	api_v1.GET("/financials/payments/:payment_id", handlers.GetPaymentHandler, sessionOrAPIKey)
	api_v1.PUT("/financials/payments/:payment_id", handlers.UpdatePaymentHandler, sessionOrAPIKey)
	api_v1.DELETE("/financials/payments/:payment_id", handlers.DeletePaymentHandler, sessionOrAPIKey)
	api_v1.POST("/financials/payments/:payment_id/mark-paid", handlers.MarkPaymentPaidHandler, sessionOrAPIKey)

	api_v1.GET("/dashboard/summary", handlers.GetDashboardSummaryHandler, sessionOrAPIKey)

	api_v1.GET("/notifications/", handlers.GetAllNotificationsHandler, sessionOnly)
	api_v1.GET("/notifications/unread-count", handlers.GetUnreadCountHandler, sessionOnly)
	api_v1.POST("/notifications/:notification_id/read", handlers.MarkNotificationReadHandler, sessionOnly)
	api_v1.POST("/notifications/:notification_id/unread", handlers.MarkNotificationUnreadHandler, sessionOnly)

	commons.Logger.Info("v1 routes registered successfully")
}
