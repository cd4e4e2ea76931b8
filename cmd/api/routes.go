package main

import (
	"database/sql"
	"time"

	"salesops-platform/internal/httpapi"
	"salesops-platform/internal/rbac"
	"salesops-platform/internal/telephony"
	"salesops-platform/pkg/utils"

	"github.com/gin-gonic/gin"
)

// registerRoutes wires HTTP routes to handlers.
// Keep this file free of business logic. Handlers should delegate to internal modules.
func registerRoutes(r *gin.Engine, authMW gin.HandlerFunc, h httpapi.Handlers, webhooks telephony.TwilioWebhookHandler, db *sql.DB) {
	// public
	r.GET("/healthz", func(c *gin.Context) {
		if err := utils.HealthCheck(c.Request.Context(), db, 2*time.Second); err != nil {
			c.JSON(503, gin.H{"status": "degraded"})
			return
		}
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Provider webhooks (public).
	// NOTE: These endpoints should be protected by Twilio signature validation in production.
	r.POST("/webhooks/twilio/status", webhooks.HandleStatusCallback)
	r.POST("/webhooks/twilio/recording", webhooks.HandleRecordingCallback)

	// Token issuance stays outside the auth middleware.
	r.POST("/v1/auth/login", h.Login)

	// protected API group
	v1 := r.Group("/v1")
	v1.Use(authMW)
	{
		// DIALER routes
		dialerGroup := v1.Group("/dialer")
		dialerGroup.Use(httpapi.RequireTerritoryAndAnyRole(rbac.RoleFieldRep, rbac.RoleSalesManager, rbac.RoleAdmin)...)
		{
			dialerGroup.GET("/call-list", h.CallList)
			dialerGroup.POST("/calls", h.StartCall)
			dialerGroup.POST("/outcomes", h.RecordOutcome)
		}

		// CALL RECORD routes
		calls := v1.Group("/calls")
		calls.Use(httpapi.RequireTerritoryAndAnyRole(rbac.RoleFieldRep, rbac.RoleSalesManager, rbac.RoleAdmin)...)
		{
			calls.GET("/history", h.CallHistory)
		}

		// REPORTING routes
		reports := v1.Group("/reports")
		reports.Use(httpapi.RequireTerritoryAndAnyRole(rbac.RoleFieldRep, rbac.RoleSalesManager, rbac.RoleAdmin)...)
		{
			reports.GET("/activity", h.ActivityReport)
		}

		// ADMIN routes
		// Hidden ops_support is intentionally NOT included unless explicitly desired.
		admin := v1.Group("/admin")
		admin.Use(httpapi.RequireTerritoryAndAnyRole(rbac.RoleAdmin, rbac.RoleSuperAdmin)...)
		{
			admin.GET("/ping", func(c *gin.Context) {
				c.JSON(200, gin.H{"status": "ok"})
			})
			admin.POST("/prospects/:prospect_id/geocode", h.GeocodeProspect)
		}
	}
}
