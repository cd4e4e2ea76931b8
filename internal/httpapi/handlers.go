package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"salesops-platform/internal/audit"
	"salesops-platform/internal/auth"
	"salesops-platform/internal/callrecords"
	"salesops-platform/internal/crm"
	"salesops-platform/internal/dialer"
	"salesops-platform/internal/geocode"
	"salesops-platform/internal/rbac"
	"salesops-platform/internal/reporting"
	"salesops-platform/internal/telephony"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.

type Handlers struct {
	Auth     *auth.Manager
	Dialer   *dialer.Service
	Calls    *telephony.CallStarter
	Outcomes *callrecords.OutcomeRecorder
	Records  callrecords.Store
	Reports  *reporting.Service
	Geo      *geocode.Backfiller
	Audit    *audit.Service
}

// --- Auth ---

type loginRequest struct {
	UserID    string `json:"user_id"`
	Territory string `json:"territory"`
	Role      string `json:"role"`
}

// Login issues a JWT token pair.
//
// NOTE: This is a skeleton-only endpoint. Real systems must validate credentials.
func (h Handlers) Login(c *gin.Context) {
	if h.Auth == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "auth not configured"})
		return
	}
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.UserID == "" || req.Territory == "" || req.Role == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "user_id, territory, role required"})
		return
	}
	pair, err := h.Auth.IssuePair(time.Now(), req.UserID, req.Territory, req.Role)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token issuance failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": pair.AccessToken, "refresh_token": pair.RefreshToken})
}

// --- Dialer ---

// CallList returns the scored, clustered, route-ordered calling list for a
// field rep. Reps get their own list; managers may pass ?field_rep_id=.
func (h Handlers) CallList(c *gin.Context) {
	if h.Dialer == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "dialer not configured"})
		return
	}
	userID, err := auth.UserID(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user_id required"})
		return
	}

	fieldRepID := userID
	if override := c.Query("field_rep_id"); override != "" && override != userID {
		role, _ := auth.Role(c.Request.Context())
		if role != rbac.RoleSalesManager && role != rbac.RoleAdmin && !rbac.IsSuperAdmin(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		fieldRepID = override
	}

	list, err := h.Dialer.CallList(c.Request.Context(), fieldRepID)
	if err != nil {
		switch {
		case errors.Is(err, crm.ErrNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "field rep not found"})
		case errors.Is(err, crm.ErrInvalidArgument):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "field_rep_id required"})
		default:
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "call list generation failed"})
		}
		return
	}
	c.JSON(http.StatusOK, list)
}

type startCallRequest struct {
	ProspectID string `json:"prospect_id"`
}

// StartCall originates an outbound call to a prospect on behalf of the
// authenticated rep and seeds its pending call record.
func (h Handlers) StartCall(c *gin.Context) {
	if h.Calls == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "telephony not configured"})
		return
	}
	userID, err := auth.UserID(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user_id required"})
		return
	}

	var req startCallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.ProspectID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "prospect_id required"})
		return
	}

	res, err := h.Calls.StartCall(c.Request.Context(), req.ProspectID, userID)
	if err != nil {
		switch {
		case errors.Is(err, crm.ErrNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "prospect not found"})
		case errors.Is(err, telephony.ErrProspectNotDialable):
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "prospect has no phone number"})
		case errors.Is(err, telephony.ErrTooManyActiveCalls):
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "active call limit reached"})
		case errors.Is(err, callrecords.ErrInvalidArgument):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		default:
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "call origination failed"})
		}
		return
	}

	if h.Audit != nil {
		territory, terrErr := auth.Territory(c.Request.Context())
		role, _ := auth.Role(c.Request.Context())
		if terrErr == nil {
			_ = h.Audit.LogCallStarted(c.Request.Context(), territory, userID, role, req.ProspectID, res.CallKey)
		}
	}

	c.JSON(http.StatusCreated, res)
}

type recordOutcomeRequest struct {
	ProspectID string `json:"prospect_id"`
	Outcome    string `json:"outcome"`
	Notes      string `json:"notes,omitempty"`
}

// RecordOutcome attaches a human-entered outcome to the rep's most recent
// call with the prospect. 409 when the pair has no dialer call history.
func (h Handlers) RecordOutcome(c *gin.Context) {
	if h.Outcomes == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "outcomes not configured"})
		return
	}
	userID, err := auth.UserID(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user_id required"})
		return
	}

	var req recordOutcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}

	err = h.Outcomes.RecordOutcome(c.Request.Context(), req.ProspectID, userID, req.Outcome, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, callrecords.ErrNoCallHistory):
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "no call history for prospect"})
		case errors.Is(err, callrecords.ErrInvalidArgument):
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "prospect_id and outcome required"})
		default:
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "outcome recording failed"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Call records ---

// CallHistory lists all call records for a prospect, newest first.
func (h Handlers) CallHistory(c *gin.Context) {
	if h.Records == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "call records not configured"})
		return
	}
	prospectID := c.Query("prospect_id")
	if prospectID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "prospect_id required"})
		return
	}
	recs, err := h.Records.ListByProspect(c.Request.Context(), prospectID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "call history lookup failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"prospect_id": prospectID, "count": len(recs), "records": recs})
}

// --- Reporting ---

// ActivityReport aggregates a caller's records over a window.
// Query: caller_id (managers only when not self), from, to (RFC 3339).
func (h Handlers) ActivityReport(c *gin.Context) {
	if h.Reports == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "reporting not configured"})
		return
	}
	userID, err := auth.UserID(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user_id required"})
		return
	}

	callerID := userID
	if override := c.Query("caller_id"); override != "" && override != userID {
		role, _ := auth.Role(c.Request.Context())
		if role != rbac.RoleSalesManager && role != rbac.RoleAdmin && !rbac.IsSuperAdmin(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
			return
		}
		callerID = override
	}

	from, err := time.Parse(time.RFC3339, c.Query("from"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "from must be RFC 3339"})
		return
	}
	to, err := time.Parse(time.RFC3339, c.Query("to"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "to must be RFC 3339"})
		return
	}

	summary, err := h.Reports.ActivitySummary(c.Request.Context(), reporting.ActivitySummaryRequest{
		CallerID: callerID,
		Range:    reporting.TimeRange{From: from, To: to},
	})
	if err != nil {
		if errors.Is(err, reporting.ErrInvalidRequest) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid report window"})
			return
		}
		c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "report generation failed"})
		return
	}
	c.JSON(http.StatusOK, summary)
}

// --- Geocoding (admin) ---

// GeocodeProspect backfills coordinates for a prospect from its address.
// ?force=true re-geocodes prospects that already have coordinates.
func (h Handlers) GeocodeProspect(c *gin.Context) {
	if h.Geo == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "geocoding not configured"})
		return
	}
	prospectID := c.Param("prospect_id")
	if prospectID == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "prospect_id required"})
		return
	}
	force, _ := strconv.ParseBool(c.Query("force"))

	p, err := h.Geo.Backfill(c.Request.Context(), prospectID, force)
	if err != nil {
		switch {
		case errors.Is(err, crm.ErrNotFound):
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "prospect not found"})
		case errors.Is(err, geocode.ErrNoResult):
			c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"error": "address did not geocode"})
		default:
			c.AbortWithStatusJSON(http.StatusBadGateway, gin.H{"error": "geocoding failed"})
		}
		return
	}
	c.JSON(http.StatusOK, p)
}

// Convenience middleware bundles.

func RequireTerritoryAndAnyRole(roles ...string) []gin.HandlerFunc {
	return []gin.HandlerFunc{rbac.RequireTerritory(), rbac.RequireAnyRole(roles...)}
}
