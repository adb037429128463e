package handlers

import (
	"net/http"

	"github.com/casdoor/casdoor-go-sdk/casdoorsdk"
	"github.com/gin-gonic/gin"

	"github.com/dashhub/productivity-service/internal/config"
	"github.com/dashhub/productivity-service/internal/metrics"
	"github.com/dashhub/productivity-service/internal/models"
	"github.com/dashhub/productivity-service/internal/services"
	"github.com/dashhub/productivity-service/internal/session"
	"github.com/dashhub/productivity-service/internal/utils"
)

// AuthHandler drives the Casdoor login flow and the session lifecycle
type AuthHandler struct {
	BaseHandler
	client      *casdoorsdk.Client
	identity    services.IdentityService
	sessions    session.Store
	casdoorCfg  config.CasdoorConfig
	sessionCfg  config.SessionConfig
	frontendURL string
}

// NewAuthHandler creates the auth handler with a Casdoor client
func NewAuthHandler(
	identity services.IdentityService,
	sessions session.Store,
	casdoorCfg config.CasdoorConfig,
	sessionCfg config.SessionConfig,
	frontendURL string,
	logger utils.Logger,
) *AuthHandler {
	client := casdoorsdk.NewClient(
		casdoorCfg.Endpoint,
		casdoorCfg.ClientID,
		casdoorCfg.ClientSecret,
		casdoorCfg.Cert,
		casdoorCfg.Application,
		casdoorCfg.Organization,
	)

	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		client:      client,
		identity:    identity,
		sessions:    sessions,
		casdoorCfg:  casdoorCfg,
		sessionCfg:  sessionCfg,
		frontendURL: frontendURL,
	}
}

// Login redirects the caller to the identity provider's signin page
func (h *AuthHandler) Login(c *gin.Context) {
	c.Redirect(http.StatusFound, h.client.GetSigninUrl(h.casdoorCfg.RedirectURI))
}

// Callback completes the authorization step: exchanges the code, resolves
// the identity to a local user and binds a session. Any failure denies the
// login and sends the caller back to the frontend unauthenticated.
func (h *AuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")
	if code == "" {
		h.LogRequest(c, "Login callback without code, denying")
		c.Redirect(http.StatusFound, h.frontendURL)
		return
	}

	token, err := h.client.GetOAuthToken(code, state)
	if err != nil {
		h.LogError(c, err, "Failed to exchange authorization code")
		c.Redirect(http.StatusFound, h.frontendURL)
		return
	}

	claims, err := h.client.ParseJwtToken(token.AccessToken)
	if err != nil {
		h.LogError(c, err, "Failed to parse identity token")
		c.Redirect(http.StatusFound, h.frontendURL)
		return
	}

	identity := services.ProviderIdentity{
		SubjectID:   claims.User.Id,
		DisplayName: claims.User.DisplayName,
		Emails:      []string{claims.User.Email},
	}

	user, err := h.identity.Resolve(c.Request.Context(), identity)
	if err != nil {
		h.LogError(c, err, "Identity resolution failed, denying login")
		c.Redirect(http.StatusFound, h.frontendURL)
		return
	}

	sessionID, err := h.sessions.Bind(c.Request.Context(), user.ID)
	if err != nil {
		h.LogError(c, err, "Failed to bind session")
		c.Redirect(http.StatusFound, h.frontendURL)
		return
	}

	metrics.LoginsTotal.Inc()
	h.LogRequest(c, "Login succeeded", "user_id", user.ID)

	h.setSessionCookie(c, sessionID, int(h.sessionCfg.TTL.Seconds()))
	c.Redirect(http.StatusFound, h.frontendURL+"/dashboard")
}

// CurrentUserInfo returns the authenticated user, or null for anonymous callers
func (h *AuthHandler) CurrentUserInfo(c *gin.Context) {
	c.JSON(http.StatusOK, models.CurrentUserResponse{User: CurrentUser(c)})
}

// Logout unbinds the session; subsequent requests are anonymous
func (h *AuthHandler) Logout(c *gin.Context) {
	if sessionID, err := c.Cookie(h.sessionCfg.CookieName); err == nil && sessionID != "" {
		if err := h.sessions.Unbind(c.Request.Context(), sessionID); err != nil {
			h.LogError(c, err, "Failed to unbind session")
		}
	}

	h.setSessionCookie(c, "", -1)
	c.Redirect(http.StatusFound, h.frontendURL)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.sessionCfg.CookieName, value, maxAge, "/", "", h.sessionCfg.Secure, true)
}

// SessionMiddleware resolves the session cookie to the current user with a
// fresh database read and exposes it to handlers. It never rejects by
// itself; protected handlers perform their own explicit RequireUser check.
func SessionMiddleware(sessions session.Store, identity services.IdentityService, cookieName string, logger utils.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cookieName)
		if err != nil || sessionID == "" {
			c.Next()
			return
		}

		userID, err := sessions.Resolve(c.Request.Context(), sessionID)
		if err != nil {
			// Expired or unknown session: continue anonymous
			c.Next()
			return
		}

		user, err := identity.CurrentUser(c.Request.Context(), userID)
		if err != nil {
			logger.Warn("session resolved to missing user", "user_id", userID, "error", err)
			c.Next()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}
