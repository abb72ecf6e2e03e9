package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"recsync/internal/oauth"
)

const stateCookie = "recsync_oauth_state"

// oauthConnectHandler starts the account-connect flow: it builds the connect
// metadata for the shop and redirects the merchant to the recommendation
// service's authorization page.
func oauthConnectHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop, ok := shopFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no shop in context"})
			return
		}

		meta := oauth.NewMeta()
		if err := meta.LoadData(*shop, c.Query("locale"), deps.URLs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		state := uuid.NewString()
		c.SetCookie(stateCookie, state, 600, "/", "", true, true)

		cfg := meta.Config(deps.OAuthAuthURL, deps.OAuthTokenURL)
		c.Redirect(http.StatusFound, cfg.AuthCodeURL(state))
	}
}

// oauthCallbackHandler finishes the flow by exchanging the authorization code
// for a token. Token persistence is up to the account layer of the host; the
// handler only reports whether the exchange worked.
func oauthCallbackHandler(deps Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		shop, ok := shopFromContext(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no shop in context"})
			return
		}

		code := c.Query("code")
		if code == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing authorization code"})
			return
		}
		if state, err := c.Cookie(stateCookie); err != nil || state == "" || state != c.Query("state") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "state mismatch"})
			return
		}

		meta := oauth.NewMeta()
		if err := meta.LoadData(*shop, "", deps.URLs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		cfg := meta.Config(deps.OAuthAuthURL, deps.OAuthTokenURL)
		token, err := cfg.Exchange(c.Request.Context(), code)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "token exchange failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "connected", "tokenType": token.TokenType})
	}
}
