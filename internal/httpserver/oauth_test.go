package httpserver

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"recsync/internal/domain"
)

type stubOAuthRouter struct {
	url string
	err error
}

func (s stubOAuthRouter) OAuthCallbackURL(_ domain.Shop) (string, error) {
	return s.url, s.err
}

func oauthTestRouter(repo *stubShopRepo, deps Deps) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	scoped := router.Group("/", shopMiddleware(repo, 1))
	scoped.GET("/oauth/connect", oauthConnectHandler(deps))
	scoped.GET("/oauth/callback", oauthCallbackHandler(deps))
	return router
}

func TestOAuthConnectHandler_Redirect(t *testing.T) {
	repo := &stubShopRepo{shop: &domain.Shop{ID: 1, Host: "shop.example.com", Locale: "de_DE"}}
	deps := Deps{
		URLs:          stubOAuthRouter{url: "https://shop.example.com/recsync/oauth"},
		OAuthAuthURL:  "https://recs.example.com/oauth",
		OAuthTokenURL: "https://recs.example.com/oauth/token",
	}
	router := oauthTestRouter(repo, deps)

	req := httptest.NewRequest(http.MethodGet, "/oauth/connect", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected status 302, got %d", rec.Code)
	}
	location := rec.Header().Get("Location")
	if !strings.HasPrefix(location, "https://recs.example.com/oauth?") {
		t.Fatalf("unexpected redirect target %q", location)
	}
	if !strings.Contains(location, "client_id=storefront") {
		t.Fatalf("expected client id in redirect, got %q", location)
	}
	if !strings.Contains(location, "state=") {
		t.Fatalf("expected state in redirect, got %q", location)
	}

	var stateSet bool
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == stateCookie && cookie.Value != "" {
			stateSet = true
		}
	}
	if !stateSet {
		t.Fatalf("expected state cookie to be set")
	}
}

func TestOAuthConnectHandler_RouterError(t *testing.T) {
	repo := &stubShopRepo{shop: &domain.Shop{ID: 1}}
	deps := Deps{URLs: stubOAuthRouter{err: domain.ErrNotFound}}
	router := oauthTestRouter(repo, deps)

	req := httptest.NewRequest(http.MethodGet, "/oauth/connect", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}

func TestOAuthCallbackHandler_MissingCode(t *testing.T) {
	repo := &stubShopRepo{shop: &domain.Shop{ID: 1, Host: "shop.example.com"}}
	deps := Deps{URLs: stubOAuthRouter{url: "https://shop.example.com/recsync/oauth"}}
	router := oauthTestRouter(repo, deps)

	req := httptest.NewRequest(http.MethodGet, "/oauth/callback", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestOAuthCallbackHandler_StateMismatch(t *testing.T) {
	repo := &stubShopRepo{shop: &domain.Shop{ID: 1, Host: "shop.example.com"}}
	deps := Deps{URLs: stubOAuthRouter{url: "https://shop.example.com/recsync/oauth"}}
	router := oauthTestRouter(repo, deps)

	req := httptest.NewRequest(http.MethodGet, "/oauth/callback?code=abc&state=expected", nil)
	req.AddCookie(&http.Cookie{Name: stateCookie, Value: "different"})
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}
