// Package oauth holds the metadata for the account-connect OAuth2 flow
// against the recommendation service.
package oauth

import (
	"encoding/json"
	"strings"

	"golang.org/x/oauth2"

	"recsync/internal/domain"
)

// PlatformName identifies this storefront integration to the recommendation
// service. It doubles as the platform-wide OAuth2 client id and secret.
const PlatformName = "storefront"

// scopes are the API token names requested during connect. All of them: the
// integration needs the full token set to operate an account.
var scopes = []string{"sso", "products"}

// Router assembles the publicly reachable callback URL for a shop.
type Router interface {
	OAuthCallbackURL(shop domain.Shop) (string, error)
}

// Meta is the per-shop connect metadata sent to the OAuth2 server.
type Meta struct {
	clientID     string
	clientSecret string
	redirectURL  string
	languageCode string
}

func NewMeta() *Meta {
	return &Meta{
		clientID:     PlatformName,
		clientSecret: PlatformName,
		languageCode: "en",
	}
}

// LoadData populates the metadata from a shop. locale overrides the shop's
// own locale when non-empty; the UI language is its first two characters,
// lower-cased.
func (m *Meta) LoadData(shop domain.Shop, locale string, router Router) error {
	if locale == "" {
		locale = shop.Locale
	}

	redirectURL, err := router.OAuthCallbackURL(shop)
	if err != nil {
		return err
	}
	m.redirectURL = redirectURL
	m.languageCode = LanguageISOCode(locale)
	return nil
}

func (m *Meta) ClientID() string        { return m.clientID }
func (m *Meta) ClientSecret() string    { return m.clientSecret }
func (m *Meta) RedirectURL() string     { return m.redirectURL }
func (m *Meta) LanguageISOCode() string { return m.languageCode }

// Scopes returns the requested scope list.
func (m *Meta) Scopes() []string {
	out := make([]string, len(scopes))
	copy(out, scopes)
	return out
}

// Config builds the oauth2 client configuration for the authorization-code
// flow against the given endpoint.
func (m *Meta) Config(authURL, tokenURL string) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     m.clientID,
		ClientSecret: m.clientSecret,
		RedirectURL:  m.redirectURL,
		Scopes:       m.Scopes(),
		Endpoint: oauth2.Endpoint{
			AuthURL:  authURL,
			TokenURL: tokenURL,
		},
	}
}

func (m *Meta) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ClientID        string   `json:"clientId"`
		ClientSecret    string   `json:"clientSecret"`
		RedirectURL     string   `json:"redirectUrl"`
		LanguageISOCode string   `json:"languageIsoCode"`
		Scopes          []string `json:"scopes"`
	}{
		ClientID:        m.clientID,
		ClientSecret:    m.clientSecret,
		RedirectURL:     m.redirectURL,
		LanguageISOCode: m.languageCode,
		Scopes:          m.Scopes(),
	})
}

// LanguageISOCode derives the 2-letter ISO 639-1 code from a full locale
// string such as "de_DE". An empty locale falls back to "en".
func LanguageISOCode(locale string) string {
	if locale == "" {
		return "en"
	}
	locale = strings.ToLower(locale)
	if len(locale) > 2 {
		return locale[:2]
	}
	return locale
}
