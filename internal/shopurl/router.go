// Package shopurl assembles storefront URLs for a shop configuration.
package shopurl

import (
	"fmt"
	"strings"

	"recsync/internal/domain"
)

// Router builds canonical storefront URLs from a shop's host and base path.
type Router struct{}

func NewRouter() *Router {
	return &Router{}
}

// DetailURL returns the canonical product detail page URL for an article.
// secure forces the https scheme.
func (r *Router) DetailURL(article domain.Article, shop domain.Shop, secure bool) (string, error) {
	if shop.Host == "" {
		return "", fmt.Errorf("shopurl: shop %d has no host", shop.ID)
	}
	scheme := "http"
	if secure {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s%s/detail/index/sArticle/%d", scheme, shop.Host, basePath(shop), article.ID), nil
}

// OAuthCallbackURL returns the redirect target of the account connect flow.
// The URL must be publicly reachable, so it is always https.
func (r *Router) OAuthCallbackURL(shop domain.Shop) (string, error) {
	if shop.Host == "" {
		return "", fmt.Errorf("shopurl: shop %d has no host", shop.ID)
	}
	return fmt.Sprintf("https://%s%s/recsync/oauth", shop.Host, basePath(shop)), nil
}

func basePath(shop domain.Shop) string {
	p := strings.TrimSuffix(shop.BasePath, "/")
	if p == "" || strings.HasPrefix(p, "/") {
		return p
	}
	return "/" + p
}
