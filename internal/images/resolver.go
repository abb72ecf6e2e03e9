// Package images resolves article cover images to absolute media URLs.
package images

import (
	"context"
	"fmt"
	"strings"

	"recsync/internal/domain"
)

// Resolver builds media URLs on the shop's host. An empty media host falls
// back to the shop host.
type Resolver struct {
	mediaHost string
}

func NewResolver(mediaHost string) *Resolver {
	return &Resolver{mediaHost: mediaHost}
}

// ImageURL returns the absolute URL of the article's cover image, or "" when
// the article has none.
func (r *Resolver) ImageURL(_ context.Context, article domain.Article, shop domain.Shop) (string, error) {
	if article.Image == "" {
		return "", nil
	}
	host := r.mediaHost
	if host == "" {
		host = shop.Host
	}
	if host == "" {
		return "", fmt.Errorf("images: shop %d has no host", shop.ID)
	}
	return fmt.Sprintf("https://%s/media/image/%s", host, strings.TrimPrefix(article.Image, "/")), nil
}
