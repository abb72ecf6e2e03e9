package shopurl

import (
	"strings"
	"testing"

	"recsync/internal/domain"
)

func TestRouter_DetailURL(t *testing.T) {
	router := NewRouter()
	shop := domain.Shop{ID: 1, Host: "shop.example.com", BasePath: "de"}

	got, err := router.DetailURL(domain.Article{ID: 5}, shop, true)
	if err != nil {
		t.Fatalf("DetailURL: %v", err)
	}
	if got != "https://shop.example.com/de/detail/index/sArticle/5" {
		t.Fatalf("unexpected url %q", got)
	}
}

func TestRouter_DetailURLInsecure(t *testing.T) {
	router := NewRouter()
	shop := domain.Shop{ID: 1, Host: "shop.example.com"}

	got, err := router.DetailURL(domain.Article{ID: 5}, shop, false)
	if err != nil {
		t.Fatalf("DetailURL: %v", err)
	}
	if !strings.HasPrefix(got, "http://") {
		t.Fatalf("expected http scheme, got %q", got)
	}
}

func TestRouter_DetailURLWithoutHost(t *testing.T) {
	router := NewRouter()

	if _, err := router.DetailURL(domain.Article{ID: 5}, domain.Shop{ID: 1}, true); err == nil {
		t.Fatalf("expected error for shop without host")
	}
}

func TestRouter_OAuthCallbackURL(t *testing.T) {
	router := NewRouter()
	shop := domain.Shop{ID: 1, Host: "shop.example.com", BasePath: "/de/"}

	got, err := router.OAuthCallbackURL(shop)
	if err != nil {
		t.Fatalf("OAuthCallbackURL: %v", err)
	}
	if got != "https://shop.example.com/de/recsync/oauth" {
		t.Fatalf("unexpected url %q", got)
	}
}
