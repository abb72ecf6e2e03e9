package categorypath

import (
	"context"
	"errors"
	"testing"

	"recsync/internal/domain"
)

type stubGetter struct {
	categories map[int64]*domain.Category
}

func (s *stubGetter) GetByID(_ context.Context, id int64) (*domain.Category, error) {
	c, ok := s.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func TestResolver_Path(t *testing.T) {
	getter := &stubGetter{categories: map[int64]*domain.Category{
		3: {ID: 3, Name: "Clothes"},
		7: {ID: 7, Name: "Winter"},
	}}
	resolver := NewResolver(getter)

	got, err := resolver.Path(context.Background(), domain.Category{ID: 12, Name: "Coats", Path: "|3|7|12|"})
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if got != "Clothes / Winter / Coats" {
		t.Fatalf("unexpected path %q", got)
	}
}

func TestResolver_PathWithoutChain(t *testing.T) {
	resolver := NewResolver(&stubGetter{})

	got, err := resolver.Path(context.Background(), domain.Category{ID: 12, Name: "Coats"})
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if got != "Coats" {
		t.Fatalf("unexpected path %q", got)
	}
}

func TestResolver_DanglingID(t *testing.T) {
	resolver := NewResolver(&stubGetter{})

	_, err := resolver.Path(context.Background(), domain.Category{ID: 12, Name: "Coats", Path: "|99|12|"})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestResolver_BadSegment(t *testing.T) {
	resolver := NewResolver(&stubGetter{})

	if _, err := resolver.Path(context.Background(), domain.Category{ID: 12, Path: "|a|12|"}); err == nil {
		t.Fatalf("expected error for non-numeric segment")
	}
}
