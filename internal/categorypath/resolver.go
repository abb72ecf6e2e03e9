// Package categorypath renders categories as full root-to-leaf path strings.
package categorypath

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"recsync/internal/domain"
)

// Separator joins the category names of a path.
const Separator = " / "

// Getter looks up a single category. Satisfied by the category repository.
type Getter interface {
	GetByID(ctx context.Context, id int64) (*domain.Category, error)
}

// Resolver builds path strings by walking the id chain stored on a category.
type Resolver struct {
	categories Getter
}

func NewResolver(categories Getter) *Resolver {
	return &Resolver{categories: categories}
}

// Path returns the names along the category's stored id chain joined by
// Separator, e.g. "Clothes / Winter / Coats". A dangling id in the chain is
// an error.
func (r *Resolver) Path(ctx context.Context, category domain.Category) (string, error) {
	ids, err := parsePath(category.Path)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return category.Name, nil
	}

	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == category.ID {
			names = append(names, category.Name)
			continue
		}
		node, err := r.categories.GetByID(ctx, id)
		if err != nil {
			return "", fmt.Errorf("category %d in path %q: %w", id, category.Path, err)
		}
		names = append(names, node.Name)
	}
	return strings.Join(names, Separator), nil
}

// parsePath splits a pipe-delimited id chain like "|3|7|12|".
func parsePath(path string) ([]int64, error) {
	var ids []int64
	for _, segment := range strings.Split(path, "|") {
		if segment == "" {
			continue
		}
		id, err := strconv.ParseInt(segment, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("categorypath: bad path segment %q in %q", segment, path)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
