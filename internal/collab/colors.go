package collab

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"retroboard/internal/model"
	"retroboard/internal/store"
)

func (e *Engine) Colors(ctx context.Context) ([]model.Color, error) {
	cs, err := e.repo.Colors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list colors: %w", err)
	}
	return cs, nil
}

// ResolveColor maps a color name to its id, ignoring case and surrounding space.
func (e *Engine) ResolveColor(ctx context.Context, name string) (int64, error) {
	return resolveColor(ctx, e.repo, name)
}

func resolveColor(ctx context.Context, q store.Queries, name string) (int64, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return 0, model.Errorf(model.ErrBadRequest, "color is required")
	}
	id, err := q.ColorID(ctx, n)
	if errors.Is(err, model.ErrNotFound) {
		return 0, model.Errorf(model.ErrBadRequest, "unknown color %q", name)
	}
	return id, err
}
