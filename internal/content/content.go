// Package content holds the per-page states of list pages and form submissions.
package content

import (
	"college-site/internal/logger"
	"context"
)

// ListState is what a list page renders: the fetched items plus loading flags.
type ListState[T any] struct {
	Items   []T
	Loading bool
	Failed  bool
}

// Empty reports whether there is nothing to show.
func (s ListState[T]) Empty() bool {
	return len(s.Items) == 0
}

// Load runs one fetch and returns the resulting state. A failed fetch is logged
// and yields an empty list; a nil result is stored as an empty list too.
func Load[T any](ctx context.Context, log logger.Logger, what string, fetch func(context.Context) ([]T, error)) (state ListState[T]) {
	state.Loading = true
	defer func() { state.Loading = false }()

	items, err := fetch(ctx)
	if err != nil {
		log.With(map[string]interface{}{"list": what}).Error(err, "Failed to fetch list")
		state.Items = []T{}
		state.Failed = true
		return state
	}
	if items == nil {
		items = []T{}
	}
	state.Items = items
	return state
}
