package vcs

import (
	"context"
	"iter"
)

// PageSize is the number of items requested per page from list endpoints.
const PageSize = 100

// PageFunc fetches one page (1-based) of at most PageSize items.
type PageFunc[T any] func(ctx context.Context, page int) ([]T, error)

// Pages returns a sequence over the pages produced by fetch, starting at page 1.
// The sequence ends after an empty page or a page shorter than PageSize. A fetch
// error is yielded once with a nil page and also ends the sequence. Ranging over
// the sequence again starts a fresh walk from page 1.
func Pages[T any](ctx context.Context, fetch PageFunc[T]) iter.Seq2[[]T, error] {
	return func(yield func([]T, error) bool) {
		for page := 1; ; page++ {
			items, err := fetch(ctx, page)
			if err != nil {
				yield(nil, err)
				return
			}
			if len(items) == 0 {
				return
			}
			if !yield(items, nil) || len(items) < PageSize {
				return
			}
		}
	}
}

// Collect concatenates the pages of seq in order. An API error stops the walk:
// it is passed to onAPIError and the items gathered so far are returned with a
// nil error. Any other error is returned as is.
func Collect[T any](seq iter.Seq2[[]T, error], onAPIError func(error)) ([]T, error) {
	var all []T
	for items, err := range seq {
		if err != nil {
			if IsAPIError(err) {
				if onAPIError != nil {
					onAPIError(err)
				}
				return all, nil
			}
			return nil, err
		}
		all = append(all, items...)
	}
	return all, nil
}
