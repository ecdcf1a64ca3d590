package geocoding

import (
	"context"
	"errors"
	"fmt"

	"github.com/okian/cosmicpos/internal/domain/spacetime"
	"github.com/okian/cosmicpos/pkg/logger"
)

// Resolver tries progressively coarser forms of a location until one matches.
type Resolver struct {
	lookup Lookup
	logger logger.Logger
}

// NewResolver wraps lookup with fallback resolution.
func NewResolver(lookup Lookup, l logger.Logger) *Resolver {
	if l == nil {
		l = logger.Nop()
	}
	return &Resolver{lookup: lookup, logger: l}
}

// Resolve returns the first match among the input's candidates. Only a "not
// found" answer moves on to the next candidate; other errors stop the search.
func (r *Resolver) Resolve(ctx context.Context, input string) (spacetime.Location, error) {
	candidates := ParseQuery(input).Candidates()
	if len(candidates) == 0 {
		return spacetime.Location{}, ErrEmptyQuery
	}
	for i, c := range candidates {
		loc, err := r.lookup.Lookup(ctx, c)
		if err == nil {
			if i > 0 {
				r.logger.Info(ctx, "resolved with fallback", logger.String("input", input), logger.String("matched", c))
			}
			return loc, nil
		}
		if !errors.Is(err, ErrNotFound) {
			return spacetime.Location{}, err
		}
	}
	return spacetime.Location{}, fmt.Errorf("%w: %q", ErrNotFound, input)
}
