package catalog

import (
	"context"
	"fmt"
)

// Provider is the narrow interface to the external catalog. One round trip
// per call, no caching, no retries.
type Provider interface {
	SearchMovies(ctx context.Context, query string, limit int) ([]Movie, error)
	SearchPersons(ctx context.Context, query string, limit int) ([]Person, error)
	PersonDetail(ctx context.Context, id int64) (Person, error)
}

// ProviderError reports a non-200 response from the catalog.
type ProviderError struct {
	Status int
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("catalog responded with status %d", e.Status)
}
