package ports

import (
	"context"

	"plugseek.dev/cli/internal/core/catalog"
)

// CatalogGateway is the per-source surface the application layer fans out
// to. Implementations call their external catalog, normalize its raw
// shapes into records (field fallbacks resolved, provenance left unset),
// and shield it behind the shared response cache.
type CatalogGateway interface {
	// Source identifies which catalog this gateway fronts.
	Source() catalog.SourceID

	// Search returns up to limit normalized records for a free-text query.
	// A query with no hits yields an empty list, not an error.
	Search(ctx context.Context, query string, limit int) ([]catalog.Record, error)

	// FetchByID looks up one record by its source-native identifier.
	// An unknown id yields (nil, nil); errors mean the catalog itself
	// could not answer.
	FetchByID(ctx context.Context, id string) (*catalog.Record, error)
}
