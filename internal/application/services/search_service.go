package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"plugseek.dev/cli/internal/application/ports"
	"plugseek.dev/cli/internal/core/catalog"
	"plugseek.dev/cli/internal/core/resolve"
)

// DefaultLimit caps each catalog's contribution when the caller does not
// pick a limit of its own.
const DefaultLimit = 10

// SourceSelector narrows a federated operation to one catalog. The zero
// value behaves like SelectAll.
type SourceSelector string

const (
	SelectAll      SourceSelector = "all"
	SelectSpiget   SourceSelector = SourceSelector(catalog.SourceSpiget)
	SelectModrinth SourceSelector = SourceSelector(catalog.SourceModrinth)
)

// ParseSourceSelector converts a user-supplied --source value into a
// selector. An empty value selects every catalog.
func ParseSourceSelector(value string) (SourceSelector, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", string(SelectAll):
		return SelectAll, nil
	case string(catalog.SourceSpiget):
		return SelectSpiget, nil
	case string(catalog.SourceModrinth):
		return SelectModrinth, nil
	default:
		return "", fmt.Errorf("unknown source %q (expected %s, %s, or %s)", value, SelectAll, SelectSpiget, SelectModrinth)
	}
}

func (s SourceSelector) includes(id catalog.SourceID) bool {
	return s == SelectAll || s == "" || string(s) == string(id)
}

// SearchService federates plugin lookups across the wired catalog gateways
// and funnels merged results through the disambiguation resolver.
type SearchService struct {
	gateways []ports.CatalogGateway
	resolver *resolve.Resolver
	logger   *slog.Logger
}

// NewSearchService creates a search service over the given gateways
func NewSearchService(resolver *resolve.Resolver, logger *slog.Logger, gateways ...ports.CatalogGateway) *SearchService {
	return &SearchService{
		gateways: gateways,
		resolver: resolver,
		logger:   logger,
	}
}

// Search fans the query out to every selected gateway concurrently, joins
// the responses, and merges them into one provenance-tagged list. A gateway
// failure is logged and that catalog contributes nothing; whatever the
// remaining catalogs returned still comes back with a nil error. There are
// no retries.
func (s *SearchService) Search(ctx context.Context, query string, limit int, sel SourceSelector) ([]catalog.Record, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query must not be empty")
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	perGateway := make([][]catalog.Record, len(s.gateways))

	var g errgroup.Group
	for i, gateway := range s.gateways {
		if !sel.includes(gateway.Source()) {
			continue
		}
		g.Go(func() error {
			records, err := gateway.Search(ctx, query, limit)
			if err != nil {
				s.logger.Warn("catalog search failed",
					"source", gateway.Source(),
					"query", query,
					"error", err)
				return nil
			}
			perGateway[i] = records
			return nil
		})
	}

	// Gateway failures are absorbed above, so the join cannot fail.
	_ = g.Wait()

	var fromSpiget, fromModrinth []catalog.Record
	for i, gateway := range s.gateways {
		switch gateway.Source() {
		case catalog.SourceSpiget:
			fromSpiget = perGateway[i]
		case catalog.SourceModrinth:
			fromModrinth = perGateway[i]
		}
	}

	return catalog.Merge(fromSpiget, fromModrinth), nil
}

// Locate searches and then resolves the query against the merged list.
// The merged list rides along so the caller can render NoGoodMatch
// fallbacks without a second round trip.
func (s *SearchService) Locate(ctx context.Context, query string, limit int, sel SourceSelector) (resolve.Outcome, []catalog.Record, error) {
	records, err := s.Search(ctx, query, limit, sel)
	if err != nil {
		return resolve.Empty(), nil, err
	}
	return s.resolver.Resolve(query, records), records, nil
}

// FetchByID looks one record up directly on the named catalog and stamps
// its provenance. An id the catalog does not know yields (nil, nil).
func (s *SearchService) FetchByID(ctx context.Context, id string, src catalog.SourceID) (*catalog.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("record id must not be empty")
	}

	for _, gateway := range s.gateways {
		if gateway.Source() != src {
			continue
		}

		record, err := gateway.FetchByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("%s lookup for %q failed: %w", src.Label(), id, err)
		}
		if record == nil {
			return nil, nil
		}

		tagged := record.Clone()
		tagged.Source = src
		return &tagged, nil
	}

	return nil, fmt.Errorf("no catalog wired for source %q", src)
}
