package spiget

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"golang.org/x/sync/errgroup"

	"plugseek.dev/cli/internal/core/catalog"
)

// enrichmentConcurrency bounds how many per-record secondary lookups run
// at once for a single search response.
const enrichmentConcurrency = 8

// Adapter normalizes Spiget resources into catalog records. Spiget keeps a
// resource's latest version, author name, and category name behind
// secondary endpoints, so every search fans out best-effort enrichment
// lookups and joins them before returning.
type Adapter struct {
	client *Client
	logger *slog.Logger
}

// NewAdapter creates the Spiget catalog gateway
func NewAdapter(client *Client, logger *slog.Logger) *Adapter {
	return &Adapter{client: client, logger: logger}
}

// Source identifies this gateway's catalog
func (a *Adapter) Source() catalog.SourceID {
	return catalog.SourceSpiget
}

// Search runs a resource search and enriches each hit
func (a *Adapter) Search(ctx context.Context, query string, limit int) ([]catalog.Record, error) {
	resources, err := a.client.SearchResources(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("spiget search failed: %w", err)
	}

	records := make([]catalog.Record, len(resources))
	for i, res := range resources {
		records[i] = normalize(res)
	}

	a.enrich(ctx, resources, records)
	return records, nil
}

// FetchByID looks up a single resource; unknown ids yield (nil, nil)
func (a *Adapter) FetchByID(ctx context.Context, id string) (*catalog.Record, error) {
	resource, err := a.client.GetResource(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("spiget lookup failed: %w", err)
	}
	if resource == nil {
		return nil, nil
	}

	records := []catalog.Record{normalize(*resource)}
	a.enrich(ctx, []Resource{*resource}, records)
	return &records[0], nil
}

// normalize maps the wire shape onto a record, resolving the per-field
// fallbacks exactly once. Provenance stays unset; the merger tags it.
func normalize(res Resource) catalog.Record {
	record := catalog.Record{
		ID:            strconv.Itoa(res.ID),
		DisplayName:   res.Name,
		Author:        catalog.UnknownAuthor,
		LatestVersion: catalog.UnknownVersion,
		Description:   res.Tag,
	}
	if res.Downloads > 0 {
		record.Downloads = res.Downloads
	}
	if res.Author.Name != "" {
		record.Author = res.Author.Name
	}
	if res.Category.Name != "" {
		record.Categories = []string{res.Category.Name}
	}
	return record
}

// enrich fills version, author, and category names through concurrent
// secondary lookups, joined before returning so records never mutate after
// the caller sees them. Each lookup is best-effort: a failure leaves that
// one field's fallback in place and never aborts the batch.
func (a *Adapter) enrich(ctx context.Context, resources []Resource, records []catalog.Record) {
	var g errgroup.Group
	g.SetLimit(enrichmentConcurrency)

	for i := range records {
		g.Go(func() error {
			a.enrichRecord(ctx, resources[i], &records[i])
			return nil
		})
	}

	// Lookups never report errors, so the join cannot fail.
	_ = g.Wait()
}

func (a *Adapter) enrichRecord(ctx context.Context, res Resource, record *catalog.Record) {
	if version, err := a.client.GetLatestVersion(ctx, record.ID); err != nil {
		a.logger.Debug("spiget version lookup failed", "resource", record.ID, "error", err)
	} else if version != nil && version.Name != "" {
		record.LatestVersion = version.Name
	}

	if record.Author == catalog.UnknownAuthor && res.Author.ID > 0 {
		if author, err := a.client.GetAuthor(ctx, res.Author.ID); err != nil {
			a.logger.Debug("spiget author lookup failed", "author", res.Author.ID, "error", err)
		} else if author != nil && author.Name != "" {
			record.Author = author.Name
		}
	}

	if len(record.Categories) == 0 && res.Category.ID > 0 {
		if category, err := a.client.GetCategory(ctx, res.Category.ID); err != nil {
			a.logger.Debug("spiget category lookup failed", "category", res.Category.ID, "error", err)
		} else if category != nil && category.Name != "" {
			record.Categories = []string{category.Name}
		}
	}
}
