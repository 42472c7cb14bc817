package modrinth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Masterminds/semver/v3"
	"golang.org/x/sync/errgroup"

	"plugseek.dev/cli/internal/core/catalog"
)

// enrichmentConcurrency bounds how many per-record version lookups run at
// once for a single search response.
const enrichmentConcurrency = 8

// Adapter normalizes Modrinth projects into catalog records. Search hits
// carry only game-version info, so resolving a project's own release
// number takes a per-record /project/{id}/version lookup; fetchVersions
// toggles that fan-out for searches (single-record fetches always
// resolve).
type Adapter struct {
	client        *Client
	fetchVersions bool
	logger        *slog.Logger
}

// NewAdapter creates the Modrinth catalog gateway
func NewAdapter(client *Client, fetchVersions bool, logger *slog.Logger) *Adapter {
	return &Adapter{client: client, fetchVersions: fetchVersions, logger: logger}
}

// Source identifies this gateway's catalog
func (a *Adapter) Source() catalog.SourceID {
	return catalog.SourceModrinth
}

// Search runs a project search, optionally resolving release numbers
func (a *Adapter) Search(ctx context.Context, query string, limit int) ([]catalog.Record, error) {
	response, err := a.client.Search(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("modrinth search failed: %w", err)
	}

	records := make([]catalog.Record, len(response.Hits))
	for i, hit := range response.Hits {
		records[i] = normalizeHit(hit)
	}

	if a.fetchVersions {
		a.enrichVersions(ctx, records)
	}
	return records, nil
}

// FetchByID looks up a single project; unknown ids yield (nil, nil)
func (a *Adapter) FetchByID(ctx context.Context, id string) (*catalog.Record, error) {
	project, err := a.client.GetProject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("modrinth lookup failed: %w", err)
	}
	if project == nil {
		return nil, nil
	}

	record := normalizeProject(*project)
	if number := a.latestReleaseNumber(ctx, record.ID); number != "" {
		record.LatestVersion = number
	}
	return &record, nil
}

// normalizeHit maps a search hit onto a record, resolving the per-field
// fallbacks exactly once. Provenance stays unset; the merger tags it.
func normalizeHit(hit SearchHit) catalog.Record {
	record := catalog.Record{
		ID:            hit.ProjectID,
		DisplayName:   hit.Title,
		Author:        catalog.UnknownAuthor,
		LatestVersion: catalog.UnknownVersion,
		Description:   hit.Description,
	}
	if hit.Author != "" {
		record.Author = hit.Author
	}
	if hit.Downloads > 0 {
		record.Downloads = hit.Downloads
	}
	if len(hit.Categories) > 0 {
		record.Categories = append([]string(nil), hit.Categories...)
	}
	// Best version info available on the hit itself; the version fan-out
	// replaces it with the project's own release number when enabled.
	if hit.LatestVersion != "" {
		record.LatestVersion = hit.LatestVersion
	} else if newest := newestSemver(hit.Versions); newest != "" {
		record.LatestVersion = newest
	}
	return record
}

// normalizeProject maps a project detail onto a record. Projects are
// team-owned, so the author keeps its fallback.
func normalizeProject(project Project) catalog.Record {
	record := catalog.Record{
		ID:            project.ID,
		DisplayName:   project.Title,
		Author:        catalog.UnknownAuthor,
		LatestVersion: catalog.UnknownVersion,
		Description:   project.Description,
	}
	if project.Downloads > 0 {
		record.Downloads = project.Downloads
	}
	if len(project.Categories) > 0 {
		record.Categories = append([]string(nil), project.Categories...)
	}
	if newest := newestSemver(project.GameVersions); newest != "" {
		record.LatestVersion = newest
	}
	return record
}

// enrichVersions resolves release numbers through concurrent secondary
// lookups, joined before returning so records never mutate after the
// caller sees them. Each lookup is best-effort: a failure leaves the
// hit-derived value in place and never aborts the batch.
func (a *Adapter) enrichVersions(ctx context.Context, records []catalog.Record) {
	var g errgroup.Group
	g.SetLimit(enrichmentConcurrency)

	for i := range records {
		g.Go(func() error {
			if number := a.latestReleaseNumber(ctx, records[i].ID); number != "" {
				records[i].LatestVersion = number
			}
			return nil
		})
	}

	// Lookups never report errors, so the join cannot fail.
	_ = g.Wait()
}

// latestReleaseNumber returns the newest release's version number, or ""
// when the project has none or the lookup fails.
func (a *Adapter) latestReleaseNumber(ctx context.Context, id string) string {
	versions, err := a.client.GetVersions(ctx, id)
	if err != nil {
		a.logger.Debug("modrinth version lookup failed", "project", id, "error", err)
		return ""
	}
	if len(versions) == 0 {
		return ""
	}

	// The API orders newest first; keep that unless publish dates say
	// otherwise.
	newest := versions[0]
	for _, candidate := range versions[1:] {
		if candidate.DatePublished.After(newest.DatePublished) {
			newest = candidate
		}
	}
	return newest.VersionNumber
}

// newestSemver returns the highest semantic version in the list, ignoring
// entries that do not parse; empty when nothing parses.
func newestSemver(versions []string) string {
	var newest *semver.Version
	var raw string
	for _, candidate := range versions {
		parsed, err := semver.NewVersion(candidate)
		if err != nil {
			continue
		}
		if newest == nil || parsed.GreaterThan(newest) {
			newest = parsed
			raw = candidate
		}
	}
	return raw
}
