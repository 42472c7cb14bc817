package modrinth

import "time"

// Wire shapes for the Modrinth REST API (api.modrinth.com/v2).

// SearchResponse is the wire shape of /search.
type SearchResponse struct {
	Hits      []SearchHit `json:"hits"`
	TotalHits int         `json:"total_hits"`
}

// SearchHit is one project in a search response. Versions lists the game
// versions the project supports; the project's own release numbers live
// behind /project/{id}/version.
type SearchHit struct {
	ProjectID     string   `json:"project_id"`
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	Description   string   `json:"description"`
	Categories    []string `json:"categories"`
	Versions      []string `json:"versions"`
	Downloads     int      `json:"downloads"`
	LatestVersion string   `json:"latest_version"`
}

// Project is the wire shape of /project/{id}. Projects are team-owned, so
// unlike search hits there is no single author field.
type Project struct {
	ID           string   `json:"id"`
	Slug         string   `json:"slug"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Categories   []string `json:"categories"`
	Downloads    int      `json:"downloads"`
	GameVersions []string `json:"game_versions"`
}

// ProjectVersion is one entry of /project/{id}/version, newest first.
type ProjectVersion struct {
	ID            string    `json:"id"`
	VersionNumber string    `json:"version_number"`
	DatePublished time.Time `json:"date_published"`
}
