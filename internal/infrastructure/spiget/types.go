package spiget

// Wire shapes for the Spiget REST API (api.spiget.org/v2). Spiget embeds
// related entities as bare id references; names are resolved through
// secondary lookups.

// Resource is one plugin resource as returned by /search/resources and
// /resources/{id}.
type Resource struct {
	ID             int        `json:"id"`
	Name           string     `json:"name"`
	Tag            string     `json:"tag"`
	Downloads      int        `json:"downloads"`
	TestedVersions []string   `json:"testedVersions"`
	Author         EntityRef  `json:"author"`
	Category       EntityRef  `json:"category"`
	Version        VersionRef `json:"version"`
}

// EntityRef is an embedded author/category reference; Name is usually
// absent and has to be fetched via /authors/{id} or /categories/{id}.
type EntityRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// VersionRef is the embedded version reference on a resource.
type VersionRef struct {
	ID int `json:"id"`
}

// Version is the wire shape of /resources/{id}/versions/latest.
type Version struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Author is the wire shape of /authors/{id}.
type Author struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Category is the wire shape of /categories/{id}.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
