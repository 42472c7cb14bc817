package catalog

import "fmt"

// SourceID identifies which catalog a record originated from
type SourceID string

const (
	// SourceUnknown is the zero value carried by records that have not
	// passed through Merge (or FetchByID tagging) yet.
	SourceUnknown  SourceID = ""
	SourceSpiget   SourceID = "spiget"
	SourceModrinth SourceID = "modrinth"
)

// ParseSourceID converts a user-supplied source name into a SourceID
func ParseSourceID(value string) (SourceID, error) {
	switch value {
	case string(SourceSpiget):
		return SourceSpiget, nil
	case string(SourceModrinth):
		return SourceModrinth, nil
	default:
		return SourceUnknown, fmt.Errorf("unknown source %q (expected %q or %q)", value, SourceSpiget, SourceModrinth)
	}
}

// Label returns the catalog's display name for rendered output
func (s SourceID) Label() string {
	switch s {
	case SourceSpiget:
		return "Spiget"
	case SourceModrinth:
		return "Modrinth"
	default:
		return "Unknown"
	}
}

// Fallback values substituted when a catalog omits a field. Applied once,
// at the adapter boundary, never re-derived later.
const (
	UnknownAuthor  = "Unknown"
	UnknownVersion = "Unknown"
)

// Record is a normalized view of one plugin entry from either catalog.
// IDs are source-native and unique only within their source. Source is
// set exactly once, at merge time, and never mutated afterward.
type Record struct {
	ID            string   `json:"id" yaml:"id"`
	DisplayName   string   `json:"name" yaml:"name"`
	Author        string   `json:"author" yaml:"author"`
	LatestVersion string   `json:"latest_version" yaml:"latest_version"`
	Downloads     int      `json:"downloads" yaml:"downloads"`
	Categories    []string `json:"categories,omitempty" yaml:"categories,omitempty"`
	Description   string   `json:"description,omitempty" yaml:"description,omitempty"`
	Source        SourceID `json:"source" yaml:"source"`
}

// Clone returns a value copy that shares no slice backing with the original
func (r Record) Clone() Record {
	copied := r
	if r.Categories != nil {
		copied.Categories = make([]string, len(r.Categories))
		copy(copied.Categories, r.Categories)
	}
	return copied
}

// Tagged reports whether the record has been stamped with its provenance
func (r Record) Tagged() bool {
	return r.Source != SourceUnknown
}
