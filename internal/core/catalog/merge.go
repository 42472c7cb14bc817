package catalog

// Merge concatenates the two per-source result lists into one
// provenance-tagged list: every Spiget record first, in the order
// received, then every Modrinth record, in the order received. It never
// re-sorts and never touches the network or the cache; the returned
// slice holds value copies, so callers may keep using their inputs.
func Merge(fromSpiget, fromModrinth []Record) []Record {
	merged := make([]Record, 0, len(fromSpiget)+len(fromModrinth))

	for _, r := range fromSpiget {
		tagged := r.Clone()
		tagged.Source = SourceSpiget
		merged = append(merged, tagged)
	}

	for _, r := range fromModrinth {
		tagged := r.Clone()
		tagged.Source = SourceModrinth
		merged = append(merged, tagged)
	}

	return merged
}
