package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func makeRecords(prefix string, n int) []Record {
	records := make([]Record, n)
	for i := range records {
		records[i] = Record{
			ID:          fmt.Sprintf("%s-%d", prefix, i),
			DisplayName: fmt.Sprintf("%s Plugin %d", prefix, i),
		}
	}
	return records
}

// TestMerge_OrderAndProvenance tests the concatenation contract
func TestMerge_OrderAndProvenance(t *testing.T) {
	tests := []struct {
		name          string
		spigetCount   int
		modrinthCount int
	}{
		{
			name:          "BothEmpty_ShouldYieldEmptyList",
			spigetCount:   0,
			modrinthCount: 0,
		},
		{
			name:          "OnlySpiget_ShouldKeepOrder",
			spigetCount:   3,
			modrinthCount: 0,
		},
		{
			name:          "OnlyModrinth_ShouldKeepOrder",
			spigetCount:   0,
			modrinthCount: 4,
		},
		{
			name:          "BothSources_SpigetFirst",
			spigetCount:   2,
			modrinthCount: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fromSpiget := makeRecords("spiget", tt.spigetCount)
			fromModrinth := makeRecords("modrinth", tt.modrinthCount)

			merged := Merge(fromSpiget, fromModrinth)

			require.Len(t, merged, tt.spigetCount+tt.modrinthCount, "Merged length should be m+n")

			for i := 0; i < tt.spigetCount; i++ {
				assert.Equal(t, SourceSpiget, merged[i].Source, "First m entries should be tagged Spiget")
				assert.Equal(t, fromSpiget[i].ID, merged[i].ID, "Spiget entries should keep their order")
			}
			for i := 0; i < tt.modrinthCount; i++ {
				assert.Equal(t, SourceModrinth, merged[tt.spigetCount+i].Source, "Last n entries should be tagged Modrinth")
				assert.Equal(t, fromModrinth[i].ID, merged[tt.spigetCount+i].ID, "Modrinth entries should keep their order")
			}
		})
	}
}

// TestMerge_DoesNotMutateInputs tests that provenance tagging happens on copies
func TestMerge_DoesNotMutateInputs(t *testing.T) {
	fromSpiget := makeRecords("spiget", 2)
	fromModrinth := makeRecords("modrinth", 2)

	merged := Merge(fromSpiget, fromModrinth)

	for _, r := range fromSpiget {
		assert.False(t, r.Tagged(), "Input records must stay untagged")
	}
	for _, r := range fromModrinth {
		assert.False(t, r.Tagged(), "Input records must stay untagged")
	}
	for _, r := range merged {
		assert.True(t, r.Tagged(), "Every merged record must carry provenance")
	}
}

// TestMerge_CopiesCategorySlices tests output isolation from inputs
func TestMerge_CopiesCategorySlices(t *testing.T) {
	fromSpiget := []Record{{ID: "1", DisplayName: "Vault", Categories: []string{"economy"}}}

	merged := Merge(fromSpiget, nil)
	require.Len(t, merged, 1)

	merged[0].Categories[0] = "mutated"
	assert.Equal(t, "economy", fromSpiget[0].Categories[0], "Merged records must not alias input slices")
}

// Property-based tests using rapid

// TestMerge_PropertyBased_OrderHolds checks the concatenation contract for arbitrary sizes
func TestMerge_PropertyBased_OrderHolds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		m := rapid.IntRange(0, 25).Draw(t, "spigetCount")
		n := rapid.IntRange(0, 25).Draw(t, "modrinthCount")

		fromSpiget := makeRecords("a", m)
		fromModrinth := makeRecords("b", n)

		merged := Merge(fromSpiget, fromModrinth)

		assert.Len(t, merged, m+n, "Merged length should always be m+n")

		for i, r := range merged {
			if i < m {
				assert.Equal(t, SourceSpiget, r.Source)
				assert.Equal(t, fromSpiget[i].ID, r.ID)
			} else {
				assert.Equal(t, SourceModrinth, r.Source)
				assert.Equal(t, fromModrinth[i-m].ID, r.ID)
			}
		}
	})
}
