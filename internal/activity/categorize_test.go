package activity

import (
	"testing"

	"github.com/ashlinalex1/mindstride/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  domain.Category
	}{
		{"plain study", "Study", domain.CategoryStudy},
		{"education phrase", "Education & Learning", domain.CategoryStudy},
		{"research substring", "ResearchGate - Chrome", domain.CategoryStudy},
		{"video games", "Video Games", domain.CategoryEntertainment},
		{"music", "Spotify Music", domain.CategoryEntertainment},
		{"social stays entertainment", "Social Media", domain.CategoryEntertainment},
		{"study wins over entertainment", "study music playlist", domain.CategoryStudy},
		{"productivity is not a keyword", "Productivity", domain.CategoryOther},
		{"unmatched", "Terminal", domain.CategoryOther},
		{"empty", "", domain.CategoryOther},
		{"whitespace", "   ", domain.CategoryOther},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.label))
		})
	}
}

func TestResolve_CanonicalLabelPassesThrough(t *testing.T) {
	assert.Equal(t, domain.CategoryWork, Resolve("work"))
	assert.Equal(t, domain.CategoryGaming, Resolve("gaming"))
	assert.Equal(t, domain.CategorySocial, Resolve("social"))
	// Capitalized labels are raw text and go through keyword matching.
	assert.Equal(t, domain.CategoryOther, Resolve("Work"))
	assert.Equal(t, domain.CategoryEntertainment, Resolve("Games"))
	assert.Equal(t, domain.CategoryOther, Resolve("Gaming"))
}
