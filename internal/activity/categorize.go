package activity

import (
	"strings"

	"github.com/ashlinalex1/mindstride/internal/domain"
)

type keywordRule struct {
	category domain.Category
	keywords []string
}

// rules are evaluated top-down; the first group with a matching keyword wins.
// Only the exact label "social" reaches the social bucket, see Resolve.
var rules = []keywordRule{
	{
		category: domain.CategoryStudy,
		keywords: []string{"study", "education", "learning", "academic", "research"},
	},
	{
		category: domain.CategoryEntertainment,
		keywords: []string{"entertainment", "game", "video", "music", "social"},
	},
}

// Categorize maps a free-text label to a canonical category using
// case-insensitive substring matching. Unmatched or empty labels are other.
func Categorize(label string) domain.Category {
	lower := strings.ToLower(strings.TrimSpace(label))
	if lower == "" {
		return domain.CategoryOther
	}
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.category
			}
		}
	}
	return domain.CategoryOther
}

// Resolve returns the canonical category for a record label. Labels that
// already are canonical names pass through untouched.
func Resolve(label string) domain.Category {
	if c, ok := domain.ParseCanonical(label); ok {
		return c
	}
	return Categorize(label)
}
