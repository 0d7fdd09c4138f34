package activity

import "github.com/ashlinalex1/mindstride/internal/domain"

// Normalize collapses a bucket to study, entertainment and others. Others is
// summed from the remaining entries, never subtracted from a total.
func Normalize(bucket domain.CategoryBucket) domain.NormalizedSummary {
	return domain.NormalizedSummary{
		Study:         bucket.Minutes(domain.CategoryStudy),
		Entertainment: bucket.Minutes(domain.CategoryEntertainment),
		Others:        max(bucket.OthersMinutes(), 0),
	}
}
