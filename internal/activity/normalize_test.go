package activity

import (
	"math/rand"
	"testing"

	"github.com/ashlinalex1/mindstride/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestNormalize_MissingBucketsAreZero(t *testing.T) {
	n := Normalize(domain.CategoryBucket{domain.CategoryWork: 12})
	assert.Equal(t, domain.NormalizedSummary{Study: 0, Entertainment: 0, Others: 12}, n)
}

func TestNormalize_OthersAbsorbsExtendedCategories(t *testing.T) {
	n := Normalize(domain.CategoryBucket{
		domain.CategoryStudy:         30,
		domain.CategoryEntertainment: 20,
		domain.CategoryWork:          5,
		domain.CategorySocial:        4,
		domain.CategoryProductivity:  3,
		domain.CategoryGaming:        2,
		domain.CategoryOther:         1,
	})
	assert.Equal(t, 30.0, n.Study)
	assert.Equal(t, 20.0, n.Entertainment)
	assert.Equal(t, 15.0, n.Others)
}

func TestNormalize_Property_SumsToBucketTotal(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for trial := 0; trial < 200; trial++ {
		bucket := domain.CategoryBucket{}
		for _, c := range domain.CanonicalOrder {
			if rng.Intn(3) == 0 {
				continue
			}
			bucket[c] = rng.Float64() * 500
		}

		n := Normalize(bucket)

		assert.Equal(t, bucket.Total(), n.Study+n.Entertainment+n.Others, "trial %d", trial)
		assert.GreaterOrEqual(t, n.Others, 0.0, "trial %d", trial)
	}
}
